package mkvio

import (
	"errors"
	"io"
)

var (
	ErrParse         = errors.New("mkvio: parse error")
	ErrUnexpectedEOF = errors.New("mkvio: unexpected EOF")
)

// InitDocument creates a document over a MKV/WebM byte source.
// It does not do any parsing.
func InitDocument(r io.ReadSeeker) *Document {
	doc := new(Document)
	doc.r = r

	return doc
}

// Position returns the current cursor offset.
func (doc *Document) Position() int64 {
	return doc.pos
}

// SeekTo moves the cursor to an absolute offset. Used to rewind to an
// element boundary after an underflow, or to skip a master element.
func (doc *Document) SeekTo(off int64) error {
	if _, err := doc.r.Seek(off, io.SeekStart); err != nil {
		return err
	}
	doc.pos = off
	return nil
}

// Skip advances the cursor past el and all of its content.
func (doc *Document) Skip(el *Element) error {
	if el.SizeUnknown {
		return ErrParse
	}
	return doc.SeekTo(el.End())
}

func (doc *Document) readFull(b []byte) error {
	n, err := io.ReadFull(doc.r, b)
	doc.pos += int64(n)
	return err
}

// ParseElement parses the EBML element starting at the document's current
// cursor position. Master elements are returned header-only; the cursor is
// left at their first child.
func (doc *Document) ParseElement() (Element, error) {
	var el Element

	el.Offset = doc.pos

	id, err := doc.GetElementID()
	if err != nil {
		return el, err
	}

	size, unknown, err := doc.GetElementSize()
	if err != nil {
		return el, err
	}

	el.ElementRegister = GetElementRegister(id)
	if el.ElementRegister.ID == ElementUnknown.ID {
		el.ElementRegister.ID = id
	}
	el.Size = size
	el.SizeUnknown = unknown
	el.DataOffset = doc.pos

	if el.Type == ElementTypeMaster {
		return el, nil
	}

	if unknown {
		return el, ErrParse
	}

	el.Content = make([]byte, el.Size)
	if err = doc.readFull(el.Content); err != nil {
		return el, err
	}

	return el, nil
}

// GetElementID parses the next element's id, starting from the document's
// current cursor position.
func (doc *Document) GetElementID() (uint32, error) {
	b := make([]byte, 1)

	if err := doc.readFull(b); err != nil {
		return 0, err
	}

	var length int
	switch {
	case b[0]&0x80 != 0: // Class A ID (on 1 byte)
		return uint32(b[0]), nil
	case b[0]&0x40 != 0: // Class B ID (on 2 bytes)
		length = 2
	case b[0]&0x20 != 0: // Class C ID (on 3 bytes)
		length = 3
	case b[0]&0x10 != 0: // Class D ID (on 4 bytes)
		length = 4
	default:
		return 0, ErrParse
	}

	bb := make([]byte, length)
	bb[0] = b[0]

	if err := doc.readFull(bb[1:]); err != nil {
		return 0, err
	}

	return uint32(pack(length, bb)), nil
}

// GetElementSize parses the next element's size, starting from the
// document's current cursor position. The second result reports the
// reserved all-ones "unknown size" value.
func (doc *Document) GetElementSize() (uint64, bool, error) {
	b := make([]byte, 1)

	if err := doc.readFull(b); err != nil {
		return 0, false, err
	}

	var mask byte
	var length int

	switch {
	case b[0] >= 0x80:
		length, mask = 1, 0x7f
	case b[0] >= 0x40:
		length, mask = 2, 0x3f
	case b[0] >= 0x20:
		length, mask = 3, 0x1f
	case b[0] >= 0x10:
		length, mask = 4, 0x0f
	case b[0] >= 0x08:
		length, mask = 5, 0x07
	case b[0] >= 0x04:
		length, mask = 6, 0x03
	case b[0] >= 0x02:
		length, mask = 7, 0x01
	case b[0] >= 0x01:
		length, mask = 8, 0x00
	default:
		return 0, false, ErrParse
	}

	bb := make([]byte, length)
	bb[0] = b[0] & mask

	if length > 1 {
		if err := doc.readFull(bb[1:]); err != nil {
			return 0, false, err
		}
	}

	v := pack(length, bb)
	unknown := v == maxVint(length)

	return v, unknown, nil
}

func maxVint(length int) uint64 {
	return 1<<(7*uint(length)) - 1
}
