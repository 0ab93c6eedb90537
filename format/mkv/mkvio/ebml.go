package mkvio

import (
	"io"
)

// Document is a cursor over a Matroska/WebM byte stream. It tracks its own
// offset so callers can rewind to an element boundary and retry once more
// bytes of a still-growing source have arrived.
type Document struct {
	r   io.ReadSeeker
	pos int64
}

// ElementRegister contains the ID, type and name of the
// standard WebM/Matroska elements
type ElementRegister struct {
	ID   uint32
	Type uint8
	Name string
}

// Element is a Matroska/WebM/EBML element
type Element struct {
	ElementRegister

	Size        uint64
	SizeUnknown bool

	// Offset is where the element header starts, DataOffset where its
	// content starts.
	Offset     int64
	DataOffset int64

	// Content holds the element data, nil for master elements.
	Content []byte
}

// End returns the offset one past the element's content. Not meaningful for
// unknown-size elements.
func (el *Element) End() int64 {
	return el.DataOffset + int64(el.Size)
}
