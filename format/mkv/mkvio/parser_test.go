package mkvio

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func encodeID(id uint32) []byte {
	switch {
	case id > 0xffffff:
		return []byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
	case id > 0xffff:
		return []byte{byte(id >> 16), byte(id >> 8), byte(id)}
	case id > 0xff:
		return []byte{byte(id >> 8), byte(id)}
	default:
		return []byte{byte(id)}
	}
}

func encodeElement(id uint32, content []byte) []byte {
	b := encodeID(id)
	if len(content) >= 0x7f {
		b = append(b, 0x40|byte(len(content)>>8), byte(len(content)))
	} else {
		b = append(b, 0x80|byte(len(content)))
	}
	return append(b, content...)
}

func TestParseElementUint(t *testing.T) {
	raw := encodeElement(ElementTimecodeScale.ID, []byte{0x0f, 0x42, 0x40})
	doc := InitDocument(bytes.NewReader(raw))

	el, err := doc.ParseElement()
	if err != nil {
		t.Fatal(err)
	}
	if el.ID != ElementTimecodeScale.ID {
		t.Errorf("id %#x", el.ID)
	}
	if el.Size != 3 {
		t.Errorf("size %d", el.Size)
	}
	if got := UnmarshalUint(el.Content); got != 1000000 {
		t.Errorf("value %d, want 1000000", got)
	}
	if doc.Position() != int64(len(raw)) {
		t.Errorf("position %d, want %d", doc.Position(), len(raw))
	}
}

func TestParseMasterHeaderOnly(t *testing.T) {
	child := encodeElement(ElementTimecode.ID, []byte{0x10})
	raw := encodeElement(ElementCluster.ID, child)
	doc := InitDocument(bytes.NewReader(raw))

	el, err := doc.ParseElement()
	if err != nil {
		t.Fatal(err)
	}
	if el.ID != ElementCluster.ID || el.Type != ElementTypeMaster {
		t.Fatalf("unexpected element %s", el.Name)
	}
	if el.Content != nil {
		t.Error("master element must not slurp content")
	}
	if el.End() != int64(len(raw)) {
		t.Errorf("end %d, want %d", el.End(), len(raw))
	}

	// cursor sits at the first child
	tc, err := doc.ParseElement()
	if err != nil {
		t.Fatal(err)
	}
	if tc.ID != ElementTimecode.ID || UnmarshalUint(tc.Content) != 0x10 {
		t.Errorf("child %s value %d", tc.Name, UnmarshalUint(tc.Content))
	}
}

func TestSeekToRewind(t *testing.T) {
	raw := encodeElement(ElementTimecode.ID, []byte{0x22})
	doc := InitDocument(bytes.NewReader(raw))

	first, err := doc.ParseElement()
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.SeekTo(first.Offset); err != nil {
		t.Fatal(err)
	}

	again, err := doc.ParseElement()
	if err != nil {
		t.Fatal(err)
	}
	if again.Offset != first.Offset || again.ID != first.ID {
		t.Error("rewound parse disagrees with the first one")
	}
}

func TestUnknownSizeMaster(t *testing.T) {
	raw := append(encodeID(ElementSegment.ID), 0xff)
	doc := InitDocument(bytes.NewReader(raw))

	el, err := doc.ParseElement()
	if err != nil {
		t.Fatal(err)
	}
	if !el.SizeUnknown {
		t.Error("expected unknown size")
	}
}

func TestTruncatedContent(t *testing.T) {
	raw := encodeElement(ElementTimecodeScale.ID, []byte{0x0f, 0x42, 0x40})
	doc := InitDocument(bytes.NewReader(raw[:len(raw)-1]))

	if _, err := doc.ParseElement(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected unexpected-EOF, got %v", err)
	}
}

func TestParseBlockHeader(t *testing.T) {
	values := []struct {
		b        []byte
		track    int64
		timecode int16
		key      bool
		n        int
	}{
		{[]byte{0x81, 0x00, 0x64, 0x80, 0xde}, 1, 100, true, 4},
		{[]byte{0x82, 0xff, 0x9c, 0x00, 0xde}, 2, -100, false, 4},
		{[]byte{0x40, 0xc8, 0x01, 0x00, 0x00, 0xde}, 200, 256, false, 5},
	}
	for _, ex := range values {
		track, timecode, flags, n, err := ParseBlockHeader(ex.b)
		if err != nil {
			t.Fatal(err)
		}
		if track != ex.track || timecode != ex.timecode || n != ex.n {
			t.Errorf("%v: got track=%d tc=%d n=%d", ex.b, track, timecode, n)
		}
		if key := flags&BlockFlagKeyframe != 0; key != ex.key {
			t.Errorf("%v: keyframe=%v, want %v", ex.b, key, ex.key)
		}
	}
}

func TestParseBlockHeaderShort(t *testing.T) {
	if _, _, _, _, err := ParseBlockHeader([]byte{0x81, 0x00}); !errors.Is(err, ErrParse) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestUnmarshalFloat(t *testing.T) {
	if got := UnmarshalFloat([]byte{0x41, 0x20, 0x00, 0x00}); got != 10 {
		t.Errorf("float32: got %v", got)
	}
	if got := UnmarshalFloat([]byte{0x40, 0x24, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}); got != 10 {
		t.Errorf("float64: got %v", got)
	}
}
