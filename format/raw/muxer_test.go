package raw

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/mkvkit/mkvstream/av"
)

func TestWriteSampleFiltersTrack(t *testing.T) {
	var buf bytes.Buffer
	m := NewMuxer(&buf, 1)

	samples := []av.Sample{
		{TrackNumber: 1, Time: 0, Data: []byte{1, 2}},
		{TrackNumber: 2, Time: 0, Data: []byte{9}},
		{TrackNumber: 1, Time: time.Second, Data: []byte{3}},
	}
	for _, s := range samples {
		if err := m.WriteSample(s); err != nil {
			t.Fatal(err)
		}
	}

	if !bytes.Equal(buf.Bytes(), []byte{1, 2, 3}) {
		t.Errorf("output %v", buf.Bytes())
	}
	if m.SampleCount() != 2 {
		t.Errorf("count %d, want 2", m.SampleCount())
	}
}

func TestWriteSampleFramed(t *testing.T) {
	var buf bytes.Buffer
	m := NewMuxer(&buf, 1)
	m.Framed = true

	err := m.WriteSample(av.Sample{TrackNumber: 1, Time: time.Second, Data: []byte{7, 8, 9}})
	if err != nil {
		t.Fatal(err)
	}

	out := buf.Bytes()
	if len(out) != 15 {
		t.Fatalf("frame length %d, want 15", len(out))
	}
	if ticks := binary.BigEndian.Uint64(out[:8]); ticks != 10000000 {
		t.Errorf("ticks %d, want 10000000", ticks)
	}
	if n := binary.BigEndian.Uint32(out[8:12]); n != 3 {
		t.Errorf("payload length %d, want 3", n)
	}
	if !bytes.Equal(out[12:], []byte{7, 8, 9}) {
		t.Errorf("payload %v", out[12:])
	}
}
