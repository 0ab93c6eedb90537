package raw

import (
	"encoding/binary"
	"io"

	"github.com/mkvkit/mkvstream/av"
	"github.com/mkvkit/mkvstream/reftime"
)

// Muxer writes the payloads of one track to w, back to back. With Framed
// set, each payload is preceded by its presentation time in ticks and its
// length, both big endian, so a dump stays parseable.
type Muxer struct {
	track int64
	w     io.Writer

	Framed bool

	count int
}

func NewMuxer(w io.Writer, track int64) *Muxer {
	return &Muxer{w: w, track: track}
}

func (m *Muxer) WriteSample(s av.Sample) (err error) {
	if s.TrackNumber != m.track {
		return
	}
	if m.Framed {
		var hdr [12]byte
		binary.BigEndian.PutUint64(hdr[:8], uint64(reftime.ToTicks(s.Time)))
		binary.BigEndian.PutUint32(hdr[8:], uint32(len(s.Data)))
		if _, err = m.w.Write(hdr[:]); err != nil {
			return
		}
	}
	if _, err = m.w.Write(s.Data); err != nil {
		return
	}
	m.count++
	return
}

// SampleCount reports how many samples have been written out.
func (m *Muxer) SampleCount() int { return m.count }
