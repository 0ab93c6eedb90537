package mkv

import (
	"io"

	"github.com/mkvkit/mkvstream/av"
	"github.com/mkvkit/mkvstream/av/avutil"
)

// Handler registers Matroska/WebM with the format registry.
func Handler(h *avutil.RegisterHandler) {
	h.Ext = ".mkv,.webm"

	h.Probe = func(b []byte) bool {
		return len(b) >= 4 && b[0] == 0x1a && b[1] == 0x45 && b[2] == 0xdf && b[3] == 0xa3
	}

	h.ReaderDemuxer = func(r io.ReadSeeker, size int64) (av.Container, error) {
		return NewSegment(r, size)
	}
}
