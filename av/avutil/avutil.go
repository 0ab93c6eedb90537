// Package avutil registers container format handlers and opens files
// through them.
package avutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkvkit/mkvstream/av"
)

type RegisterHandler struct {
	Ext           string
	Probe         func(b []byte) bool
	ReaderDemuxer func(r io.ReadSeeker, size int64) (av.Container, error)
}

var handlers []RegisterHandler

func Register(fn func(*RegisterHandler)) {
	var h RegisterHandler
	fn(&h)
	handlers = append(handlers, h)
}

func findByExt(ext string) (RegisterHandler, bool) {
	for _, h := range handlers {
		for _, e := range strings.Split(h.Ext, ",") {
			if e == ext {
				return h, true
			}
		}
	}
	return RegisterHandler{}, false
}

func findByProbe(b []byte) (RegisterHandler, bool) {
	for _, h := range handlers {
		if h.Probe != nil && h.Probe(b) {
			return h, true
		}
	}
	return RegisterHandler{}, false
}

// Open opens the file at path with the handler matching its extension, or
// failing that the handler whose probe recognizes the leading bytes.
func Open(path string) (av.Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	h, ok := findByExt(filepath.Ext(path))
	if !ok {
		b := make([]byte, 16)
		if _, err = io.ReadFull(f, b); err != nil {
			f.Close()
			return nil, err
		}
		if _, err = f.Seek(0, io.SeekStart); err != nil {
			f.Close()
			return nil, err
		}
		if h, ok = findByProbe(b); !ok {
			f.Close()
			return nil, fmt.Errorf("avutil: no handler for %s", path)
		}
	}

	c, err := h.ReaderDemuxer(f, fi.Size())
	if err != nil {
		f.Close()
		return nil, err
	}

	return c, nil
}
