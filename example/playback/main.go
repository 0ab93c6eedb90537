package main

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/mkvkit/mkvstream/av"
	"github.com/mkvkit/mkvstream/av/avutil"
	"github.com/mkvkit/mkvstream/format"
	"github.com/mkvkit/mkvstream/stream"
)

type printWriter struct{}

func (printWriter) WriteSample(s av.Sample) error {
	log.Println(s.TrackNumber, s.Time, s.IsKeyFrame, len(s.Data))
	return nil
}

func main() {
	format.RegisterAll()

	path := "sample.webm"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	c, err := avutil.Open(path)
	if err != nil {
		log.Fatal(err)
	}

	st := stream.New(c.Tracks()[0])
	if err := st.Seek(10*time.Second, true); err != nil {
		log.Fatal(err)
	}

	for {
		err := st.Advance(printWriter{})
		if errors.Is(err, av.ErrEndOfStream) {
			return
		}
		if errors.Is(err, av.ErrNeedMoreData) {
			if err = st.Preload(); err != nil {
				log.Fatal(err)
			}
			continue
		}
		if err != nil {
			log.Fatal(err)
		}
	}
}
