package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mkvkit/mkvstream/av"
	"github.com/mkvkit/mkvstream/av/avutil"
	"github.com/mkvkit/mkvstream/format/wsraw"
	"github.com/mkvkit/mkvstream/stream"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Serve track payloads over websocket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
			// each session opens the file itself so cursors stay independent
			c, err := avutil.Open(path)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			trackNum, _ := strconv.ParseInt(r.URL.Query().Get("track"), 10, 64)
			t, ok := findTrack(c, trackNum)
			if !ok {
				http.Error(w, "no such track", http.StatusNotFound)
				return
			}
			from, _ := time.ParseDuration(r.URL.Query().Get("from"))

			m, err := wsraw.NewMuxer(r, w)
			if err != nil {
				log.Error(err)
				return
			}
			go playSession(t, from, m)
		})

		log.WithFields(log.Fields{"addr": serveAddr, "file": path}).Info("serving")
		return http.ListenAndServe(serveAddr, nil)
	},
}

// playSession pushes samples to the sink paced by their presentation times.
func playSession(t av.Track, from time.Duration, m *wsraw.Muxer) {
	defer m.Close()

	st := stream.New(t)
	if err := st.Seek(from, true); err != nil {
		log.Error(err)
		return
	}

	last := time.Duration(-1)
	w := paceWriter{m: m, last: &last}

	for {
		err := st.Advance(w)
		switch {
		case err == nil:
		case errors.Is(err, av.ErrEndOfStream):
			return
		case errors.Is(err, av.ErrNeedMoreData):
			if err := st.Preload(); err != nil {
				log.Error(err)
				return
			}
		default:
			log.Error(err)
			return
		}
	}
}

type paceWriter struct {
	m    *wsraw.Muxer
	last *time.Duration
}

func (p paceWriter) WriteSample(s av.Sample) error {
	if *p.last >= 0 && s.Time > *p.last {
		time.Sleep(s.Time - *p.last)
	}
	*p.last = s.Time
	return p.m.WriteSample(s)
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8083", "listen address")
	rootCmd.AddCommand(serveCmd)
}
