package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mkvkit/mkvstream/av"
	"github.com/mkvkit/mkvstream/av/avutil"
	"github.com/mkvkit/mkvstream/format/raw"
	"github.com/mkvkit/mkvstream/reftime"
	"github.com/mkvkit/mkvstream/stream"
)

var (
	dumpTrack  int64
	dumpOut    string
	dumpFrom   time.Duration
	dumpUntil  time.Duration
	dumpFramed bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Write one track's payloads to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := avutil.Open(args[0])
		if err != nil {
			return err
		}

		t, ok := findTrack(c, dumpTrack)
		if !ok {
			return fmt.Errorf("no track %d in %s", dumpTrack, args[0])
		}

		out, err := os.Create(dumpOut)
		if err != nil {
			return err
		}
		defer out.Close()

		m := raw.NewMuxer(out, t.Number())
		m.Framed = dumpFramed

		st := stream.New(t)
		if err := st.Seek(dumpFrom, true); err != nil {
			return err
		}
		if dumpUntil > 0 {
			if err := st.SetStopPosition(reftime.ToTicks(dumpUntil), stream.SeekAbsolute); err != nil {
				return err
			}
		}

		for {
			err := st.Advance(m)
			switch {
			case err == nil:
			case errors.Is(err, av.ErrEndOfStream):
				log.WithField("samples", m.SampleCount()).Info("dump done")
				return nil
			case errors.Is(err, av.ErrNeedMoreData):
				if err := st.Preload(); err != nil {
					return err
				}
			default:
				return err
			}
		}
	},
}

// findTrack picks the requested track number, or the first track when the
// caller did not ask for one.
func findTrack(c av.Container, num int64) (av.Track, bool) {
	tracks := c.Tracks()
	if len(tracks) == 0 {
		return nil, false
	}
	if num == 0 {
		return tracks[0], true
	}
	for _, t := range tracks {
		if t.Number() == num {
			return t, true
		}
	}
	return nil, false
}

func init() {
	dumpCmd.Flags().Int64VarP(&dumpTrack, "track", "t", 0, "track number (default: first track)")
	dumpCmd.Flags().StringVarP(&dumpOut, "out", "o", "out.bin", "output file")
	dumpCmd.Flags().DurationVar(&dumpFrom, "from", 0, "start position")
	dumpCmd.Flags().DurationVar(&dumpUntil, "until", 0, "stop position (0 means end of stream)")
	dumpCmd.Flags().BoolVar(&dumpFramed, "framed", false, "prefix each payload with time and length")
	rootCmd.AddCommand(dumpCmd)
}
