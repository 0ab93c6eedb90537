package mkv

import (
	"fmt"

	"github.com/mkvkit/mkvstream/av"
)

// Track is one elementary stream of a segment.
type Track struct {
	seg *Segment

	number    int64
	uid       uint64
	typ       av.TrackType
	name      string
	codecID   string
	codecName string

	eos *BlockEntry
}

func (t *Track) Number() int64      { return t.number }
func (t *Track) UID() uint64        { return t.uid }
func (t *Track) Type() av.TrackType { return t.typ }
func (t *Track) CodecID() string    { return t.codecID }

func (t *Track) Name() string {
	if t.name != "" {
		return t.name
	}
	return t.codecName
}

// EOS returns this track's terminal sentinel.
func (t *Track) EOS() av.BlockEntry { return t.eos }

func (t *Track) Container() av.Container { return t.seg }

// First returns the track's first entry, loading clusters until one holds a
// block of this track. av.ErrNeedMoreData passes through untouched.
func (t *Track) First() (av.BlockEntry, error) {
	scanned := 0

	for {
		for ; scanned < len(t.seg.clusters); scanned++ {
			for _, e := range t.seg.clusters[scanned].entries {
				if e.track == t.number {
					return e, nil
				}
			}
		}

		if t.seg.Unparsed() <= 0 {
			return t.eos, nil
		}

		if err := t.seg.LoadNextCluster(); err != nil {
			return nil, err
		}
	}
}

// Next returns the entry following curr for this track, loading clusters on
// demand and returning the EOS sentinel at the true end of the stream.
func (t *Track) Next(curr av.BlockEntry) (av.BlockEntry, error) {
	if curr.EOS() {
		return t.eos, nil
	}

	ce, ok := curr.(*BlockEntry)
	if !ok {
		return nil, fmt.Errorf("mkv: foreign block entry: %w", av.ErrInvalidArg)
	}
	if ce.track != t.number {
		return nil, fmt.Errorf("mkv: entry of track %d, want %d: %w", ce.track, t.number, av.ErrInvariant)
	}

	// the rest of curr's own cluster first
	for _, e := range ce.cluster.entries[ce.pos+1:] {
		if e.track == t.number {
			return e, nil
		}
	}

	scanned := ce.cluster.index + 1

	for {
		for ; scanned < len(t.seg.clusters); scanned++ {
			for _, e := range t.seg.clusters[scanned].entries {
				if e.track == t.number {
					return e, nil
				}
			}
		}

		if t.seg.Unparsed() <= 0 {
			return t.eos, nil
		}

		if err := t.seg.LoadNextCluster(); err != nil {
			return nil, err
		}
	}
}
