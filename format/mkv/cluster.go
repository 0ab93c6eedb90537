package mkv

import (
	"time"

	"github.com/samber/mo"

	"github.com/mkvkit/mkvstream/av"
	"github.com/mkvkit/mkvstream/format/mkv/mkvio"
)

// Cluster is one loaded cluster, or the segment's EOS sentinel.
type Cluster struct {
	seg    *Segment
	eos    bool
	index  int
	offset int64

	timecode uint64
	entries  []*BlockEntry
}

func (c *Cluster) EOS() bool { return c.eos }

// Time is the cluster's base timestamp.
func (c *Cluster) Time() time.Duration {
	return time.Duration(c.timecode * c.seg.timecodeScale)
}

// Entry returns the first entry belonging to track within this cluster. On
// the EOS sentinel it returns the track's EOS entry.
func (c *Cluster) Entry(track av.Track) mo.Option[av.BlockEntry] {
	if c.eos {
		return mo.Some(track.EOS())
	}
	for _, e := range c.entries {
		if e.track == track.Number() {
			return mo.Some[av.BlockEntry](e)
		}
	}
	return mo.None[av.BlockEntry]()
}

func (c *Cluster) addBlock(content []byte, simple bool) error {
	track, timecode, flags, n, err := mkvio.ParseBlockHeader(content)
	if err != nil {
		return err
	}

	key := false
	if simple {
		key = flags&mkvio.BlockFlagKeyframe != 0
	}

	// laced frames are delivered as one payload, first-frame timing
	c.entries = append(c.entries, &BlockEntry{
		cluster: c,
		pos:     len(c.entries),
		track:   track,
		rel:     timecode,
		key:     key,
		data:    content[n:],
	})

	return nil
}

// BlockEntry is one block of one track, or a track's EOS sentinel.
type BlockEntry struct {
	cluster *Cluster
	pos     int
	track   int64
	rel     int16
	key     bool
	data    []byte
	eos     bool
}

func (e *BlockEntry) EOS() bool          { return e.eos }
func (e *BlockEntry) TrackNumber() int64 { return e.track }

// Time resolves the block's absolute time from its cluster base and the
// signed relative timecode.
func (e *BlockEntry) Time() time.Duration {
	return e.cluster.Time() + time.Duration(int64(e.rel)*int64(e.cluster.seg.timecodeScale))
}

func (e *BlockEntry) Cluster() av.Cluster { return e.cluster }
func (e *BlockEntry) Payload() []byte     { return e.data }
func (e *BlockEntry) IsKeyFrame() bool    { return e.key }
