package mkv

import (
	"sort"
	"time"

	"github.com/samber/mo"

	"github.com/mkvkit/mkvstream/av"
	"github.com/mkvkit/mkvstream/format/mkv/mkvio"
)

// cueTrackPosition locates one track's data for a cue point. Positions are
// byte offsets relative to the segment payload start.
type cueTrackPosition struct {
	track      int64
	clusterPos uint64
	block      uint64
}

// CuePoint is one random-access index entry.
type CuePoint struct {
	time      time.Duration
	positions []cueTrackPosition
}

func (p *CuePoint) Time() time.Duration { return p.time }

func (p *CuePoint) position(track int64) (cueTrackPosition, bool) {
	for _, tp := range p.positions {
		if tp.track == track {
			return tp, true
		}
	}
	return cueTrackPosition{}, false
}

// Cues is the segment's cue index. Points are kept sorted by time.
type Cues struct {
	seg    *Segment
	points []*CuePoint
}

// FindAtOrBefore returns the greatest cue point with time at or before t
// that carries a position for track.
func (cs *Cues) FindAtOrBefore(t time.Duration, track av.Track) mo.Option[av.CuePoint] {
	i := sort.Search(len(cs.points), func(i int) bool { return cs.points[i].time > t })

	for i--; i >= 0; i-- {
		if _, ok := cs.points[i].position(track.Number()); ok {
			return mo.Some[av.CuePoint](cs.points[i])
		}
	}

	return mo.None[av.CuePoint]()
}

// Resolve maps a cue point to the referenced entry of track within the
// loaded clusters. An unloaded target resolves to absent, not an error.
func (cs *Cues) Resolve(p av.CuePoint, track av.Track) mo.Option[av.BlockEntry] {
	cp, ok := p.(*CuePoint)
	if !ok {
		return mo.None[av.BlockEntry]()
	}

	tp, ok := cp.position(track.Number())
	if !ok {
		return mo.None[av.BlockEntry]()
	}

	cl, ok := cs.clusterAt(tp.clusterPos)
	if !ok {
		return mo.None[av.BlockEntry]()
	}

	if tp.block > 1 {
		nth := uint64(0)
		for _, e := range cl.entries {
			if e.track == track.Number() {
				if nth++; nth == tp.block {
					return mo.Some[av.BlockEntry](e)
				}
			}
		}
	}

	return cl.Entry(track)
}

// clusterAt finds the loaded cluster whose element starts at the given
// segment-relative offset.
func (cs *Cues) clusterAt(pos uint64) (*Cluster, bool) {
	abs := cs.seg.dataStart + int64(pos)
	for _, cl := range cs.seg.clusters {
		if cl.offset == abs {
			return cl, true
		}
	}
	return nil, false
}

func (s *Segment) parseCues(end int64) error {
	cues := &Cues{seg: s}

	for s.doc.Position() < end {
		el, err := s.doc.ParseElement()
		if err != nil {
			return err
		}

		if el.ElementRegister.ID != mkvio.ElementCuePoint.ID {
			if el.Type == mkvio.ElementTypeMaster {
				if err = s.doc.Skip(&el); err != nil {
					return err
				}
			}
			continue
		}

		cp := &CuePoint{}
		if err = s.parseCuePoint(cp, el.End()); err != nil {
			return err
		}
		cues.points = append(cues.points, cp)
	}

	sort.Slice(cues.points, func(i, j int) bool { return cues.points[i].time < cues.points[j].time })

	if len(cues.points) > 0 {
		s.cues = cues
	}

	return nil
}

func (s *Segment) parseCuePoint(cp *CuePoint, end int64) error {
	for s.doc.Position() < end {
		el, err := s.doc.ParseElement()
		if err != nil {
			return err
		}

		switch el.ElementRegister.ID {
		case mkvio.ElementCueTime.ID:
			cp.time = time.Duration(mkvio.UnmarshalUint(el.Content) * s.timecodeScale)

		case mkvio.ElementCueTrackPositions.ID:
			var tp cueTrackPosition
			if err = s.parseCueTrackPositions(&tp, el.End()); err != nil {
				return err
			}
			cp.positions = append(cp.positions, tp)

		default:
			if el.Type == mkvio.ElementTypeMaster {
				if err = s.doc.Skip(&el); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (s *Segment) parseCueTrackPositions(tp *cueTrackPosition, end int64) error {
	for s.doc.Position() < end {
		el, err := s.doc.ParseElement()
		if err != nil {
			return err
		}

		switch el.ElementRegister.ID {
		case mkvio.ElementCueTrack.ID:
			tp.track = int64(mkvio.UnmarshalUint(el.Content))
		case mkvio.ElementCueClusterPosition.ID:
			tp.clusterPos = mkvio.UnmarshalUint(el.Content)
		case mkvio.ElementCueBlockNumber.ID:
			tp.block = mkvio.UnmarshalUint(el.Content)
		default:
			if el.Type == mkvio.ElementTypeMaster {
				if err = s.doc.Skip(&el); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
