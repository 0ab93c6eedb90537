// Package mkv implements the container side of the engine over
// Matroska/WebM byte streams: incremental cluster loading, track traversal
// and the cue index.
package mkv

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"

	"github.com/mkvkit/mkvstream/av"
	"github.com/mkvkit/mkvstream/format/mkv/mkvio"
)

var Debug bool

const defaultTimecodeScale = 1000000 // ns per timecode unit

// Segment is one Matroska segment, loaded cluster by cluster. It implements
// av.Container. Loading mutates shared state: when several streams read the
// same segment the caller serializes access.
type Segment struct {
	doc  *mkvio.Document
	size int64

	timecodeScale uint64
	duration      time.Duration
	hasDuration   bool
	title         string

	tracks   []*Track
	clusters []*Cluster
	cues     *Cues
	eos      *Cluster

	// dataStart is the offset of the segment payload; cue positions are
	// relative to it.
	dataStart int64
	complete  bool
}

// NewSegment parses the segment headers (EBML header, Info, Tracks and any
// cue index stored ahead of the media) and stops at the first cluster. The
// declared size may exceed what r currently holds; clusters load on demand.
func NewSegment(r io.ReadSeeker, size int64) (*Segment, error) {
	s := &Segment{
		doc:           mkvio.InitDocument(r),
		size:          size,
		timecodeScale: defaultTimecodeScale,
	}
	s.eos = &Cluster{seg: s, eos: true}

	if err := s.parseHeaders(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Segment) parseHeaders() error {
	for {
		el, err := s.doc.ParseElement()
		if err == io.EOF {
			// a headers-only stream; complete if the size agrees
			s.complete = s.Unparsed() <= 0
			return nil
		}
		if err != nil {
			return fmt.Errorf("mkv: segment headers: %w", err)
		}

		switch el.ElementRegister.ID {
		case mkvio.ElementEBML.ID:
			if err = s.doc.Skip(&el); err != nil {
				return err
			}

		case mkvio.ElementSegment.ID:
			s.dataStart = el.DataOffset
			// descend

		case mkvio.ElementInfo.ID:
			if err = s.parseInfo(el.End()); err != nil {
				return err
			}

		case mkvio.ElementTracks.ID:
			if err = s.parseTracks(el.End()); err != nil {
				return err
			}

		case mkvio.ElementCues.ID:
			if err = s.parseCues(el.End()); err != nil {
				return err
			}

		case mkvio.ElementCluster.ID:
			// media starts here; rewind so LoadNextCluster sees it
			return s.doc.SeekTo(el.Offset)

		default:
			if el.Type == mkvio.ElementTypeMaster {
				if err = s.doc.Skip(&el); err != nil {
					return err
				}
			}
		}
	}
}

func (s *Segment) parseInfo(end int64) error {
	var rawDuration float64
	var hasRaw bool

	for s.doc.Position() < end {
		el, err := s.doc.ParseElement()
		if err != nil {
			return err
		}

		switch el.ElementRegister.ID {
		case mkvio.ElementTimecodeScale.ID:
			s.timecodeScale = mkvio.UnmarshalUint(el.Content)
		case mkvio.ElementDuration.ID:
			rawDuration = mkvio.UnmarshalFloat(el.Content)
			hasRaw = true
		case mkvio.ElementTitle.ID:
			s.title = string(el.Content)
		default:
			if el.Type == mkvio.ElementTypeMaster {
				if err = s.doc.Skip(&el); err != nil {
					return err
				}
			}
		}
	}

	// Duration is expressed in timecode units, scale may precede or follow
	if hasRaw {
		s.duration = time.Duration(rawDuration * float64(s.timecodeScale))
		s.hasDuration = true
	}

	return nil
}

func (s *Segment) parseTracks(end int64) error {
	for s.doc.Position() < end {
		el, err := s.doc.ParseElement()
		if err != nil {
			return err
		}

		if el.ElementRegister.ID != mkvio.ElementTrackEntry.ID {
			if el.Type == mkvio.ElementTypeMaster {
				if err = s.doc.Skip(&el); err != nil {
					return err
				}
			}
			continue
		}

		track := &Track{seg: s}
		if err = s.parseTrackEntry(track, el.End()); err != nil {
			return err
		}
		track.eos = &BlockEntry{eos: true, track: track.number}
		s.tracks = append(s.tracks, track)
	}

	return nil
}

func (s *Segment) parseTrackEntry(track *Track, end int64) error {
	for s.doc.Position() < end {
		el, err := s.doc.ParseElement()
		if err != nil {
			return err
		}

		switch el.ElementRegister.ID {
		case mkvio.ElementTrackNumber.ID:
			track.number = int64(mkvio.UnmarshalUint(el.Content))
		case mkvio.ElementTrackUID.ID:
			track.uid = mkvio.UnmarshalUint(el.Content)
		case mkvio.ElementTrackType.ID:
			track.typ = trackType(mkvio.UnmarshalUint(el.Content))
		case mkvio.ElementName.ID:
			track.name = string(el.Content)
		case mkvio.ElementCodecID.ID:
			track.codecID = string(el.Content)
		case mkvio.ElementCodecName.ID:
			track.codecName = string(el.Content)
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

func trackType(v uint64) av.TrackType {
	switch v {
	case 1:
		return av.TrackVideo
	case 2:
		return av.TrackAudio
	case 0x11:
		return av.TrackSubtitle
	default:
		return av.TrackUnknown
	}
}

// Tracks returns the segment's track list in declaration order.
func (s *Segment) Tracks() []av.Track {
	return lo.Map(s.tracks, func(t *Track, _ int) av.Track { return t })
}

// TrackByNumber returns the track with the given Matroska track number.
func (s *Segment) TrackByNumber(num int64) mo.Option[av.Track] {
	t, ok := lo.Find(s.tracks, func(t *Track) bool { return t.number == num })
	if !ok {
		return mo.None[av.Track]()
	}
	return mo.Some[av.Track](t)
}

func (s *Segment) Title() string { return s.title }

func (s *Segment) Duration() (time.Duration, error) {
	if !s.hasDuration {
		return 0, av.ErrNoDuration
	}
	if s.duration < 0 {
		return 0, fmt.Errorf("mkv: duration %d: %w", s.duration, av.ErrInvariant)
	}
	return s.duration, nil
}

func (s *Segment) ClusterCount() int { return len(s.clusters) }

func (s *Segment) FirstCluster() mo.Option[av.Cluster] {
	if len(s.clusters) == 0 {
		return mo.None[av.Cluster]()
	}
	return mo.Some[av.Cluster](s.clusters[0])
}

func (s *Segment) LastCluster() mo.Option[av.Cluster] {
	if len(s.clusters) == 0 {
		return mo.None[av.Cluster]()
	}
	return mo.Some[av.Cluster](s.clusters[len(s.clusters)-1])
}

func (s *Segment) NextCluster(c av.Cluster) mo.Option[av.Cluster] {
	cl, ok := c.(*Cluster)
	if !ok || cl.eos {
		return mo.None[av.Cluster]()
	}
	if i := cl.index + 1; i < len(s.clusters) {
		return mo.Some[av.Cluster](s.clusters[i])
	}
	return mo.None[av.Cluster]()
}

func (s *Segment) EOSCluster() av.Cluster { return s.eos }

func (s *Segment) Unparsed() int64 {
	if s.complete {
		return 0
	}
	if rem := s.size - s.doc.Position(); rem > 0 {
		return rem
	}
	return 0
}

// LoadNextCluster consumes elements until one whole cluster has been added.
// When the source ends before the declared size, the cursor rewinds to the
// element boundary and av.ErrNeedMoreData asks the caller to retry later.
func (s *Segment) LoadNextCluster() error {
	for {
		if s.complete || s.Unparsed() <= 0 {
			return nil
		}

		start := s.doc.Position()

		el, err := s.doc.ParseElement()
		if err != nil {
			return s.underflow(start, err)
		}

		switch el.ElementRegister.ID {
		case mkvio.ElementCluster.ID:
			if err = s.parseCluster(&el); err != nil {
				return s.underflow(start, err)
			}
			return nil

		case mkvio.ElementCues.ID:
			// a cue index stored behind the media
			if err = s.parseCues(el.End()); err != nil {
				return s.underflow(start, err)
			}

		default:
			if el.Type == mkvio.ElementTypeMaster {
				if err = s.doc.Skip(&el); err != nil {
					return s.underflow(start, err)
				}
			}
		}
	}
}

// underflow rewinds to the boundary at start and classifies err: an EOF with
// bytes still expected is transient back-pressure, anything else is fatal.
func (s *Segment) underflow(start int64, err error) error {
	if seekErr := s.doc.SeekTo(start); seekErr != nil {
		return seekErr
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		if s.Unparsed() > 0 {
			return av.ErrNeedMoreData
		}
		s.complete = true
		return nil
	}

	return err
}

func (s *Segment) parseCluster(el *mkvio.Element) error {
	cl := &Cluster{seg: s, index: len(s.clusters), offset: el.Offset}

	end := int64(-1)
	if !el.SizeUnknown {
		end = el.End()
	}

	for {
		if end >= 0 && s.doc.Position() >= end {
			break
		}

		che, err := s.doc.ParseElement()
		if err == io.EOF && end < 0 {
			break // unknown-size cluster runs to the end of the stream
		}
		if err != nil {
			return err
		}

		switch che.ElementRegister.ID {
		case mkvio.ElementTimecode.ID:
			cl.timecode = mkvio.UnmarshalUint(che.Content)

		case mkvio.ElementSimpleBlock.ID:
			if err = cl.addBlock(che.Content, true); err != nil {
				return err
			}

		case mkvio.ElementBlockGroup.ID:
			if err = s.parseBlockGroup(cl, che.End()); err != nil {
				return err
			}

		case mkvio.ElementCluster.ID, mkvio.ElementCues.ID:
			// unknown-size cluster terminated by the next top level element
			if err = s.doc.SeekTo(che.Offset); err != nil {
				return err
			}
			goto done

		default:
			if che.Type == mkvio.ElementTypeMaster {
				if err = s.doc.Skip(&che); err != nil {
					return err
				}
			}
		}
	}

done:
	s.clusters = append(s.clusters, cl)

	if Debug {
		logrus.WithFields(logrus.Fields{
			"cluster": cl.index,
			"time":    cl.Time(),
			"blocks":  len(cl.entries),
		}).Debug("cluster loaded")
	}

	return nil
}

func (s *Segment) parseBlockGroup(cl *Cluster, end int64) error {
	for s.doc.Position() < end {
		el, err := s.doc.ParseElement()
		if err != nil {
			return err
		}

		switch el.ElementRegister.ID {
		case mkvio.ElementBlock.ID:
			// keyframe state is unknowable without reference tracking
			if err = cl.addBlock(el.Content, false); err != nil {
				return err
			}
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

// FindCluster returns the loaded cluster with the greatest start time at or
// before t.
func (s *Segment) FindCluster(t time.Duration) mo.Option[av.Cluster] {
	n := len(s.clusters)
	if n == 0 || s.clusters[0].Time() > t {
		return mo.None[av.Cluster]()
	}

	i := sort.Search(n, func(i int) bool { return s.clusters[i].Time() > t })
	return mo.Some[av.Cluster](s.clusters[i-1])
}

// Seek is the generic cueless resolution: the coarse cluster lookup followed
// by an exact in-cluster scan for the track's entry at or after t.
func (s *Segment) Seek(t time.Duration, track av.Track) mo.Option[av.BlockEntry] {
	c, ok := s.FindCluster(t).Get()
	if !ok {
		return mo.None[av.BlockEntry]()
	}

	cl := c.(*Cluster)
	for _, e := range cl.entries {
		if e.track == track.Number() && e.Time() >= t {
			return mo.Some[av.BlockEntry](e)
		}
	}

	return cl.Entry(track)
}

func (s *Segment) Cues() mo.Option[av.CueIndex] {
	if s.cues == nil {
		return mo.None[av.CueIndex]()
	}
	return mo.Some[av.CueIndex](s.cues)
}
