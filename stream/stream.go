// Package stream implements the per-track playback position engine: lazy
// cursor initialization, cue-assisted seeking, bounded stop windows and the
// forward-advance protocol that feeds a sample sink.
package stream

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/mo"
	"github.com/sirupsen/logrus"

	"github.com/mkvkit/mkvstream/av"
	"github.com/mkvkit/mkvstream/reftime"
)

var Debug bool

// SeekMode selects how a host position value is interpreted.
type SeekMode int

const (
	// SeekAbsolute interprets the value as an absolute external time.
	SeekAbsolute SeekMode = iota
	// SeekRelative adds the value to the relevant reference position.
	SeekRelative
	// SeekIncremental adds the value to the current position. Valid only
	// when setting a stop position.
	SeekIncremental
)

// State reports where the cursor is in its lifecycle.
type State int

const (
	// StateUninitialized means the first block has not been resolved yet.
	StateUninitialized State = iota
	// StatePositioned means the cursor sits on a real block.
	StatePositioned
	// StateAtEnd means the cursor reached its stop position or the end of
	// the stream. Advancing again keeps signaling end of stream.
	StateAtEnd
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StatePositioned:
		return "Positioned"
	case StateAtEnd:
		return "AtEnd"
	default:
		return "Unknown"
	}
}

// Stream owns the playback cursor of one track. It holds no locks: all
// mutation must come from a single owning goroutine.
type Stream struct {
	track av.Track

	// curr is the cursor: None until the first block is resolved lazily,
	// the track's EOS sentinel at the end, a real entry in between.
	curr mo.Option[av.BlockEntry]
	base mo.Option[av.Cluster]
	// stop None means play to the natural end of the stream.
	stop mo.Option[av.BlockEntry]

	discontinuity bool
}

func New(track av.Track) *Stream {
	s := &Stream{track: track}
	s.Reset()
	return s
}

// Reset returns the cursor to its initial state: position resolved lazily on
// first use, stop at the track's EOS sentinel, meaning play the whole stream.
func (s *Stream) Reset() {
	s.base = mo.None[av.Cluster]()
	s.curr = mo.None[av.BlockEntry]()
	s.stop = mo.Some(s.track.EOS())
	s.discontinuity = true
}

func (s *Stream) Track() av.Track { return s.track }

// Discontinuity reports whether the cursor jumped non-contiguously since the
// last delivered sample.
func (s *Stream) Discontinuity() bool { return s.discontinuity }

func (s *Stream) State() State {
	curr, ok := s.curr.Get()
	if !ok {
		return StateUninitialized
	}
	if curr.EOS() {
		return StateAtEnd
	}
	if stop, ok := s.stop.Get(); ok && curr == stop {
		return StateAtEnd
	}
	return StatePositioned
}

// ID returns the stream identifier, e.g. "Video001".
func (s *Stream) ID() string {
	return fmt.Sprintf("%s%03d", s.track.Type(), s.track.Number())
}

// Name returns a display name for the stream, preferring the track name,
// then the track number, then the codec identifier.
func (s *Stream) Name() string {
	t := s.track

	if name := cleanUTF8(t.Name()); name != "" {
		return name
	}

	if tn := t.Number(); tn > 0 {
		return fmt.Sprintf("Track%d", tn)
	}

	if id := cleanUTF8(t.CodecID()); id != "" {
		return id
	}

	return s.ID()
}

// cleanUTF8 drops invalid byte sequences from container-supplied strings.
func cleanUTF8(str string) string {
	return strings.ToValidUTF8(str, "")
}

// Duration returns the container's total duration in external ticks. It
// fails while a streaming container has not reported a duration yet.
func (s *Stream) Duration() (int64, error) {
	ns, err := s.track.Container().Duration()
	if err != nil {
		return 0, err
	}
	if ns < 0 {
		return 0, fmt.Errorf("stream: duration %d: %w", ns, av.ErrInvariant)
	}
	return reftime.ToTicks(ns), nil
}

// Available reports, in external ticks, how much playable data currently
// exists: the full duration once nothing remains to load, zero before any
// cluster arrived, otherwise the start time of the most recent cluster.
func (s *Stream) Available() (int64, error) {
	c := s.track.Container()

	if c.Unparsed() <= 0 {
		return s.Duration()
	}

	last, ok := c.LastCluster().Get()
	if !ok || last.EOS() {
		return 0, nil
	}

	return reftime.ToTicks(last.Time()), nil
}

// CurrentTime returns the cursor position in external ticks. An
// uninitialized cursor reads as zero; the track is assumed to start at t=0.
func (s *Stream) CurrentTime() (int64, error) {
	curr, ok := s.curr.Get()
	if !ok {
		return 0, nil
	}

	if curr.EOS() {
		return s.Duration()
	}

	// Not quite right for the B-frame case: presentation times do not
	// increase monotonically across reordered frames, so the reported
	// position can step backwards. Known limitation.
	return reftime.ToTicks(curr.Time()), nil
}

// StopTime returns the stop position in external ticks. An absent or EOS
// stop reads as the full duration.
func (s *Stream) StopTime() (int64, error) {
	stop, ok := s.stop.Get()
	if !ok || stop.EOS() {
		return s.Duration()
	}
	return reftime.ToTicks(stop.Time()), nil
}

// SeekTarget converts a host position request into the internal target time
// Seek consumes. Incremental addressing only applies to stop positions.
func (s *Stream) SeekTarget(pos int64, mode SeekMode) (time.Duration, error) {
	ns := reftime.ToDuration(pos)

	switch mode {
	case SeekAbsolute:
		return ns, nil

	case SeekRelative:
		curr, ok := s.curr.Get()
		if !ok {
			return ns, nil // relative to t=0
		}
		if curr.EOS() {
			d, err := s.track.Container().Duration()
			if err != nil {
				return 0, err
			}
			return d + ns, nil
		}
		return curr.Time() + ns, nil

	default:
		return 0, fmt.Errorf("stream: mode %d not valid for a current position: %w", mode, av.ErrInvalidArg)
	}
}

// SeekBase resolves target to its base cluster without moving the cursor.
// None means resolve lazily; the EOS cluster marks the end of the stream.
// Companion streams of the same container follow via SetCurrPosition.
func (s *Stream) SeekBase(target time.Duration, useCues bool) (mo.Option[av.Cluster], error) {
	c := s.track.Container()

	if c.ClusterCount() == 0 {
		if c.Unparsed() <= 0 {
			return mo.Some(c.EOSCluster()), nil
		}
		return mo.None[av.Cluster](), nil
	}

	if target <= 0 {
		return mo.None[av.Cluster](), nil
	}

	d, err := c.Duration()
	if err != nil {
		return mo.None[av.Cluster](), err
	}

	if target >= d {
		return mo.Some(c.EOSCluster()), nil
	}

	if entry, ok := s.resolve(target, useCues); ok {
		return mo.Some(entry.Cluster()), nil
	}

	return mo.None[av.Cluster](), nil
}

// Seek moves the cursor to target, an internal (nanosecond) time. A
// partially loaded container is never an error: the cursor resolves as far
// as the available data allows and defers the rest.
func (s *Stream) Seek(target time.Duration, useCues bool) error {
	c := s.track.Container()

	s.discontinuity = true

	if c.ClusterCount() == 0 {
		if c.Unparsed() <= 0 {
			s.base = mo.Some(c.EOSCluster())
			s.curr = mo.Some(s.track.EOS())
		} else {
			// no data yet, resolve lazily once clusters arrive
			s.base = mo.None[av.Cluster]()
			s.curr = mo.None[av.BlockEntry]()
		}
		return nil
	}

	if target <= 0 {
		// interpreted as t=0, resolved lazily
		s.base = mo.None[av.Cluster]()
		s.curr = mo.None[av.BlockEntry]()
		return nil
	}

	d, err := c.Duration()
	if err != nil {
		return err
	}

	if target >= d {
		s.base = mo.Some(c.EOSCluster())
		s.curr = mo.Some(s.track.EOS())
		return nil
	}

	entry, ok := s.resolve(target, useCues)
	if !ok {
		// target region not loaded yet
		s.base = mo.None[av.Cluster]()
		s.curr = mo.None[av.BlockEntry]()
		return nil
	}

	if entry.TrackNumber() != s.track.Number() {
		return fmt.Errorf("stream: resolved block of track %d, want %d: %w",
			entry.TrackNumber(), s.track.Number(), av.ErrInvariant)
	}

	s.curr = mo.Some(entry)
	s.base = mo.Some(entry.Cluster())

	if Debug {
		logrus.WithFields(logrus.Fields{
			"stream": s.ID(),
			"target": target,
			"time":   entry.Time(),
		}).Debug("seek resolved")
	}

	return nil
}

// resolve maps target to a block entry: exactly via the cue index when
// allowed and present, else via the container's coarse-then-exact scan.
func (s *Stream) resolve(target time.Duration, useCues bool) (av.BlockEntry, bool) {
	c := s.track.Container()

	if useCues {
		if cues, ok := c.Cues().Get(); ok {
			if cp, ok := cues.FindAtOrBefore(target, s.track).Get(); ok {
				if entry, ok := cues.Resolve(cp, s.track).Get(); ok {
					// an exact resolution, not an approximation
					return entry, true
				}
			}
			// no usable cue, fall through to the generic scan
		}
	}

	return c.Seek(target, s.track).Get()
}

// SetCurrPosition places the cursor at the track's entry within base. An
// absent base defers resolution to the first advance.
func (s *Stream) SetCurrPosition(base mo.Option[av.Cluster]) {
	if b, ok := base.Get(); ok {
		s.curr = b.Entry(s.track)
	} else {
		s.curr = mo.None[av.BlockEntry]()
	}

	s.base = base
	s.discontinuity = true
}

// SetStopPosition computes a new stop position from pos, expressed in
// external ticks, under the given addressing mode.
func (s *Stream) SetStopPosition(pos int64, mode SeekMode) error {
	c := s.track.Container()

	if c.ClusterCount() == 0 {
		s.stop = mo.Some(s.track.EOS()) // play to end
		return nil
	}

	var tCurr time.Duration // zero while the cursor is uninitialized

	if curr, ok := s.curr.Get(); ok {
		if curr.EOS() {
			s.stop = mo.Some(s.track.EOS())
			return nil
		}
		tCurr = curr.Time()
		if tCurr < 0 {
			return fmt.Errorf("stream: current time %s: %w", tCurr, av.ErrInvariant)
		}
	}

	d, err := c.Duration()
	if err != nil {
		return err
	}

	ns := reftime.ToDuration(pos)
	var tStop time.Duration

	switch mode {
	case SeekAbsolute:
		tStop = ns

	case SeekRelative:
		if stop, ok := s.stop.Get(); !ok || stop.EOS() {
			tStop = d + ns
		} else {
			tStop = stop.Time() + ns
		}

	case SeekIncremental:
		if pos <= 0 {
			s.stop = s.curr // zero-length window
			return nil
		}
		tStop = tCurr + ns

	default:
		return fmt.Errorf("stream: mode %d: %w", mode, av.ErrInvalidArg)
	}

	if tStop <= tCurr {
		s.stop = s.curr
		return nil
	}

	if tStop >= d {
		s.stop = mo.Some(s.track.EOS())
		return nil
	}

	stopCluster, ok := c.FindCluster(tStop).Get()
	if !ok {
		return fmt.Errorf("stream: no cluster at %s: %w", tStop, av.ErrInvariant)
	}

	currCluster, ok := s.base.Get()
	if !ok {
		currCluster, _ = c.FirstCluster().Get()
	}

	// never leave a zero-length window entirely inside the current cluster
	if stopCluster == currCluster {
		next, ok := c.NextCluster(stopCluster).Get()
		if !ok {
			s.stop = mo.Some(s.track.EOS())
			return nil
		}
		stopCluster = next
	}

	stop := stopCluster.Entry(s.track)

	if e, ok := stop.Get(); ok && !e.EOS() && e.Time() < tCurr {
		return fmt.Errorf("stream: stop %s before current %s: %w", e.Time(), tCurr, av.ErrInvariant)
	}

	s.stop = stop
	return nil
}

// SetStopPositionEOS sets the stop position to the end of the stream.
func (s *Stream) SetStopPositionEOS() {
	s.stop = mo.Some(s.track.EOS())
}

// Preload loads one more cluster from the container on the stream's behalf.
// Loading shared container state must be serialized by the caller when
// several streams read the same container.
func (s *Stream) Preload() error {
	return s.track.Container().LoadNextCluster()
}

// Advance resolves the next block entry and hands it to w. The cursor moves
// forward only when w accepts the sample; a rejected sample is reported as
// ErrSampleDiscarded with the cursor unchanged. av.ErrNeedMoreData is a
// back-pressure signal: requeue the same call once more data loaded.
func (s *Stream) Advance(w av.SampleWriter) error {
	if w == nil {
		return fmt.Errorf("stream: nil sample writer: %w", av.ErrInvalidArg)
	}

	curr, ok := s.curr.Get()
	if !ok {
		first, err := s.track.First()
		if err != nil {
			return err
		}

		curr = first
		s.curr = mo.Some(curr)
		s.base = s.track.Container().FirstCluster()
	}

	if stop, ok := s.stop.Get(); !ok {
		if curr.EOS() {
			return av.ErrEndOfStream
		}
	} else if curr == stop {
		return av.ErrEndOfStream
	}

	next, err := s.track.Next(curr)
	if err != nil {
		return err
	}

	if next.EOS() {
		s.curr = mo.Some(next)
		return av.ErrEndOfStream
	}

	if next.TrackNumber() != s.track.Number() {
		return fmt.Errorf("stream: next block of track %d, want %d: %w",
			next.TrackNumber(), s.track.Number(), av.ErrInvariant)
	}

	smp := av.Sample{
		TrackNumber:   next.TrackNumber(),
		Time:          next.Time(),
		Data:          next.Payload(),
		IsKeyFrame:    next.IsKeyFrame(),
		Discontinuity: s.discontinuity,
	}

	if err := w.WriteSample(smp); err != nil {
		if Debug {
			logrus.WithFields(logrus.Fields{
				"stream": s.ID(),
				"time":   smp.Time,
			}).WithError(err).Debug("sample discarded")
		}
		return fmt.Errorf("%w: %v", av.ErrSampleDiscarded, err)
	}

	s.curr = mo.Some(next)
	s.discontinuity = false

	return nil
}
