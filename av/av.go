// Package av defines the types shared between the position/seek engine and
// the container implementations that feed it.
package av

import (
	"errors"
	"time"

	"github.com/samber/mo"
)

var (
	// ErrInvalidArg reports a caller error. Nothing has been mutated.
	ErrInvalidArg = errors.New("av: invalid argument")

	// ErrNeedMoreData means the container has not been loaded far enough to
	// answer. It is transient: retry the same call once more bytes arrived.
	ErrNeedMoreData = errors.New("av: need more data")

	// ErrEndOfStream is the normal terminal signal, not a failure.
	ErrEndOfStream = errors.New("av: end of stream")

	// ErrSampleDiscarded means the delivery sink rejected the sample and the
	// cursor did not advance.
	ErrSampleDiscarded = errors.New("av: sample discarded")

	// ErrInvariant marks a logic defect (wrong-track block, negative
	// duration, stop computed before current). Not recoverable by retry.
	ErrInvariant = errors.New("av: invariant violation")

	// ErrNoDuration means the container has not reported a duration yet.
	ErrNoDuration = errors.New("av: duration not known yet")
)

type TrackType int

const (
	TrackUnknown TrackType = iota
	TrackVideo
	TrackAudio
	TrackSubtitle
)

func (t TrackType) String() string {
	switch t {
	case TrackVideo:
		return "Video"
	case TrackAudio:
		return "Audio"
	case TrackSubtitle:
		return "Subtitle"
	default:
		return "Track"
	}
}

// BlockEntry is the smallest addressable unit of one track, or the track's
// EOS sentinel. Payload and timing accessors are undefined on the sentinel.
type BlockEntry interface {
	EOS() bool
	TrackNumber() int64
	// Time is the absolute block time: cluster base plus relative timecode.
	Time() time.Duration
	Cluster() Cluster
	Payload() []byte
	IsKeyFrame() bool
}

// Cluster is a contiguous group of timestamped blocks sharing a base time.
type Cluster interface {
	EOS() bool
	Time() time.Duration
	// Entry returns the first entry belonging to track within this cluster.
	// On the EOS cluster it returns the track's EOS sentinel.
	Entry(track Track) mo.Option[BlockEntry]
}

// CuePoint is one random-access index entry.
type CuePoint interface {
	Time() time.Duration
}

// CueIndex maps times to block locations for sub-linear seeking.
type CueIndex interface {
	FindAtOrBefore(t time.Duration, track Track) mo.Option[CuePoint]
	Resolve(p CuePoint, track Track) mo.Option[BlockEntry]
}

// Track is one logical elementary stream inside a container.
type Track interface {
	Number() int64
	Type() TrackType
	Name() string
	CodecID() string

	// EOS returns this track's unique terminal sentinel. It is never nil
	// and never equal to another track's sentinel.
	EOS() BlockEntry

	// First returns the first entry of this track, loading clusters on
	// demand. A ErrNeedMoreData result is transient.
	First() (BlockEntry, error)

	// Next returns the entry following curr, loading clusters on demand.
	// At the true end of the stream it returns the EOS sentinel.
	Next(curr BlockEntry) (BlockEntry, error)

	Container() Container
}

// Container is the cluster-partitioned media container, possibly still
// growing while it is being read.
type Container interface {
	// Duration is the total scaled duration in nanoseconds. It fails with
	// ErrNoDuration until the container has reported one.
	Duration() (time.Duration, error)

	Tracks() []Track

	ClusterCount() int
	FirstCluster() mo.Option[Cluster]
	LastCluster() mo.Option[Cluster]
	NextCluster(c Cluster) mo.Option[Cluster]

	// EOSCluster returns the container's terminal cluster sentinel. Its
	// Entry method yields each track's EOS sentinel.
	EOSCluster() Cluster

	// Unparsed reports how many bytes remain to be loaded, zero once the
	// whole container has been consumed.
	Unparsed() int64

	// LoadNextCluster loads one more cluster. ErrNeedMoreData means the
	// source has not grown far enough yet; any other error is fatal.
	LoadNextCluster() error

	// FindCluster returns the loaded cluster with the greatest start time
	// at or before t.
	FindCluster(t time.Duration) mo.Option[Cluster]

	// Seek is the generic cueless resolution: the track's entry at or
	// after t within the cluster found by FindCluster.
	Seek(t time.Duration, track Track) mo.Option[BlockEntry]

	Cues() mo.Option[CueIndex]
}

// Sample is one delivered payload unit with its timing metadata.
type Sample struct {
	TrackNumber   int64
	Time          time.Duration
	Data          []byte
	IsKeyFrame    bool
	Discontinuity bool
}

// SampleWriter is the delivery collaborator. The writer owns whatever output
// buffer it fills; the engine never allocates or retains it.
type SampleWriter interface {
	WriteSample(s Sample) error
}
