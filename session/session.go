// Package session ties one processing run together: it receives stream
// snapshots from a polling transport, re-decodes them, and drives the
// incremental render controller. The decoder never sees timers; each tick
// delivers a complete string snapshot plus a completeness flag, which keeps
// the decode path a pure function even while the stream keeps growing.
package session

import (
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/wudi/ocrkit/grounding"
	"github.com/wudi/ocrkit/observability"
	"github.com/wudi/ocrkit/render"
)

// Snapshot is one observation of the backend's progress.
type Snapshot struct {
	// Stream is the full grounded token stream accumulated so far.
	Stream string
	// Complete asserts the backend has finished emitting. Note that if the
	// transport reports completion against a stale stream read, the last
	// annotation is finalized with whatever trailing text that read held;
	// the completion signal is trusted as delivered.
	Complete bool
}

// Session owns one result panel for one processing run.
type Session struct {
	ctrl          *render.Controller
	log           observability.Logger
	width, height float64

	lastDigest [blake2b.Size256]byte
	haveDigest bool
	skipped    int

	anns      []grounding.Annotation
	finalized bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger attaches a logger for run lifecycle events.
func WithLogger(log observability.Logger) Option {
	return func(s *Session) { s.log = log }
}

// New creates a session painting through ctrl onto a target of the given
// pixel dimensions. Dimensions may be zero until the image loads; ticks are
// no-ops until SetTarget provides them.
func New(ctrl *render.Controller, width, height float64, opts ...Option) *Session {
	s := &Session{ctrl: ctrl, log: observability.NopLogger{}, width: width, height: height}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetTarget records the target surface dimensions once the image is loaded.
func (s *Session) SetTarget(width, height float64) {
	s.width, s.height = width, height
}

// Tick processes one snapshot. Identical consecutive snapshots are skipped
// without decoding; a tick carrying the complete flag triggers the terminal
// full repaint so completion states settled by the stream closing are
// re-evaluated exactly once.
func (s *Session) Tick(snap Snapshot) {
	if s.finalized {
		return
	}
	digest := blake2b.Sum256([]byte(snap.Stream))
	if s.haveDigest && digest == s.lastDigest && !snap.Complete {
		s.skipped++
		s.log.Debug("tick skipped, stream unchanged",
			observability.Int(observability.MetricTicksSkipped, s.skipped))
		return
	}
	// Record the digest only once the controller has a frame to paint into;
	// otherwise an identical snapshot arriving after SetTarget would be
	// skipped and its annotations never painted.
	if s.width > 0 && s.height > 0 {
		s.lastDigest, s.haveDigest = digest, true
	}

	start := time.Now()
	s.anns = grounding.Decode(snap.Stream, snap.Complete)
	s.log.Debug("stream decoded",
		observability.Duration(observability.MetricDecodeTime, time.Since(start)),
		observability.Int(observability.MetricAnnotationCount, len(s.anns)),
		observability.Bool("complete", snap.Complete))

	if snap.Complete {
		if s.width > 0 && s.height > 0 {
			s.ctrl.RepaintAll(s.anns, s.width, s.height)
			s.finalized = true
			s.log.Info("run finalized",
				observability.Int(observability.MetricPaintedElements, s.ctrl.Rendered()))
		}
		return
	}
	s.ctrl.PaintNew(s.anns, s.width, s.height)
}

// Annotations returns the most recently decoded sequence.
func (s *Session) Annotations() []grounding.Annotation { return s.anns }

// PlainText returns the flattened plain-text view of the current sequence.
func (s *Session) PlainText() string { return grounding.PlainText(s.anns) }

// Finalized reports whether the terminal repaint has happened.
func (s *Session) Finalized() bool { return s.finalized }

// TicksSkipped returns how many unchanged snapshots were dropped.
func (s *Session) TicksSkipped() int { return s.skipped }

// Clear resets the session for the next image or processing run.
func (s *Session) Clear() {
	s.ctrl.Reset()
	s.haveDigest = false
	s.skipped = 0
	s.anns = nil
	s.finalized = false
}
