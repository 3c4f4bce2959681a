package session

import (
	"context"
	"time"

	"github.com/wudi/ocrkit/observability"
)

// Source produces stream snapshots, typically by probing the backend's
// progress endpoint. Implementations must return the full accumulated
// stream, not a delta.
type Source interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (Snapshot, error)

func (f SourceFunc) Snapshot(ctx context.Context) (Snapshot, error) { return f(ctx) }

// Poller drives a session from a source on a fixed interval. It always
// terminates: on the completed snapshot, on a source error, or on context
// cancellation — a run abandoned by the user must not leave a recurring
// timer probing a dead backend.
type Poller struct {
	source   Source
	session  *Session
	interval time.Duration
	log      observability.Logger
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithInterval sets the polling interval.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithPollLogger attaches a logger.
func WithPollLogger(log observability.Logger) PollerOption {
	return func(p *Poller) { p.log = log }
}

// NewPoller creates a poller feeding the given session.
func NewPoller(source Source, session *Session, opts ...PollerOption) *Poller {
	p := &Poller{
		source:   source,
		session:  session,
		interval: 250 * time.Millisecond,
		log:      observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls until the stream completes, the source fails, or ctx is
// cancelled. The first probe happens immediately; the interval applies
// between probes.
func (p *Poller) Run(ctx context.Context) error {
	start := time.Now()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		snap, err := p.source.Snapshot(ctx)
		if err != nil {
			p.log.Error("poll failed", observability.Error(err))
			return err
		}
		p.session.Tick(snap)
		if snap.Complete {
			p.log.Info("polling stopped, stream complete",
				observability.Duration(observability.MetricRunDuration, time.Since(start)))
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
