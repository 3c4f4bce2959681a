package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wudi/ocrkit/render"
)

type countingPainter struct {
	begins int
	paints []render.Element
}

func (p *countingPainter) Begin(width, height float64) { p.begins++ }
func (p *countingPainter) Paint(el render.Element)     { p.paints = append(p.paints, el) }

const region = "<|ref|>title<|/ref|><|det|>[[0, 0, 10, 10]]<|/det|>"

func newSession(p *countingPainter, mode render.Mode) *Session {
	return New(render.NewController(p, mode), 800, 600)
}

func TestTickPaintsIncrementally(t *testing.T) {
	p := &countingPainter{}
	s := newSession(p, render.ModePlainText)

	s.Tick(Snapshot{Stream: region + "Hello "})
	if len(p.paints) != 1 {
		t.Fatalf("painted %d after first tick, want 1", len(p.paints))
	}

	s.Tick(Snapshot{Stream: region + "Hello " + region + "World"})
	if len(p.paints) != 2 {
		t.Fatalf("painted %d after growth, want 2 (no repaint of the first)", len(p.paints))
	}
	if len(s.Annotations()) != 2 {
		t.Fatalf("decoded %d annotations, want 2", len(s.Annotations()))
	}
}

func TestTickSkipsUnchangedStream(t *testing.T) {
	p := &countingPainter{}
	s := newSession(p, render.ModePlainText)

	stream := region + "Hello"
	s.Tick(Snapshot{Stream: stream})
	s.Tick(Snapshot{Stream: stream})
	s.Tick(Snapshot{Stream: stream})
	if s.TicksSkipped() != 2 {
		t.Fatalf("TicksSkipped() = %d, want 2", s.TicksSkipped())
	}
	if len(p.paints) != 1 {
		t.Fatalf("painted %d, want 1", len(p.paints))
	}
}

func TestCompleteTickTriggersFullRepaint(t *testing.T) {
	p := &countingPainter{}
	s := newSession(p, render.ModeStructured)

	stream := region + "Hello"
	s.Tick(Snapshot{Stream: stream})
	if p.paints[0].Interactive {
		t.Fatalf("streaming annotation must not be interactive yet")
	}

	// Identical stream, but now complete: the dedup must not swallow it and
	// the full repaint must re-evaluate completion.
	s.Tick(Snapshot{Stream: stream, Complete: true})
	if !s.Finalized() {
		t.Fatalf("session not finalized")
	}
	last := p.paints[len(p.paints)-1]
	if !last.Interactive || last.CopyText != "Hello" {
		t.Fatalf("final repaint did not re-evaluate completion: %+v", last)
	}

	// Finalized sessions ignore further ticks.
	before := len(p.paints)
	s.Tick(Snapshot{Stream: stream + region})
	if len(p.paints) != before {
		t.Fatalf("tick after finalize painted")
	}
}

func TestClearStartsNewRun(t *testing.T) {
	p := &countingPainter{}
	s := newSession(p, render.ModePlainText)

	stream := region + "Hello"
	s.Tick(Snapshot{Stream: stream, Complete: true})
	s.Clear()

	if s.Finalized() || s.TicksSkipped() != 0 || s.Annotations() != nil {
		t.Fatalf("Clear left state behind")
	}
	s.Tick(Snapshot{Stream: stream})
	if p.begins != 2 {
		t.Fatalf("new run must re-establish the frame, begins=%d", p.begins)
	}
}

func TestTickWithoutTargetIsNoOp(t *testing.T) {
	p := &countingPainter{}
	s := New(render.NewController(p, render.ModePlainText), 0, 0)
	s.Tick(Snapshot{Stream: region + "x"})
	if len(p.paints) != 0 {
		t.Fatalf("tick without target dimensions painted")
	}
	s.SetTarget(800, 600)
	s.Tick(Snapshot{Stream: region + "x", Complete: true})
	if len(p.paints) != 1 {
		t.Fatalf("tick after SetTarget did not paint")
	}
}

func TestSetTargetRepaintsPendingStream(t *testing.T) {
	p := &countingPainter{}
	s := New(render.NewController(p, render.ModePlainText), 0, 0)

	// The stream arrives before the image reports its size; nothing can be
	// painted yet and the snapshot must not be remembered as handled.
	s.Tick(Snapshot{Stream: region + "x"})
	if len(p.paints) != 0 {
		t.Fatalf("tick without target dimensions painted")
	}

	s.SetTarget(800, 600)
	s.Tick(Snapshot{Stream: region + "x"})
	if len(p.paints) != 1 {
		t.Fatalf("painted %d elements after SetTarget, want 1", len(p.paints))
	}
	if s.TicksSkipped() != 0 {
		t.Fatalf("TicksSkipped() = %d, want 0", s.TicksSkipped())
	}
}

func TestPollerStopsOnComplete(t *testing.T) {
	p := &countingPainter{}
	s := newSession(p, render.ModePlainText)

	ticks := 0
	src := SourceFunc(func(ctx context.Context) (Snapshot, error) {
		ticks++
		return Snapshot{Stream: region + "Hello", Complete: ticks >= 3}, nil
	})

	poller := NewPoller(src, s, WithInterval(time.Millisecond))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := poller.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ticks != 3 {
		t.Fatalf("polled %d times, want 3", ticks)
	}
	if !s.Finalized() {
		t.Fatalf("session not finalized after complete snapshot")
	}
}

func TestPollerStopsOnError(t *testing.T) {
	p := &countingPainter{}
	s := newSession(p, render.ModePlainText)

	wantErr := errors.New("backend gone")
	src := SourceFunc(func(ctx context.Context) (Snapshot, error) {
		return Snapshot{}, wantErr
	})
	poller := NewPoller(src, s, WithInterval(time.Millisecond))
	if err := poller.Run(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("Run() error = %v, want %v", err, wantErr)
	}
}

func TestPollerStopsOnCancel(t *testing.T) {
	p := &countingPainter{}
	s := newSession(p, render.ModePlainText)

	src := SourceFunc(func(ctx context.Context) (Snapshot, error) {
		return Snapshot{Stream: region}, nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	poller := NewPoller(src, s, WithInterval(time.Millisecond))
	if err := poller.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}
