package ocr

import (
	"testing"

	"github.com/wudi/ocrkit/coords"
	"github.com/wudi/ocrkit/grounding"
)

func TestGroundedStreamRoundTrips(t *testing.T) {
	blocks := []Block{
		{Text: "Hello world", Bounds: Region{X: 0, Y: 0, Width: 400, Height: 50}},
		{Text: "Second block", Bounds: Region{X: 100, Y: 300, Width: 200, Height: 40}},
	}
	stream := GroundedStream(blocks, 800, 600)

	anns := grounding.Decode(stream, true)
	if len(anns) != 2 {
		t.Fatalf("decoded %d annotations, want 2", len(anns))
	}
	if anns[0].Label != "Hello world" || anns[0].IsTypeLabel {
		t.Fatalf("unexpected first annotation: %+v", anns[0])
	}
	// 400/800 of the width is 499 in model space (integer truncation).
	if anns[0].Box != (coords.Box{X1: 0, Y1: 0, X2: 499, Y2: 83}) {
		t.Fatalf("unexpected box: %+v", anns[0].Box)
	}
	if !anns[0].IsFinal {
		t.Fatalf("block separated by a following region must be final")
	}
}

func TestGroundedStreamSkipsEmptyBlocks(t *testing.T) {
	stream := GroundedStream([]Block{{Text: "  \n"}}, 100, 100)
	if stream != "" {
		t.Fatalf("empty block must produce no region, got %q", stream)
	}
}

func TestGroundedStreamClampsToModelSpace(t *testing.T) {
	blocks := []Block{{Text: "x", Bounds: Region{X: -10, Y: 0, Width: 300, Height: 300}}}
	anns := grounding.Decode(GroundedStream(blocks, 200, 200), true)
	if len(anns) != 1 {
		t.Fatalf("decoded %d annotations, want 1", len(anns))
	}
	b := anns[0].Box
	if b.X1 < 0 || b.X2 > coords.ModelMax || b.Y2 > coords.ModelMax {
		t.Fatalf("coordinates escaped model space: %+v", b)
	}
}

func TestGroundedStreamNoDimensions(t *testing.T) {
	if got := GroundedStream([]Block{{Text: "x"}}, 0, 0); got != "" {
		t.Fatalf("expected empty stream without image dimensions, got %q", got)
	}
}
