package coords

import "testing"

func TestMapToPixelsBoundaries(t *testing.T) {
	got := MapToPixels(Box{X1: 0, Y1: 0, X2: 999, Y2: 999}, 800, 600)
	want := Box{X1: 0, Y1: 0, X2: 800, Y2: 600}
	if got != want {
		t.Fatalf("MapToPixels() = %+v, want %+v", got, want)
	}
}

func TestMapToPixelsLinear(t *testing.T) {
	got := MapToPixels(Box{X1: 499.5, Y1: 499.5, X2: 999, Y2: 999}, 999, 999)
	if got.X1 != 499.5 || got.Y1 != 499.5 {
		t.Fatalf("midpoint moved: %+v", got)
	}
}

func TestMapToPixelsNoClamping(t *testing.T) {
	got := MapToPixels(Box{X1: -999, Y1: 0, X2: 1998, Y2: 999}, 100, 100)
	if got.X1 != -100 {
		t.Fatalf("expected proportional scaling below zero, got X1=%v", got.X1)
	}
	if got.X2 != 200 {
		t.Fatalf("expected proportional scaling past the edge, got X2=%v", got.X2)
	}
}

func TestMapToPixelsDegenerate(t *testing.T) {
	b := Box{X1: 10, Y1: 10, X2: 10, Y2: 10}
	got := MapToPixels(b, 800, 600)
	if got.Width() != 0 || got.Height() != 0 {
		t.Fatalf("degenerate box grew: %+v", got)
	}
	if !got.IsDegenerate() {
		t.Fatalf("expected degenerate result")
	}
}

func TestCanon(t *testing.T) {
	got := Box{X1: 5, Y1: 7, X2: 1, Y2: 2}.Canon()
	want := Box{X1: 1, Y1: 2, X2: 5, Y2: 7}
	if got != want {
		t.Fatalf("Canon() = %+v, want %+v", got, want)
	}
}
