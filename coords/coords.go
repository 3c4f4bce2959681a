// Package coords maps model-space bounding boxes onto pixel surfaces.
//
// Grounded OCR backends emit box corners normalized into the closed range
// [0, 999] regardless of the input image size. Render targets work in pixels,
// so every box crosses this package exactly once on its way to a painter.
package coords

// ModelMax is the far edge of the normalized model-space coordinate system.
const ModelMax = 999.0

// Box is an axis-aligned rectangle given by two corners. The source does not
// guarantee X1 < X2 or Y1 < Y2; degenerate and inverted boxes are legal and
// must survive mapping untouched.
type Box struct {
	X1, Y1, X2, Y2 float64
}

// Width returns X2 - X1. It may be zero or negative for degenerate boxes.
func (b Box) Width() float64 { return b.X2 - b.X1 }

// Height returns Y2 - Y1. It may be zero or negative for degenerate boxes.
func (b Box) Height() float64 { return b.Y2 - b.Y1 }

// IsDegenerate reports whether the box encloses no area.
func (b Box) IsDegenerate() bool { return b.X2 <= b.X1 || b.Y2 <= b.Y1 }

// Canon returns the box with corners reordered so X1 <= X2 and Y1 <= Y2.
// Rasterizers need ordered corners; decoding never calls this, because a
// decoded annotation must carry the corners exactly as emitted.
func (b Box) Canon() Box {
	if b.X1 > b.X2 {
		b.X1, b.X2 = b.X2, b.X1
	}
	if b.Y1 > b.Y2 {
		b.Y1, b.Y2 = b.Y2, b.Y1
	}
	return b
}

// MapToPixels scales a model-space box onto a target surface by independent
// linear scaling of each axis. A coordinate of ModelMax lands exactly on the
// far edge of the target. Values outside [0, ModelMax] are not rejected; they
// scale proportionally like any other value.
func MapToPixels(b Box, width, height float64) Box {
	return Box{
		X1: b.X1 / ModelMax * width,
		Y1: b.Y1 / ModelMax * height,
		X2: b.X2 / ModelMax * width,
		Y2: b.Y2 / ModelMax * height,
	}
}
