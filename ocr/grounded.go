package ocr

import (
	"fmt"
	"strings"

	"github.com/wudi/ocrkit/coords"
	"github.com/wudi/ocrkit/grounding"
)

// GroundedStream synthesizes a grounded token stream from recognized blocks.
// Pixel bounds are normalized into model space [0, 999] against the source
// image dimensions, so the synthesized stream is indistinguishable from one
// emitted by the remote backend and flows through the same decoder.
func GroundedStream(blocks []Block, imageWidth, imageHeight float64) string {
	if imageWidth <= 0 || imageHeight <= 0 {
		return ""
	}
	var sb strings.Builder
	for _, b := range blocks {
		text := strings.TrimSpace(b.Text)
		if text == "" {
			continue
		}
		sb.WriteString(grounding.RefOpen)
		sb.WriteString(text)
		sb.WriteString(grounding.RefClose)
		sb.WriteString(grounding.DetOpen)
		fmt.Fprintf(&sb, "[[%d, %d, %d, %d]]",
			toModel(b.Bounds.X, imageWidth),
			toModel(b.Bounds.Y, imageHeight),
			toModel(b.Bounds.X+b.Bounds.Width, imageWidth),
			toModel(b.Bounds.Y+b.Bounds.Height, imageHeight),
		)
		sb.WriteString(grounding.DetClose)
		sb.WriteString("\n")
	}
	return sb.String()
}

func toModel(v, extent float64) int {
	m := int(v / extent * coords.ModelMax)
	if m < 0 {
		m = 0
	}
	if m > coords.ModelMax {
		m = coords.ModelMax
	}
	return m
}
