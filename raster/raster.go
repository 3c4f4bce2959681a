// Package raster paints annotations onto a static snapshot image, the
// counterpart of the interactive overlay for saving or sharing results. It
// implements render.Painter on an RGBA surface: category-colored rectangle
// strokes, an optional label chip above each box, and dimmed or fallback
// treatments matching the overlay's visual language.
package raster

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/wudi/ocrkit/grounding"
	"github.com/wudi/ocrkit/render"
)

const labelSize = 12.0

var categoryColors = map[grounding.Category]color.RGBA{
	"title":         {R: 0xd6, G: 0x28, B: 0x28, A: 0xff},
	"sub_title":     {R: 0xe8, G: 0x6a, B: 0x17, A: 0xff},
	"text":          {R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	"table":         {R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	"image":         {R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	"image_caption": {R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	"figure":        {R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	"caption":       {R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	"formula":       {R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
	"list":          {R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
}

// fallbackColor is used for annotations outside the known category set.
var fallbackColor = color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}

var labelFace = sync.OnceValues(func() (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    labelSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
})

// Painter rasterizes annotations onto an RGBA snapshot.
type Painter struct {
	background  image.Image
	strokeWidth int
	labels      bool
	img         *image.RGBA
}

// Option configures a Painter.
type Option func(*Painter)

// WithBackground paints annotations over a copy of img, scaled to the target
// frame. Without it the snapshot starts white.
func WithBackground(img image.Image) Option {
	return func(p *Painter) { p.background = img }
}

// WithStrokeWidth sets the rectangle stroke width in pixels.
func WithStrokeWidth(w int) Option {
	return func(p *Painter) {
		if w > 0 {
			p.strokeWidth = w
		}
	}
}

// WithoutLabels disables the label chips.
func WithoutLabels() Option {
	return func(p *Painter) { p.labels = false }
}

// NewPainter creates a snapshot painter. Begin allocates the surface.
func NewPainter(opts ...Option) *Painter {
	p := &Painter{strokeWidth: 2, labels: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Begin allocates the target surface. Called once per run by the controller.
func (p *Painter) Begin(width, height float64) {
	rect := image.Rect(0, 0, int(math.Round(width)), int(math.Round(height)))
	p.img = image.NewRGBA(rect)
	if p.background != nil {
		xdraw.ApproxBiLinear.Scale(p.img, rect, p.background, p.background.Bounds(), xdraw.Src, nil)
		return
	}
	xdraw.Draw(p.img, rect, image.White, image.Point{}, xdraw.Src)
}

// Paint strokes one annotation rectangle and its label chip.
func (p *Painter) Paint(el render.Element) {
	if p.img == nil {
		return
	}
	c := categoryColors[el.Annotation.Category]
	if el.Fallback {
		c = fallbackColor
	}
	if el.Dimmed {
		c = dim(c)
	}
	b := el.Box.Canon()
	x1, y1 := int(math.Round(b.X1)), int(math.Round(b.Y1))
	x2, y2 := int(math.Round(b.X2)), int(math.Round(b.Y2))
	p.strokeRect(x1, y1, x2, y2, c)
	if p.labels && el.Annotation.IsTypeLabel {
		p.drawChip(el.Annotation.Label, x1, y1, c)
	}
}

// Image returns the backing surface, nil before Begin.
func (p *Painter) Image() *image.RGBA { return p.img }

// Scaled returns a copy of the snapshot resampled to the given size.
func (p *Painter) Scaled(width, height int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	if p.img != nil {
		xdraw.ApproxBiLinear.Scale(out, out.Bounds(), p.img, p.img.Bounds(), xdraw.Src, nil)
	}
	return out
}

// EncodePNG writes the snapshot as PNG.
func (p *Painter) EncodePNG(w io.Writer) error {
	img := p.img
	if img == nil {
		img = image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	return png.Encode(w, img)
}

// strokeRect draws the four edges of a rectangle. Drawing clips to the
// surface, so boxes mapped partly outside it are fine.
func (p *Painter) strokeRect(x1, y1, x2, y2 int, c color.RGBA) {
	src := image.NewUniform(c)
	w := p.strokeWidth
	edges := []image.Rectangle{
		image.Rect(x1, y1, x2, y1+w), // top
		image.Rect(x1, y2-w, x2, y2), // bottom
		image.Rect(x1, y1, x1+w, y2), // left
		image.Rect(x2-w, y1, x2, y2), // right
	}
	for _, e := range edges {
		xdraw.Draw(p.img, e, src, image.Point{}, xdraw.Over)
	}
	if x2-x1 < w || y2-y1 < w {
		// Degenerate box: a single filled sliver so it stays visible.
		xdraw.Draw(p.img, image.Rect(x1, y1, x1+w, y1+w), src, image.Point{}, xdraw.Over)
	}
}

// drawChip paints a small filled tag with the category name above the box
// corner, falling inside the box when there is no room above.
func (p *Painter) drawChip(label string, x, y int, c color.RGBA) {
	face, err := labelFace()
	if err != nil {
		return
	}
	const pad = 3
	w := int(math.Ceil(measureLabel(label, labelSize))) + 2*pad
	h := int(labelSize) + 2*pad
	top := y - h
	if top < 0 {
		top = y
	}
	xdraw.Draw(p.img, image.Rect(x, top, x+w, top+h), image.NewUniform(c), image.Point{}, xdraw.Over)
	d := font.Drawer{
		Dst:  p.img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(x+pad, top+h-pad-1),
	}
	d.DrawString(label)
}

// dim lightens a stroke color for type labels whose content is still
// streaming.
func dim(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8((int(c.R) + 2*0xff) / 3),
		G: uint8((int(c.G) + 2*0xff) / 3),
		B: uint8((int(c.B) + 2*0xff) / 3),
		A: 0xff,
	}
}
