// Package overlay renders annotations as an interactive SVG overlay sized to
// the displayed image. The overlay is built as an element tree and grows
// strictly by appending: elements emitted on earlier ticks are never touched
// again, which keeps the incremental paint contract visible in the output.
package overlay

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/wudi/ocrkit/render"
)

// Painter implements render.Painter as an SVG node tree.
type Painter struct {
	root  *html.Node
	count int
}

// NewPainter creates an empty overlay painter. The SVG root is created by
// Begin, once the target's coordinate frame is known.
func NewPainter() *Painter { return &Painter{} }

// Begin establishes the SVG viewport. The render controller guarantees it is
// called once per run.
func (p *Painter) Begin(width, height float64) {
	p.root = &html.Node{
		Type: html.ElementNode,
		Data: "svg",
		Attr: []html.Attribute{
			{Key: "xmlns", Val: "http://www.w3.org/2000/svg"},
			{Key: "viewBox", Val: fmt.Sprintf("0 0 %g %g", width, height)},
			{Key: "class", Val: "ocr-overlay"},
		},
	}
	p.count = 0
}

// Paint appends one annotation rectangle to the overlay.
func (p *Painter) Paint(el render.Element) {
	if p.root == nil {
		return
	}
	b := el.Box.Canon()
	rect := &html.Node{
		Type: html.ElementNode,
		Data: "rect",
		Attr: []html.Attribute{
			{Key: "x", Val: fmt.Sprintf("%g", b.X1)},
			{Key: "y", Val: fmt.Sprintf("%g", b.Y1)},
			{Key: "width", Val: fmt.Sprintf("%g", b.Width())},
			{Key: "height", Val: fmt.Sprintf("%g", b.Height())},
			{Key: "class", Val: elementClass(el)},
		},
	}
	if el.Interactive {
		rect.Attr = append(rect.Attr,
			html.Attribute{Key: "data-copy", Val: el.CopyText},
			html.Attribute{Key: "tabindex", Val: "0"},
		)
	}
	title := &html.Node{Type: html.ElementNode, Data: "title"}
	title.AppendChild(&html.Node{Type: html.TextNode, Data: el.Annotation.Label})
	rect.AppendChild(title)
	p.root.AppendChild(rect)
	p.count++
}

// Count returns the number of painted elements.
func (p *Painter) Count() int { return p.count }

// Render serializes the overlay. An overlay that was never begun writes
// nothing.
func (p *Painter) Render(w io.Writer) error {
	if p.root == nil {
		return nil
	}
	return html.Render(w, p.root)
}

func elementClass(el render.Element) string {
	classes := []string{"annot", "annot-" + string(el.Annotation.Category)}
	if el.Interactive {
		classes = append(classes, "interactive")
	}
	if el.Dimmed {
		classes = append(classes, "dimmed")
	}
	if el.Fallback {
		classes = append(classes, "fallback")
	}
	return strings.Join(classes, " ")
}
