// Package render drives incremental painting of decoded annotations onto a
// target surface. One Controller owns one result panel: it remembers how many
// annotations have already been painted so that re-decoding the whole stream
// on every poll tick never repaints or duplicates earlier work.
package render

import (
	"github.com/wudi/ocrkit/coords"
	"github.com/wudi/ocrkit/grounding"
)

// Mode selects the interaction contract for a processing run. It is fixed
// for the lifetime of the run.
type Mode string

const (
	// ModePlainText treats content annotations as the interesting ones:
	// they are interactive and copy their recognized text.
	ModePlainText Mode = "plain-text"
	// ModeStructured treats type labels as the interesting ones: a finalized
	// type label is interactive and copies its trailing content.
	ModeStructured Mode = "structured"
	// ModeFreeForm paints purely decorative, non-interactive elements.
	ModeFreeForm Mode = "free-form"
)

// Element is one paint primitive handed to a Painter.
type Element struct {
	// Index is the annotation's position in the decoded sequence.
	Index int
	// Box is the annotation's bounding box in target pixel space.
	Box coords.Box
	// Annotation is the decoded source record.
	Annotation grounding.Annotation
	// Interactive marks the element as a copy affordance for the user.
	Interactive bool
	// CopyText is the payload copied when an interactive element is used.
	CopyText string
	// Dimmed marks a type label whose content is still streaming.
	Dimmed bool
	// Fallback marks an annotation outside the known category set, which
	// painters give a distinct visual treatment.
	Fallback bool
}

// Painter renders elements onto a concrete target. Begin is called exactly
// once per run, before the first Paint, to establish the coordinate frame;
// re-establishing it mid-run would visually reset the target.
type Painter interface {
	Begin(width, height float64)
	Paint(Element)
}

// StyleHook lets callers adjust an element after mode rules have been
// applied and before it reaches the painter. Scripting front-ends hang off
// this; the controller itself has no opinion about where the hook comes from.
type StyleHook func(Element) Element

type runState int

const (
	stateEmpty runState = iota
	stateStreaming
	stateFinalized
)

// Controller paints only newly decoded annotations on each call. The render
// cursor is monotonically non-decreasing within one run and is reset only by
// Reset, never decremented otherwise.
type Controller struct {
	painter  Painter
	mode     Mode
	hook     StyleHook
	rendered int
	state    runState
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithStyleHook installs a per-element style hook.
func WithStyleHook(hook StyleHook) ControllerOption {
	return func(c *Controller) { c.hook = hook }
}

// NewController creates a controller for one result panel.
func NewController(painter Painter, mode Mode, opts ...ControllerOption) *Controller {
	c := &Controller{painter: painter, mode: mode}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rendered returns the current render cursor.
func (c *Controller) Rendered() int { return c.rendered }

// PaintNew paints the annotations beyond the render cursor and advances it.
// It is a no-op when the target dimensions are unset or the sequence is
// empty, including while the panel is EMPTY.
func (c *Controller) PaintNew(anns []grounding.Annotation, width, height float64) {
	if width <= 0 || height <= 0 || len(anns) == 0 {
		return
	}
	if c.state == stateFinalized {
		return
	}
	if c.state == stateEmpty {
		c.painter.Begin(width, height)
		c.state = stateStreaming
	}
	if c.rendered > len(anns) {
		// The sequence can only shrink if the caller swapped streams without
		// clearing; painting nothing is the safe interpretation.
		return
	}
	for i := c.rendered; i < len(anns); i++ {
		c.painter.Paint(c.element(i, anns[i], width, height))
	}
	c.rendered = len(anns)
}

// RepaintAll is the terminal full-repaint path: once the caller holds the
// final complete stream, it rewinds the cursor and paints every annotation
// exactly once in its final form, so completion states that changed when the
// stream closed are re-evaluated. The panel then refuses further painting
// until Reset.
func (c *Controller) RepaintAll(anns []grounding.Annotation, width, height float64) {
	if width <= 0 || height <= 0 || len(anns) == 0 {
		return
	}
	if c.state == stateFinalized {
		return
	}
	if c.state == stateEmpty {
		c.painter.Begin(width, height)
	}
	c.rendered = 0
	for i, a := range anns {
		c.painter.Paint(c.element(i, a, width, height))
	}
	c.rendered = len(anns)
	c.state = stateFinalized
}

// Reset returns the panel to EMPTY for the next image or processing run.
func (c *Controller) Reset() {
	c.rendered = 0
	c.state = stateEmpty
}

func (c *Controller) element(index int, a grounding.Annotation, width, height float64) Element {
	el := Element{
		Index:      index,
		Box:        coords.MapToPixels(a.Box, width, height),
		Annotation: a,
		Fallback:   !a.IsTypeLabel,
	}
	switch c.mode {
	case ModePlainText:
		if !a.IsTypeLabel {
			el.Interactive = true
			el.CopyText = a.Label
		}
	case ModeStructured:
		if a.IsTypeLabel {
			if a.IsFinal && a.TrailingText != "" {
				el.Interactive = true
				el.CopyText = a.TrailingText
			} else {
				el.Dimmed = true
			}
		}
	}
	if c.hook != nil {
		el = c.hook(el)
	}
	return el
}
