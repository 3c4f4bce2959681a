package scripting

import (
	"context"
	"errors"

	"github.com/dop251/goja"

	"github.com/wudi/ocrkit/render"
)

// GojaEngine implements Engine on a goja JavaScript runtime. A runtime is
// single-threaded; one engine serves one result panel, matching the
// cooperative scheduling of the decode/render cycle.
type GojaEngine struct {
	vm *goja.Runtime
}

// NewEngine creates a fresh JavaScript runtime.
func NewEngine() *GojaEngine {
	return &GojaEngine{vm: goja.New()}
}

// Execute runs a script, honoring context cancellation via runtime
// interruption.
func (e *GojaEngine) Execute(ctx context.Context, script string) (interface{}, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan struct{})
	defer close(done)
	defer e.vm.ClearInterrupt()

	go func() {
		select {
		case <-ctx.Done():
			e.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	val, err := e.vm.RunString(script)
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			if cause := interrupted.Unwrap(); cause != nil {
				return nil, cause
			}
			return nil, context.Canceled
		}
		return nil, err
	}
	return val.Export(), nil
}

// StyleHook compiles a user script into a render.StyleHook. The script must
// define a function style(annot); it receives the annotation's fields plus
// the mode-derived affordances and may return an object overriding
// interactive, dimmed, or copyText. A script error during painting leaves the
// element unchanged; user styling must never break rendering.
func (e *GojaEngine) StyleHook(ctx context.Context, script string) (render.StyleHook, error) {
	if _, err := e.Execute(ctx, script); err != nil {
		return nil, err
	}
	styleFn, ok := goja.AssertFunction(e.vm.Get("style"))
	if !ok {
		return nil, errors.New("script must define a style(annot) function")
	}
	return func(el render.Element) render.Element {
		obj := e.vm.NewObject()
		set := func(k string, v interface{}) { _ = obj.Set(k, v) }
		set("label", el.Annotation.Label)
		set("category", string(el.Annotation.Category))
		set("isTypeLabel", el.Annotation.IsTypeLabel)
		set("isFinal", el.Annotation.IsFinal)
		set("trailingText", el.Annotation.TrailingText)
		set("interactive", el.Interactive)
		set("dimmed", el.Dimmed)
		set("copyText", el.CopyText)

		res, err := styleFn(goja.Undefined(), obj)
		if err != nil {
			return el
		}
		overrides, ok := res.Export().(map[string]interface{})
		if !ok {
			return el
		}
		if v, ok := overrides["interactive"].(bool); ok {
			el.Interactive = v
		}
		if v, ok := overrides["dimmed"].(bool); ok {
			el.Dimmed = v
		}
		if v, ok := overrides["copyText"].(string); ok {
			el.CopyText = v
		}
		return el
	}, nil
}
