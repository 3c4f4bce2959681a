package scripting

import (
	"context"
	"testing"
	"time"

	"github.com/wudi/ocrkit/grounding"
	"github.com/wudi/ocrkit/render"
)

func TestExecute(t *testing.T) {
	e := NewEngine()
	val, err := e.Execute(context.Background(), "6 * 7")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if n, ok := val.(int64); !ok || n != 42 {
		t.Fatalf("Execute() = %v (%T), want 42", val, val)
	}
}

func TestExecuteCanceled(t *testing.T) {
	e := NewEngine()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := e.Execute(ctx, "while (true) {}")
	if err == nil {
		t.Fatalf("expected interruption of runaway script")
	}
}

func TestStyleHookOverrides(t *testing.T) {
	e := NewEngine()
	hook, err := e.StyleHook(context.Background(), `
		function style(annot) {
			if (annot.category === "table") {
				return {interactive: true, dimmed: false, copyText: "TABLE:" + annot.trailingText};
			}
			return {};
		}
	`)
	if err != nil {
		t.Fatalf("StyleHook() error = %v", err)
	}

	el := hook(render.Element{
		Annotation: grounding.Annotation{
			Label: "table", IsTypeLabel: true, Category: "table", TrailingText: "a|b",
		},
		Dimmed: true,
	})
	if !el.Interactive || el.Dimmed || el.CopyText != "TABLE:a|b" {
		t.Fatalf("overrides not applied: %+v", el)
	}

	// Unrelated categories come back unchanged.
	el = hook(render.Element{
		Annotation:  grounding.Annotation{Label: "Hi", Category: grounding.CategoryContent},
		Interactive: true,
		CopyText:    "Hi",
	})
	if !el.Interactive || el.CopyText != "Hi" {
		t.Fatalf("element without overrides changed: %+v", el)
	}
}

func TestStyleHookRequiresStyleFunction(t *testing.T) {
	e := NewEngine()
	if _, err := e.StyleHook(context.Background(), "var x = 1"); err == nil {
		t.Fatalf("expected error for script without style()")
	}
}
