// Package scripting lets desktop users customize annotation presentation
// with small JavaScript snippets, e.g. highlighting every table or rewriting
// copy payloads. The render package stays unaware of JavaScript: scripts are
// compiled here into plain render.StyleHook functions.
package scripting

import (
	"context"
)

// Engine represents a scripting engine.
type Engine interface {
	// Execute runs a script and returns its exported result.
	Execute(ctx context.Context, script string) (interface{}, error)
}
