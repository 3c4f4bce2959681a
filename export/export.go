// Package export turns a finished annotation sequence into consumer-facing
// documents: reconstructed markdown for the structured mode, HTML with MathML
// formulas for display, and the flattened plain-text view.
package export

import (
	"bytes"
	"strings"

	treeblood "github.com/wyatt915/goldmark-treeblood"
	"github.com/yuin/goldmark"

	"github.com/wudi/ocrkit/grounding"
)

// Markdown reconstructs the structured document from finalized annotations.
// In the structured mode the backend already emits markdown as the trailing
// content of each type label, so reconstruction is mostly concatenation;
// formula regions get display-math delimiters so HTML conversion renders
// them as MathML. Annotations whose content is still streaming are skipped.
func Markdown(anns []grounding.Annotation) string {
	var blocks []string
	for _, a := range anns {
		switch {
		case a.IsTypeLabel && a.IsFinal:
			content := strings.TrimSpace(a.TrailingText)
			if content == "" {
				continue
			}
			if a.Category == "formula" && !strings.HasPrefix(content, "$$") {
				content = "$$\n" + content + "\n$$"
			}
			blocks = append(blocks, content)
		case !a.IsTypeLabel:
			// Literal recognized text standing on its own becomes a paragraph.
			blocks = append(blocks, a.Label)
		}
	}
	return strings.Join(blocks, "\n\n")
}

// HTML converts reconstructed markdown to HTML. LaTeX formulas inside $$
// delimiters are converted to MathML.
func HTML(markdown string) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			treeblood.MathML(),
		),
	)
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PlainText is the plain-text extraction view of the sequence.
func PlainText(anns []grounding.Annotation) string {
	return grounding.PlainText(anns)
}
