package grounding

import (
	"strconv"
	"strings"

	"github.com/wudi/ocrkit/coords"
)

// Category names a structural role assigned by the backend.
type Category string

// CategoryContent is assigned to annotations whose label is literal
// recognized text rather than a structural category name.
const CategoryContent Category = "content"

// Structural categories the backend is known to emit. The set is closed:
// membership is an exact byte comparison, so a label that collides with a
// category name in another case or script stays literal content.
var typeCategories = map[string]Category{
	"title":         "title",
	"sub_title":     "sub_title",
	"text":          "text",
	"table":         "table",
	"image":         "image",
	"image_caption": "image_caption",
	"figure":        "figure",
	"caption":       "caption",
	"formula":       "formula",
	"list":          "list",
}

// Annotation is one decoded bounding-box region together with its associated
// text and completion state.
type Annotation struct {
	// Label is the text between the ref tags.
	Label string
	// IsTypeLabel reports whether Label names a known structural category.
	IsTypeLabel bool
	// Category is Label for type labels and CategoryContent otherwise.
	Category Category
	// Box holds the model-space corners exactly as emitted. x1 < x2 and
	// y1 < y2 are not guaranteed.
	Box coords.Box
	// TrailingText is the stream text between this region and the next one,
	// or to end of stream for the last region.
	TrailingText string
	// IsFinal reports whether TrailingText can no longer change. The next
	// region's opening tag proves it for non-last annotations; the last
	// annotation is final only once the caller asserts the stream is
	// complete and trailing text has arrived.
	IsFinal bool
}

// Decode extracts the ordered annotation sequence from the current stream
// snapshot. complete asserts that the backend has finished emitting; it only
// influences the completion state of the last annotation.
//
// Decode never fails. A region whose coordinate text does not parse to
// exactly four numbers is dropped from this pass; a truncated region at the
// live edge of the stream is expected and simply not extracted yet.
func Decode(stream string, complete bool) []Annotation {
	matches := ExtractMatches(stream)
	if len(matches) == 0 {
		return nil
	}
	anns := make([]Annotation, 0, len(matches))
	for i, m := range matches {
		box, ok := parseBox(m.CoordsText)
		if !ok {
			continue
		}
		trailing := stream[m.End:]
		last := i == len(matches)-1
		if !last {
			trailing = stream[m.End:matches[i+1].Start]
		}
		category, isType := typeCategories[m.Label]
		if !isType {
			category = CategoryContent
		}
		anns = append(anns, Annotation{
			Label:        m.Label,
			IsTypeLabel:  isType,
			Category:     category,
			Box:          box,
			TrailingText: trailing,
			IsFinal:      trailing != "" && (!last || complete),
		})
	}
	return anns
}

// parseBox splits coordinate text on commas and keeps the numeric tokens.
// Exactly four must survive for the region to be usable.
func parseBox(text string) (coords.Box, bool) {
	var nums []float64
	for _, tok := range strings.Split(text, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil {
			continue
		}
		nums = append(nums, v)
	}
	if len(nums) != 4 {
		return coords.Box{}, false
	}
	return coords.Box{X1: nums[0], Y1: nums[1], X2: nums[2], Y2: nums[3]}, true
}

// PlainText flattens the annotation sequence into the plain-text extraction
// view: the labels of all non-type-label annotations, newline-joined.
func PlainText(anns []Annotation) string {
	var lines []string
	for _, a := range anns {
		if !a.IsTypeLabel {
			lines = append(lines, a.Label)
		}
	}
	return strings.Join(lines, "\n")
}
