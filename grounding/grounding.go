package grounding

import (
	"regexp"
	"strings"
)

// Stream tag markers as emitted by the backend.
const (
	RefOpen  = "<|ref|>"
	RefClose = "<|/ref|>"
	DetOpen  = "<|det|>"
	DetClose = "<|/det|>"
)

// Match is one occurrence of a tagged region in the stream. Matches are
// ephemeral: they are produced fresh on every extraction pass and never
// retained across ticks.
type Match struct {
	// Label is the trimmed text between the ref tags.
	Label string
	// CoordsText is the raw text between the [[ ]] brackets, unparsed.
	CoordsText string
	// Start and End are byte offsets of the whole match in the stream.
	Start int
	End   int
}

// regionPattern matches one complete tagged region. (?s) lets coordinate
// text span newlines, which the backend emits freely between values.
var regionPattern = regexp.MustCompile(
	`(?s)<\|ref\|>(.*?)<\|/ref\|><\|det\|>\[\[(.*?)\]\]<\|/det\|>`)

// ExtractMatches scans the stream left to right and returns every complete
// tagged region in order. A region whose closing tags have not yet appeared
// is not extracted; it becomes visible once the stream grows past them.
// Re-running on a longer prefix of the same stream returns the earlier
// matches unchanged and appends the new ones.
func ExtractMatches(stream string) []Match {
	idx := regionPattern.FindAllStringSubmatchIndex(stream, -1)
	if len(idx) == 0 {
		return nil
	}
	matches := make([]Match, 0, len(idx))
	for _, m := range idx {
		matches = append(matches, Match{
			Label:      strings.TrimSpace(stream[m[2]:m[3]]),
			CoordsText: stream[m[4]:m[5]],
			Start:      m[0],
			End:        m[1],
		})
	}
	return matches
}
