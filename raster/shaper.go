package raster

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	gofont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

var shapingFace = sync.OnceValues(func() (*gofont.Face, error) {
	return gofont.ParseTTF(bytes.NewReader(goregular.TTF))
})

// measureLabel returns the advance width in pixels of text shaped at the
// given pixel size. Shaping (rather than summing nominal glyph widths) keeps
// the label chip sized correctly for scripts with contextual forms.
func measureLabel(text string, size float64) float64 {
	face, err := shapingFace()
	if err != nil || text == "" {
		return 0
	}
	runes := []rune(text)
	shaper := &shaping.HarfbuzzShaper{}
	out := shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      fixed.Int26_6(size * 64),
		Script:    language.Latin,
		Language:  language.DefaultLanguage(),
	})
	var width fixed.Int26_6
	for _, g := range out.Glyphs {
		width += g.XAdvance
	}
	return float64(width) / 64.0
}
