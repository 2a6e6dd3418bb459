package layout

import (
	"fmt"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// DefaultCharFactor is the average glyph advance as a fraction of the font
// size used by [Heuristic].
const DefaultCharFactor = 0.6

// Estimator predicts the rendered width of text at a font size. It must be
// free of side effects and safe for concurrent use.
type Estimator interface {
	Width(text string, fontPx float64) float64
}

// EstimatorFunc adapts a function to [Estimator].
type EstimatorFunc func(text string, fontPx float64) float64

// Width calls f.
func (f EstimatorFunc) Width(text string, fontPx float64) float64 { return f(text, fontPx) }

// Heuristic estimates width as runes * fontPx * K.
type Heuristic struct {
	K float64 // zero means DefaultCharFactor
}

func (h Heuristic) factor() float64 {
	if h.K > 0 {
		return h.K
	}
	return DefaultCharFactor
}

// Width implements [Estimator].
func (h Heuristic) Width(text string, fontPx float64) float64 {
	return float64(utf8.RuneCountInString(text)) * fontPx * h.factor()
}

func (h Heuristic) String() string { return fmt.Sprintf("heuristic(k=%g)", h.factor()) }

// CellWidth estimates width from terminal display cells, so wide East Asian
// glyphs count double and combining marks count zero.
type CellWidth struct {
	K             float64 // zero means DefaultCharFactor
	EastAsianWide bool    // treat ambiguous-width runes as wide
}

// Width implements [Estimator].
func (c CellWidth) Width(text string, fontPx float64) float64 {
	k := c.K
	if k <= 0 {
		k = DefaultCharFactor
	}
	var cells int
	if c.EastAsianWide {
		cond := runewidth.Condition{EastAsianWidth: true}
		cells = cond.StringWidth(text)
	} else {
		cells = runewidth.StringWidth(text)
	}
	return float64(cells) * fontPx * k
}

func (c CellWidth) String() string {
	k := c.K
	if k <= 0 {
		k = DefaultCharFactor
	}
	return fmt.Sprintf("cells(k=%g,eaw=%t)", k, c.EastAsianWide)
}

// EstimatorName returns a stable identifier for e, used in cache keys.
func EstimatorName(e Estimator) string {
	if s, ok := e.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", e)
}
