package layout

import (
	"math"
	"strings"
)

// Strategy is how a text was made to fit its box.
type Strategy string

const (
	SingleLine       Strategy = "single_line"
	ScaledSingleLine Strategy = "scaled_single_line"
	TwoLine          Strategy = "two_line"
	Truncated        Strategy = "truncated"
)

// Ellipsis marks truncated text.
const Ellipsis = "..."

// fontStep is the quantum font sizes are floored to.
const fontStep = 0.1

// FontDecision is the fitted rendering of one text.
type FontDecision struct {
	// FontPx is the font of the first line.
	FontPx   float64  `json:"font_px"`
	Strategy Strategy `json:"strategy"`
	Lines    []string `json:"lines"`
	// LineFontsPx holds one font size per line.
	LineFontsPx []float64 `json:"line_fonts_px"`
}

// Width returns the widest line's estimated width.
func (d FontDecision) Width(est Estimator) float64 {
	w := 0.0
	for i, line := range d.Lines {
		w = math.Max(w, est.Width(line, d.lineFont(i)))
	}
	return w
}

// Height returns the stacked line height at the given line spacing.
func (d FontDecision) Height(lineSpacing float64) float64 {
	h := 0.0
	for i := range d.Lines {
		h += d.lineFont(i) * lineSpacing
	}
	return h
}

// Fits reports whether every line fits within avail.
func (d FontDecision) Fits(est Estimator, avail float64) bool {
	for i, line := range d.Lines {
		if est.Width(line, d.lineFont(i)) > avail {
			return false
		}
	}
	return true
}

func (d FontDecision) lineFont(i int) float64 {
	if i < len(d.LineFontsPx) {
		return d.LineFontsPx[i]
	}
	return d.FontPx
}

func single(text string, font float64, s Strategy) FontDecision {
	return FontDecision{FontPx: font, Strategy: s, Lines: []string{text}, LineFontsPx: []float64{font}}
}

// fitText is the text to fit plus the pieces a two-line split uses.
type fitText struct {
	Full  string
	Label string
	Pct   string
}

// textFitter chooses fonts for a group of texts sharing one box width.
type textFitter struct {
	est          Estimator
	base, min    float64
	lineSpacing  float64
	maxHeight    float64
	allowTwoLine bool
}

// fitGroup fits texts that share the available width avail. Texts are
// sized together so identical boxes get identical fonts; only the last
// resort, truncation, is decided per text.
func (f textFitter) fitGroup(texts []fitText, avail float64) []FontDecision {
	out := make([]FontDecision, len(texts))

	full := make([]string, len(texts))
	for i, t := range texts {
		full[i] = t.Full
	}
	if font, ok := largestFont(f.est, full, avail, f.base, f.min); ok {
		s := SingleLine
		if font < f.base {
			s = ScaledSingleLine
		}
		for i, t := range texts {
			out[i] = single(t.Full, font, s)
		}
		return out
	}

	if f.allowTwoLine {
		labels := make([]string, len(texts))
		pcts := make([]string, len(texts))
		for i, t := range texts {
			labels[i], pcts[i] = t.Label, t.Pct
		}
		f1, ok1 := largestFont(f.est, labels, avail, f.base, f.min)
		f2, ok2 := largestFont(f.est, pcts, avail, f.base, f.min)
		if ok1 && ok2 && (f1+f2)*f.lineSpacing <= f.maxHeight {
			for i, t := range texts {
				out[i] = FontDecision{
					FontPx:      f1,
					Strategy:    TwoLine,
					Lines:       []string{t.Label, t.Pct},
					LineFontsPx: []float64{f1, f2},
				}
			}
			return out
		}
	}

	for i, t := range texts {
		if f.est.Width(t.Full, f.min) <= avail {
			out[i] = single(t.Full, f.min, ScaledSingleLine)
			continue
		}
		out[i] = single(truncate(f.est, t.Full, avail, f.min), f.min, Truncated)
	}
	return out
}

// fitOne fits a single text into avail, shrinking from base down to min
// and truncating below that.
func fitOne(est Estimator, text string, avail, base, min float64) FontDecision {
	if font, ok := largestFont(est, []string{text}, avail, base, min); ok {
		if font < base {
			return single(text, font, ScaledSingleLine)
		}
		return single(text, font, SingleLine)
	}
	return single(truncate(est, text, avail, min), min, Truncated)
}

// largestFont returns the largest font in [min, base], quantized down to
// fontStep, at which every text fits avail. The first candidate is the
// proportional scale base*avail/widest; candidates are re-checked with the
// estimator so non-linear estimators are honoured.
func largestFont(est Estimator, texts []string, avail, base, min float64) (float64, bool) {
	widest := 0.0
	for _, t := range texts {
		widest = math.Max(widest, est.Width(t, base))
	}
	if widest <= avail {
		return base, true
	}
	if avail <= 0 {
		return 0, false
	}

	font := quantize(base * avail / widest)
	if font < min {
		font = min
	}
	for {
		if allFit(est, texts, avail, font) {
			return font, true
		}
		if font <= min {
			return 0, false
		}
		font = math.Max(min, quantize(font-fontStep))
	}
}

func allFit(est Estimator, texts []string, avail, font float64) bool {
	for _, t := range texts {
		if est.Width(t, font) > avail {
			return false
		}
	}
	return true
}

// quantize floors v to fontStep, tolerating float noise just below a step.
func quantize(v float64) float64 {
	return math.Floor(v/fontStep+1e-9) * fontStep
}

// truncate returns the longest rune prefix of text that, followed by
// [Ellipsis], fits avail at font. When nothing fits, the bare ellipsis is
// returned.
func truncate(est Estimator, text string, avail, font float64) string {
	runes := []rune(text)
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if est.Width(string(runes[:mid])+Ellipsis, font) <= avail {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return strings.TrimRight(string(runes[:lo]), " ") + Ellipsis
}
