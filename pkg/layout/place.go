package layout

import (
	"math"

	"github.com/mastviz/mastfig/pkg/canvas"
	"github.com/mastviz/mastfig/pkg/distribution"
	"github.com/mastviz/mastfig/pkg/errors"
)

// widestPct is the widest category percentage text the gutter must hold.
const widestPct = "100.00%"

// Placer positions category percentages in the right gutter clear of the
// category's mode text.
type Placer struct {
	est  Estimator
	cs   canvas.Spec
	minX float64
	maxX float64
}

// NewPlacer derives the gutter bounds for cs. The gutter must leave at
// least MinGap between the text clip boundary and its right limit, otherwise
// the anchor could not clear the widest possible mode text and the canvas is
// rejected with INVALID_CONFIG.
func NewPlacer(cs canvas.Spec, est Estimator) (*Placer, error) {
	cs = cs.Resolve()
	minX := cs.GutterMinX()
	maxX := math.Max(minX, cs.Width-cs.SideMargin-est.Width(widestPct, cs.CatPctMinFont))

	if cs.ClipX()+cs.MinGap > maxX {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"right gutter too narrow: percentages need x <= %.1f but mode text may reach %.1f plus a %.1fpx gap",
			maxX, cs.ClipX(), cs.MinGap)
	}
	return &Placer{est: est, cs: cs, minX: minX, maxX: maxX}, nil
}

// Bounds returns the gutter's minimum and maximum anchor x.
func (p *Placer) Bounds() (minX, maxX float64) { return p.minX, p.maxX }

// TextRight returns the right edge of a mode's fitted text, clamped to the
// clip boundary.
func (p *Placer) TextRight(m ModeLayout) float64 {
	return math.Min(m.TextX+m.Font.Width(p.est), p.cs.ClipX())
}

// Place computes the percentage label for a category whose modes are given.
// Hidden modes draw no text and are ignored.
func (p *Placer) Place(modes []ModeLayout, pct, y float64) PctLabel {
	right := math.Min(p.cs.ChartX0(), p.cs.ClipX())
	for _, m := range modes {
		if m.Hidden {
			continue
		}
		right = math.Max(right, p.TextRight(m))
	}

	x := math.Max(p.minX, right+p.cs.MinGap)
	x = math.Min(x, p.maxX)

	text := distribution.FormatPctPlain(pct)
	room := p.cs.Width - p.cs.SideMargin - x
	fit := fitOne(p.est, text, room, p.cs.CatPctFont, p.cs.CatPctMinFont)

	return PctLabel{
		Anchor: Anchor{
			Text:   fit.Lines[0],
			X:      x,
			Y:      y,
			FontPx: fit.FontPx,
			Align:  AlignStart,
		},
		Value:            pct,
		Strategy:         fit.Strategy,
		MaxModeTextRight: right,
	}
}
