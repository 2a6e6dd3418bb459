package layout

import (
	"github.com/mastviz/mastfig/pkg/canvas"
	"github.com/mastviz/mastfig/pkg/errors"
	"github.com/mastviz/mastfig/pkg/taxonomy"
)

// Vertical is the top-to-bottom stacking of categories and modes.
type Vertical struct {
	Rows       map[string]Row
	Bands      map[string]Band
	Separators []float64
	// Bottom is the bottom edge of the last category.
	Bottom float64
}

// ComputeVertical stacks the taxonomy's categories and modes, in declared
// order, starting at the chart top. Content reaching below the chart bottom
// fails with an [errors.OverflowError].
func ComputeVertical(spec *taxonomy.Spec, cs canvas.Spec) (Vertical, error) {
	cs = cs.Resolve()
	cats := spec.Categories()

	v := Vertical{
		Rows:  make(map[string]Row, spec.ModeCount()),
		Bands: make(map[string]Band, len(cats)),
	}

	y := cs.ChartY0()
	for i, cat := range cats {
		top := y
		for j, m := range cat.Modes {
			if j > 0 {
				y += cs.IntraRowGap
			}
			bottom := y + cs.RowHeight
			v.Rows[m.Code] = Row{
				Top:       y,
				Bottom:    bottom,
				BarTop:    y + cs.RowInnerPad,
				BarBottom: bottom - cs.RowInnerPad,
				Mid:       (y + bottom) / 2,
			}
			y = bottom
		}
		v.Bands[cat.ID] = Band{Top: top, Bottom: y, Mid: (top + y) / 2}
		v.Bottom = y

		if i < len(cats)-1 {
			v.Separators = append(v.Separators, y+cs.CategoryGap/2)
			y += cs.CategoryGap
		}
	}

	if v.Bottom > cs.ChartY1() {
		return Vertical{}, &errors.OverflowError{
			Required:  v.Bottom - cs.ChartY0(),
			Available: cs.ChartHeight(),
		}
	}
	return v, nil
}

// RequiredHeight returns the pixels the rows of spec need under cs.
func RequiredHeight(spec *taxonomy.Spec, cs canvas.Spec) float64 {
	cs = cs.Resolve()
	h := 0.0
	for i, cat := range spec.Categories() {
		n := float64(len(cat.Modes))
		if n > 0 {
			h += n*cs.RowHeight + (n-1)*cs.IntraRowGap
		}
		if i > 0 {
			h += cs.CategoryGap
		}
	}
	return h
}
