package layout

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/mastviz/mastfig/pkg/canvas"
	"github.com/mastviz/mastfig/pkg/taxonomy"
)

// StageSpans maps each stage to its pixel column.
type StageSpans map[taxonomy.Stage]Span

// ComputeStageSpans partitions [x0, x1] into the three stage columns in
// pre, exec, post order with widths proportional to w. Adjacent columns
// share their boundary exactly and the last column ends at x1.
func ComputeStageSpans(w canvas.StageWeights, x0, x1 float64) (StageSpans, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	fractions := w.Slice()
	floats.Scale(1/floats.Sum(fractions), fractions)
	bounds := floats.CumSum(make([]float64, len(fractions)), fractions)

	width := x1 - x0
	spans := make(StageSpans, len(taxonomy.Stages))
	left := x0
	for i, st := range taxonomy.Stages {
		right := x0 + bounds[i]*width
		if i == len(taxonomy.Stages)-1 {
			right = x1
		}
		spans[st] = Span{X0: left, X1: right}
		left = right
	}
	return spans, nil
}

// BarExtent returns the horizontal extent of a bar covering stages: the
// union of the covered columns. The inset is applied only to an edge that
// coincides with the chart boundary [x0, x1], and the result is clamped to
// that boundary.
func (s StageSpans) BarExtent(stages []taxonomy.Stage, x0, x1, inset float64) Span {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, st := range stages {
		sp, ok := s[st]
		if !ok {
			continue
		}
		lo = math.Min(lo, sp.X0)
		hi = math.Max(hi, sp.X1)
	}
	if lo > hi {
		return Span{X0: x0, X1: x0}
	}

	if lo == x0 {
		lo += inset
	}
	if hi == x1 {
		hi -= inset
	}
	lo = math.Max(lo, x0)
	hi = math.Min(hi, x1)
	if hi < lo {
		hi = lo
	}
	return Span{X0: lo, X1: hi}
}
