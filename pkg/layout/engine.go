package layout

import (
	"fmt"
	"math"
	"slices"

	"github.com/mastviz/mastfig/pkg/canvas"
	"github.com/mastviz/mastfig/pkg/distribution"
	"github.com/mastviz/mastfig/pkg/taxonomy"
)

// Header texts.
const (
	CategoriesHeading = "Failure Categories"
	ModesHeading      = "Failure Modes"
)

// Engine computes figure layouts. An Engine is immutable after New and safe
// for concurrent use as long as its Estimator is.
type Engine struct {
	spec *taxonomy.Spec
	est  Estimator
}

// Option configures an [Engine].
type Option func(*Engine)

// WithEstimator replaces the default [Heuristic] width estimator.
func WithEstimator(est Estimator) Option {
	return func(e *Engine) {
		if est != nil {
			e.est = est
		}
	}
}

// WithTaxonomy lays out spec instead of [taxonomy.Default].
func WithTaxonomy(spec *taxonomy.Spec) Option {
	return func(e *Engine) {
		if spec != nil {
			e.spec = spec
		}
	}
}

// New returns an Engine with the given options applied.
func New(opts ...Option) *Engine {
	e := &Engine{spec: taxonomy.Default(), est: Heuristic{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Estimator returns the engine's width estimator.
func (e *Engine) Estimator() Estimator { return e.est }

// Taxonomy returns the taxonomy the engine lays out.
func (e *Engine) Taxonomy() *taxonomy.Spec { return e.spec }

// Compute lays out dist on cs using a default Engine.
func Compute(dist distribution.Distribution, cs canvas.Spec) (*Result, error) {
	return New().Compute(dist, cs)
}

// Compute lays out dist on cs.
//
// It fails with INVALID_CONFIG or INVALID_WEIGHTS for a bad canvas,
// INVALID_DISTRIBUTION for an inconsistent distribution and LAYOUT_OVERFLOW
// when the rows do not fit the chart height. Text fitting itself never
// fails; its worst case is a truncated label.
func (e *Engine) Compute(dist distribution.Distribution, cs canvas.Spec) (*Result, error) {
	if err := cs.Validate(); err != nil {
		return nil, err
	}
	if err := dist.Validate(e.spec); err != nil {
		return nil, err
	}
	cs = cs.Resolve()

	x0, x1 := cs.ChartX0(), cs.ChartX1()
	stages, err := ComputeStageSpans(cs.Weights, x0, x1)
	if err != nil {
		return nil, err
	}
	vert, err := ComputeVertical(e.spec, cs)
	if err != nil {
		return nil, err
	}
	placer, err := NewPlacer(cs, e.est)
	if err != nil {
		return nil, err
	}
	gMin, gMax := placer.Bounds()

	r := &Result{
		Canvas:     cs,
		Estimator:  EstimatorName(e.est),
		Total:      dist.Total,
		Chart:      Rect{X: x0, Y: cs.ChartY0(), W: x1 - x0, H: cs.ChartHeight()},
		ClipX:      cs.ClipX(),
		GutterMinX: gMin,
		GutterMaxX: gMax,
		Stages:     stages,
		Separators: vert.Separators,
	}

	r.Modes = e.layoutModes(cs, dist, stages, vert)
	e.fitModes(cs, r)

	for _, cat := range e.spec.Categories() {
		cl := e.layoutCategory(cs, cat, vert.Bands[cat.ID], r)
		cl.Pct = placer.Place(r.modesOf(cat.ID), dist.CatPct[cat.ID], cl.Band.Mid)
		if cl.Pct.Strategy != SingleLine {
			r.warnf("category %s percentage %s: font %.1fpx", cat.ID, cl.Pct.Strategy, cl.Pct.FontPx)
		}
		r.Categories = append(r.Categories, cl)
	}

	r.Pills = e.layoutPills(cs, stages)
	r.Header = e.layoutHeader(cs)
	return r, nil
}

func (e *Engine) layoutModes(cs canvas.Spec, dist distribution.Distribution, stages StageSpans, vert Vertical) []ModeLayout {
	x0, x1 := cs.ChartX0(), cs.ChartX1()
	modes := make([]ModeLayout, 0, e.spec.ModeCount())

	for _, cat := range e.spec.Categories() {
		for _, m := range cat.Modes {
			row := vert.Rows[m.Code]
			ext := stages.BarExtent(m.Span, x0, x1, cs.OuterInset)
			count := dist.Counts[m.Code]
			pct := dist.ModePct[m.Code]

			modes = append(modes, ModeLayout{
				Code:      m.Code,
				Label:     m.Label,
				Category:  cat.ID,
				Stages:    slices.Clone(m.Span),
				SpanKey:   m.SpanKey(),
				Count:     count,
				Pct:       pct,
				Zero:      count == 0,
				Hidden:    count == 0 && !cs.ShowZeroModes,
				Row:       row,
				Bar:       Rect{X: ext.X0, Y: row.BarTop, W: ext.Width(), H: row.BarBottom - row.BarTop},
				Text:      m.FullLabel() + " " + modePct(cs, pct),
				TextX:     ext.X0 + cs.TextPad,
				Available: ext.Width() - 2*cs.TextPad,
			})
		}
	}
	return modes
}

func modePct(cs canvas.Spec, pct float64) string {
	if cs.ShowModePctParens {
		return distribution.FormatPct(pct)
	}
	return distribution.FormatPctPlain(pct)
}

// fitModes fits every mode's text, grouping modes by stage span so bars of
// identical width share a font.
func (e *Engine) fitModes(cs canvas.Spec, r *Result) {
	f := textFitter{
		est:          e.est,
		base:         cs.BaseFont,
		min:          cs.MinFont,
		lineSpacing:  cs.LineSpacing,
		maxHeight:    cs.RowHeight,
		allowTwoLine: cs.AllowTwoLine,
	}

	// Hidden modes are fitted alone so their text cannot shrink the
	// visible modes sharing their span.
	var order []string
	groups := make(map[string][]int)
	for i, m := range r.Modes {
		key := m.SpanKey
		if m.Hidden {
			key = "hidden:" + m.Code
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	for _, key := range order {
		idx := groups[key]
		texts := make([]fitText, len(idx))
		for j, i := range idx {
			m := r.Modes[i]
			texts[j] = fitText{
				Full:  m.Text,
				Label: m.Code + " " + m.Label,
				Pct:   modePct(cs, m.Pct),
			}
		}
		avail := r.Modes[idx[0]].Available
		for j, fd := range f.fitGroup(texts, avail) {
			m := &r.Modes[idx[j]]
			m.Font = fd
			m.TextRight = math.Min(m.TextX+fd.Width(e.est), cs.ClipX())
			if fd.Strategy == Truncated && !m.Hidden {
				r.warnf("mode %s label truncated to %q", m.Code, fd.Lines[0])
			}
		}
	}
}

func (e *Engine) layoutCategory(cs canvas.Spec, cat taxonomy.Category, band Band, r *Result) CategoryLayout {
	labelX := cs.LabelRightX()
	room := labelX - cs.SideMargin

	title := fitOne(e.est, cat.Name, room, cs.CatTitleFont, math.Min(cs.MinFont, cs.CatTitleFont))
	sub := fitOne(e.est, "("+cat.Sublabel+")", room, cs.CatSubFont, math.Min(cs.MinFont, cs.CatSubFont))
	if title.Strategy == Truncated {
		r.warnf("category %s title truncated to %q", cat.ID, title.Lines[0])
	}

	tf, sf := title.FontPx, sub.FontPx
	block := tf + tf*0.9 + sf
	titleY := band.Mid - block/2 + tf*0.7

	return CategoryLayout{
		ID:       cat.ID,
		Name:     cat.Name,
		Sublabel: cat.Sublabel,
		Codes:    cat.Codes(),
		Band:     band,
		Title:    Anchor{Text: title.Lines[0], X: labelX, Y: titleY, FontPx: tf, Align: AlignEnd},
		Subtitle: Anchor{Text: sub.Lines[0], X: labelX, Y: titleY + tf*0.9, FontPx: sf, Align: AlignEnd},
		Tick:     Tick{X: cs.TickX(), Y0: band.Top, Y1: band.Bottom, Width: cs.TickWidth},
	}
}

func (e *Engine) layoutPills(cs canvas.Spec, stages StageSpans) []Pill {
	cy := cs.TopHeader * cs.PillCenterRatio
	h := cs.PillHeight
	pills := make([]Pill, 0, len(taxonomy.Stages))
	for _, st := range taxonomy.Stages {
		sp := stages[st]
		fit := fitOne(e.est, st.Label(), sp.Width()-2*cs.TextPad, cs.PillFont, math.Min(cs.MinFont, cs.PillFont))
		pills = append(pills, Pill{
			Stage:  st,
			Rect:   Rect{X: sp.X0, Y: cy - h/2, W: sp.Width(), H: h},
			Radius: h / 2,
			Label:  Anchor{Text: fit.Lines[0], X: sp.Mid(), Y: cy, FontPx: fit.FontPx, Align: AlignMiddle},
		})
	}
	return pills
}

func (e *Engine) layoutHeader(cs canvas.Spec) Header {
	title := fitOne(e.est, cs.Title, cs.Width-2*cs.SideMargin, cs.TitleFont, math.Min(cs.MinFont, cs.TitleFont))
	cats := fitOne(e.est, CategoriesHeading, cs.LabelRightX()-cs.SideMargin, cs.HeaderFont, math.Min(cs.MinFont, cs.HeaderFont))
	headY := cs.ChartY0() - 1.1*cs.HeaderFont

	return Header{
		Title: Anchor{Text: title.Lines[0], X: cs.Width / 2, Y: cs.TopHeader * 0.3, FontPx: title.FontPx, Align: AlignMiddle},
		Categories: Anchor{
			Text: cats.Lines[0], X: cs.LabelRightX(), Y: headY, FontPx: cats.FontPx, Align: AlignEnd,
		},
		Modes: Anchor{
			Text: ModesHeading, X: cs.ChartX0() + cs.ChartWidth()/2, Y: headY, FontPx: cs.HeaderFont, Align: AlignMiddle,
		},
		SeparatorY: cs.ChartY0() - cs.HeaderFont/3,
	}
}

func (r *Result) modesOf(catID string) []ModeLayout {
	var out []ModeLayout
	for _, m := range r.Modes {
		if m.Category == catID {
			out = append(out, m)
		}
	}
	return out
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}
