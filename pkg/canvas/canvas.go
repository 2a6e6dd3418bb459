package canvas

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/mastviz/mastfig/pkg/errors"
	"github.com/mastviz/mastfig/pkg/taxonomy"
)

// StageWeights are the relative widths of the three stage columns.
type StageWeights struct {
	Pre  float64 `json:"pre" toml:"pre"`
	Exec float64 `json:"exec" toml:"exec"`
	Post float64 `json:"post" toml:"post"`
}

// Slice returns the weights in stage order.
func (w StageWeights) Slice() []float64 {
	return []float64{w.Pre, w.Exec, w.Post}
}

// Of returns the weight of stage s, or 0 for an unknown stage.
func (w StageWeights) Of(s taxonomy.Stage) float64 {
	switch s {
	case taxonomy.StagePre:
		return w.Pre
	case taxonomy.StageExec:
		return w.Exec
	case taxonomy.StagePost:
		return w.Post
	}
	return 0
}

// Sum returns the total weight.
func (w StageWeights) Sum() float64 { return floats.Sum(w.Slice()) }

// Validate fails with INVALID_WEIGHTS when the weights sum to zero or less,
// or when any weight is not a finite positive number. A zero weight would
// leave a stage without width.
func (w StageWeights) Validate() error {
	ws := w.Slice()
	if floats.HasNaN(ws) {
		return errors.New(errors.ErrCodeInvalidWeights, "stage weights contain NaN: %v", ws)
	}
	if sum := floats.Sum(ws); sum <= 0 {
		return errors.New(errors.ErrCodeInvalidWeights, "stage weights sum to %g, must be positive", sum)
	}
	for i, v := range ws {
		if math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidWeights, "stage %s weight is infinite", taxonomy.Stages[i])
		}
		if v <= 0 {
			return errors.New(errors.ErrCodeInvalidWeights, "stage %s weight %g must be positive", taxonomy.Stages[i], v)
		}
	}
	return nil
}

// Spec is the full figure configuration. All lengths are pixels.
type Spec struct {
	Name   string  `json:"name,omitempty" toml:"-"`
	Title  string  `json:"title" toml:"title"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`

	Weights StageWeights `json:"stage_weights" toml:"stage_weights"`

	// Gutters and margins around the chart area.
	LeftGutter   float64 `json:"left_gutter" toml:"left_gutter"`
	RightGutter  float64 `json:"right_gutter" toml:"right_gutter"`
	SafePad      float64 `json:"safe_pad" toml:"safe_pad"`
	TopHeader    float64 `json:"top_header" toml:"top_header"`
	BottomMargin float64 `json:"bottom_margin" toml:"bottom_margin"`
	SideMargin   float64 `json:"side_margin" toml:"side_margin"`

	// Vertical row metrics.
	RowHeight   float64 `json:"row_height" toml:"row_height"`
	RowInnerPad float64 `json:"row_inner_pad" toml:"row_inner_pad"`
	IntraRowGap float64 `json:"intra_row_gap" toml:"intra_row_gap"`
	CategoryGap float64 `json:"category_gap" toml:"category_gap"`

	// Horizontal paddings. OuterInset applies only where a bar touches the
	// chart boundary.
	TextPad    float64 `json:"text_pad" toml:"text_pad"`
	OuterInset float64 `json:"outer_inset" toml:"outer_inset"`
	ClipBuffer float64 `json:"clip_buffer" toml:"clip_buffer"`

	// Mode text fonts.
	BaseFont     float64 `json:"base_font" toml:"base_font"`
	MinFont      float64 `json:"min_font" toml:"min_font"`
	LineSpacing  float64 `json:"line_spacing" toml:"line_spacing"`
	AllowTwoLine bool    `json:"allow_two_line" toml:"allow_two_line"`

	// Category percentage column.
	CatPctFont    float64 `json:"cat_pct_font" toml:"cat_pct_font"`
	CatPctMinFont float64 `json:"cat_pct_min_font" toml:"cat_pct_min_font"`
	PctColumnGap  float64 `json:"pct_column_gap" toml:"pct_column_gap"`
	MinGap        float64 `json:"min_gap" toml:"min_gap"`

	// Category label block in the left gutter.
	CatLabelGap  float64 `json:"cat_label_gap" toml:"cat_label_gap"`
	CatTitleFont float64 `json:"cat_title_font" toml:"cat_title_font"`
	CatSubFont   float64 `json:"cat_sub_font" toml:"cat_sub_font"`
	TickOffset   float64 `json:"tick_offset" toml:"tick_offset"`
	TickWidth    float64 `json:"tick_width" toml:"tick_width"`

	// Header.
	TitleFont       float64 `json:"title_font" toml:"title_font"`
	HeaderFont      float64 `json:"header_font" toml:"header_font"`
	PillFont        float64 `json:"pill_font" toml:"pill_font"`
	PillHeight      float64 `json:"pill_height" toml:"pill_height"`
	PillCenterRatio float64 `json:"pill_center_ratio" toml:"pill_center_ratio"`

	ShowModePctParens bool `json:"show_mode_pct_parens" toml:"show_mode_pct_parens"`
	ShowZeroModes     bool `json:"show_zero_modes" toml:"show_zero_modes"`

	AutoScale      bool    `json:"auto_scale" toml:"auto_scale"`
	ReferenceWidth float64 `json:"reference_width" toml:"reference_width"`
}

// Scale bounds applied by [Spec.Resolve].
const (
	MinScale = 0.7
	MaxScale = 1.25
)

// WithSize returns a copy of s resized to w x h.
func (s Spec) WithSize(w, h float64) Spec {
	s.Width, s.Height = w, h
	return s
}

// WithWeights returns a copy of s with the given stage weights.
func (s Spec) WithWeights(w StageWeights) Spec {
	s.Weights = w
	return s
}

// Scale returns the factor [Spec.Resolve] applies, 1 when AutoScale is off.
func (s Spec) Scale() float64 {
	if !s.AutoScale || s.ReferenceWidth <= 0 {
		return 1
	}
	return math.Max(MinScale, math.Min(MaxScale, s.Width/s.ReferenceWidth))
}

// Resolve returns s with the auto-scale factor folded into every pixel
// constant. The result has AutoScale cleared, so Resolve is idempotent.
func (s Spec) Resolve() Spec {
	k := s.Scale()
	s.AutoScale = false
	if k == 1 {
		return s
	}
	for _, p := range []*float64{
		&s.LeftGutter, &s.RightGutter, &s.SafePad, &s.TopHeader, &s.BottomMargin, &s.SideMargin,
		&s.RowHeight, &s.RowInnerPad, &s.IntraRowGap, &s.CategoryGap,
		&s.TextPad, &s.OuterInset, &s.ClipBuffer,
		&s.BaseFont, &s.MinFont,
		&s.CatPctFont, &s.CatPctMinFont, &s.PctColumnGap, &s.MinGap,
		&s.CatLabelGap, &s.CatTitleFont, &s.CatSubFont, &s.TickOffset, &s.TickWidth,
		&s.TitleFont, &s.HeaderFont, &s.PillFont, &s.PillHeight,
	} {
		*p *= k
	}
	return s
}

// ChartX0 is the left edge of the chart area.
func (s Spec) ChartX0() float64 { return s.LeftGutter }

// ChartX1 is the right edge of the chart area.
func (s Spec) ChartX1() float64 { return s.Width - s.RightGutter - s.SafePad }

// ChartY0 is the top of the first row.
func (s Spec) ChartY0() float64 { return s.TopHeader }

// ChartY1 is the lowest y any row may reach.
func (s Spec) ChartY1() float64 { return s.Height - s.BottomMargin }

// ChartWidth is ChartX1 - ChartX0.
func (s Spec) ChartWidth() float64 { return s.ChartX1() - s.ChartX0() }

// ChartHeight is ChartY1 - ChartY0.
func (s Spec) ChartHeight() float64 { return s.ChartY1() - s.ChartY0() }

// ClipX is the rightmost x mode text may reach.
func (s Spec) ClipX() float64 { return s.ChartX1() - s.ClipBuffer }

// GutterMinX is the leftmost anchor of a category percentage.
func (s Spec) GutterMinX() float64 { return s.ChartX1() + s.PctColumnGap }

// LabelRightX is the right edge of the category label block.
func (s Spec) LabelRightX() float64 { return s.ChartX0() - s.CatLabelGap }

// TickX is the x of the category tick line.
func (s Spec) TickX() float64 { return s.ChartX0() - s.TickOffset }

// Largest accepted canvas, four times the largest preset on each axis.
const (
	MaxWidth  = 8000.0
	MaxHeight = 4800.0
)

// CheckSize fails with INVALID_CONFIG when a requested width or height is
// above [MaxWidth] or [MaxHeight]. Zero means unset and passes.
func CheckSize(width, height float64) error {
	if width > MaxWidth || height > MaxHeight {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas size %gx%g exceeds the %gx%g limit", width, height, MaxWidth, MaxHeight)
	}
	return nil
}

// Validate checks structural consistency. Configuration problems fail with
// INVALID_CONFIG and weight problems with INVALID_WEIGHTS.
func (s Spec) Validate() error {
	if !(s.Width > 0) || !(s.Height > 0) || math.IsInf(s.Width, 0) || math.IsInf(s.Height, 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas size %gx%g must be positive", s.Width, s.Height)
	}
	if err := CheckSize(s.Width, s.Height); err != nil {
		return err
	}

	r := s.Resolve()

	for _, f := range []struct {
		name string
		v    float64
	}{
		{"left_gutter", r.LeftGutter}, {"right_gutter", r.RightGutter}, {"safe_pad", r.SafePad},
		{"top_header", r.TopHeader}, {"bottom_margin", r.BottomMargin}, {"side_margin", r.SideMargin},
		{"row_inner_pad", r.RowInnerPad}, {"intra_row_gap", r.IntraRowGap}, {"category_gap", r.CategoryGap},
		{"text_pad", r.TextPad}, {"outer_inset", r.OuterInset}, {"clip_buffer", r.ClipBuffer},
		{"pct_column_gap", r.PctColumnGap}, {"min_gap", r.MinGap}, {"cat_label_gap", r.CatLabelGap},
	} {
		if f.v < 0 || math.IsNaN(f.v) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be non-negative, got %g", f.name, f.v)
		}
	}

	if r.ChartX1() <= r.ChartX0() {
		return errors.New(errors.ErrCodeInvalidConfig, "gutters leave no chart width (x0=%g, x1=%g)", r.ChartX0(), r.ChartX1())
	}
	if r.ChartY1() <= r.ChartY0() {
		return errors.New(errors.ErrCodeInvalidConfig, "margins leave no chart height (y0=%g, y1=%g)", r.ChartY0(), r.ChartY1())
	}
	if r.GutterMinX() > r.Width-r.SideMargin {
		return errors.New(errors.ErrCodeInvalidConfig, "right gutter leaves no room for category percentages")
	}
	if !(r.RowHeight > 2*r.RowInnerPad) {
		return errors.New(errors.ErrCodeInvalidConfig, "row_height %g must exceed twice row_inner_pad %g", r.RowHeight, r.RowInnerPad)
	}

	if err := fontBounds("mode", r.MinFont, r.BaseFont); err != nil {
		return err
	}
	if err := fontBounds("category percentage", r.CatPctMinFont, r.CatPctFont); err != nil {
		return err
	}
	if !(r.LineSpacing >= 1) {
		return errors.New(errors.ErrCodeInvalidConfig, "line_spacing must be at least 1, got %g", r.LineSpacing)
	}

	return s.Weights.Validate()
}

func fontBounds(what string, lo, hi float64) error {
	if !(lo > 0) || !(hi > 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "%s font sizes must be positive (min=%g, base=%g)", what, lo, hi)
	}
	if lo > hi {
		return errors.New(errors.ErrCodeInvalidConfig, "%s min font %g exceeds base font %g", what, lo, hi)
	}
	return nil
}

// Key returns a stable encoding of the resolved spec for cache keys.
func (s Spec) Key() string {
	r := s.Resolve()
	r.Name = ""
	data, _ := json.Marshal(r)
	return string(data)
}
