package layout

import (
	"github.com/mastviz/mastfig/pkg/canvas"
	"github.com/mastviz/mastfig/pkg/taxonomy"
)

// Result is the complete geometry of one figure. It is created fresh by
// [Engine.Compute] and owned by the caller.
type Result struct {
	// Canvas is the resolved (auto-scaled) configuration the layout used.
	Canvas    canvas.Spec `json:"canvas"`
	Estimator string      `json:"estimator"`
	Total     int         `json:"total"`

	Chart      Rect    `json:"chart"`
	ClipX      float64 `json:"clip_x"`
	GutterMinX float64 `json:"gutter_min_x"`
	GutterMaxX float64 `json:"gutter_max_x"`

	Stages     StageSpans       `json:"stages"`
	Pills      []Pill           `json:"pills"`
	Header     Header           `json:"header"`
	Categories []CategoryLayout `json:"categories"`
	Modes      []ModeLayout     `json:"modes"`
	Separators []float64        `json:"separators"`

	// Warnings lists soft issues such as truncated labels.
	Warnings []string `json:"warnings,omitempty"`
}

// ModeLayout is the geometry and text of one failure mode.
type ModeLayout struct {
	Code     string           `json:"code"`
	Label    string           `json:"label"`
	Category string           `json:"category"`
	Stages   []taxonomy.Stage `json:"stages"`
	SpanKey  string           `json:"span_key"`

	Count  int     `json:"count"`
	Pct    float64 `json:"pct"`
	Zero   bool    `json:"zero"`
	Hidden bool    `json:"hidden"`

	Row Row  `json:"row"`
	Bar Rect `json:"bar"`

	// Text is the composed text before fitting.
	Text      string       `json:"text"`
	TextX     float64      `json:"text_x"`
	Available float64      `json:"available_width"`
	Font      FontDecision `json:"font"`
	// TextRight is the right edge of the fitted text, clamped to ClipX.
	TextRight float64 `json:"text_right"`
}

// CategoryLayout is the geometry of one category block.
type CategoryLayout struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Sublabel string   `json:"sublabel"`
	Codes    []string `json:"codes"`

	Band     Band     `json:"band"`
	Title    Anchor   `json:"title"`
	Subtitle Anchor   `json:"subtitle"`
	Tick     Tick     `json:"tick"`
	Pct      PctLabel `json:"pct"`
}

// Tick is the vertical line beside a category label.
type Tick struct {
	X     float64 `json:"x"`
	Y0    float64 `json:"y0"`
	Y1    float64 `json:"y1"`
	Width float64 `json:"width"`
}

// PctLabel is a category's aggregate percentage in the right gutter.
type PctLabel struct {
	Anchor
	Value    float64  `json:"value"`
	Strategy Strategy `json:"strategy"`
	// MaxModeTextRight is the rightmost mode text edge in the category.
	MaxModeTextRight float64 `json:"max_mode_text_right"`
}

// Pill is a stage header capsule.
type Pill struct {
	Stage  taxonomy.Stage `json:"stage"`
	Rect   Rect           `json:"rect"`
	Radius float64        `json:"radius"`
	Label  Anchor         `json:"label"`
}

// Header holds the title and column headings.
type Header struct {
	Title      Anchor  `json:"title"`
	Categories Anchor  `json:"categories"`
	Modes      Anchor  `json:"modes"`
	SeparatorY float64 `json:"separator_y"`
}

// Mode returns the layout of the mode with the given code.
func (r *Result) Mode(code string) (ModeLayout, bool) {
	for _, m := range r.Modes {
		if m.Code == code {
			return m, true
		}
	}
	return ModeLayout{}, false
}

// Category returns the layout of the category with the given id.
func (r *Result) Category(id string) (CategoryLayout, bool) {
	for _, c := range r.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return CategoryLayout{}, false
}

// Visible returns the modes that are drawn.
func (r *Result) Visible() []ModeLayout {
	out := make([]ModeLayout, 0, len(r.Modes))
	for _, m := range r.Modes {
		if !m.Hidden {
			out = append(out, m)
		}
	}
	return out
}
