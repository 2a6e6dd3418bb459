package layout

// Span is a horizontal pixel interval.
type Span struct {
	X0 float64 `json:"x0"`
	X1 float64 `json:"x1"`
}

// Width returns X1 - X0.
func (s Span) Width() float64 { return s.X1 - s.X0 }

// Mid returns the horizontal centre.
func (s Span) Mid() float64 { return (s.X0 + s.X1) / 2 }

// Contains reports whether o lies within s.
func (s Span) Contains(o Span) bool { return o.X0 >= s.X0 && o.X1 <= s.X1 }

// Rect is an axis-aligned rectangle with a top-left origin.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// X1 returns the right edge.
func (r Rect) X1() float64 { return r.X + r.W }

// Y1 returns the bottom edge.
func (r Rect) Y1() float64 { return r.Y + r.H }

// CenterX returns the horizontal centre.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical centre.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Row is the vertical band of one mode.
type Row struct {
	Top       float64 `json:"top"`
	Bottom    float64 `json:"bottom"`
	BarTop    float64 `json:"bar_top"`
	BarBottom float64 `json:"bar_bottom"`
	Mid       float64 `json:"mid"`
}

// Band is the vertical extent of one category.
type Band struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Mid    float64 `json:"mid"`
}

// Height returns Bottom - Top.
func (b Band) Height() float64 { return b.Bottom - b.Top }

// Anchor is a text position. Align is "start", "middle" or "end", matching
// SVG text-anchor values.
type Anchor struct {
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	FontPx float64 `json:"font_px"`
	Align  string  `json:"align"`
}

const (
	AlignStart  = "start"
	AlignMiddle = "middle"
	AlignEnd    = "end"
)
