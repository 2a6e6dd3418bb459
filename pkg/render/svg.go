package render

import (
	"bytes"
	"fmt"
	"strings"

	svg "github.com/ajstarks/svgo/float"

	"github.com/mastviz/mastfig/pkg/layout"
)

// DefaultFontFamily is the CSS font stack used for all text.
const DefaultFontFamily = "Inter, Helvetica, Arial, sans-serif"

const (
	barRadius   = 6.0
	barStroke   = 2.0
	pillStroke  = 1.0
	guideStroke = 1.0
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette Palette
	font    string
	guides  bool
	desc    string
}

// WithPalette replaces [DefaultPalette].
func WithPalette(p Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithFontFamily sets the CSS font stack.
func WithFontFamily(f string) SVGOption {
	return func(r *svgRenderer) {
		if f != "" {
			r.font = f
		}
	}
}

// WithGuides overlays the chart bounds, the text clip boundary and the
// percentage gutter as dashed vertical lines.
func WithGuides() SVGOption { return func(r *svgRenderer) { r.guides = true } }

// WithDescription embeds a <desc> element.
func WithDescription(d string) SVGOption { return func(r *svgRenderer) { r.desc = d } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{palette: DefaultPalette(), font: DefaultFontFamily}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws a computed layout. Hidden modes are skipped; zero-count
// modes that are shown are drawn ghosted.
func RenderSVG(r *layout.Result, opts ...SVGOption) []byte {
	sr := newSVGRenderer(opts...)
	cs := r.Canvas

	var buf bytes.Buffer
	c := svg.New(&buf)
	c.Start(cs.Width, cs.Height, fmt.Sprintf(`viewBox="0 0 %s %s"`, num(cs.Width), num(cs.Height)))
	c.Title(r.Header.Title.Text)
	if sr.desc != "" {
		c.Desc(sr.desc)
	}
	c.Rect(0, 0, cs.Width, cs.Height, "fill:"+sr.palette.Background)

	sr.header(c, r)
	sr.separators(c, r)
	for i, cat := range r.Categories {
		sr.category(c, r, cat, sr.palette.Category(cat.ID, i))
	}
	if sr.guides {
		sr.drawGuides(c, r)
	}

	c.End()
	return buf.Bytes()
}

// =============================================================================
// Header
// =============================================================================

func (sr svgRenderer) header(c *svg.SVG, r *layout.Result) {
	p := sr.palette
	c.Gid("header")

	sr.text(c, r.Header.Title, p.HeaderText, "bold")

	for _, pill := range r.Pills {
		fill := p.Pills[pill.Stage]
		if fill == "" {
			fill = p.Background
		}
		c.Roundrect(pill.Rect.X, pill.Rect.Y, pill.Rect.W, pill.Rect.H, pill.Radius, pill.Radius,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%s", fill, p.PillStroke, num(pillStroke)))
		sr.text(c, pill.Label, p.PillText, "500")
	}

	sr.text(c, r.Header.Categories, p.SectionText, "bold")
	sr.text(c, r.Header.Modes, p.SectionText, "bold")
	c.Line(0, r.Header.SeparatorY, r.Canvas.Width, r.Header.SeparatorY,
		fmt.Sprintf("stroke:%s;stroke-width:1;stroke-dasharray:3,3", p.HeaderRule))

	c.Gend()
}

func (sr svgRenderer) separators(c *svg.SVG, r *layout.Result) {
	if len(r.Separators) == 0 {
		return
	}
	c.Gid("separators")
	for _, y := range r.Separators {
		c.Line(0, y, r.Canvas.Width, y,
			fmt.Sprintf("stroke:%s;stroke-width:1;stroke-dasharray:2,4", sr.palette.Separator))
	}
	c.Gend()
}

// =============================================================================
// Categories and modes
// =============================================================================

func (sr svgRenderer) category(c *svg.SVG, r *layout.Result, cat layout.CategoryLayout, col CategoryColors) {
	p := sr.palette
	c.Group(fmt.Sprintf(`id="category-%s"`, cat.ID))

	c.Line(cat.Tick.X, cat.Tick.Y0, cat.Tick.X, cat.Tick.Y1,
		fmt.Sprintf("stroke:%s;stroke-width:%s;stroke-linecap:round", col.Stroke, num(cat.Tick.Width)))
	sr.text(c, cat.Title, col.Text, "bold")
	sr.text(c, cat.Subtitle, p.SublabelText, "normal", "font-style:italic")

	for _, m := range r.Modes {
		if m.Category != cat.ID || m.Hidden {
			continue
		}
		sr.mode(c, r, m, col)
	}

	sr.text(c, cat.Pct.Anchor, col.Stroke, "bold")
	c.Gend()
}

func (sr svgRenderer) mode(c *svg.SVG, r *layout.Result, m layout.ModeLayout, col CategoryColors) {
	p := sr.palette
	fill, stroke, text := RGBA(col.Stroke, p.FillAlpha), col.Stroke, col.Text
	opacity := ""
	if m.Zero {
		fill = RGBA(col.Stroke, p.ZeroFillAlpha)
		stroke = RGBA(col.Stroke, p.ZeroStrokeAlpha)
		opacity = fmt.Sprintf("fill-opacity:%s", num(p.ZeroTextAlpha))
	}

	c.Roundrect(m.Bar.X, m.Bar.Y, m.Bar.W, m.Bar.H, barRadius, barRadius,
		fmt.Sprintf(`id="mode-%s"`, m.Code),
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%s", fill, stroke, num(barStroke)))

	ys := lineCenters(m, r.Canvas.LineSpacing)
	for i, line := range m.Font.Lines {
		font := m.Font.FontPx
		if i < len(m.Font.LineFontsPx) {
			font = m.Font.LineFontsPx[i]
		}
		a := layout.Anchor{Text: line, X: m.TextX, Y: ys[i], FontPx: font, Align: layout.AlignStart}
		sr.text(c, a, text, "bold", opacity)
	}
}

// lineCenters returns the vertical centre of each fitted line, stacked
// around the row middle.
func lineCenters(m layout.ModeLayout, spacing float64) []float64 {
	n := len(m.Font.Lines)
	if n == 0 {
		return nil
	}
	heights := make([]float64, n)
	total := 0.0
	for i := range heights {
		f := m.Font.FontPx
		if i < len(m.Font.LineFontsPx) {
			f = m.Font.LineFontsPx[i]
		}
		if n > 1 {
			f *= spacing
		}
		heights[i] = f
		total += f
	}

	ys := make([]float64, n)
	y := m.Row.Mid - total/2
	for i, h := range heights {
		ys[i] = y + h/2
		y += h
	}
	return ys
}

// =============================================================================
// Guides
// =============================================================================

func (sr svgRenderer) drawGuides(c *svg.SVG, r *layout.Result) {
	c.Gid("guides")
	top, bottom := 0.0, r.Canvas.Height
	guide := func(x float64, color string) {
		c.Line(x, top, x, bottom,
			fmt.Sprintf("stroke:%s;stroke-opacity:0.5;stroke-width:%s;stroke-dasharray:4,4", color, num(guideStroke)))
	}
	guide(r.Chart.X, "red")
	guide(r.Chart.X1(), "red")
	guide(r.ClipX, "blue")
	guide(r.GutterMinX, "green")
	guide(r.GutterMaxX, "green")
	c.Gend()
}

// =============================================================================
// Text
// =============================================================================

func (sr svgRenderer) text(c *svg.SVG, a layout.Anchor, color, weight string, extra ...string) {
	if a.Text == "" {
		return
	}
	parts := []string{
		"font-family:" + sr.font,
		"font-size:" + num(a.FontPx) + "px",
		"font-weight:" + weight,
		"fill:" + color,
		"text-anchor:" + anchorValue(a.Align),
		"dominant-baseline:central",
	}
	for _, e := range extra {
		if e != "" {
			parts = append(parts, e)
		}
	}
	c.Text(a.X, a.Y, a.Text, strings.Join(parts, ";"))
}

func anchorValue(align string) string {
	switch align {
	case layout.AlignMiddle, layout.AlignEnd:
		return align
	default:
		return layout.AlignStart
	}
}

// num formats a coordinate or size compactly.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
