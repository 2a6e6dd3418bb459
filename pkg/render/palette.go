package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mastviz/mastfig/pkg/taxonomy"
)

// CategoryColors is the colour scheme of one failure category.
type CategoryColors struct {
	Stroke string // bar outline, tick and category percentage
	Text   string // mode labels and category title
}

// Palette holds every colour the SVG sink uses.
type Palette struct {
	Categories map[string]CategoryColors
	// Fallback colours categories without an entry, cycled by position.
	Fallback []CategoryColors

	Background   string
	Pills        map[taxonomy.Stage]string
	PillStroke   string
	PillText     string
	HeaderText   string
	SectionText  string
	SublabelText string
	HeaderRule   string
	Separator    string

	FillAlpha       float64
	ZeroFillAlpha   float64
	ZeroStrokeAlpha float64
	ZeroTextAlpha   float64
}

// DefaultPalette returns the publication colour scheme.
func DefaultPalette() Palette {
	return Palette{
		Categories: map[string]CategoryColors{
			"spec":     {Stroke: "#8E5BFF", Text: "#2D1F66"},
			"misalign": {Stroke: "#FF6E60", Text: "#8B2418"},
			"verify":   {Stroke: "#4FBF66", Text: "#1A5A2A"},
		},
		Fallback: []CategoryColors{
			{Stroke: "#3B82F6", Text: "#1E3A8A"},
			{Stroke: "#F59E0B", Text: "#78350F"},
			{Stroke: "#14B8A6", Text: "#134E4A"},
		},
		Background: "#FFFFFF",
		Pills: map[taxonomy.Stage]string{
			taxonomy.StagePre:  "#E9E9E9",
			taxonomy.StageExec: "#DCDCDC",
			taxonomy.StagePost: "#C8C8C8",
		},
		PillStroke:   "#B0B0B0",
		PillText:     "#4D4D4D",
		HeaderText:   "#333333",
		SectionText:  "#555555",
		SublabelText: "#777777",
		HeaderRule:   "#DADADA",
		Separator:    "#E0E0E0",

		FillAlpha:       0.12,
		ZeroFillAlpha:   0.04,
		ZeroStrokeAlpha: 0.4,
		ZeroTextAlpha:   0.45,
	}
}

// Category returns the colours of the category with the given id at
// position idx in the taxonomy.
func (p Palette) Category(id string, idx int) CategoryColors {
	if c, ok := p.Categories[id]; ok {
		return c
	}
	if len(p.Fallback) == 0 {
		return CategoryColors{Stroke: p.HeaderText, Text: p.HeaderText}
	}
	return p.Fallback[idx%len(p.Fallback)]
}

// RGBA converts a #RRGGBB colour to an rgba() expression with alpha a.
// Colours in any other notation are returned unchanged.
func RGBA(hex string, a float64) string {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 || len(h) == len(hex) {
		return hex
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return hex
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", v>>16&0xff, v>>8&0xff, v&0xff, strconv.FormatFloat(a, 'f', -1, 64))
}
