package canvas

import (
	"slices"

	"github.com/mastviz/mastfig/pkg/errors"
)

// DefaultPreset is the preset used when none is named.
const DefaultPreset = "default"

// DefaultTitle is the header title drawn above the stage pills.
const DefaultTitle = "Inter-Agent Conversation Stages"

// PresetInfo describes a named preset.
type PresetInfo struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	AliasOf     string  `json:"alias_of,omitempty"`
}

type preset struct {
	desc  string
	build func() Spec
}

var presets = map[string]preset{
	"rev6":    {"2000x1200 print layout with a wide category percentage column", rev6},
	"rev7":    {"1600x900 screen layout with auto-scaled metrics", rev7},
	"compact": {"1200x675 slide layout, rev7 metrics scaled down", compact},
}

var aliases = map[string]string{
	DefaultPreset: "rev7",
}

// Preset returns the named preset. "default" resolves to rev7.
func Preset(name string) (Spec, error) {
	if name == "" {
		name = DefaultPreset
	}
	if err := errors.ValidatePresetName(name); err != nil {
		return Spec{}, err
	}
	if target, ok := aliases[name]; ok {
		name = target
	}
	p, ok := presets[name]
	if !ok {
		return Spec{}, errors.New(errors.ErrCodeInvalidPreset, "unknown preset %q (available: %v)", name, Names())
	}
	return p.build(), nil
}

// MustPreset is like [Preset] but panics for unknown names.
func MustPreset(name string) Spec {
	s, err := Preset(name)
	if err != nil {
		panic(err)
	}
	return s
}

// Default returns the default preset.
func Default() Spec { return rev7() }

// Names lists preset names and aliases in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets)+len(aliases))
	for n := range presets {
		names = append(names, n)
	}
	for n := range aliases {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Presets describes every preset and alias, sorted by name.
func Presets() []PresetInfo {
	var out []PresetInfo
	for _, n := range Names() {
		target := n
		if t, ok := aliases[n]; ok {
			target = t
		}
		s := presets[target].build()
		info := PresetInfo{Name: n, Description: presets[target].desc, Width: s.Width, Height: s.Height}
		if target != n {
			info.AliasOf = target
		}
		out = append(out, info)
	}
	return out
}

func rev6() Spec {
	return Spec{
		Name:   "rev6",
		Title:  DefaultTitle,
		Width:  2000,
		Height: 1200,

		Weights: StageWeights{Pre: 0.85, Exec: 1.40, Post: 1.35},

		LeftGutter:   340,
		RightGutter:  320,
		SafePad:      80,
		TopHeader:    140,
		BottomMargin: 40,
		SideMargin:   20,

		RowHeight:   45,
		RowInnerPad: 10,
		IntraRowGap: 14,
		CategoryGap: 55,

		TextPad:    16,
		OuterInset: 6,
		ClipBuffer: 5,

		BaseFont:     16,
		MinFont:      14,
		LineSpacing:  1.1,
		AllowTwoLine: true,

		CatPctFont:    52,
		CatPctMinFont: 32,
		PctColumnGap:  40,
		MinGap:        60,

		CatLabelGap:  34,
		CatTitleFont: 26,
		CatSubFont:   16,
		TickOffset:   6,
		TickWidth:    3,

		TitleFont:       30,
		HeaderFont:      18,
		PillFont:        16,
		PillHeight:      42,
		PillCenterRatio: 0.66,

		ShowModePctParens: true,
		ShowZeroModes:     true,

		ReferenceWidth: 2000,
	}
}

func rev7() Spec {
	return Spec{
		Name:   "rev7",
		Title:  DefaultTitle,
		Width:  1600,
		Height: 900,

		Weights: StageWeights{Pre: 1.0, Exec: 1.5, Post: 1.2},

		LeftGutter:   300,
		RightGutter:  240,
		TopHeader:    136,
		BottomMargin: 40,
		SideMargin:   20,

		RowHeight:   36,
		RowInnerPad: 6,
		IntraRowGap: 8,
		CategoryGap: 56,

		TextPad:    10,
		OuterInset: 4,
		ClipBuffer: 5,

		BaseFont:     16,
		MinFont:      12,
		LineSpacing:  1.1,
		AllowTwoLine: true,

		CatPctFont:    22,
		CatPctMinFont: 16,
		PctColumnGap:  16,
		MinGap:        24,

		CatLabelGap:  24,
		CatTitleFont: 26,
		CatSubFont:   16,
		TickOffset:   6,
		TickWidth:    3,

		TitleFont:       30,
		HeaderFont:      18,
		PillFont:        16,
		PillHeight:      28,
		PillCenterRatio: 0.6,

		ShowModePctParens: true,
		ShowZeroModes:     true,

		AutoScale:      true,
		ReferenceWidth: 1600,
	}
}

func compact() Spec {
	s := rev7().WithSize(1200, 675)
	s.Name = "compact"
	return s
}
