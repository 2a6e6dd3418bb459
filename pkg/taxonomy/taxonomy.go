package taxonomy

import (
	"slices"
	"strings"

	"github.com/mastviz/mastfig/pkg/errors"
)

// Stage identifies one of the three horizontal conversation phases.
type Stage string

const (
	StagePre  Stage = "pre"
	StageExec Stage = "exec"
	StagePost Stage = "post"
)

// Stages lists every stage in left-to-right drawing order.
var Stages = [...]Stage{StagePre, StageExec, StagePost}

// Index returns the stage's position in [Stages], or -1 if unknown.
func (s Stage) Index() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}

// Label returns the human readable pill text for the stage.
func (s Stage) Label() string {
	switch s {
	case StagePre:
		return "Pre Execution"
	case StageExec:
		return "Execution"
	case StagePost:
		return "Post Execution"
	}
	return string(s)
}

// Mode is a single failure mode.
type Mode struct {
	Code  string  `json:"code"`
	Label string  `json:"label"`
	Span  []Stage `json:"stage_span"`
}

// FullLabel returns "code label", e.g. "1.3 Step Repetition".
func (m Mode) FullLabel() string { return m.Code + " " + m.Label }

// SpanKey returns the stage span signature, e.g. "exec+post". Modes with
// equal keys have bars of identical horizontal extent.
func (m Mode) SpanKey() string {
	parts := make([]string, len(m.Span))
	for i, s := range m.Span {
		parts[i] = string(s)
	}
	return strings.Join(parts, "+")
}

// Covers reports whether the mode's bar covers stage s.
func (m Mode) Covers(s Stage) bool { return slices.Contains(m.Span, s) }

// Category groups related failure modes.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Sublabel string `json:"sublabel"`
	Modes    []Mode `json:"modes"`
}

// Codes returns the codes of the category's modes in declared order.
func (c Category) Codes() []string {
	codes := make([]string, len(c.Modes))
	for i, m := range c.Modes {
		codes[i] = m.Code
	}
	return codes
}

// Spec is the immutable, ordered taxonomy.
type Spec struct {
	categories []Category
	modes      map[string]Mode
	owner      map[string]string
	order      []string
}

// New validates categories and builds a Spec. Mode codes must be unique
// across all categories and every stage span must be non-empty, known,
// strictly ordered and contiguous.
func New(categories []Category) (*Spec, error) {
	if len(categories) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "taxonomy has no categories")
	}

	s := &Spec{
		modes: make(map[string]Mode),
		owner: make(map[string]string),
	}
	seenCats := make(map[string]bool, len(categories))

	for _, cat := range categories {
		if cat.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "category %q has empty id", cat.Name)
		}
		if seenCats[cat.ID] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate category id %q", cat.ID)
		}
		seenCats[cat.ID] = true

		cp := cat
		cp.Modes = make([]Mode, len(cat.Modes))
		for i, m := range cat.Modes {
			if err := errors.ValidateModeCode(m.Code); err != nil {
				return nil, err
			}
			if _, dup := s.modes[m.Code]; dup {
				return nil, errors.New(errors.ErrCodeInvalidInput, "mode %s appears in more than one place", m.Code)
			}
			if err := validateSpan(m); err != nil {
				return nil, err
			}
			m.Span = slices.Clone(m.Span)
			cp.Modes[i] = m
			s.modes[m.Code] = m
			s.owner[m.Code] = cat.ID
			s.order = append(s.order, m.Code)
		}
		s.categories = append(s.categories, cp)
	}
	return s, nil
}

func validateSpan(m Mode) error {
	if len(m.Span) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "mode %s has an empty stage span", m.Code)
	}
	prev := -1
	for _, st := range m.Span {
		idx := st.Index()
		if idx < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "mode %s: unknown stage %q", m.Code, st)
		}
		if prev >= 0 && idx != prev+1 {
			return errors.New(errors.ErrCodeInvalidInput, "mode %s: stage span must be ordered and contiguous", m.Code)
		}
		prev = idx
	}
	return nil
}

// Categories returns a deep copy of the categories in declared order.
func (s *Spec) Categories() []Category {
	out := make([]Category, len(s.categories))
	for i, c := range s.categories {
		out[i] = c.clone()
	}
	return out
}

func (c Category) clone() Category {
	modes := make([]Mode, len(c.Modes))
	for i, m := range c.Modes {
		modes[i] = m.clone()
	}
	c.Modes = modes
	return c
}

func (m Mode) clone() Mode {
	m.Span = slices.Clone(m.Span)
	return m
}

// Codes returns every mode code in declared order.
func (s *Spec) Codes() []string { return slices.Clone(s.order) }

// ModeCount returns the number of modes.
func (s *Spec) ModeCount() int { return len(s.order) }

// Mode looks up a mode by code.
func (s *Spec) Mode(code string) (Mode, bool) {
	m, ok := s.modes[code]
	return m.clone(), ok
}

// Category looks up a category by id.
func (s *Spec) Category(id string) (Category, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c.clone(), true
		}
	}
	return Category{}, false
}

// CategoryOf returns the id of the category owning code.
func (s *Spec) CategoryOf(code string) (string, bool) {
	id, ok := s.owner[code]
	return id, ok
}

// Has reports whether code is a known mode.
func (s *Spec) Has(code string) bool {
	_, ok := s.modes[code]
	return ok
}
