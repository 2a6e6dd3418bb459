package taxonomy

import (
	"testing"

	"github.com/mastviz/mastfig/pkg/errors"
)

func TestDefault(t *testing.T) {
	s := Default()

	if got := s.ModeCount(); got != 14 {
		t.Fatalf("ModeCount() = %d, want 14", got)
	}
	if got := len(s.Categories()); got != 3 {
		t.Fatalf("len(Categories()) = %d, want 3", got)
	}
	if Default() != s {
		t.Error("Default() returned a different instance on second call")
	}

	seen := make(map[string]bool)
	for _, code := range s.Codes() {
		if seen[code] {
			t.Errorf("duplicate code %s", code)
		}
		seen[code] = true
	}
}

func TestDefaultSpans(t *testing.T) {
	tests := []struct {
		code string
		key  string
		cat  string
	}{
		{"1.1", "pre", "spec"},
		{"1.3", "exec", "spec"},
		{"1.5", "exec+post", "spec"},
		{"2.6", "exec+post", "misalign"},
		{"3.1", "exec+post", "verify"},
		{"3.3", "post", "verify"},
	}

	s := Default()
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			m, ok := s.Mode(tt.code)
			if !ok {
				t.Fatalf("Mode(%q) not found", tt.code)
			}
			if got := m.SpanKey(); got != tt.key {
				t.Errorf("SpanKey() = %q, want %q", got, tt.key)
			}
			if got, _ := s.CategoryOf(tt.code); got != tt.cat {
				t.Errorf("CategoryOf() = %q, want %q", got, tt.cat)
			}
		})
	}
}

func TestCategoriesIsACopy(t *testing.T) {
	s := Default()
	cats := s.Categories()
	cats[0].Modes[0].Label = "mutated"

	m, _ := s.Mode(cats[0].Modes[0].Code)
	if m.Label == "mutated" {
		t.Error("mutating Categories() result changed the taxonomy")
	}
	c, _ := s.Category(cats[0].ID)
	if c.Modes[0].Label == "mutated" {
		t.Error("mutating Categories() result changed Category()")
	}
}

func TestModeHelpers(t *testing.T) {
	m := Mode{Code: "2.6", Label: "Reasoning-Action Mismatch", Span: []Stage{StageExec, StagePost}}

	if got := m.FullLabel(); got != "2.6 Reasoning-Action Mismatch" {
		t.Errorf("FullLabel() = %q", got)
	}
	if !m.Covers(StagePost) || m.Covers(StagePre) {
		t.Errorf("Covers() mismatch for span %v", m.Span)
	}
}

func TestStage(t *testing.T) {
	tests := []struct {
		stage Stage
		index int
		label string
	}{
		{StagePre, 0, "Pre Execution"},
		{StageExec, 1, "Execution"},
		{StagePost, 2, "Post Execution"},
		{Stage("during"), -1, "during"},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			if got := tt.stage.Index(); got != tt.index {
				t.Errorf("Index() = %d, want %d", got, tt.index)
			}
			if got := tt.stage.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
		})
	}
}

func TestNewRejects(t *testing.T) {
	ok := Mode{Code: "1.1", Label: "ok", Span: []Stage{StagePre}}

	tests := []struct {
		name string
		cats []Category
	}{
		{"no categories", nil},
		{"empty id", []Category{{Name: "x", Modes: []Mode{ok}}}},
		{"duplicate category", []Category{{ID: "a", Modes: []Mode{ok}}, {ID: "a"}}},
		{"duplicate code", []Category{{ID: "a", Modes: []Mode{ok}}, {ID: "b", Modes: []Mode{ok}}}},
		{"bad code", []Category{{ID: "a", Modes: []Mode{{Code: "x", Span: []Stage{StagePre}}}}}},
		{"empty span", []Category{{ID: "a", Modes: []Mode{{Code: "1.1"}}}}},
		{"unknown stage", []Category{{ID: "a", Modes: []Mode{{Code: "1.1", Span: []Stage{"during"}}}}}},
		{"gap in span", []Category{{ID: "a", Modes: []Mode{{Code: "1.1", Span: []Stage{StagePre, StagePost}}}}}},
		{"reversed span", []Category{{ID: "a", Modes: []Mode{{Code: "1.1", Span: []Stage{StagePost, StageExec}}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cats)
			if err == nil {
				t.Fatal("New() error = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("New() error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestDemoCounts(t *testing.T) {
	counts := DemoCounts()
	s := Default()

	total := 0
	for code, n := range counts {
		if !s.Has(code) {
			t.Errorf("demo count for unknown code %s", code)
		}
		total += n
	}
	if total != 189 {
		t.Errorf("demo total = %d, want 189", total)
	}
	if len(counts) != s.ModeCount() {
		t.Errorf("len(DemoCounts()) = %d, want %d", len(counts), s.ModeCount())
	}
}
