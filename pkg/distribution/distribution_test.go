package distribution

import (
	"math"
	"testing"

	"github.com/mastviz/mastfig/pkg/errors"
	"github.com/mastviz/mastfig/pkg/taxonomy"
)

func approx(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestBuildDemo(t *testing.T) {
	d, err := Build(nil, Demo())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if d.Total != 189 {
		t.Errorf("Total = %d, want 189", d.Total)
	}
	if d.Counts["1.1"] != 22 {
		t.Errorf("Counts[1.1] = %d, want 22", d.Counts["1.1"])
	}
	if !approx(d.ModePct["1.1"], 11.64, 0.005) {
		t.Errorf("ModePct[1.1] = %.4f, want ~11.64", d.ModePct["1.1"])
	}
	if !approx(d.CatPct["spec"], 44.44, 0.005) {
		t.Errorf("CatPct[spec] = %.4f, want ~44.44", d.CatPct["spec"])
	}
}

func TestBuildZero(t *testing.T) {
	d, err := Build(nil, Counts(map[string]int{}))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if !d.IsZero() {
		t.Errorf("IsZero() = false, Total = %d", d.Total)
	}
	for code, p := range d.ModePct {
		if p != 0 {
			t.Errorf("ModePct[%s] = %v, want 0", code, p)
		}
	}
	for id, p := range d.CatPct {
		if p != 0 {
			t.Errorf("CatPct[%s] = %v, want 0", id, p)
		}
	}
	if len(d.Counts) != 14 {
		t.Errorf("len(Counts) = %d, want 14 (zero-filled)", len(d.Counts))
	}
}

func TestBuildLabels(t *testing.T) {
	d, err := Build(nil, Labels([]FailureLabel{
		{TraceID: "t1", StepIdx: 3, FailureMode: "1.3"},
		{TraceID: "t1", StepIdx: 7, FailureMode: "1.3"},
		{TraceID: "t2", StepIdx: 1, FailureMode: "3.2"},
		{TraceID: "t2", StepIdx: 2, FailureMode: "9.9"},
		{TraceID: "t3", StepIdx: 0, FailureMode: ""},
	}))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if d.Total != 3 {
		t.Errorf("Total = %d, want 3 (unknown codes ignored)", d.Total)
	}
	if d.Counts["1.3"] != 2 || d.Counts["3.2"] != 1 {
		t.Errorf("Counts = %v", d.Counts)
	}
	if _, ok := d.Counts["9.9"]; ok {
		t.Error("unknown code 9.9 present in Counts")
	}
	if !approx(d.CatPct["spec"], 200.0/3, 1e-9) {
		t.Errorf("CatPct[spec] = %v, want %v", d.CatPct["spec"], 200.0/3)
	}
}

func TestBuildCountsIgnoresUnknown(t *testing.T) {
	d, err := Build(nil, Counts(map[string]int{"2.2": 4, "7.1": 100}))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if d.Total != 4 {
		t.Errorf("Total = %d, want 4", d.Total)
	}
	if d.ModePct["2.2"] != 100 {
		t.Errorf("ModePct[2.2] = %v, want 100", d.ModePct["2.2"])
	}
}

func TestBuildNegative(t *testing.T) {
	_, err := Build(nil, Counts(map[string]int{"1.1": -1}))
	if !errors.Is(err, errors.ErrCodeInvalidDistribution) {
		t.Errorf("Build() error = %v, want %s", err, errors.ErrCodeInvalidDistribution)
	}
}

func TestPercentagesSumTo100(t *testing.T) {
	inputs := []map[string]int{
		taxonomy.DemoCounts(),
		{"1.1": 1, "1.2": 1, "1.3": 1},
		{"3.3": 7},
		{"1.1": 1, "2.1": 2, "2.2": 3, "2.3": 5, "3.1": 8, "3.2": 13, "3.3": 21},
	}

	for i, counts := range inputs {
		d := MustBuild(nil, Counts(counts))

		var modeSum, catSum float64
		for _, p := range d.ModePct {
			modeSum += p
		}
		for _, p := range d.CatPct {
			catSum += p
		}
		if !approx(modeSum, 100, 0.02) {
			t.Errorf("input %d: sum(ModePct) = %v, want ~100", i, modeSum)
		}
		if !approx(catSum, 100, 0.02) {
			t.Errorf("input %d: sum(CatPct) = %v, want ~100", i, catSum)
		}
	}
}

func TestValidate(t *testing.T) {
	good := MustBuild(nil, Demo())
	if err := good.Validate(nil); err != nil {
		t.Fatalf("Validate() on built distribution: %v", err)
	}

	rounded := MustBuild(nil, Demo())
	for code, p := range rounded.ModePct {
		rounded.ModePct[code] = math.Round(p*100) / 100
	}
	if err := rounded.Validate(nil); err != nil {
		t.Errorf("Validate() rejected percentages rounded to 2 decimals: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(d *Distribution)
	}{
		{"negative count", func(d *Distribution) { d.Counts["1.1"] = -22; d.Total -= 44 }},
		{"missing mode", func(d *Distribution) { delete(d.Counts, "2.5") }},
		{"total mismatch", func(d *Distribution) { d.Total++ }},
		{"pct out of range", func(d *Distribution) { d.ModePct["1.1"] = 140 }},
		{"category nan", func(d *Distribution) { d.CatPct["verify"] = math.NaN() }},
		{"mode pct disagrees with counts", func(d *Distribution) { d.ModePct["1.1"] += 5 }},
		{"category pct disagrees with counts", func(d *Distribution) { d.CatPct["spec"] = 50 }},
		{"zero total with pct", func(d *Distribution) {
			for k := range d.Counts {
				d.Counts[k] = 0
			}
			d.Total = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := MustBuild(nil, Demo())
			tt.mutate(&d)
			if err := d.Validate(nil); !errors.Is(err, errors.ErrCodeInvalidDistribution) {
				t.Errorf("Validate() error = %v, want %s", err, errors.ErrCodeInvalidDistribution)
			}
		})
	}
}

func TestKey(t *testing.T) {
	a := MustBuild(nil, Counts(map[string]int{"1.1": 2, "3.3": 1}))
	b := MustBuild(nil, Codes("3.3", "1.1", "1.1"))
	c := MustBuild(nil, Codes("3.3", "1.1"))

	if a.Key() != b.Key() {
		t.Errorf("Key() differs for equal counts:\n%s\n%s", a.Key(), b.Key())
	}
	if a.Key() == c.Key() {
		t.Error("Key() equal for different counts")
	}
}

func TestFormatPct(t *testing.T) {
	tests := []struct {
		in    float64
		paren string
		plain string
	}{
		{0, "(0.00%)", "0.00%"},
		{11.640211, "(11.64%)", "11.64%"},
		{44.444444, "(44.44%)", "44.44%"},
		{100, "(100.00%)", "100.00%"},
	}

	for _, tt := range tests {
		if got := FormatPct(tt.in); got != tt.paren {
			t.Errorf("FormatPct(%v) = %q, want %q", tt.in, got, tt.paren)
		}
		if got := FormatPctPlain(tt.in); got != tt.plain {
			t.Errorf("FormatPctPlain(%v) = %q, want %q", tt.in, got, tt.plain)
		}
	}
}

func TestInputKind(t *testing.T) {
	var zero Input
	if zero.Kind() != KindDemo {
		t.Errorf("zero Input Kind() = %v, want demo", zero.Kind())
	}
	if Counts(nil).Kind() != KindCounts || Labels(nil).Kind() != KindLabels {
		t.Error("constructor kinds mismatch")
	}
	if KindLabels.String() != "labels" {
		t.Errorf("KindLabels.String() = %q", KindLabels.String())
	}
}
