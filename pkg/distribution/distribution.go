package distribution

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/mastviz/mastfig/pkg/errors"
	"github.com/mastviz/mastfig/pkg/taxonomy"
)

// Distribution holds per-mode counts and the derived percentages.
//
// Every mode code of the taxonomy is present in Counts and ModePct, and every
// category id in CatPct. Percentages are in [0, 100] and unrounded.
type Distribution struct {
	Counts  map[string]int     `json:"counts"`
	ModePct map[string]float64 `json:"mode_pct"`
	CatPct  map[string]float64 `json:"cat_pct"`
	Total   int                `json:"total"`
}

// Build computes a Distribution for spec from in. A nil spec means
// [taxonomy.Default].
//
// Unknown mode codes are ignored. Negative counts fail with
// INVALID_DISTRIBUTION.
func Build(spec *taxonomy.Spec, in Input) (Distribution, error) {
	if spec == nil {
		spec = taxonomy.Default()
	}

	counts := make(map[string]int, spec.ModeCount())
	for _, code := range spec.Codes() {
		counts[code] = 0
	}

	switch in.kind {
	case KindDemo:
		for code, n := range taxonomy.DemoCounts() {
			if spec.Has(code) {
				counts[code] = n
			}
		}
	case KindCounts:
		for code, n := range in.counts {
			if !spec.Has(code) {
				continue
			}
			if n < 0 {
				return Distribution{}, errors.New(errors.ErrCodeInvalidDistribution, "mode %s has negative count %d", code, n)
			}
			counts[code] = n
		}
	case KindLabels:
		for _, l := range in.labels {
			if spec.Has(l.FailureMode) {
				counts[l.FailureMode]++
			}
		}
	default:
		return Distribution{}, errors.New(errors.ErrCodeInvalidInput, "unknown input kind %d", in.kind)
	}

	return fromCounts(spec, counts), nil
}

// MustBuild is like [Build] but panics on error. Intended for demos and
// tests with literal inputs.
func MustBuild(spec *taxonomy.Spec, in Input) Distribution {
	d, err := Build(spec, in)
	if err != nil {
		panic(err)
	}
	return d
}

func fromCounts(spec *taxonomy.Spec, counts map[string]int) Distribution {
	total := 0
	for _, n := range counts {
		total += n
	}

	d := Distribution{
		Counts:  counts,
		ModePct: make(map[string]float64, len(counts)),
		CatPct:  make(map[string]float64),
		Total:   total,
	}
	for code, n := range counts {
		d.ModePct[code] = percent(n, total)
	}
	for _, cat := range spec.Categories() {
		sum := 0
		for _, m := range cat.Modes {
			sum += counts[m.Code]
		}
		d.CatPct[cat.ID] = percent(sum, total)
	}
	return d
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}

// PctTolerance is the largest difference, in percentage points, accepted
// between a supplied percentage and the one derived from the counts.
const PctTolerance = 0.02

// Validate checks a Distribution that did not come from [Build], for example
// one decoded from a cache or supplied by a caller directly. Percentages must
// agree with the counts within [PctTolerance].
func (d Distribution) Validate(spec *taxonomy.Spec) error {
	if spec == nil {
		spec = taxonomy.Default()
	}
	sum := 0
	for _, code := range spec.Codes() {
		n, ok := d.Counts[code]
		if !ok {
			return errors.New(errors.ErrCodeInvalidDistribution, "missing count for mode %s", code)
		}
		if n < 0 {
			return errors.New(errors.ErrCodeInvalidDistribution, "mode %s has negative count %d", code, n)
		}
		if p := d.ModePct[code]; p < 0 || p > 100 || math.IsNaN(p) {
			return errors.New(errors.ErrCodeInvalidDistribution, "mode %s has percentage %g outside [0, 100]", code, p)
		}
		sum += n
	}
	if sum != d.Total {
		return errors.New(errors.ErrCodeInvalidDistribution, "counts sum to %d but total is %d", sum, d.Total)
	}
	for _, code := range spec.Codes() {
		if want, got := percent(d.Counts[code], d.Total), d.ModePct[code]; math.Abs(got-want) > PctTolerance {
			return errors.New(errors.ErrCodeInvalidDistribution, "mode %s percentage %g disagrees with counts (%g)", code, got, want)
		}
	}
	for _, cat := range spec.Categories() {
		p := d.CatPct[cat.ID]
		if p < 0 || p > 100 || math.IsNaN(p) {
			return errors.New(errors.ErrCodeInvalidDistribution, "category %s has percentage %g outside [0, 100]", cat.ID, p)
		}
		n := 0
		for _, m := range cat.Modes {
			n += d.Counts[m.Code]
		}
		if want := percent(n, d.Total); math.Abs(p-want) > PctTolerance {
			return errors.New(errors.ErrCodeInvalidDistribution, "category %s percentage %g disagrees with counts (%g)", cat.ID, p, want)
		}
	}
	return nil
}

// Count returns the count for code, or 0 if unknown.
func (d Distribution) Count(code string) int { return d.Counts[code] }

// IsZero reports whether no failures were recorded.
func (d Distribution) IsZero() bool { return d.Total == 0 }

// Key returns a stable textual encoding of the counts, suitable as hash
// input for cache keys. Percentages are derived and therefore omitted.
func (d Distribution) Key() string {
	codes := make([]string, 0, len(d.Counts))
	for code := range d.Counts {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	var b strings.Builder
	for _, code := range codes {
		b.WriteString(code)
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(d.Counts[code]))
		b.WriteByte(';')
	}
	return b.String()
}

// FormatPct formats a percentage for display next to a mode label,
// e.g. "(11.64%)".
func FormatPct(v float64) string {
	return fmt.Sprintf("(%.2f%%)", v)
}

// FormatPctPlain formats a percentage without parentheses, e.g. "44.44%".
func FormatPctPlain(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
