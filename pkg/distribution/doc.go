// Package distribution turns annotation output into per-mode failure counts
// and percentages.
//
// # Inputs
//
// Three input shapes are accepted, each built by its own constructor:
//
//   - [Counts]: pre-aggregated mode code to count
//   - [Labels]: one [FailureLabel] per detected failure event
//   - [Demo]: no data; the built-in demonstration counts are used
//
// [Decode] maps the JSON shapes produced by the annotation pipeline onto one
// of these, so shape detection happens once at the boundary.
//
// # Building
//
// [Build] zero-fills every mode of the taxonomy, applies the input and
// computes percentages. Unknown mode codes are ignored. A zero total yields
// all-zero percentages; there is no division by zero.
//
//	dist, err := distribution.Build(taxonomy.Default(), distribution.Counts(map[string]int{
//	    "1.1": 4, "2.6": 1,
//	}))
//	fmt.Println(distribution.FormatPct(dist.ModePct["1.1"])) // (80.00%)
//
// Percentages are stored unrounded. Display rounding happens in
// [FormatPct] and [FormatPctPlain].
package distribution
