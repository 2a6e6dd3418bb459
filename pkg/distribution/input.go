package distribution

import "maps"

// Kind identifies which shape an [Input] carries.
type Kind int

const (
	KindDemo Kind = iota
	KindCounts
	KindLabels
)

func (k Kind) String() string {
	switch k {
	case KindCounts:
		return "counts"
	case KindLabels:
		return "labels"
	}
	return "demo"
}

// FailureLabel is a single failure event reported by the annotator.
type FailureLabel struct {
	TraceID     string   `json:"trace_id"`
	StepIdx     int      `json:"step_idx"`
	FailureMode string   `json:"failure_mode"`
	Confidence  *float64 `json:"confidence,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// Input is one of the accepted distribution sources. The zero value is
// equivalent to [Demo].
type Input struct {
	kind   Kind
	counts map[string]int
	labels []FailureLabel
}

// Counts wraps pre-aggregated counts. The map is copied.
func Counts(counts map[string]int) Input {
	return Input{kind: KindCounts, counts: maps.Clone(counts)}
}

// Labels wraps a sequence of failure events. The slice is copied.
func Labels(labels []FailureLabel) Input {
	return Input{kind: KindLabels, labels: append([]FailureLabel(nil), labels...)}
}

// Codes wraps bare mode codes, one per failure event.
func Codes(codes ...string) Input {
	labels := make([]FailureLabel, len(codes))
	for i, c := range codes {
		labels[i] = FailureLabel{FailureMode: c}
	}
	return Input{kind: KindLabels, labels: labels}
}

// Demo selects the built-in demonstration distribution.
func Demo() Input { return Input{kind: KindDemo} }

// Kind returns the input's shape.
func (in Input) Kind() Kind { return in.kind }
