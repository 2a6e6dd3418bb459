package taxonomy

import "sync"

var (
	defaultSpec     *Spec
	defaultSpecOnce sync.Once
)

// Default returns the process-wide MAST taxonomy. It is built on first use
// and shared afterwards.
func Default() *Spec {
	defaultSpecOnce.Do(func() {
		s, err := New(defaultCategories())
		if err != nil {
			panic("taxonomy: invalid built-in taxonomy: " + err.Error())
		}
		defaultSpec = s
	})
	return defaultSpec
}

func defaultCategories() []Category {
	pre := []Stage{StagePre}
	exec := []Stage{StageExec}
	post := []Stage{StagePost}
	execPost := []Stage{StageExec, StagePost}

	return []Category{
		{
			ID:       "spec",
			Name:     "Specification Issues",
			Sublabel: "System Design",
			Modes: []Mode{
				{Code: "1.1", Label: "Disobey Task Specification", Span: pre},
				{Code: "1.2", Label: "Disobey Role Specification", Span: pre},
				{Code: "1.3", Label: "Step Repetition", Span: exec},
				{Code: "1.4", Label: "Loss of Conversation History", Span: exec},
				{Code: "1.5", Label: "Unaware of Termination Conditions", Span: execPost},
			},
		},
		{
			ID:       "misalign",
			Name:     "Inter-Agent Misalignment",
			Sublabel: "Agent Coordination",
			Modes: []Mode{
				{Code: "2.1", Label: "Conversation Reset", Span: exec},
				{Code: "2.2", Label: "Fail to Ask for Clarification", Span: exec},
				{Code: "2.3", Label: "Task Derailment", Span: exec},
				{Code: "2.4", Label: "Information Withholding", Span: exec},
				{Code: "2.5", Label: "Ignored Other Agent's Input", Span: exec},
				{Code: "2.6", Label: "Reasoning-Action Mismatch", Span: execPost},
			},
		},
		{
			ID:       "verify",
			Name:     "Task Verification",
			Sublabel: "Quality Control",
			Modes: []Mode{
				{Code: "3.1", Label: "Premature Termination", Span: execPost},
				{Code: "3.2", Label: "No or Incomplete Verification", Span: post},
				{Code: "3.3", Label: "Incorrect Verification", Span: post},
			},
		},
	}
}

// DemoCounts returns the demonstration distribution used when no data is
// supplied (189 failures in total).
func DemoCounts() map[string]int {
	return map[string]int{
		"1.1": 22, "1.2": 1, "1.3": 34, "1.4": 7, "1.5": 20,
		"2.1": 5, "2.2": 23, "2.3": 14, "2.4": 3, "2.5": 0, "2.6": 28,
		"3.1": 12, "3.2": 10, "3.3": 10,
	}
}
