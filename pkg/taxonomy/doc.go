// Package taxonomy defines the fixed two-level failure taxonomy drawn by the
// figure: three categories, fourteen failure modes, and the conversation
// stages each mode's bar covers.
//
// # Structure
//
// A [Spec] is an ordered list of [Category] values, each holding an ordered
// list of [Mode] values. Every mode declares a stage span: the contiguous,
// ordered subset of [StagePre], [StageExec] and [StagePost] its bar covers.
//
//	spec := taxonomy.Default()
//	for _, cat := range spec.Categories() {
//	    for _, m := range cat.Modes {
//	        fmt.Println(m.FullLabel(), m.SpanKey())
//	    }
//	}
//
// # Immutability
//
// A Spec is built once (normally via [Default]) and never mutated. All
// accessors return copies, so one Spec can be shared by any number of
// goroutines without synchronization.
package taxonomy
