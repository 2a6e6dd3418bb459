// Package layout computes the geometry of a stage-aligned failure taxonomy
// figure.
//
// The chart area is split into three horizontal stage columns whose widths
// follow the canvas stage weights. Every failure mode gets one row and one
// bar spanning the stages it occurs in; rows are grouped into category
// bands stacked top to bottom with a separator between bands.
//
// # Text fitting
//
// Mode labels are fitted per group of modes sharing a stage span, so bars of
// the same width carry the same font. The fitter tries, in order:
//
//   - the base font on one line
//   - one line scaled down to no less than the minimum font
//   - label and percentage on two lines, when the row has vertical room
//   - the minimum font, truncated with an ellipsis
//
// # Percentage placement
//
// Category percentages sit in the right gutter. A [Placer] keeps every
// anchor at least MinGap to the right of the category's rightmost mode text,
// clamped so the widest possible percentage still fits the canvas.
//
// # Usage
//
//	dist, _ := distribution.Build(nil, distribution.Demo())
//	r, err := layout.Compute(dist, canvas.Default())
//
// [Engine.Compute] is pure: the same inputs always yield the same [Result],
// and an Engine may be shared between goroutines.
package layout
