// Package canvas holds the pixel and font configuration of a figure.
//
// A [Spec] is a plain value: canvas size, stage weights, gutters, row
// metrics, padding constants and font bounds. It carries no state and is
// safe to copy and share.
//
// # Presets
//
// Named, versioned defaults are available through [Preset]:
//
//   - rev6: 2000x1200, wide right gutter for large category percentages
//   - rev7: 1600x900, auto-scaled metrics (aliased as "default")
//   - compact: 1200x675, rev7 metrics scaled down for slides
//
// Resize a preset with [Spec.WithSize]. When AutoScale is set, [Spec.Resolve]
// multiplies every pixel constant by clamp(Width/ReferenceWidth, 0.7, 1.25);
// the layout engine always works on the resolved value.
//
// # Overrides
//
// [LoadFile] and [Decode] read TOML overrides. A file may name a preset to
// start from and override any field; unknown keys are rejected:
//
//	preset = "rev6"
//	height = 1100
//	show_zero_modes = false
//
//	[stage_weights]
//	post = 1.5
package canvas
