// Package pkg provides the core libraries for mastfig taxonomy figures.
//
// # Overview
//
// mastfig turns failure counts from the MAST multi-agent failure taxonomy
// into a stage-aligned figure: each failure mode is a bar spanning the
// agent stages it occurs in, grouped by category, with percentage labels
// that never collide with mode text. The pkg directory is organized into
// three areas:
//
//  1. Domain logic: [taxonomy], [distribution], [canvas], [layout]
//  2. Output: [render] (SVG, PNG, PDF, JSON)
//  3. Orchestration: [pipeline], [cache], [api], [observability]
//
// # Architecture
//
// The typical data flow:
//
//	counts or failure labels
//	         ↓
//	    [distribution] package (aggregate and compute percentages)
//	         ↓
//	    [layout] package (stage spans, rows, font fitting, label placement)
//	         ↓
//	    [render] package (paint the geometry)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	import (
//	    "github.com/mastviz/mastfig/pkg/canvas"
//	    "github.com/mastviz/mastfig/pkg/distribution"
//	    "github.com/mastviz/mastfig/pkg/layout"
//	    "github.com/mastviz/mastfig/pkg/render"
//	)
//
//	// 1. Aggregate the input
//	dist, _ := distribution.Build(nil, distribution.Counts(map[string]int{"1.1": 22, "2.6": 28}))
//
//	// 2. Compute the layout on a preset canvas
//	l, _ := layout.Compute(dist, canvas.MustPreset("rev7"))
//
//	// 3. Render to SVG
//	svg := render.RenderSVG(l)
//
// # Main Packages
//
// [taxonomy] - The fixed three-category, fourteen-mode MAST taxonomy and
// the three agent stages each mode spans.
//
// [distribution] - Input decoding (counts, annotation labels) and the
// aggregated counts and percentages a figure is drawn from.
//
// [canvas] - Canvas presets, TOML overrides and derived chart bounds.
//
// [layout] - The layout engine. Pure and deterministic; the only pluggable
// piece is the text width estimator.
//
// [render] - SVG drawing plus PNG/PDF conversion through rsvg-convert.
//
// [pipeline] - The distribution → layout → render sequence with caching,
// shared by the CLI and the HTTP API.
//
// [cache] - File, Redis and MongoDB cache backends and cache key derivation.
//
// [api] - HTTP handlers over the pipeline.
//
// [errors] - Coded errors shared by every package.
package pkg
