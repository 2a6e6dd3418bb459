// Package pipeline provides the figure pipeline shared by the CLI and the
// HTTP API.
//
// This package runs the distribution → layout → render sequence so every
// entry point applies the same defaults, caching and logging.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Distribution: decode the caller's counts or failure labels and
//     aggregate them against the default taxonomy
//  2. Layout: compute the stage-aligned geometry for a canvas preset
//  3. Render: generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run on its own or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Preset:       "rev7",
//	    Distribution: json.RawMessage(`{"1.1": 22, "2.6": 28}`),
//	    Formats:      []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mastviz/mastfig/pkg/cache"
	"github.com/mastviz/mastfig/pkg/canvas"
	"github.com/mastviz/mastfig/pkg/distribution"
	"github.com/mastviz/mastfig/pkg/errors"
	"github.com/mastviz/mastfig/pkg/layout"
	"github.com/mastviz/mastfig/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Estimator names accepted in Options.Estimator.
const (
	EstimatorHeuristic = "heuristic"
	EstimatorCells     = "cells"
)

// DefaultEstimator is the default text width estimator.
const DefaultEstimator = EstimatorHeuristic

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidEstimators is the set of supported width estimators.
var ValidEstimators = map[string]bool{
	EstimatorHeuristic: true,
	EstimatorCells:     true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the figure pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Distribution options. Distribution accepts every shape
	// distribution.Decode understands; empty means the demo counts.
	Distribution json.RawMessage `json:"distribution,omitempty"`

	// Layout options
	Preset    string  `json:"preset,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	Estimator string  `json:"estimator,omitempty"`
	HideZero  bool    `json:"hide_zero,omitempty"` // Hide zero-count modes instead of ghosting them
	Refresh   bool    `json:"refresh,omitempty"`   // Bypass cached layouts and artifacts

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Guides     bool     `json:"guides,omitempty"`
	Scale      float64  `json:"scale,omitempty"` // PNG pixel density
	FontFamily string   `json:"font_family,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger         `json:"-"`
	Canvas *canvas.Spec        `json:"-"` // Replaces Preset, e.g. from a TOML file
	Input  *distribution.Input `json:"-"` // Replaces Distribution

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies this run in logs and API responses.
	ID string

	// Distribution is the aggregated input.
	Distribution distribution.Distribution

	// Layout is the computed figure geometry.
	Layout *layout.Result

	// LayoutHash is the content hash of the layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ModeCount  int
	Total      int
	Warnings   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEstimator checks that an estimator name is valid.
func ValidateEstimator(name string) error {
	if !ValidEstimators[name] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid estimator: %q (must be one of: heuristic, cells)", name)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Preset == "" && o.Canvas == nil {
		o.Preset = canvas.DefaultPreset
	}
	if o.Estimator == "" {
		o.Estimator = DefaultEstimator
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "size must not be negative, got %gx%g", o.Width, o.Height)
	}
	if err := canvas.CheckSize(o.Width, o.Height); err != nil {
		return err
	}
	if o.Canvas == nil {
		if err := errors.ValidatePresetName(o.Preset); err != nil {
			return err
		}
	}
	return ValidateEstimator(o.Estimator)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = render.DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 || o.Scale > render.MaxPNGScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %g], got %g", render.MaxPNGScale, o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// CanvasSpec returns the canvas the layout is computed on: Canvas when set,
// the named preset otherwise, resized when Width or Height is given.
func (o *Options) CanvasSpec() (canvas.Spec, error) {
	var cs canvas.Spec
	if o.Canvas != nil {
		cs = *o.Canvas
	} else {
		p, err := canvas.Preset(o.Preset)
		if err != nil {
			return canvas.Spec{}, err
		}
		cs = p
	}
	if o.Width > 0 || o.Height > 0 {
		w, h := cs.Width, cs.Height
		if o.Width > 0 {
			w = o.Width
		}
		if o.Height > 0 {
			h = o.Height
		}
		cs = cs.WithSize(w, h)
	}
	if o.HideZero {
		cs.ShowZeroModes = false
	}
	return cs, nil
}

// DistributionInput returns Input when set and decodes Distribution otherwise.
func (o *Options) DistributionInput() (distribution.Input, error) {
	if o.Input != nil {
		return *o.Input, nil
	}
	return distribution.Decode(o.Distribution)
}

// NewEstimator returns the width estimator named by Estimator.
func (o *Options) NewEstimator() layout.Estimator {
	if o.Estimator == EstimatorCells {
		return layout.CellWidth{}
	}
	return layout.Heuristic{}
}

// PresetName names the canvas for logs and hooks.
func (o *Options) PresetName() string {
	if o.Canvas != nil {
		return "custom"
	}
	return o.Preset
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(cs canvas.Spec, dist distribution.Distribution) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Canvas:       cs.Key(),
		Distribution: dist.Key(),
		Estimator:    layout.EstimatorName(o.NewEstimator()),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:     format,
		Guides:     o.Guides,
		FontFamily: o.FontFamily,
	}
	if format == FormatPNG && o.Scale != render.DefaultPNGScale {
		opts.Scale = o.Scale
	}
	return opts
}
