package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mastviz/mastfig/pkg/cache"
	"github.com/mastviz/mastfig/pkg/distribution"
	"github.com/mastviz/mastfig/pkg/layout"
	"github.com/mastviz/mastfig/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete distribution → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		ID:        uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("run", result.ID[:8])
	opts.Logger = logger

	// Stage 1: Distribution
	dist, err := BuildDistribution(opts)
	if err != nil {
		return nil, fmt.Errorf("distribution: %w", err)
	}
	result.Distribution = dist
	result.Stats.Total = dist.Total

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, dist, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.ModeCount = len(l.Modes)
	result.Stats.Warnings = len(l.Warnings)
	result.CacheInfo.LayoutHit = layoutHit

	logger.Info("computed layout",
		"preset", opts.PresetName(),
		"modes", len(l.Modes),
		"total", dist.Total,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hash, renderHit, err := r.render(ctx, l, &dist, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.LayoutHash = hash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BuildDistribution decodes and aggregates the input named by opts.
func (r *Runner) BuildDistribution(opts Options) (distribution.Distribution, error) {
	r.applyLogger(&opts)
	return BuildDistribution(opts)
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, dist distribution.Distribution, opts Options) (*layout.Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	cs, err := opts.CanvasSpec()
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.PresetName(), len(dist.Counts))
	start := time.Now()

	cacheKey := r.Keyer.LayoutKey(opts.LayoutKeyOpts(cs, dist))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := layout.UnmarshalResult(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, cache.KeyTypeLayout)
				hooks.OnLayoutComplete(ctx, opts.PresetName(), time.Since(start), nil)
				logWarnings(opts, cached)
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
			opts.Logger.Debug("discarding unreadable cached layout", "key", cacheKey, "error", err)
		} else if err != nil {
			opts.Logger.Warn("layout cache lookup failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeLayout)
	}

	l, err := ComputeLayout(dist, opts)
	hooks.OnLayoutComplete(ctx, opts.PresetName(), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	r.store(ctx, opts, cacheKey, cache.KeyTypeLayout, cache.TTLLayout, func() ([]byte, error) {
		return layout.MarshalResult(l)
	})

	return l, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, dist distribution.Distribution, opts Options) (*layout.Result, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, dist, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// dist is embedded in JSON output when non-nil.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l *layout.Result, dist *distribution.Distribution, opts Options) (map[string][]byte, bool, error) {
	artifacts, _, hit, err := r.render(ctx, l, dist, opts)
	return artifacts, hit, err
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l *layout.Result, dist *distribution.Distribution, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, dist, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, l *layout.Result, dist *distribution.Distribution, opts Options) (map[string][]byte, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}

	// Compute cache key from layout data
	layoutData, err := layout.MarshalResult(l)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte)
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, cache.KeyTypeArtifact)
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
			return artifacts, layoutHash, true, nil // All artifacts from cache
		}
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeArtifact)
	}

	// Render all formats
	rendered, err := Render(ctx, l, dist, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		r.store(ctx, opts, cacheKey, cache.KeyTypeArtifact, cache.TTLArtifact, func() ([]byte, error) {
			return data, nil
		})
	}

	return rendered, layoutHash, false, nil // Cache miss
}

// store writes a cache entry. Failures are logged, never returned.
func (r *Runner) store(ctx context.Context, opts Options, key, keyType string, ttl time.Duration, encode func() ([]byte, error)) {
	data, err := encode()
	if err != nil {
		opts.Logger.Warn("encode cache entry", "key", key, "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		opts.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
