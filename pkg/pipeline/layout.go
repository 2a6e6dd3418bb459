package pipeline

import (
	"github.com/mastviz/mastfig/pkg/distribution"
	"github.com/mastviz/mastfig/pkg/layout"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout resolves the canvas named by opts and lays out dist on it.
// Soft issues recorded in the result are logged as warnings.
func ComputeLayout(dist distribution.Distribution, opts Options) (*layout.Result, error) {
	cs, err := opts.CanvasSpec()
	if err != nil {
		return nil, err
	}
	r, err := layout.New(layout.WithEstimator(opts.NewEstimator())).Compute(dist, cs)
	if err != nil {
		return nil, err
	}
	logWarnings(opts, r)
	return r, nil
}

func logWarnings(opts Options, r *layout.Result) {
	if opts.Logger == nil {
		return
	}
	for _, w := range r.Warnings {
		opts.Logger.Warn(w)
	}
}
