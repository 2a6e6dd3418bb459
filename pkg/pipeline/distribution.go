package pipeline

import (
	"github.com/mastviz/mastfig/pkg/distribution"
)

// BuildDistribution decodes the caller's input and aggregates it against
// the default taxonomy.
func BuildDistribution(opts Options) (distribution.Distribution, error) {
	in, err := opts.DistributionInput()
	if err != nil {
		return distribution.Distribution{}, err
	}
	if opts.Logger != nil {
		opts.Logger.Debug("decoded distribution input", "kind", in.Kind())
	}
	return distribution.Build(nil, in)
}
