package render

import (
	"encoding/json"

	"github.com/mastviz/mastfig/pkg/distribution"
	"github.com/mastviz/mastfig/pkg/layout"
)

// JSONVersion is the schema version written by [RenderJSON].
const JSONVersion = 1

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent string
	dist   *distribution.Distribution
}

// WithIndent pretty-prints the output with the given indent.
func WithIndent(indent string) JSONOption { return func(r *jsonRenderer) { r.indent = indent } }

// WithDistribution embeds the distribution the layout was computed from.
func WithDistribution(d distribution.Distribution) JSONOption {
	return func(r *jsonRenderer) { r.dist = &d }
}

type jsonOutput struct {
	Version      int                        `json:"version"`
	Distribution *distribution.Distribution `json:"distribution,omitempty"`
	Layout       *layout.Result             `json:"layout"`
}

// RenderJSON exports the layout, and optionally its distribution, as JSON.
func RenderJSON(r *layout.Result, opts ...JSONOption) ([]byte, error) {
	jr := jsonRenderer{}
	for _, opt := range opts {
		opt(&jr)
	}

	out := jsonOutput{Version: JSONVersion, Distribution: jr.dist, Layout: r}
	if jr.indent != "" {
		return json.MarshalIndent(out, "", jr.indent)
	}
	return json.Marshal(out)
}
