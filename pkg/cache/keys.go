package cache

import (
	"encoding/json"
	"fmt"
)

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey identifies a computed layout.
	LayoutKey(opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered format of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the inputs a layout depends on.
type LayoutKeyOpts struct {
	Canvas       string `json:"canvas"`       // canvas.Spec.Key()
	Distribution string `json:"distribution"` // distribution.Distribution.Key()
	Estimator    string `json:"estimator"`    // layout.EstimatorName
}

// ArtifactKeyOpts are the render settings an artifact depends on.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Guides     bool    `json:"guides,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	FontFamily string  `json:"font_family,omitempty"`
}

func (o ArtifactKeyOpts) variant() bool {
	return o.Guides || o.Scale != 0 || o.FontFamily != ""
}

// DefaultKeyer produces keys of the form "layout:<sha256>" and
// "artifact:<layout hash>:<format>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey hashes the layout inputs.
func (DefaultKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return hashKey(KeyTypeLayout, opts.Canvas, opts.Distribution, opts.Estimator)
}

// ArtifactKey appends a settings digest when non-default render settings
// are in effect.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	key := fmt.Sprintf("%s:%s:%s", KeyTypeArtifact, layoutHash, opts.Format)
	if opts.variant() {
		data, _ := json.Marshal(opts)
		key += ":" + Hash(data)[:16]
	}
	return key
}

var _ Keyer = DefaultKeyer{}
