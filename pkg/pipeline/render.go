package pipeline

import (
	"context"
	"fmt"

	"github.com/mastviz/mastfig/pkg/distribution"
	"github.com/mastviz/mastfig/pkg/errors"
	"github.com/mastviz/mastfig/pkg/layout"
	"github.com/mastviz/mastfig/pkg/render"
)

// Render generates output artifacts in the requested formats. dist is
// embedded in JSON output when non-nil.
func Render(ctx context.Context, l *layout.Result, dist *distribution.Distribution, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = render.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = render.RenderPNG(ctx, l,
				render.WithPNGSVGOptions(svgOpts...),
				render.WithScale(opts.Scale))
		case FormatPDF:
			data, err = render.RenderPDF(ctx, l, render.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			jsonOpts := []render.JSONOption{render.WithIndent("  ")}
			if dist != nil {
				jsonOpts = append(jsonOpts, render.WithDistribution(*dist))
			}
			data, err = render.RenderJSON(l, jsonOpts...)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options shared by the SVG, PNG and
// PDF outputs.
func buildSVGOptions(opts Options) []render.SVGOption {
	var svgOpts []render.SVGOption
	if opts.Guides {
		svgOpts = append(svgOpts, render.WithGuides())
	}
	if opts.FontFamily != "" {
		svgOpts = append(svgOpts, render.WithFontFamily(opts.FontFamily))
	}
	return svgOpts
}
