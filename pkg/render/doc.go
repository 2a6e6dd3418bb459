// Package render draws computed figure layouts.
//
// # Overview
//
// The layout package decides every position and font; this package only
// paints. It provides:
//
//   - [RenderSVG]: the figure as SVG, drawn with svgo
//   - [RenderJSON]: the layout geometry as versioned JSON
//   - [RenderPNG] and [RenderPDF]: SVG converted with rsvg-convert
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg). When the tool is missing they fail with an UNSUPPORTED
// error carrying install instructions.
//
//	svg := render.RenderSVG(result, render.WithGuides())
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// # Colours
//
// [DefaultPalette] holds the publication colours: one stroke and text
// colour per category, grey stage pills and dashed separators. Zero-count
// modes are drawn with faded fill, stroke and text.
package render
