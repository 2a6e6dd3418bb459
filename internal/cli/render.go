package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mastviz/mastfig/pkg/errors"
	"github.com/mastviz/mastfig/pkg/pipeline"
	"github.com/mastviz/mastfig/pkg/render"
)

// renderOpts holds the render-only command-line flags.
type renderOpts struct {
	output     string  // output file (single format) or base path (multiple)
	formats    string  // comma-separated output formats
	guides     bool    // overlay layout guides
	scale      float64 // PNG pixel density
	fontFamily string  // CSS font stack
}

// renderCommand creates the render command for generating figures.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags layoutFlags
		opts  = renderOpts{scale: render.DefaultPNGScale}
	)

	cmd := &cobra.Command{
		Use:   "render [input.json]",
		Short: "Render the taxonomy figure to SVG, PNG, PDF or JSON",
		Long: `Render the taxonomy figure for a failure distribution.

Accepts the same inputs as 'layout'. Several formats may be requested at once
(-f svg,png); each is written next to the output base path with its own
extension. PNG and PDF output requires rsvg-convert on PATH.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) > 0 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, &flags, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.guides, "guides", false, "overlay chart, clip and gutter guides")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG pixel density")
	cmd.Flags().StringVar(&opts.fontFamily, "font-family", "", "CSS font stack (default: "+render.DefaultFontFamily+")")
	flags.register(cmd)
	registerValueCompletions(cmd)

	return cmd
}

// runRender executes the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, flags *layoutFlags, ro *renderOpts) error {
	opts, err := flags.options(input)
	if err != nil {
		return err
	}
	opts.Formats = parseFormats(ro.formats)
	opts.Guides = ro.guides
	opts.Scale = ro.scale
	opts.FontFamily = ro.fontFamily
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	paths, err := outputPaths(ro.output, input, opts.Formats)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	for _, format := range opts.Formats {
		if err := writeOutput(paths[format], result.Artifacts[format]); err != nil {
			return fmt.Errorf("write %s: %w", format, err)
		}
	}
	if paths[opts.Formats[0]] == stdinPath {
		return nil
	}

	printSuccess("Rendered %s", StyleHighlight.Render(inputName(input)))
	printStats(result.Stats.ModeCount, result.Stats.Total, result.Stats.Warnings,
		result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	printCategories(result.Layout)
	printWarnings(result.Layout.Warnings)
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	return nil
}

// outputPaths maps each format to its output file. A single format writes
// to output verbatim when given; otherwise every format gets the base path
// plus its extension. Outputs never overwrite the input: an explicit output
// naming the input fails with INVALID_INPUT, and a derived path that would
// collide becomes <base>.layout.<format>.
func outputPaths(output, input string, formats []string) (map[string]string, error) {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		if sameFile(output, input) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "output %s would overwrite the input", output)
		}
		paths[formats[0]] = output
		return paths, nil
	}
	base := basePath(output, input)
	for _, f := range formats {
		p := base + "." + f
		if sameFile(p, input) {
			p = base + ".layout." + f
		}
		paths[f] = p
	}
	return paths, nil
}

// sameFile reports whether path names the input file. Stdin and stdout
// never collide.
func sameFile(path, input string) bool {
	if path == stdinPath || input == "" || input == stdinPath {
		return false
	}
	return filepath.Clean(path) == filepath.Clean(input)
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" || output == stdinPath {
		return defaultBase(input)
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
