package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mastviz/mastfig/pkg/render"
)

// layoutCommand creates the layout command for computing figure geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [input.json]",
		Short: "Compute the figure layout from a failure distribution",
		Long: `Compute the stage-aligned figure layout from a failure distribution.

The input may hold bare counts ({"1.1": 3}), wrapped counts ({"counts": {...}}),
an annotation result ({"failure_labels": [...]}) or a bare label list. Without
an input file the demo distribution is used; "-" reads standard input.

The output is the layout JSON (same format as 'render -f json'), listing every
bar, label anchor and font decision.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) > 0 {
				input = args[0]
			}
			return c.runLayout(cmd.Context(), input, &flags, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `output file (default: <input>.layout.json, "-" for stdout)`)
	flags.register(cmd)
	registerValueCompletions(cmd)

	return cmd
}

// runLayout computes the layout and writes it as JSON.
func (c *CLI) runLayout(ctx context.Context, input string, flags *layoutFlags, output string) error {
	opts, err := flags.options(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	dist, err := runner.BuildDistribution(opts)
	if err != nil {
		return err
	}
	l, cached, err := runner.ComputeLayoutWithCacheInfo(ctx, dist, opts)
	if err != nil {
		return err
	}
	prog.done("Computed layout")

	data, err := render.RenderJSON(l, render.WithIndent("  "), render.WithDistribution(dist))
	if err != nil {
		return err
	}

	if output == "" {
		output = defaultBase(input) + ".layout.json"
	}
	if err := writeOutput(output, data); err != nil {
		return err
	}
	if output == stdinPath {
		return nil
	}

	printSuccess("Layout computed from %s", StyleHighlight.Render(inputName(input)))
	printKeyValue("Canvas", fmt.Sprintf("%s %gx%g", opts.PresetName(), l.Canvas.Width, l.Canvas.Height))
	printKeyValue("Estimator", l.Estimator)
	printStats(len(l.Modes), dist.Total, len(l.Warnings), cached)
	printCategories(l)
	printWarnings(l.Warnings)
	printFile(output)
	printNewline()
	printNextStep("Render it", strings.TrimSpace(fmt.Sprintf("%s render %s", appName, input)))
	return nil
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
