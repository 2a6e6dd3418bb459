package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mastviz/mastfig/pkg/canvas"
	"github.com/mastviz/mastfig/pkg/pipeline"
)

// stdinPath selects standard input as the distribution source.
const stdinPath = "-"

// layoutFlags holds the flags shared by the layout and render commands.
type layoutFlags struct {
	preset     string  // canvas preset name or alias
	canvasFile string  // TOML canvas overrides; replaces preset
	width      float64 // canvas width override
	height     float64 // canvas height override
	estimator  string  // width estimator: heuristic or cells
	hideZero   bool    // hide zero-count modes instead of ghosting them
	noCache    bool    // disable the layout cache
	refresh    bool    // recompute even when cached
}

// register binds the flags to cmd.
func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.preset, "preset", "p", canvas.DefaultPreset, "canvas preset (see 'mastfig presets')")
	cmd.Flags().StringVar(&f.canvasFile, "canvas", "", "TOML file with canvas overrides (replaces --preset)")
	cmd.Flags().Float64Var(&f.width, "width", 0, "canvas width override in px")
	cmd.Flags().Float64Var(&f.height, "height", 0, "canvas height override in px")
	cmd.Flags().StringVar(&f.estimator, "estimator", pipeline.DefaultEstimator, "text width estimator: heuristic, cells")
	cmd.Flags().BoolVar(&f.hideZero, "hide-zero", false, "hide zero-count modes instead of ghosting them")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when a cached result exists")
}

// options builds pipeline options for the distribution read from input.
func (f *layoutFlags) options(input string) (pipeline.Options, error) {
	data, err := readDistribution(input)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		Distribution: data,
		Preset:       f.preset,
		Width:        f.width,
		Height:       f.height,
		Estimator:    f.estimator,
		HideZero:     f.hideZero,
		Refresh:      f.refresh,
	}
	if f.canvasFile != "" {
		cs, err := canvas.LoadFile(f.canvasFile)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Canvas = &cs
	}
	return opts, nil
}

// readDistribution returns the raw distribution document. An empty path
// selects the demo distribution and "-" reads standard input.
func readDistribution(path string) (json.RawMessage, error) {
	switch path {
	case "":
		return nil, nil
	case stdinPath:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return data, nil
	}
}

// inputName describes the input in status output.
func inputName(path string) string {
	switch path {
	case "":
		return "demo distribution"
	case stdinPath:
		return "stdin"
	default:
		return path
	}
}

// defaultBase derives the output base path from the input path.
// Demo and stdin input write to "mast" in the working directory.
func defaultBase(input string) string {
	if input == "" || input == stdinPath {
		return "mast"
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is "-", it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == stdinPath {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
