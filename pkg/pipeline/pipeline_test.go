package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/mastviz/mastfig/pkg/canvas"
	"github.com/mastviz/mastfig/pkg/distribution"
	"github.com/mastviz/mastfig/pkg/errors"
	"github.com/mastviz/mastfig/pkg/layout"
	"github.com/mastviz/mastfig/pkg/render"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateEstimator(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"heuristic", false},
		{"cells", false},
		{"glyphs", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateEstimator(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateEstimator(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.Preset != canvas.DefaultPreset {
		t.Errorf("Preset should be %s, got %s", canvas.DefaultPreset, opts.Preset)
	}
	if opts.Estimator != DefaultEstimator {
		t.Errorf("Estimator should be %s, got %s", DefaultEstimator, opts.Estimator)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	custom := canvas.Default()
	withCanvas := Options{Canvas: &custom}
	withCanvas.SetLayoutDefaults()
	if withCanvas.Preset != "" {
		t.Errorf("Preset should stay empty with a custom canvas, got %q", withCanvas.Preset)
	}
	if withCanvas.PresetName() != "custom" {
		t.Errorf("PresetName() = %q, want custom", withCanvas.PresetName())
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Scale != render.DefaultPNGScale {
		t.Errorf("Scale should be %v, got %v", render.DefaultPNGScale, opts.Scale)
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"defaults", Options{}, ""},
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidConfig},
		{"bad preset name", Options{Preset: "Rev 7"}, errors.ErrCodeInvalidPreset},
		{"bad estimator", Options{Estimator: "glyphs"}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"negative scale", Options{Scale: -2}, errors.ErrCodeInvalidInput},
		{"oversized width", Options{Width: 100000}, errors.ErrCodeInvalidConfig},
		{"oversized height", Options{Height: canvas.MaxHeight * 2}, errors.ErrCodeInvalidConfig},
		{"largest size", Options{Width: canvas.MaxWidth, Height: canvas.MaxHeight}, ""},
		{"oversized scale", Options{Scale: 1000}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("ValidateAndSetDefaults() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Preset: "rev6"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	originalFormats := opts.Formats
	originalEstimator := opts.Estimator

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if len(opts.Formats) != len(originalFormats) || opts.Formats[0] != originalFormats[0] {
		t.Error("Formats changed on second call")
	}
	if opts.Estimator != originalEstimator || opts.Preset != "rev6" {
		t.Error("layout options changed on second call")
	}
}

func TestOptionsCanvasSpec(t *testing.T) {
	tests := []struct {
		name          string
		opts          Options
		width, height float64
		showZero      bool
	}{
		{"preset", Options{Preset: "rev6"}, 2000, 1200, true},
		{"width only", Options{Preset: "rev7", Width: 1200}, 1200, 900, true},
		{"both", Options{Preset: "rev7", Width: 2000, Height: 1100}, 2000, 1100, true},
		{"hide zero", Options{Preset: "rev7", HideZero: true}, 1600, 900, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := tt.opts.CanvasSpec()
			if err != nil {
				t.Fatalf("CanvasSpec() error: %v", err)
			}
			if cs.Width != tt.width || cs.Height != tt.height {
				t.Errorf("size = %vx%v, want %vx%v", cs.Width, cs.Height, tt.width, tt.height)
			}
			if cs.ShowZeroModes != tt.showZero {
				t.Errorf("ShowZeroModes = %v, want %v", cs.ShowZeroModes, tt.showZero)
			}
		})
	}

	custom := canvas.MustPreset("compact")
	opts := Options{Preset: "rev6", Canvas: &custom}
	cs, err := opts.CanvasSpec()
	if err != nil {
		t.Fatal(err)
	}
	if cs.Name != custom.Name {
		t.Errorf("custom canvas ignored: got %q", cs.Name)
	}

	unknown := Options{Preset: "rev99"}
	if _, err := unknown.CanvasSpec(); !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Errorf("CanvasSpec(rev99) error = %v, want INVALID_PRESET", err)
	}
}

func TestBuildDistribution(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		total int
		code  errors.Code
	}{
		{"empty is demo", Options{}, 189, ""},
		{"counts", Options{Distribution: json.RawMessage(`{"1.1": 3, "2.6": 1}`)}, 4, ""},
		{"labels", Options{Distribution: json.RawMessage(`{"failure_labels": [{"failure_mode": "1.1"}, "3.3"]}`)}, 2, ""},
		{"negative", Options{Distribution: json.RawMessage(`{"1.1": -1}`)}, 0, errors.ErrCodeInvalidDistribution},
		{"malformed", Options{Distribution: json.RawMessage(`{"1.1": `)}, 0, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := BuildDistribution(tt.opts)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("BuildDistribution() error = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildDistribution() error: %v", err)
			}
			if d.Total != tt.total {
				t.Errorf("Total = %d, want %d", d.Total, tt.total)
			}
		})
	}

	in := distribution.Codes("2.2", "2.2")
	d, err := BuildDistribution(Options{Distribution: json.RawMessage(`{"1.1": 9}`), Input: &in})
	if err != nil {
		t.Fatal(err)
	}
	if d.Total != 2 || d.Count("2.2") != 2 {
		t.Errorf("Input should replace Distribution, got %v", d.Counts)
	}
}

func TestNewEstimator(t *testing.T) {
	h := Options{Estimator: EstimatorHeuristic}
	if _, ok := h.NewEstimator().(layout.Heuristic); !ok {
		t.Errorf("heuristic estimator = %T", h.NewEstimator())
	}
	c := Options{Estimator: EstimatorCells}
	if _, ok := c.NewEstimator().(layout.CellWidth); !ok {
		t.Errorf("cells estimator = %T", c.NewEstimator())
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if got := opts.ArtifactKeyOpts(FormatPNG); got.Scale != 0 {
		t.Errorf("default scale should not vary the key, got %v", got.Scale)
	}
	opts.Scale = 3
	if got := opts.ArtifactKeyOpts(FormatPNG); got.Scale != 3 {
		t.Errorf("PNG Scale = %v, want 3", got.Scale)
	}
	if got := opts.ArtifactKeyOpts(FormatSVG); got.Scale != 0 {
		t.Errorf("scale should only vary PNG keys, got %v", got.Scale)
	}
}
