package canvas

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mastviz/mastfig/pkg/errors"
)

type fileHeader struct {
	Preset string `toml:"preset"`
}

// LoadFile reads TOML overrides from path. See [Decode].
func LoadFile(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read canvas file")
	}
	return Decode(string(data))
}

// Decode applies TOML overrides to the preset named by the document's
// "preset" key (default preset when absent) and validates the result.
func Decode(data string) (Spec, error) {
	var head fileHeader
	if _, err := toml.Decode(data, &head); err != nil {
		return Spec{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse canvas toml")
	}

	s, err := Preset(head.Preset)
	if err != nil {
		return Spec{}, err
	}

	md, err := toml.Decode(data, &s)
	if err != nil {
		return Spec{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse canvas toml")
	}

	var unknown []string
	for _, k := range md.Undecoded() {
		if key := k.String(); key != "preset" {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		return Spec{}, errors.New(errors.ErrCodeInvalidConfig, "unknown canvas keys: %s", strings.Join(unknown, ", "))
	}

	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}
