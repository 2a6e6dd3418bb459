package layout

import (
	"encoding/json"

	"github.com/mastviz/mastfig/pkg/errors"
)

// MarshalResult encodes r as compact JSON.
func MarshalResult(r *Result) ([]byte, error) {
	return json.Marshal(r)
}

// UnmarshalResult decodes JSON produced by [MarshalResult].
func UnmarshalResult(data []byte) (*Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout")
	}
	if len(r.Modes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "decode layout: no modes")
	}
	return &r, nil
}
