package distribution

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/mastviz/mastfig/pkg/errors"
)

// Decode detects the shape of a JSON document and returns the matching
// [Input]. Accepted shapes:
//
//	null or empty                     demo distribution
//	{"1.1": 3, "2.6": 1}              bare counts
//	{"counts": {"1.1": 3}}            wrapped counts
//	{"failure_labels": [{...}, ...]}  annotation result
//	[{"failure_mode": "1.1"}, "2.6"]  bare label list
//
// Label list elements may be label objects or bare mode code strings; other
// element types are skipped. Keys of a counts object that are not shaped
// like mode codes are skipped.
func Decode(data []byte) (Input, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Demo(), nil
	}

	switch data[0] {
	case '[':
		labels, err := decodeLabels(data)
		if err != nil {
			return Input{}, err
		}
		return Labels(labels), nil

	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return Input{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode distribution")
		}
		if raw, ok := obj["failure_labels"]; ok {
			labels, err := decodeLabels(raw)
			if err != nil {
				return Input{}, err
			}
			return Labels(labels), nil
		}
		if raw, ok := obj["counts"]; ok {
			var inner map[string]json.RawMessage
			if err := json.Unmarshal(raw, &inner); err != nil {
				return Input{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode counts")
			}
			obj = inner
		}
		counts, err := decodeCounts(obj)
		if err != nil {
			return Input{}, err
		}
		return Counts(counts), nil
	}

	return Input{}, errors.New(errors.ErrCodeInvalidInput, "distribution must be a JSON object, array or null")
}

func decodeLabels(data []byte) ([]FailureLabel, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode failure labels")
	}

	labels := make([]FailureLabel, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 {
			continue
		}
		switch item[0] {
		case '{':
			var l FailureLabel
			if err := json.Unmarshal(item, &l); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode failure label")
			}
			labels = append(labels, l)
		case '"':
			var code string
			if err := json.Unmarshal(item, &code); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode failure label")
			}
			labels = append(labels, FailureLabel{FailureMode: code})
		}
	}
	return labels, nil
}

func decodeCounts(obj map[string]json.RawMessage) (map[string]int, error) {
	counts := make(map[string]int, len(obj))
	for code, raw := range obj {
		if errors.ValidateModeCode(code) != nil {
			continue
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "count for mode %s", code)
		}
		if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "count for mode %s must be an integer, got %g", code, v)
		}
		counts[code] = int(v)
	}
	return counts, nil
}
