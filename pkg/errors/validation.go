package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// modeCodeRegex matches taxonomy mode codes such as "1.1" or "2.6".
var modeCodeRegex = regexp.MustCompile(`^[0-9]+\.[0-9]+$`)

// ValidateModeCode validates the shape of a failure mode code.
func ValidateModeCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidInput, "mode code cannot be empty")
	}
	if !modeCodeRegex.MatchString(code) {
		return New(ErrCodeInvalidInput, "invalid mode code: %q", code)
	}
	return nil
}

// presetNameRegex matches canvas preset names.
var presetNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,31}$`)

// ValidatePresetName validates a canvas preset name.
func ValidatePresetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPreset, "preset name cannot be empty")
	}
	if !presetNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPreset, "invalid preset name: %q", name)
	}
	return nil
}

// ValidateOutputName validates an output file path supplied by a user.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidateOutputName(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidInput, "output path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidInput, "output path cannot contain backslashes")
	}

	return nil
}
