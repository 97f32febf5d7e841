package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// typeTagRegex matches chart type tags: lowercase words joined by single dashes.
var typeTagRegex = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// ValidateTypeTag validates a chart type tag before it is looked up in the
// registry. It rejects empty, overlong and non-kebab-case tags so that
// lookups and error messages never carry control characters.
func ValidateTypeTag(tag string) error {
	if tag == "" {
		return New(ErrCodeUnknownChartType, "chart type cannot be empty")
	}
	if len(tag) > 64 {
		return New(ErrCodeUnknownChartType, "chart type too long (max 64 characters)")
	}
	if !typeTagRegex.MatchString(tag) {
		return New(ErrCodeUnknownChartType, "invalid chart type tag: %q", tag)
	}
	return nil
}

// ValidatePath validates an output path given on the command line or in a
// batch document.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
