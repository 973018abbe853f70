package errors

import (
	"strings"
	"unicode"
)

// MaxSide is the largest accepted width or height. Placement adds sizes to
// coordinates, so the cap keeps every edge of a cloud far from int overflow.
const MaxSide = 1 << 24

// ValidateSize rejects negative dimensions and sides above [MaxSide].
// Zero is a valid extent.
func ValidateSize(width, height int) error {
	if width < 0 || height < 0 {
		return New(ErrCodeInvalidSize, "size (%d, %d) must not be negative", width, height)
	}
	if width > MaxSide || height > MaxSide {
		return New(ErrCodeInvalidSize, "size (%d, %d) exceeds the maximum side of %d", width, height, MaxSide)
	}
	return nil
}

// ValidateSizeRange checks a half-open [lo, hi) range used for random size
// generation. An empty range (lo == hi) is allowed and always yields lo.
func ValidateSizeRange(lo, hi int) error {
	if lo < 0 {
		return New(ErrCodeInvalidSize, "minimum size %d must not be negative", lo)
	}
	if hi < lo {
		return New(ErrCodeInvalidSize, "maximum size %d must not be less than minimum %d", hi, lo)
	}
	if hi > MaxSide+1 {
		return New(ErrCodeInvalidSize, "maximum size %d exceeds the limit of %d", hi, MaxSide+1)
	}
	return nil
}

// ValidateOutputPath validates a user-supplied output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
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

	return nil
}
