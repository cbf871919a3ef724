package domain

import (
	"strings"
	"unicode/utf8"
)

// MaxTitleLength is the maximum number of characters in a title.
const MaxTitleLength = 255

// Title is a validated title value object (1-255 characters).
type Title struct {
	value string
}

// NewTitle creates a new Title, validating the input.
// The value is kept verbatim; only the empty string counts as missing.
func NewTitle(s string) (Title, error) {
	if s == "" {
		return Title{}, ErrTitleRequired
	}

	if utf8.RuneCountInString(s) > MaxTitleLength {
		return Title{}, ErrTitleTooLong
	}

	return Title{value: s}, nil
}

// String returns the title value.
func (t Title) String() string {
	return t.value
}

// ParseCompletedFilter interprets a completed query value.
// "true", "1" and "yes" (any case) are truthy; every other value is falsy.
func ParseCompletedFilter(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
