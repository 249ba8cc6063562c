package errors

import (
	"strings"
	"unicode"
)

// MaxTitleLength bounds titles accepted from descriptions.
const MaxTitleLength = 1024

// ValidateTitle checks a node or graph title taken from untrusted input.
// Titles are written quoted, so any printable text is fine; control
// characters and overly long titles are rejected.
func ValidateTitle(title string) error {
	if title == "" {
		return New(ErrCodeInvalidInput, "title cannot be empty")
	}
	if len(title) > MaxTitleLength {
		return New(ErrCodeInvalidInput, "title too long (max %d characters)", MaxTitleLength)
	}
	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "title %q contains control characters", title)
		}
	}
	return nil
}

// ValidateColorIndex checks a colour table slot before it reaches the model,
// which would panic on it.
func ValidateColorIndex(i int) error {
	if i < 0 || i > 255 {
		return New(ErrCodeInvalidInput, "colour index %d out of range [0,255]", i)
	}
	return nil
}

// ValidateToken checks a bare attribute value such as a shape or colour
// name. Bare values are written unquoted, so whitespace, quotes and braces
// would corrupt the document.
func ValidateToken(attr, value string) error {
	if value == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", attr)
	}
	if strings.ContainsAny(value, " \t\r\n\"{}:") {
		return New(ErrCodeInvalidInput, "%s value %q must be a single bare word", attr, value)
	}
	return nil
}
