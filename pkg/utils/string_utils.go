package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NewNullString is a helper for string pointers, returning nil if string is empty.
// Useful for fields that are optional and should be NULL in DB if not provided.
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Initial returns the upper-cased first character of a display name, used as the avatar glyph.
func Initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}
