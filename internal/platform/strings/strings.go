// Package strings provides small string helpers shared by handlers and repos
package strings

import (
	std "strings"

	"golang.org/x/text/unicode/norm"
)

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// Clean trims surrounding whitespace and folds s to Unicode NFC
// so composed and decomposed input compare and measure the same
func Clean(s string) string {
	return norm.NFC.String(std.TrimSpace(s))
}

// Ptr returns a pointer to s, or nil if s is blank
func Ptr(s string) *string {
	if std.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// Deref returns "" if ps is nil, else *ps
func Deref(ps *string) string {
	if ps == nil {
		return ""
	}
	return *ps
}
