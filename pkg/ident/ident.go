// Package ident provides utilities for working with case-insensitive
// identifiers. Pascal identifiers compare without regard to case, so every
// name table in the interpreter routes through this package. The canonical
// key of an identifier is its lower-cased form.
package ident

import "strings"

// Normalize returns the canonical (lower-cased) form of an identifier.
func Normalize(name string) string {
	return strings.ToLower(name)
}

// Equal reports whether two identifiers are the same under Pascal's
// case-insensitive comparison rules.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}
