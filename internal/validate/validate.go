// Package validate holds the pure field-format checks applied before any
// store mutation.
package validate

import "regexp"

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	hexColorRe = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
)

// Email reports whether s has a single-@, has-a-dot address shape.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// HexColor reports whether s is "#" followed by 3 or 6 hex digits.
func HexColor(s string) bool {
	return hexColorRe.MatchString(s)
}
