// Package normalize provides helper functions for consistent string normalization
// of form and query input. Use these helpers instead of scattered
// strings.TrimSpace calls so every handler treats input the same way.
package normalize

import "strings"

// Name normalizes a registered name by trimming whitespace.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Month trims a raw YYYY-MM form value. Validation happens in models.ParseMonth.
func Month(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam normalizes a query parameter by trimming whitespace.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
