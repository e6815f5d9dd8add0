// ABOUTME: Utility functions for parsing query parameters
// ABOUTME: Provides safe parsing with default values

package parse

import (
	"strconv"
	"strings"
)

// IntOrDefault parses an integer; empty input yields def. Malformed input
// is reported so callers can reject it.
func IntOrDefault(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

// BoolOrDefault parses a boolean flag; empty or unrecognised input yields def
func BoolOrDefault(s string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}
