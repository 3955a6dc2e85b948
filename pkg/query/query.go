package query

import (
	"strconv"
)

// Bool parses a boolean query parameter. Anything other than a valid
// strconv boolean returns the fallback.
func Bool(val string, fallback bool) bool {
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}

// Int parses an integer query parameter with a fallback default.
func Int(val string, fallback int) int {
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}

