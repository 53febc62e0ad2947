package core

import (
	"strconv"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// SplitCSV splits a comma-separated string into trimmed, non-empty tokens.
// List-like fields (tags, requirements) travel as arrays on the wire but are
// edited as a single comma-separated string; this is the submit-side half of
// that round-trip.
func SplitCSV(s string) []string {
	items := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// JoinCSV is the load-side half of the round-trip: SplitCSV(JoinCSV(items))
// reproduces `items` for already-trimmed, non-empty inputs.
func JoinCSV(items []string) string {
	return strings.Join(items, ", ")
}

// Raw input coercion; text inputs hand us strings regardless of the
// field's semantic type.

func CoerceBool(raw string) bool {
	b, err := strconv.ParseBool(CleanString(raw, true))
	if err != nil {
		return raw == "on" // checkbox convention
	}
	return b
}

func CoerceInt(raw string) int {
	n, _ := strconv.Atoi(CleanString(raw))
	return n
}

func CoerceFloat(raw string) float64 {
	f, _ := strconv.ParseFloat(CleanString(raw), 64)
	return f
}
