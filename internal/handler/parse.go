package handler

import (
	"strconv"
	"strings"
)

// parseOptionalInt converts an optional numeric form value. Empty and
// non-numeric input both map to nil, which persists as NULL rather than
// zero or an error row.
func parseOptionalInt(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// optionalString maps empty form input to nil so it persists as NULL,
// matching how optional text columns are stored.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
