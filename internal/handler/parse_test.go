package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionalInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *int64
	}{
		{"empty is nil", "", nil},
		{"whitespace is nil", "   ", nil},
		{"number parses", "2024", int64Ptr(2024)},
		{"number with whitespace parses", " 2024 ", int64Ptr(2024)},
		{"negative parses", "-1", int64Ptr(-1)},
		{"non-numeric is nil", "abc", nil},
		{"float is nil", "20.24", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseOptionalInt(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, optionalString(""))

	got := optionalString("hello")
	require.NotNil(t, got)
	assert.Equal(t, "hello", *got)

	// Whitespace is preserved, not trimmed to nil.
	got = optionalString(" ")
	require.NotNil(t, got)
}

func int64Ptr(n int64) *int64 { return &n }
