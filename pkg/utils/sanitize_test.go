package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeSQLWildcards(t *testing.T) {
	assert.Equal(t, "100\\%", EscapeSQLWildcards("100%"))
	assert.Equal(t, "a\\_b", EscapeSQLWildcards("a_b"))
	assert.Equal(t, "c:\\\\temp", EscapeSQLWildcards("c:\\temp"))
	assert.Equal(t, "plain", EscapeSQLWildcards("plain"))
}

func TestSanitizeSearchQuery(t *testing.T) {
	assert.Equal(t, "%hello%", SanitizeSearchQuery("  hello "))
	assert.Equal(t, "%50\\% off%", SanitizeSearchQuery("50% off"))

	// Long input is clamped
	long := strings.Repeat("x", 500)
	got := SanitizeSearchQuery(long)
	assert.LessOrEqual(t, len(got), 102)
}
