package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Dark Mode Released", "dark-mode-released"},
		{"symbols and emoji stripped", "v2.1.0 — Dark Mode 🌙 Released!", "v210-dark-mode-released"},
		{"whitespace runs collapse", "a   b\t c", "a-b-c"},
		{"hyphen runs collapse", "a -- b --- c", "a-b-c"},
		{"leading and trailing hyphens trimmed", "--hello--", "hello"},
		{"underscores survive", "snake_case title", "snake_case-title"},
		{"only whitespace", "   ", ""},
		{"only symbols", "!!! ???", ""},
		{"empty input", "", ""},
		{"mixed case lowered", "HeLLo World", "hello-world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}

func TestGenerateSlug_Idempotent(t *testing.T) {
	inputs := []string{
		"Dark Mode Released",
		"v2.1.0 — Dark Mode 🌙 Released!",
		"a -- b",
		"already-a-slug",
	}

	for _, in := range inputs {
		once := GenerateSlug(in)
		assert.Equal(t, once, GenerateSlug(once), "slugify should be idempotent for %q", in)
	}
}
