// Copyright (c) 2026 PalText. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paltextai/backend/pkg/slug"
)

/*
TestFrom checks the title-to-slug transformation pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple_title", "Hello World", "hello-world"},
		{"punctuation", "Hello, World!!", "hello-world"},
		{"mixed_case", "GoLang Is Great", "golang-is-great"},
		{"accents_removed", "Café au Lait", "cafe-au-lait"},
		{"numbers_kept", "Top 10 Tips for 2026", "top-10-tips-for-2026"},
		{"consecutive_separators", "a  --  b", "a-b"},
		{"leading_trailing_junk", "  ...Hello...  ", "hello"},
		{"only_symbols", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}

/*
TestFrom_Idempotent verifies that slugifying a slug returns it unchanged.
*/
func TestFrom_Idempotent(t *testing.T) {
	inputs := []string{"Hello World", "Top 10 Tips", "Café au Lait"}

	for _, input := range inputs {
		once := slug.From(input)
		assert.Equal(t, once, slug.From(once))
	}
}
