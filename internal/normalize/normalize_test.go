package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooseInt(t *testing.T) {
	tests := []struct {
		input  string
		want   int64
		wantOK bool
	}{
		{"42", 42, true},
		{"  7 ", 7, true},
		{"12abc", 12, true},
		{"-3", -3, true},
		{"+5", 5, true},
		{"3.9", 3, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{"x12", 0, false},
		{"99999999999999999999999", math.MaxInt64, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := LooseInt(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPage(t *testing.T) {
	tests := map[string]int{
		"":     1,
		"abc":  1,
		"0":    1,
		"-2":   1,
		"1":    1,
		"3":    3,
		"4xyz": 4,
	}
	for input, want := range tests {
		assert.Equal(t, want, Page(input), "Page(%q)", input)
	}
}

func TestOptionalID(t *testing.T) {
	assert.Nil(t, OptionalID(""))
	assert.Nil(t, OptionalID("go"))

	id := OptionalID("12")
	if assert.NotNil(t, id) {
		assert.Equal(t, int64(12), *id)
	}
}

func TestLimit(t *testing.T) {
	assert.Equal(t, 50, Limit("", 50, 1, 100))
	assert.Equal(t, 50, Limit("lots", 50, 1, 100))
	assert.Equal(t, 100, Limit("5000", 50, 1, 100))
	assert.Equal(t, 50, Limit("0", 50, 1, 100))
	assert.Equal(t, 1, Limit("-8", 50, 1, 100))
	assert.Equal(t, 20, Limit("20", 50, 1, 100))
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"commas", "go,rust", []string{"go", "rust"}},
		{"full-width comma", "前端，后端", []string{"前端", "后端"}},
		{"whitespace and commas mixed", " go ,  rust\tzig\n", []string{"go", "rust", "zig"}},
		{"only separators", " ,，, ", []string{}},
		{"duplicates kept", "go go", []string{"go", "go"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTags(tt.input))
		})
	}
}

func TestTagName(t *testing.T) {
	assert.Equal(t, "Go", TagName("  Go  "))
	assert.Equal(t, "", TagName("   "))
	// Decomposed e + combining acute becomes the precomposed form.
	assert.Equal(t, "caf\u00e9", TagName("cafe\u0301"))
}

func TestContent(t *testing.T) {
	assert.Equal(t, "", Content("   \n\t"))
	assert.Equal(t, "plain *markdown*", Content("  plain *markdown*  "))
	assert.Equal(t, "a < b and c > d", Content("a < b and c > d"))
	assert.Equal(t, "<p><strong>bold</strong> text</p>", Content("  <p><strong>bold</strong> text</p>\n"))
	assert.Equal(t, "<b></b>", Content("<b></b>"))
	assert.Equal(t, "```\n<div>x</div>\n```", Content("```\n<div>x</div>\n```"))
}
