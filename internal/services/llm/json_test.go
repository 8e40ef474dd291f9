package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

func TestStripJSONFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare json untouched",
			input:    `{"headline": "FLATS"}`,
			expected: `{"headline": "FLATS"}`,
		},
		{
			name:     "json fence",
			input:    "```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "anonymous fence",
			input:    "```\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n```json\n{}\n```  \n",
			expected: `{}`,
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripJSONFences(tt.input))
		})
	}
}

func TestBuildPlanPrompt(t *testing.T) {
	req := &models.DesignRequest{
		RawInput: "2BHK flats in Baner, 55 Lakhs",
		Category: "ready-to-move",
		Platform: "Instagram Story",
		Style:    "modern",
	}

	prompt := buildPlanPrompt(req, "")
	assert.Contains(t, prompt, "Property Info: 2BHK flats in Baner, 55 Lakhs")
	assert.Contains(t, prompt, "Category: ready-to-move")
	assert.Contains(t, prompt, "Brand Info: LOTLITE REAL ESTATE", "default brand applied")
	assert.Contains(t, prompt, "Color Theme: professional-red-black", "default theme applied")
	assert.Contains(t, prompt, "OUTPUT FORMAT (JSON ONLY)")
	assert.NotContains(t, prompt, "Brand Identity:")
}

func TestBuildPlanPrompt_IncludesBrandContext(t *testing.T) {
	req := &models.DesignRequest{
		RawInput:   "villa plots",
		BrandInfo:  "Skyline Estates",
		ColorTheme: "ocean-blue",
	}

	prompt := buildPlanPrompt(req, "Brand Identity:\n- Name: Skyline Estates")
	assert.Contains(t, prompt, "Brand Identity:\n- Name: Skyline Estates")
	assert.Contains(t, prompt, "Brand Info: Skyline Estates")
	assert.Contains(t, prompt, "Color Theme: ocean-blue")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "", truncate("", 5))
}
