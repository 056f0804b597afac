package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tadoku-reader/storygen/internal/model"
)

func intPtr(v int) *int { return &v }

func validRequest() *model.GenerateStoryRequest {
	return &model.GenerateStoryRequest{
		WaniKaniLevel: intPtr(10),
		GenkiChapter:  intPtr(5),
		TadokuLevel:   intPtr(2),
		Length:        model.LengthMedium,
		Topic:         "daily life",
	}
}

func TestBuildStoryPrompt_Deterministic(t *testing.T) {
	first := BuildStoryPrompt(validRequest())
	second := BuildStoryPrompt(validRequest())
	assert.Equal(t, first, second)

	other := validRequest()
	other.Topic = "travel"
	assert.NotEqual(t, first, BuildStoryPrompt(other))
}

func TestBuildStoryPrompt_Content(t *testing.T) {
	prompt := BuildStoryPrompt(validRequest())

	assert.Contains(t, prompt, "Tadoku Level 2")
	assert.Contains(t, prompt, "WaniKani Level 10")
	assert.Contains(t, prompt, "Genki Chapter 5")
	assert.Contains(t, prompt, "(300-500 characters)")
	assert.Contains(t, prompt, "about daily life")
	assert.Contains(t, prompt, "Never omit or truncate any section")
	assert.Contains(t, prompt, "word (reading) - meaning - example")
	for _, sec := range storySections {
		assert.Contains(t, prompt, "\n"+sec.delimiter()+"\n", sec.name)
	}
}

func TestBuildStoryPrompt_LengthBands(t *testing.T) {
	tests := []struct {
		length model.StoryLength
		want   string
	}{
		{model.LengthShort, "short-length (100-200 characters)"},
		{model.LengthMedium, "medium-length (300-500 characters)"},
		{model.LengthLong, "long-length (700-1000 characters)"},
	}
	for _, tt := range tests {
		t.Run(string(tt.length), func(t *testing.T) {
			req := validRequest()
			req.Length = tt.length
			assert.Contains(t, BuildStoryPrompt(req), tt.want)
		})
	}
}

func TestBuildStoryPrompt_ParsesItsOwnFormat(t *testing.T) {
	// プロンプト内の出力例はプレースホルダーだけで構成され、そのまま解析できる
	parsed, err := ParseStoryResponse(BuildStoryPrompt(validRequest()))
	assert.NoError(t, err)
	if assert.NotNil(t, parsed) {
		assert.Equal(t, "[Japanese title]", parsed.TitleJP)
	}
}
