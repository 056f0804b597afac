package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tadoku-reader/storygen/internal/model"
)

func TestStoryAnalyzer_Analyze(t *testing.T) {
	analyzer, err := NewStoryAnalyzer()
	require.NoError(t, err)

	stats := analyzer.Analyze("猫が好きです。\n毎朝、外に行きます！")

	assert.Equal(t, 17, stats.Characters)
	assert.Equal(t, 6, stats.Kanji) // 猫 好 毎 朝 外 行
	assert.Equal(t, 2, stats.Sentences)
	assert.Greater(t, stats.Tokens, 6)
}

func TestStoryStats_WithinBand(t *testing.T) {
	band, ok := model.LengthShort.Band()
	require.True(t, ok)

	assert.False(t, StoryStats{Characters: 99}.WithinBand(band))
	assert.True(t, StoryStats{Characters: 100}.WithinBand(band))
	assert.True(t, StoryStats{Characters: 200}.WithinBand(band))
	assert.False(t, StoryStats{Characters: 201}.WithinBand(band))
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("一。二！三？\n四")
	assert.Equal(t, []string{"一。", "二！", "三？", "", "四"}, got)
}
