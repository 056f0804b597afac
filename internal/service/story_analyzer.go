package service

import (
	"strings"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/tadoku-reader/storygen/internal/model"
)

// StoryStats は生成された日本語本文の統計です
type StoryStats struct {
	Characters int // 空白を除く文字数
	Kanji      int
	Tokens     int
	Sentences  int
}

// WithinBand は文字数が長さカテゴリの目標帯に収まるかを返します
func (s StoryStats) WithinBand(band model.LengthBand) bool {
	return s.Characters >= band.Min && s.Characters <= band.Max
}

// StoryAnalyzer は kagome (IPA辞書) で日本語本文を解析します。並行利用可能。
type StoryAnalyzer struct {
	t *tokenizer.Tokenizer
}

func NewStoryAnalyzer() (*StoryAnalyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &StoryAnalyzer{t: t}, nil
}

func (a *StoryAnalyzer) Analyze(text string) StoryStats {
	var stats StoryStats
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		stats.Characters++
		if unicode.Is(unicode.Han, r) {
			stats.Kanji++
		}
	}

	for _, sentence := range splitSentences(text) {
		if strings.TrimSpace(sentence) == "" {
			continue
		}
		stats.Sentences++
		for _, token := range a.t.Tokenize(sentence) {
			if token.Class == tokenizer.DUMMY || strings.TrimSpace(token.Surface) == "" {
				continue
			}
			stats.Tokens++
		}
	}
	return stats
}

// splitSentences は 。！？ と改行で文を区切ります。区切り文字は直前の文に含める。
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	for _, r := range text {
		if r == '\n' {
			sentences = append(sentences, current.String())
			current.Reset()
			continue
		}
		current.WriteRune(r)
		if r == '。' || r == '！' || r == '？' {
			sentences = append(sentences, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}
	return sentences
}
