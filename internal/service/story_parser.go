package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tadoku-reader/storygen/internal/model"
)

// storySection は生成テキスト内の区切り行で始まるセクションです
type storySection struct {
	name        string
	placeholder string
}

func (s storySection) delimiter() string {
	return "===" + s.name + "==="
}

const (
	sectionTitleJP    = "TITLE-JP"
	sectionTitleEN    = "TITLE-EN"
	sectionStoryJP    = "STORY-JP"
	sectionStoryEN    = "STORY-EN"
	sectionVocabulary = "VOCABULARY"
	sectionGrammar    = "GRAMMAR"
)

// storySections は出力フォーマットの並び順です。プロンプトとパーサーで共有する。
var storySections = []storySection{
	{name: sectionTitleJP, placeholder: "[Japanese title]"},
	{name: sectionTitleEN, placeholder: "[English title]"},
	{name: sectionStoryJP, placeholder: "[Full Japanese story with furigana]"},
	{name: sectionStoryEN, placeholder: "[Full English translation]"},
	{name: sectionVocabulary, placeholder: "[List of key vocabulary with format: word (reading) - meaning - example]"},
	{name: sectionGrammar, placeholder: "[List of grammar points with format: grammar point - explanation - Genki reference (keep reference brief, max 50 chars)]"},
}

// ParsedVocabulary は VOCABULARY セクションの1行分です
type ParsedVocabulary struct {
	Word    string
	Reading string
	Meaning string
	Example string
}

// ParsedGrammar は GRAMMAR セクションの1行分です。Reference は保存可能な長さに切り詰め済み。
type ParsedGrammar struct {
	Pattern     string
	Explanation string
	Reference   string
}

// ParsedStory は検証済みの生成結果です
type ParsedStory struct {
	TitleJP    string
	TitleEN    string
	StoryJP    string
	StoryEN    string
	Vocabulary []ParsedVocabulary
	Grammar    []ParsedGrammar
}

var (
	listBulletPattern = regexp.MustCompile(`^(?:[-*•]\s+|・\s*|\d+[.)]\s+)`)
	vocabLinePattern  = regexp.MustCompile(`^(.+?)\s*[(（](.+?)[)）]\s+-\s+(.+?)\s+-\s+(.+)$`)
	grammarPattern    = regexp.MustCompile(`^(.+?)\s+-\s+(.+?)\s+-\s+(.+)$`)
	// タイトル内の改行 (前後の空白を含む)
	titleBreakPattern = regexp.MustCompile(`\s*\n\s*`)
)

// ParseStoryResponse は生成テキストを6つのセクションに分割し、完全性を検証します。
// 欠落・空のセクションがあれば、そのすべてを列挙した *model.MalformedResponseError を返す。
func ParseStoryResponse(text string) (*ParsedStory, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	delimiters := make(map[string]string, len(storySections))
	for _, sec := range storySections {
		delimiters[sec.delimiter()] = sec.name
	}

	// 各セクションの区切り行の位置 (最初の出現のみ)
	starts := make(map[string]int, len(storySections))
	var boundaries []int
	for i, line := range lines {
		name, ok := delimiters[strings.TrimSpace(line)]
		if !ok {
			continue
		}
		boundaries = append(boundaries, i)
		if _, seen := starts[name]; !seen {
			starts[name] = i
		}
	}

	contents := make(map[string]string, len(storySections))
	malformed := &model.MalformedResponseError{}
	for _, sec := range storySections {
		start, ok := starts[sec.name]
		if !ok {
			malformed.Missing = append(malformed.Missing, sec.name)
			continue
		}
		end := len(lines)
		for _, b := range boundaries {
			if b > start {
				end = b
				break
			}
		}
		content := strings.TrimSpace(strings.Join(lines[start+1:end], "\n"))
		if content == "" {
			malformed.Empty = append(malformed.Empty, sec.name)
			continue
		}
		contents[sec.name] = content
	}
	if len(malformed.Missing) > 0 || len(malformed.Empty) > 0 {
		return nil, malformed
	}

	return &ParsedStory{
		TitleJP:    singleLineTitle(contents[sectionTitleJP]),
		TitleEN:    singleLineTitle(contents[sectionTitleEN]),
		StoryJP:    contents[sectionStoryJP],
		StoryEN:    contents[sectionStoryEN],
		Vocabulary: parseVocabularyLines(contents[sectionVocabulary]),
		Grammar:    parseGrammarLines(contents[sectionGrammar]),
	}, nil
}

// parseVocabularyLines は "word (reading) - meaning - example" に一致しない行を読み飛ばします
// singleLineTitle はタイトル内の改行を半角スペース1つにまとめます。
// 保存形式はタイトルと本文を最初の空行で区切るため、タイトルは1行でなければならない。
func singleLineTitle(title string) string {
	return titleBreakPattern.ReplaceAllString(title, " ")
}

func parseVocabularyLines(section string) []ParsedVocabulary {
	var items []ParsedVocabulary
	for _, line := range listLines(section) {
		m := vocabLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		items = append(items, ParsedVocabulary{
			Word:    strings.TrimSpace(m[1]),
			Reading: strings.TrimSpace(m[2]),
			Meaning: strings.TrimSpace(m[3]),
			Example: strings.TrimSpace(m[4]),
		})
	}
	return items
}

// parseGrammarLines は "pattern - explanation - reference" に一致しない行を読み飛ばします
func parseGrammarLines(section string) []ParsedGrammar {
	var items []ParsedGrammar
	for _, line := range listLines(section) {
		m := grammarPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		items = append(items, ParsedGrammar{
			Pattern:     strings.TrimSpace(m[1]),
			Explanation: strings.TrimSpace(m[2]),
			Reference:   TruncateReference(strings.TrimSpace(m[3])),
		})
	}
	return items
}

func listLines(section string) []string {
	var lines []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(listBulletPattern.ReplaceAllString(strings.TrimSpace(line), ""))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// TruncateReference は50文字を超える参照を47文字 + "..." に切り詰めます
func TruncateReference(ref string) string {
	if utf8.RuneCountInString(ref) <= model.MaxGenkiReferenceLength {
		return ref
	}
	runes := []rune(ref)
	return string(runes[:model.MaxGenkiReferenceLength-3]) + "..."
}
