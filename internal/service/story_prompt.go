package service

import (
	"fmt"
	"strings"

	"github.com/tadoku-reader/storygen/internal/model"
)

// StorySystemPrompt はテキスト生成APIに渡すシステムロールです
const StorySystemPrompt = "You are a Japanese language teacher specializing in creating graded readers. " +
	"Always provide complete responses with all required sections. Never truncate or omit any sections."

// BuildStoryPrompt は検証済みリクエストから生成プロンプトを組み立てます。
// 同じ入力には常に同じ文字列を返す。
func BuildStoryPrompt(req *model.GenerateStoryRequest) string {
	band, _ := req.Length.Band()

	var b strings.Builder
	fmt.Fprintf(&b,
		"Generate a Tadoku-style Japanese story at Tadoku Level %d, using kanji up to WaniKani Level %d and grammar up to Genki Chapter %d. ",
		*req.TadokuLevel, *req.WaniKaniLevel, *req.GenkiChapter,
	)
	fmt.Fprintf(&b,
		"The story should be %s-length (%d-%d characters), about %s. ",
		req.Length, band.Min, band.Max, strings.TrimSpace(req.Topic),
	)
	b.WriteString("Include furigana for the first occurrence of each kanji. ")
	b.WriteString("Provide an English translation, a vocabulary list with definitions and example sentences, and a grammar breakdown referencing Genki chapters.\n\n")

	b.WriteString("The output format should be as follows (make sure to include ALL sections and complete each section fully):\n")
	for _, sec := range storySections {
		b.WriteString(sec.delimiter())
		b.WriteString("\n")
		b.WriteString(sec.placeholder)
		b.WriteString("\n")
	}

	b.WriteString("\nImportant: Never omit or truncate any section, and keep every delimiter line exactly as shown. ")
	fmt.Fprintf(&b,
		"Write one vocabulary item or grammar point per line. Keep Genki references concise (max %d characters, e.g. \"Chapter 3\", \"Ch. 3 - Particles\").",
		model.MaxGenkiReferenceLength,
	)
	return b.String()
}
