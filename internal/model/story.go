// internal/model/story.go
package model

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// StoryLength はストーリーの長さカテゴリです
type StoryLength string

const (
	LengthShort  StoryLength = "short"
	LengthMedium StoryLength = "medium"
	LengthLong   StoryLength = "long"
)

// LengthBand は長さカテゴリごとの目標文字数 (日本語本文) です
type LengthBand struct {
	Min int
	Max int
}

var lengthBands = map[StoryLength]LengthBand{
	LengthShort:  {Min: 100, Max: 200},
	LengthMedium: {Min: 300, Max: 500},
	LengthLong:   {Min: 700, Max: 1000},
}

// Band は長さカテゴリに対応する文字数帯を返します。未知のカテゴリは ok=false。
func (l StoryLength) Band() (LengthBand, bool) {
	b, ok := lengthBands[l]
	return b, ok
}

const (
	MinWaniKaniLevel = 1
	MaxWaniKaniLevel = 60
	MinGenkiChapter  = 1
	MaxGenkiChapter  = 23
	MinTadokuLevel   = 0
	MaxTadokuLevel   = 5
	MaxTopicLength   = 50
)

// Story は生成されたストーリーです。content_jp / content_en は「タイトル + 空行 + 本文」で保存します。
type Story struct {
	StoryID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ContentJP        string    `gorm:"column:content_jp;type:text;not null" json:"content_jp"`
	ContentEN        string    `gorm:"column:content_en;type:text;not null" json:"content_en"`
	TadokuLevel      int       `gorm:"not null" json:"tadoku_level"`
	WaniKaniMaxLevel int       `gorm:"column:wanikani_max_level;not null" json:"wanikani_max_level"`
	GenkiMaxChapter  int       `gorm:"not null" json:"genki_max_chapter"`
	LengthCategory   string    `gorm:"type:varchar(10);not null" json:"length_category"`
	Topic            string    `gorm:"type:varchar(50);not null" json:"topic"`
	Upvotes          int       `gorm:"not null;default:0" json:"upvotes"`
	CreatedAt        time.Time `json:"created_at"`
}

func (Story) TableName() string {
	return "stories"
}

// JoinContent はタイトルと本文を保存用の正規形に結合します
func JoinContent(title, body string) string {
	return title + "\n\n" + body
}

// SplitContent は保存形式を最初の空行でタイトルと本文に分割します。
// 空行が含まれない場合はタイトルを空にして全体を本文として返します。
func SplitContent(content string) (title, body string) {
	title, body, found := strings.Cut(content, "\n\n")
	if !found {
		return "", content
	}
	return title, body
}

// GenerateStoryRequest はストーリー生成APIのリクエストDTO。
// tadoku_level=0 を許容するため数値はポインタで受け取る。
type GenerateStoryRequest struct {
	WaniKaniLevel *int        `json:"wanikani_level" validate:"required,min=1,max=60"`
	GenkiChapter  *int        `json:"genki_chapter" validate:"required,min=1,max=23"`
	TadokuLevel   *int        `json:"tadoku_level" validate:"required,min=0,max=5"`
	Length        StoryLength `json:"length" validate:"required,oneof=short medium long"`
	Topic         string      `json:"topic" validate:"required,max=50"`
}

// Validate はプロンプト生成の前提条件を検査し、最初に違反した制約を ValidationError で返します
func (r *GenerateStoryRequest) Validate() error {
	if r == nil {
		return &ValidationError{Field: "request", Constraint: "is required"}
	}
	switch {
	case r.WaniKaniLevel == nil:
		return &ValidationError{Field: "wanikani_level", Constraint: "is required"}
	case r.GenkiChapter == nil:
		return &ValidationError{Field: "genki_chapter", Constraint: "is required"}
	case r.TadokuLevel == nil:
		return &ValidationError{Field: "tadoku_level", Constraint: "is required"}
	case r.Length == "":
		return &ValidationError{Field: "length", Constraint: "is required"}
	case strings.TrimSpace(r.Topic) == "":
		return &ValidationError{Field: "topic", Constraint: "is required"}
	}

	if *r.WaniKaniLevel < MinWaniKaniLevel || *r.WaniKaniLevel > MaxWaniKaniLevel {
		return &ValidationError{Field: "wanikani_level", Constraint: "must be between 1 and 60"}
	}
	if *r.GenkiChapter < MinGenkiChapter || *r.GenkiChapter > MaxGenkiChapter {
		return &ValidationError{Field: "genki_chapter", Constraint: "must be between 1 and 23"}
	}
	if *r.TadokuLevel < MinTadokuLevel || *r.TadokuLevel > MaxTadokuLevel {
		return &ValidationError{Field: "tadoku_level", Constraint: "must be between 0 and 5"}
	}
	if _, ok := r.Length.Band(); !ok {
		return &ValidationError{Field: "length", Constraint: "must be short, medium, or long"}
	}
	if utf8.RuneCountInString(r.Topic) > MaxTopicLength {
		return &ValidationError{Field: "topic", Constraint: "must be 50 characters or less"}
	}
	return nil
}

// GenerateStoryResponse は生成成功時のレスポンス。再クエリせずに組み立てる。
type GenerateStoryResponse struct {
	ID            uuid.UUID   `json:"id"`
	TitleJP       string      `json:"title_jp"`
	TitleEN       string      `json:"title_en"`
	ContentJP     string      `json:"content_jp"`
	ContentEN     string      `json:"content_en"`
	StoryJP       string      `json:"storyJP"`
	StoryEN       string      `json:"storyEN"`
	TadokuLevel   int         `json:"tadoku_level"`
	WaniKaniLevel int         `json:"wanikani_level"`
	GenkiChapter  int         `json:"genki_chapter"`
	Length        StoryLength `json:"length"`
	Topic         string      `json:"topic"`
}

// StoryDetailResponse はストーリー詳細 (語彙・文法つき) のレスポンス
type StoryDetailResponse struct {
	ID               uuid.UUID         `json:"id"`
	TitleJP          string            `json:"title_jp"`
	TitleEN          string            `json:"title_en"`
	ContentJP        string            `json:"content_jp"`
	ContentEN        string            `json:"content_en"`
	StoryJP          string            `json:"storyJP"`
	StoryEN          string            `json:"storyEN"`
	TadokuLevel      int               `json:"tadoku_level"`
	WaniKaniMaxLevel int               `json:"wanikani_max_level"`
	GenkiMaxChapter  int               `json:"genki_max_chapter"`
	LengthCategory   string            `json:"length_category"`
	Topic            string            `json:"topic"`
	Upvotes          int               `json:"upvotes"`
	CreatedAt        time.Time         `json:"created_at"`
	Vocabulary       []VocabularyEntry `json:"vocabulary"`
	Grammar          []GrammarEntry    `json:"grammar"`
}
