// internal/model/vocabulary.go
package model

import "github.com/google/uuid"

// VocabularyEntry は語彙です。(word, reading) で一意。
type VocabularyEntry struct {
	VocabID   uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Word      string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_vocabulary_word_reading" json:"word"`
	Reading   string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_vocabulary_word_reading" json:"reading"`
	Meaning   string    `gorm:"type:text;not null" json:"meaning"`
	ExampleJP string    `gorm:"column:example_sentence_jp;type:text" json:"example_sentence_jp"`
	ExampleEN string    `gorm:"column:example_sentence_en;type:text" json:"example_sentence_en"`
}

func (VocabularyEntry) TableName() string {
	return "vocabulary"
}

// StoryVocabulary はストーリーと語彙の関連です。(story_id, vocab_id) に一意制約はない。
type StoryVocabulary struct {
	LinkID  uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	StoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	VocabID uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (StoryVocabulary) TableName() string {
	return "story_vocabulary"
}
