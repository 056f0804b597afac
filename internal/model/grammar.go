// internal/model/grammar.go
package model

import "github.com/google/uuid"

// MaxGenkiReferenceLength を超える参照は 47 文字 + "..." に切り詰めて保存する
const MaxGenkiReferenceLength = 50

// GrammarEntry は文法項目です。grammar_point で一意。
type GrammarEntry struct {
	GrammarID      uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	GrammarPoint   string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_grammar_point" json:"grammar_point"`
	Explanation    string    `gorm:"type:text;not null" json:"explanation"`
	GenkiReference string    `gorm:"type:varchar(50)" json:"genki_reference"`
}

func (GrammarEntry) TableName() string {
	return "grammar"
}

// StoryGrammar はストーリーと文法項目の関連です
type StoryGrammar struct {
	LinkID    uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	StoryID   uuid.UUID `gorm:"type:uuid;not null;index"`
	GrammarID uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (StoryGrammar) TableName() string {
	return "story_grammar"
}
