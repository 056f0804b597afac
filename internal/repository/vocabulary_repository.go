//go:generate mockery --name VocabularyRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tadoku-reader/storygen/internal/middleware"
	"github.com/tadoku-reader/storygen/internal/model"
)

type VocabularyRepository interface {
	FindByWordReading(ctx context.Context, db *gorm.DB, word, reading string) (*model.VocabularyEntry, error)
	// FindOrCreate は (word, reading) が既存ならその行を、なければ挿入した行を返す。created は挿入したかどうか。
	FindOrCreate(ctx context.Context, tx *gorm.DB, entry *model.VocabularyEntry) (found *model.VocabularyEntry, created bool, err error)
	LinkToStory(ctx context.Context, tx *gorm.DB, storyID, vocabID uuid.UUID) error
	FindByStory(ctx context.Context, db *gorm.DB, storyID uuid.UUID) ([]model.VocabularyEntry, error)
}

type gormVocabularyRepository struct{}

func NewGormVocabularyRepository() VocabularyRepository {
	return &gormVocabularyRepository{}
}

func (r *gormVocabularyRepository) FindByWordReading(ctx context.Context, db *gorm.DB, word, reading string) (*model.VocabularyEntry, error) {
	logger := middleware.GetLogger(ctx)
	var entry model.VocabularyEntry
	result := db.WithContext(ctx).Where("word = ? AND reading = ?", word, reading).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding vocabulary by word/reading in DB",
			"error", result.Error,
			"word", word,
			"reading", reading,
		)
		return nil, fmt.Errorf("gormVocabularyRepository.FindByWordReading: %w", result.Error)
	}
	return &entry, nil
}

func (r *gormVocabularyRepository) FindOrCreate(ctx context.Context, tx *gorm.DB, entry *model.VocabularyEntry) (*model.VocabularyEntry, bool, error) {
	logger := middleware.GetLogger(ctx)

	existing, err := r.FindByWordReading(ctx, tx, entry.Word, entry.Reading)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, false, err
	}

	if entry.VocabID == uuid.Nil {
		entry.VocabID = uuid.New()
	}
	// 並行リクエストが同じ (word, reading) を先に挿入した場合は何もせず、既存行を読み直す
	result := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "word"}, {Name: "reading"}},
			DoNothing: true,
		}).
		Create(entry)
	if result.Error != nil {
		logger.Error("Error creating vocabulary in DB",
			"error", result.Error,
			"word", entry.Word,
			"reading", entry.Reading,
		)
		return nil, false, fmt.Errorf("gormVocabularyRepository.FindOrCreate: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		logger.Debug("Vocabulary inserted concurrently, reusing existing row",
			"word", entry.Word,
			"reading", entry.Reading,
		)
		existing, err := r.FindByWordReading(ctx, tx, entry.Word, entry.Reading)
		if err != nil {
			return nil, false, fmt.Errorf("gormVocabularyRepository.FindOrCreate: %w", err)
		}
		return existing, false, nil
	}
	return entry, true, nil
}

func (r *gormVocabularyRepository) LinkToStory(ctx context.Context, tx *gorm.DB, storyID, vocabID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	link := &model.StoryVocabulary{
		LinkID:  uuid.New(),
		StoryID: storyID,
		VocabID: vocabID,
	}
	if err := tx.WithContext(ctx).Create(link).Error; err != nil {
		logger.Error("Error linking vocabulary to story",
			"error", err,
			"story_id", storyID.String(),
			"vocab_id", vocabID.String(),
		)
		return fmt.Errorf("gormVocabularyRepository.LinkToStory: %w", err)
	}
	return nil
}

func (r *gormVocabularyRepository) FindByStory(ctx context.Context, db *gorm.DB, storyID uuid.UUID) ([]model.VocabularyEntry, error) {
	logger := middleware.GetLogger(ctx)
	var entries []model.VocabularyEntry
	result := db.WithContext(ctx).
		Model(&model.VocabularyEntry{}).
		Joins("JOIN story_vocabulary ON story_vocabulary.vocab_id = vocabulary.id").
		Where("story_vocabulary.story_id = ?", storyID).
		Order("vocabulary.word ASC").
		Find(&entries)
	if result.Error != nil {
		logger.Error("Error finding vocabulary by story in DB",
			"error", result.Error,
			"story_id", storyID.String(),
		)
		return nil, fmt.Errorf("gormVocabularyRepository.FindByStory: %w", result.Error)
	}
	return entries, nil
}
