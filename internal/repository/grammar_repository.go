//go:generate mockery --name GrammarRepository --output ./mocks --outpkg mocks --case=underscore
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

type GrammarRepository interface {
	FindByPoint(ctx context.Context, db *gorm.DB, grammarPoint string) (*model.GrammarEntry, error)
	FindOrCreate(ctx context.Context, tx *gorm.DB, entry *model.GrammarEntry) (found *model.GrammarEntry, created bool, err error)
	LinkToStory(ctx context.Context, tx *gorm.DB, storyID, grammarID uuid.UUID) error
	FindByStory(ctx context.Context, db *gorm.DB, storyID uuid.UUID) ([]model.GrammarEntry, error)
}

type gormGrammarRepository struct{}

func NewGormGrammarRepository() GrammarRepository {
	return &gormGrammarRepository{}
}

func (r *gormGrammarRepository) FindByPoint(ctx context.Context, db *gorm.DB, grammarPoint string) (*model.GrammarEntry, error) {
	logger := middleware.GetLogger(ctx)
	var entry model.GrammarEntry
	result := db.WithContext(ctx).Where("grammar_point = ?", grammarPoint).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding grammar by point in DB",
			"error", result.Error,
			"grammar_point", grammarPoint,
		)
		return nil, fmt.Errorf("gormGrammarRepository.FindByPoint: %w", result.Error)
	}
	return &entry, nil
}

func (r *gormGrammarRepository) FindOrCreate(ctx context.Context, tx *gorm.DB, entry *model.GrammarEntry) (*model.GrammarEntry, bool, error) {
	logger := middleware.GetLogger(ctx)

	existing, err := r.FindByPoint(ctx, tx, entry.GrammarPoint)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, false, err
	}

	if entry.GrammarID == uuid.Nil {
		entry.GrammarID = uuid.New()
	}
	result := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "grammar_point"}},
			DoNothing: true,
		}).
		Create(entry)
	if result.Error != nil {
		logger.Error("Error creating grammar in DB",
			"error", result.Error,
			"grammar_point", entry.GrammarPoint,
		)
		return nil, false, fmt.Errorf("gormGrammarRepository.FindOrCreate: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		logger.Debug("Grammar inserted concurrently, reusing existing row", "grammar_point", entry.GrammarPoint)
		existing, err := r.FindByPoint(ctx, tx, entry.GrammarPoint)
		if err != nil {
			return nil, false, fmt.Errorf("gormGrammarRepository.FindOrCreate: %w", err)
		}
		return existing, false, nil
	}
	return entry, true, nil
}

func (r *gormGrammarRepository) LinkToStory(ctx context.Context, tx *gorm.DB, storyID, grammarID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	link := &model.StoryGrammar{
		LinkID:    uuid.New(),
		StoryID:   storyID,
		GrammarID: grammarID,
	}
	if err := tx.WithContext(ctx).Create(link).Error; err != nil {
		logger.Error("Error linking grammar to story",
			"error", err,
			"story_id", storyID.String(),
			"grammar_id", grammarID.String(),
		)
		return fmt.Errorf("gormGrammarRepository.LinkToStory: %w", err)
	}
	return nil
}

func (r *gormGrammarRepository) FindByStory(ctx context.Context, db *gorm.DB, storyID uuid.UUID) ([]model.GrammarEntry, error) {
	logger := middleware.GetLogger(ctx)
	var entries []model.GrammarEntry
	result := db.WithContext(ctx).
		Model(&model.GrammarEntry{}).
		Joins("JOIN story_grammar ON story_grammar.grammar_id = grammar.id").
		Where("story_grammar.story_id = ?", storyID).
		Order("grammar.grammar_point ASC").
		Find(&entries)
	if result.Error != nil {
		logger.Error("Error finding grammar by story in DB",
			"error", result.Error,
			"story_id", storyID.String(),
		)
		return nil, fmt.Errorf("gormGrammarRepository.FindByStory: %w", result.Error)
	}
	return entries, nil
}
