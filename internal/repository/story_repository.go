//go:generate mockery --name StoryRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tadoku-reader/storygen/internal/middleware"
	"github.com/tadoku-reader/storygen/internal/model"
)

type StoryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, story *model.Story) error
	FindByID(ctx context.Context, db *gorm.DB, storyID uuid.UUID) (*model.Story, error)
}

type gormStoryRepository struct{}

func NewGormStoryRepository() StoryRepository {
	return &gormStoryRepository{}
}

func (r *gormStoryRepository) Create(ctx context.Context, tx *gorm.DB, story *model.Story) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(story)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			logger.Warn("Story ID already exists", "story_id", story.StoryID.String())
			return fmt.Errorf("gormStoryRepository.Create: %w", model.ErrConflict)
		}
		logger.Error("Error creating story in DB",
			"error", result.Error,
			"user_id", story.UserID.String(),
			"topic", story.Topic,
		)
		return fmt.Errorf("gormStoryRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormStoryRepository) FindByID(ctx context.Context, db *gorm.DB, storyID uuid.UUID) (*model.Story, error) {
	logger := middleware.GetLogger(ctx)
	var story model.Story
	result := db.WithContext(ctx).Where("id = ?", storyID).First(&story)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding story by ID in DB",
			"error", result.Error,
			"story_id", storyID.String(),
		)
		return nil, fmt.Errorf("gormStoryRepository.FindByID: %w", result.Error)
	}
	return &story, nil
}
