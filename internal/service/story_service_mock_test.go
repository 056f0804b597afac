package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tadoku-reader/storygen/internal/model"
	repomocks "github.com/tadoku-reader/storygen/internal/repository/mocks"
)

func storedStory(id uuid.UUID) *model.Story {
	return &model.Story{
		StoryID:          id,
		UserID:           uuid.New(),
		ContentJP:        "ねこのいちにち\n\nわたしの猫はミケです。",
		ContentEN:        "A Day of a Cat\n\nMy cat is Mike.",
		TadokuLevel:      2,
		WaniKaniMaxLevel: 10,
		GenkiMaxChapter:  5,
		LengthCategory:   "medium",
		Topic:            "daily life",
	}
}

func TestStoryService_GetStory_WithMockRepositories(t *testing.T) {
	storyID := uuid.New()
	storyRepo := repomocks.NewStoryRepository(t)
	vocabRepo := repomocks.NewVocabularyRepository(t)
	grammarRepo := repomocks.NewGrammarRepository(t)

	storyRepo.On("FindByID", mock.Anything, mock.Anything, storyID).Return(storedStory(storyID), nil)
	vocabRepo.On("FindByStory", mock.Anything, mock.Anything, storyID).Return(nil, nil)
	grammarRepo.On("FindByStory", mock.Anything, mock.Anything, storyID).Return(nil, nil)

	svc := NewStoryService(nil, &fakeGenerator{}, nil, storyRepo, vocabRepo, grammarRepo)
	got, err := svc.GetStory(context.Background(), storyID)
	require.NoError(t, err)

	assert.Equal(t, "ねこのいちにち", got.TitleJP)
	assert.Equal(t, "My cat is Mike.", got.StoryEN)
	// 関連がなくても null ではなく空配列を返す
	assert.NotNil(t, got.Vocabulary)
	assert.Empty(t, got.Vocabulary)
	assert.NotNil(t, got.Grammar)
	assert.Empty(t, got.Grammar)
}

func TestStoryService_GetStory_RepositoryErrors(t *testing.T) {
	dbErr := errors.New("connection reset")

	t.Run("story not found", func(t *testing.T) {
		storyRepo := repomocks.NewStoryRepository(t)
		storyRepo.On("FindByID", mock.Anything, mock.Anything, mock.Anything).Return(nil, model.ErrNotFound)

		svc := NewStoryService(nil, &fakeGenerator{}, nil, storyRepo, repomocks.NewVocabularyRepository(t), repomocks.NewGrammarRepository(t))
		_, err := svc.GetStory(context.Background(), uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("grammar lookup fails", func(t *testing.T) {
		storyID := uuid.New()
		storyRepo := repomocks.NewStoryRepository(t)
		vocabRepo := repomocks.NewVocabularyRepository(t)
		grammarRepo := repomocks.NewGrammarRepository(t)
		storyRepo.On("FindByID", mock.Anything, mock.Anything, storyID).Return(storedStory(storyID), nil)
		vocabRepo.On("FindByStory", mock.Anything, mock.Anything, storyID).Return([]model.VocabularyEntry{{Word: "猫"}}, nil)
		grammarRepo.On("FindByStory", mock.Anything, mock.Anything, storyID).Return(nil, dbErr)

		svc := NewStoryService(nil, &fakeGenerator{}, nil, storyRepo, vocabRepo, grammarRepo)
		got, err := svc.GetStory(context.Background(), storyID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestStoryService_GenerateStory_VocabularyFailureStopsSave(t *testing.T) {
	db := setupTestDB(t)
	storyRepo := repomocks.NewStoryRepository(t)
	vocabRepo := repomocks.NewVocabularyRepository(t)
	grammarRepo := repomocks.NewGrammarRepository(t)

	storyRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Story")).Return(nil).Once()
	vocabRepo.On("FindOrCreate", mock.Anything, mock.Anything, mock.MatchedBy(func(e *model.VocabularyEntry) bool {
		return e.Word == "猫" && e.Reading == "ねこ" && e.Meaning == "cat"
	})).Return(nil, false, errors.New("unique violation")).Once()
	// 語彙で失敗した後は関連付けも文法も呼ばれない

	svc := NewStoryService(db, &fakeGenerator{text: wellFormedResponse}, nil, storyRepo, vocabRepo, grammarRepo)
	resp, err := svc.GenerateStory(context.Background(), uuid.New(), validRequest())
	assert.Nil(t, resp)

	var persistErr *model.PersistenceError
	require.True(t, errors.As(err, &persistErr))
	assert.Equal(t, "find or create vocabulary", persistErr.Op)
	vocabRepo.AssertNotCalled(t, "LinkToStory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
