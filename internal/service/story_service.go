//go:generate mockery --name StoryService --output ./mocks --outpkg mocks --case=underscore --with-expecter=false
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tadoku-reader/storygen/internal/middleware"
	"github.com/tadoku-reader/storygen/internal/model"
	"github.com/tadoku-reader/storygen/internal/repository"
)

type StoryService interface {
	GenerateStory(ctx context.Context, userID uuid.UUID, req *model.GenerateStoryRequest) (*model.GenerateStoryResponse, error)
	GetStory(ctx context.Context, storyID uuid.UUID) (*model.StoryDetailResponse, error)
}

type storyService struct {
	db          *gorm.DB // トランザクション用にDB接続を持つ
	generator   TextGenerator
	analyzer    *StoryAnalyzer // nil の場合は本文の解析を省略
	storyRepo   repository.StoryRepository
	vocabRepo   repository.VocabularyRepository
	grammarRepo repository.GrammarRepository
}

func NewStoryService(
	db *gorm.DB,
	generator TextGenerator,
	analyzer *StoryAnalyzer,
	storyRepo repository.StoryRepository,
	vocabRepo repository.VocabularyRepository,
	grammarRepo repository.GrammarRepository,
) StoryService {
	return &storyService{
		db:          db,
		generator:   generator,
		analyzer:    analyzer,
		storyRepo:   storyRepo,
		vocabRepo:   vocabRepo,
		grammarRepo: grammarRepo,
	}
}

// GenerateStory はプロンプト生成 → テキスト生成 → 解析 → 永続化を順に実行します。
// 検証エラーは外部呼び出しの前に返す。失敗時は何も保存されない。
func (s *storyService) GenerateStory(ctx context.Context, userID uuid.UUID, req *model.GenerateStoryRequest) (*model.GenerateStoryResponse, error) {
	logger := middleware.GetLogger(ctx)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 呼び出し元が切断しても、生成はタイムアウトか完了まで続ける
	ctx = context.WithoutCancel(ctx)

	prompt := BuildStoryPrompt(req)
	start := time.Now()
	text, err := s.generator.Generate(ctx, StorySystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("storyService.GenerateStory: %w", err)
	}
	logger.Info("Story text generated",
		"elapsed_ms", time.Since(start).Milliseconds(),
		"prompt_chars", len(prompt),
		"response_chars", len(text),
	)

	parsed, err := ParseStoryResponse(text)
	if err != nil {
		var malformed *model.MalformedResponseError
		if errors.As(err, &malformed) {
			logger.Error("Generated text is incomplete",
				"missing_sections", malformed.Missing,
				"empty_sections", malformed.Empty,
				"response_chars", len(text),
			)
		}
		return nil, fmt.Errorf("storyService.GenerateStory: %w", err)
	}
	if len(parsed.Vocabulary) == 0 || len(parsed.Grammar) == 0 {
		logger.Warn("No vocabulary or grammar lines matched the expected format",
			"vocabulary", len(parsed.Vocabulary),
			"grammar", len(parsed.Grammar),
		)
	}
	s.logStoryStats(ctx, req.Length, parsed.StoryJP)

	story := &model.Story{
		StoryID:          uuid.New(),
		UserID:           userID,
		ContentJP:        model.JoinContent(parsed.TitleJP, parsed.StoryJP),
		ContentEN:        model.JoinContent(parsed.TitleEN, parsed.StoryEN),
		TadokuLevel:      *req.TadokuLevel,
		WaniKaniMaxLevel: *req.WaniKaniLevel,
		GenkiMaxChapter:  *req.GenkiChapter,
		LengthCategory:   string(req.Length),
		Topic:            strings.TrimSpace(req.Topic),
	}
	if err := s.saveStory(ctx, story, parsed); err != nil {
		return nil, err
	}

	logger.Info("Story saved",
		"story_id", story.StoryID.String(),
		"vocabulary_links", len(parsed.Vocabulary),
		"grammar_links", len(parsed.Grammar),
	)

	return &model.GenerateStoryResponse{
		ID:            story.StoryID,
		TitleJP:       parsed.TitleJP,
		TitleEN:       parsed.TitleEN,
		ContentJP:     story.ContentJP,
		ContentEN:     story.ContentEN,
		StoryJP:       parsed.StoryJP,
		StoryEN:       parsed.StoryEN,
		TadokuLevel:   story.TadokuLevel,
		WaniKaniLevel: story.WaniKaniMaxLevel,
		GenkiChapter:  story.GenkiMaxChapter,
		Length:        req.Length,
		Topic:         story.Topic,
	}, nil
}

// saveStory はストーリー・語彙・文法・関連を1トランザクションで保存します。
// 同じ語彙・文法が複数回出現した場合は出現ごとに関連を作る。
func (s *storyService) saveStory(ctx context.Context, story *model.Story, parsed *ParsedStory) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.storyRepo.Create(ctx, tx, story); err != nil {
			return &model.PersistenceError{Op: "insert story", Err: err}
		}

		for _, v := range parsed.Vocabulary {
			entry, _, err := s.vocabRepo.FindOrCreate(ctx, tx, &model.VocabularyEntry{
				Word:      v.Word,
				Reading:   v.Reading,
				Meaning:   v.Meaning,
				ExampleJP: v.Example,
			})
			if err != nil {
				return &model.PersistenceError{Op: "find or create vocabulary", Err: err}
			}
			if err := s.vocabRepo.LinkToStory(ctx, tx, story.StoryID, entry.VocabID); err != nil {
				return &model.PersistenceError{Op: "link vocabulary", Err: err}
			}
		}

		for _, g := range parsed.Grammar {
			entry, _, err := s.grammarRepo.FindOrCreate(ctx, tx, &model.GrammarEntry{
				GrammarPoint:   g.Pattern,
				Explanation:    g.Explanation,
				GenkiReference: g.Reference,
			})
			if err != nil {
				return &model.PersistenceError{Op: "find or create grammar", Err: err}
			}
			if err := s.grammarRepo.LinkToStory(ctx, tx, story.StoryID, entry.GrammarID); err != nil {
				return &model.PersistenceError{Op: "link grammar", Err: err}
			}
		}
		return nil
	})
	if err != nil {
		middleware.GetLogger(ctx).Error("Story transaction rolled back", "story_id", story.StoryID.String(), "error", err)
		var persistErr *model.PersistenceError
		if !errors.As(err, &persistErr) {
			err = &model.PersistenceError{Op: "commit", Err: err}
		}
		return err
	}
	return nil
}

func (s *storyService) logStoryStats(ctx context.Context, length model.StoryLength, storyJP string) {
	if s.analyzer == nil {
		return
	}
	band, _ := length.Band()
	stats := s.analyzer.Analyze(storyJP)
	logger := middleware.GetLogger(ctx).With(
		"characters", stats.Characters,
		"kanji", stats.Kanji,
		"tokens", stats.Tokens,
		"sentences", stats.Sentences,
		"length", string(length),
	)
	if !stats.WithinBand(band) {
		logger.Warn("Generated story is outside the requested length band", "band_min", band.Min, "band_max", band.Max)
		return
	}
	logger.Debug("Generated story stats")
}

// GetStory は保存済みストーリーをタイトルと本文に分割し、語彙・文法とともに返します
func (s *storyService) GetStory(ctx context.Context, storyID uuid.UUID) (*model.StoryDetailResponse, error) {
	story, err := s.storyRepo.FindByID(ctx, s.db, storyID)
	if err != nil {
		return nil, err
	}
	vocabulary, err := s.vocabRepo.FindByStory(ctx, s.db, storyID)
	if err != nil {
		return nil, err
	}
	grammar, err := s.grammarRepo.FindByStory(ctx, s.db, storyID)
	if err != nil {
		return nil, err
	}
	if vocabulary == nil {
		vocabulary = []model.VocabularyEntry{}
	}
	if grammar == nil {
		grammar = []model.GrammarEntry{}
	}

	titleJP, storyJP := model.SplitContent(story.ContentJP)
	titleEN, storyEN := model.SplitContent(story.ContentEN)
	return &model.StoryDetailResponse{
		ID:               story.StoryID,
		TitleJP:          titleJP,
		TitleEN:          titleEN,
		ContentJP:        story.ContentJP,
		ContentEN:        story.ContentEN,
		StoryJP:          storyJP,
		StoryEN:          storyEN,
		TadokuLevel:      story.TadokuLevel,
		WaniKaniMaxLevel: story.WaniKaniMaxLevel,
		GenkiMaxChapter:  story.GenkiMaxChapter,
		LengthCategory:   story.LengthCategory,
		Topic:            story.Topic,
		Upvotes:          story.Upvotes,
		CreatedAt:        story.CreatedAt,
		Vocabulary:       vocabulary,
		Grammar:          grammar,
	}, nil
}
