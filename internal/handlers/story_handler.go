// internal/handlers/story_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tadoku-reader/storygen/internal/middleware"
	"github.com/tadoku-reader/storygen/internal/model"
	"github.com/tadoku-reader/storygen/internal/service"
	"github.com/tadoku-reader/storygen/internal/webutil"
)

type StoryHandler struct {
	service service.StoryService
	logger  *slog.Logger
}

func NewStoryHandler(s service.StoryService, logger *slog.Logger) *StoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoryHandler{
		service: s,
		logger:  logger,
	}
}

// GenerateStory は認証済みユーザーのためにストーリーを生成・保存します
func (h *StoryHandler) GenerateStory(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GenerateStory"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.GenerateStoryRequest
	if err := webutil.DecodeJSONBody(w, r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.String("errors", validationErrors.Error()))
			webutil.HandleError(w, logger, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	story, err := h.service.GenerateStory(r.Context(), userID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Story generated successfully", slog.String("story_id", story.ID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, story, logger)
}

// GetStory は保存済みストーリーを語彙・文法つきで返します
func (h *StoryHandler) GetStory(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetStory"))

	storyIDStr := chi.URLParam(r, "story_id")
	storyID, err := uuid.Parse(storyIDStr)
	if err != nil {
		logger.Warn("Invalid story ID format", slog.String("story_id", storyIDStr))
		appErr := model.NewAppError("INVALID_ID_FORMAT", "Invalid story ID format", "story_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	story, err := h.service.GetStory(r.Context(), storyID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			webutil.HandleError(w, logger, model.NewAppError("NOT_FOUND", "Story not found", "story_id", model.ErrNotFound))
			return
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, story, logger)
}
