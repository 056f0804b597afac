package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tadoku-reader/storygen/internal/model"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestHandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantError   string
		wantField   string
	}{
		{
			name:        "validation",
			err:         &model.ValidationError{Field: "genki_chapter", Constraint: "must be between 1 and 23"},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "VALIDATION_ERROR",
			wantMessage: "Invalid request: genki_chapter must be between 1 and 23",
			wantField:   "genki_chapter",
		},
		{
			name:        "app error not found",
			err:         model.NewAppError("NOT_FOUND", "Story not found", "story_id", model.ErrNotFound),
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "Story not found",
			wantField:   "story_id",
		},
		{
			name:        "configuration",
			err:         fmt.Errorf("openAIGenerator.Generate: %w: api key is not set", model.ErrConfiguration),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "CONFIGURATION_ERROR",
			wantMessage: "Server error",
		},
		{
			name:        "upstream auth",
			err:         &model.UpstreamError{Kind: model.ErrUpstreamAuth, StatusCode: 401, Message: "Incorrect API key"},
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "UPSTREAM_AUTH_ERROR",
			wantMessage: "Server error",
			wantError:   "API authentication error",
		},
		{
			name:        "timeout",
			err:         &model.UpstreamError{Kind: model.ErrUpstreamTimeout},
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "UPSTREAM_TIMEOUT",
			wantMessage: "Server error",
			wantError:   "Request timed out. Please try again with a shorter story length.",
		},
		{
			name:        "malformed",
			err:         &model.MalformedResponseError{Missing: []string{"GRAMMAR"}},
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "MALFORMED_RESPONSE",
			wantMessage: "Server error",
		},
		{
			name:        "persistence",
			err:         &model.PersistenceError{Op: "commit", Err: errors.New("connection lost")},
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "PERSISTENCE_ERROR",
			wantMessage: "Server error",
		},
		{
			name:        "unknown",
			err:         errors.New("something odd"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_SERVER_ERROR",
			wantMessage: "Server error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			HandleError(rr, discardLogger, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var resp model.APIErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.Equal(t, tt.wantField, resp.Field)
			assert.NotEmpty(t, resp.Error)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, resp.Error)
			}
		})
	}
}

func TestNewErrorResponse_MalformedNamesSections(t *testing.T) {
	err := fmt.Errorf("storyService.GenerateStory: %w", &model.MalformedResponseError{Missing: []string{"GRAMMAR", "VOCABULARY"}})
	resp := NewErrorResponse(MapErrorToStatusCode(err), err)
	assert.Contains(t, resp.Error, "GRAMMAR")
	assert.Contains(t, resp.Error, "VOCABULARY")
}

type validatedRequest struct {
	Level *int   `json:"wanikani_level" validate:"required,min=1,max=60"`
	Topic string `json:"topic" validate:"required,max=50"`
}

func TestNewValidationErrorResponse(t *testing.T) {
	level := 61
	err := Validator.Struct(validatedRequest{Level: &level, Topic: "cats"})
	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))

	appErr := NewValidationErrorResponse(validationErrors)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "wanikani_level", appErr.Field)
	assert.Equal(t, "wanikani_level must be at most 60", appErr.Message)
	assert.True(t, errors.Is(appErr, model.ErrInvalidInput))

	rr := httptest.NewRecorder()
	HandleError(rr, discardLogger, appErr)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDecodeJSONBody(t *testing.T) {
	var dst validatedRequest

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"wanikani_level":3,"topic":"x"}`))
	require.NoError(t, DecodeJSONBody(httptest.NewRecorder(), req, &dst))
	assert.Equal(t, 3, *dst.Level)

	for _, body := range []string{``, `{"topic":`, `{"topic":"x","unknown":1}`} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		err := DecodeJSONBody(httptest.NewRecorder(), req, &dst)
		assert.True(t, errors.Is(err, model.ErrInvalidInput), "body %q", body)
	}
}
