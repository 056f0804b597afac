// internal/webutil/response.go
package webutil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/tadoku-reader/storygen/internal/model"
)

const serverErrorMessage = "Server error"

// HandleError はエラーを解釈し、適切なステータスコードとJSONエラーレスポンスを返します。
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := MapErrorToStatusCode(err)
	errResp := NewErrorResponse(statusCode, err)

	if statusCode >= http.StatusInternalServerError {
		logger.Error("Request failed", "status", statusCode, "code", errResp.Code, "error", err)
	} else {
		logger.Warn("Request rejected", "status", statusCode, "code", errResp.Code, "error", err)
	}

	RespondWithJSON(w, statusCode, errResp, logger)
}

// MapErrorToStatusCode はアプリケーションエラーをHTTPステータスコードにマッピングします
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	default:
		// 上流API・設定・永続化の失敗はすべて 500
		return http.StatusInternalServerError
	}
}

// NewErrorResponse はエラーからレスポンスボディを組み立てます。
// 5xx の message は常に "Server error"、error に原因の説明を入れる。
func NewErrorResponse(statusCode int, err error) model.APIErrorResponse {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		resp := model.APIErrorResponse{
			Message: appErr.Message,
			Error:   appErr.Message,
			Code:    appErr.Code,
			Field:   appErr.Field,
		}
		if appErr.Err != nil {
			resp.Error = appErr.Err.Error()
		}
		if statusCode >= http.StatusInternalServerError {
			resp.Message = serverErrorMessage
		}
		return resp
	}

	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return model.APIErrorResponse{
			Message: "Invalid request: " + validationErr.Error(),
			Error:   validationErr.Error(),
			Code:    "VALIDATION_ERROR",
			Field:   validationErr.Field,
		}
	}

	resp := model.APIErrorResponse{Message: serverErrorMessage}
	switch {
	case errors.Is(err, model.ErrConfiguration):
		resp.Code = "CONFIGURATION_ERROR"
		resp.Error = err.Error()
	case errors.Is(err, model.ErrUpstreamAuth):
		resp.Code = "UPSTREAM_AUTH_ERROR"
		resp.Error = "API authentication error"
	case errors.Is(err, model.ErrRateLimited):
		resp.Code = "RATE_LIMITED"
		resp.Error = "Text generation API rate limit exceeded. Please try again later."
	case errors.Is(err, model.ErrUpstreamTimeout):
		resp.Code = "UPSTREAM_TIMEOUT"
		resp.Error = "Request timed out. Please try again with a shorter story length."
	case errors.Is(err, model.ErrMalformedResponse):
		resp.Code = "MALFORMED_RESPONSE"
		resp.Error = err.Error()
	case errors.Is(err, model.ErrUpstream):
		resp.Code = "UPSTREAM_ERROR"
		resp.Error = err.Error()
	case errors.Is(err, model.ErrPersistence):
		resp.Code = "PERSISTENCE_ERROR"
		resp.Error = model.ErrPersistence.Error()
	case statusCode == http.StatusNotFound:
		resp.Message, resp.Code, resp.Error = "Resource not found", "NOT_FOUND", model.ErrNotFound.Error()
	case statusCode == http.StatusBadRequest:
		resp.Message, resp.Code, resp.Error = "Invalid request", "INVALID_INPUT", err.Error()
	case statusCode == http.StatusUnauthorized:
		resp.Message, resp.Code, resp.Error = "Unauthorized", "UNAUTHORIZED", model.ErrUnauthorized.Error()
	case statusCode == http.StatusConflict:
		resp.Message, resp.Code, resp.Error = "Conflict", "CONFLICT", model.ErrConflict.Error()
	default:
		resp.Code = "INTERNAL_SERVER_ERROR"
		resp.Error = model.ErrInternalServer.Error()
	}
	return resp
}

// RespondWithJSON はJSONレスポンスを返します
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error marshaling JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"Server error","error":"failed to encode response","code":"INTERNAL_SERVER_ERROR"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		logger.Warn("Error writing JSON response", "error", err)
	}
}

// NewValidationErrorResponse は validator のエラーを最初の違反フィールドを示す AppError に変換します
func NewValidationErrorResponse(errs validator.ValidationErrors) *model.AppError {
	if len(errs) == 0 {
		return model.NewAppError("VALIDATION_ERROR", "Invalid request", "", model.ErrInvalidInput)
	}
	first := errs[0]
	message := first.Translate(Trans)
	return model.NewAppError(
		"VALIDATION_ERROR",
		message,
		first.Field(),
		&model.ValidationError{Field: first.Field(), Constraint: first.Tag()},
	)
}
