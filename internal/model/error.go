// internal/model/error.go
package model

import (
	"errors"
	"fmt"
	"strings"
)

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrConflict       = errors.New("resource conflict")

	// ストーリー生成パイプライン
	ErrConfiguration     = errors.New("configuration error")
	ErrUpstreamAuth      = errors.New("text generation API authentication error")
	ErrRateLimited       = errors.New("text generation API rate limit exceeded")
	ErrUpstreamTimeout   = errors.New("text generation request timed out")
	ErrUpstream          = errors.New("text generation API error")
	ErrMalformedResponse = errors.New("text generation response format is incomplete")
	ErrPersistence       = errors.New("failed to save generated story")
)

// AppError はハンドラ層で返すエラーコード・メッセージ・対象フィールドを保持します
type AppError struct {
	Code    string
	Message string
	Field   string
	Err     error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{Code: code, Message: message, Field: field, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
}

// ValidationError は生成リクエストの制約違反です。外部呼び出しの前に検出されます。
type ValidationError struct {
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Constraint)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// MalformedResponseError は生成テキストがセクション契約を満たさない場合のエラーです。
// 欠落・空のセクションをすべて列挙します。
type MalformedResponseError struct {
	Missing []string
	Empty   []string
}

func (e *MalformedResponseError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing sections: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Empty) > 0 {
		parts = append(parts, "empty sections: "+strings.Join(e.Empty, ", "))
	}
	return ErrMalformedResponse.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

// UpstreamError はテキスト生成APIの呼び出し失敗です。
// Kind は ErrUpstreamAuth / ErrRateLimited / ErrUpstreamTimeout / ErrUpstream のいずれか。
type UpstreamError struct {
	Kind       error
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := e.Kind.Error()
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// PersistenceError はトランザクション中のストア操作の失敗です。トランザクションはロールバック済み。
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersistence.Error(), e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }
