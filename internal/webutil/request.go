package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tadoku-reader/storygen/internal/model"
)

// maxRequestBodyBytes はJSONリクエストボディの上限です
const maxRequestBodyBytes = 1 << 20

// DecodeJSONBody はリクエストボディをデコードします。未知のフィールドは拒否します。
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return model.NewAppError("INVALID_JSON", "Request body is required", "", model.ErrInvalidInput)
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return model.NewAppError("INVALID_JSON", "Request body is too large", "", model.ErrInvalidInput)
		}
		if errors.Is(err, io.EOF) {
			return model.NewAppError("INVALID_JSON", "Request body is required", "", model.ErrInvalidInput)
		}
		return model.NewAppError("INVALID_JSON", fmt.Sprintf("Invalid JSON body: %v", err), "", model.ErrInvalidInput)
	}
	return nil
}
