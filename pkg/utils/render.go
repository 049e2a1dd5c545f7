package utils

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/google/uuid"
	apperrors "github.com/tendant/simple-idm-multiuser/pkg/errors"
)

// ErrorResponse is the JSON body of every error response
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RenderError writes err with the status mapped from its code
func RenderError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	code := apperrors.GetCode(err)

	resp := ErrorResponse{
		Error:   err.Error(),
		Code:    string(code),
		Details: apperrors.GetDetails(err),
	}
	var e *apperrors.Error
	if errors.As(err, &e) {
		resp.Error = e.Message
	}
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "method", r.Method, "path", r.URL.Path, "code", code, "error", err)
		resp.Error = http.StatusText(status)
		resp.Details = nil
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}

// DecodeJSONMap decodes a JSON object request body
func DecodeJSONMap(r *http.Request) (map[string]any, error) {
	data := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid request body")
	}
	return data, nil
}

// ParseUUID parses s, returning uuid.Nil when it is not a valid UUID
func ParseUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}
