// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorHandler writes standardized error responses for the API layer.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// errorEnvelope is the JSON body written for every failed request.
type errorEnvelope struct {
	Error     string                 `json:"error"`
	Code      ErrorCode              `json:"code"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	RequestID string                 `json:"requestId,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// RespondError normalizes err, logs it, and writes the JSON error envelope
// with the mapped HTTP status.
func (h *ErrorHandler) RespondError(w http.ResponseWriter, requestID string, err error) {
	stdErr := h.normalizeError(err)
	status := HTTPStatus(stdErr.Code)

	h.logError(requestID, stdErr, status)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		Error:     stdErr.Message,
		Code:      stdErr.Code,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Metadata:  stdErr.Metadata,
		RequestID: requestID,
		Timestamp: stdErr.Timestamp.Format(time.RFC3339),
	})
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func (h *ErrorHandler) logError(requestID string, stdErr *StandardError, status int) {
	fields := map[string]interface{}{
		"requestId": requestID,
		"errorCode": string(stdErr.Code),
		"category":  GetErrorCategory(stdErr.Code),
		"details":   stdErr.Details,
		"status":    status,
	}

	// Client errors are expected traffic; only server-side failures page.
	if status >= http.StatusInternalServerError {
		h.logger.Error(stdErr.Message, fields)
		return
	}
	h.logger.Warn(stdErr.Message, fields)
}
