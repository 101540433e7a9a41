// Package errors provides standardized error handling for the scheme engine.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeCorpusLoadFailed        ErrorCode = "CORPUS_LOAD_FAILED"
	ErrCodeCorpusSourceUnavailable ErrorCode = "CORPUS_SOURCE_UNAVAILABLE"
	ErrCodeCorpusEmpty             ErrorCode = "CORPUS_EMPTY"
	ErrCodeCorpusDecodeFailed      ErrorCode = "CORPUS_DECODE_FAILED"

	ErrCodeInvalidProfile ErrorCode = "INVALID_PROFILE"
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrCodeSchemeNotFound ErrorCode = "SCHEME_NOT_FOUND"

	ErrCodeEnrichmentTimeout     ErrorCode = "ENRICHMENT_TIMEOUT"
	ErrCodeEnrichmentUnavailable ErrorCode = "ENRICHMENT_UNAVAILABLE"

	ErrCodeVocabularyInvalid ErrorCode = "VOCABULARY_INVALID"
	ErrCodeCacheUnavailable  ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewCorpusLoadError creates a retryable corpus load error.
func NewCorpusLoadError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCorpusLoadFailed,
		Message:   "Scheme corpus load failed",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCorpusSourceUnavailableError creates a retryable source connection error.
func NewCorpusSourceUnavailableError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCorpusSourceUnavailable,
		Message:   "Scheme corpus source unavailable",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCorpusEmptyError creates a non-retryable empty corpus error. Reload
// rejects a zero-record load and keeps the previous snapshot serving.
func NewCorpusEmptyError(source string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCorpusEmpty,
		Message:   "Scheme corpus contains no records",
		Details:   fmt.Sprintf("source: %s", source),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCorpusDecodeError creates a non-retryable decode error.
func NewCorpusDecodeError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCorpusDecodeFailed,
		Message:   "Scheme corpus decode failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidProfileError creates a non-retryable profile validation error.
func NewInvalidProfileError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidProfile,
		Message:   "User profile failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a non-retryable request error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Request failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSchemeNotFoundError creates a non-retryable lookup error.
func NewSchemeNotFoundError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchemeNotFound,
		Message:   "No scheme matches the requested name",
		Details:   fmt.Sprintf("name: %s", name),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEnrichmentTimeoutError creates a non-retryable (fall back to original
// fields) enrichment timeout error.
func NewEnrichmentTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEnrichmentTimeout,
		Message:   "Enrichment service timeout",
		Details:   "Enrichment call exceeded its timeout budget",
		Retryable: false, // ranked results are served unenriched, no retry
		Timestamp: time.Now().UTC(),
	}
}

// NewEnrichmentUnavailableError creates a retryable enrichment transport error.
func NewEnrichmentUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEnrichmentUnavailable,
		Message:   "Enrichment service error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewVocabularyInvalidError creates a non-retryable vocabulary file error.
func NewVocabularyInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeVocabularyInvalid,
		Message:   "Vocabulary extension file failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache error.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Cache backend error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected internal error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// HTTPStatus maps an error code to the response status the API layer writes.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidProfile, ErrCodeInvalidRequest, ErrCodeVocabularyInvalid:
		return http.StatusBadRequest
	case ErrCodeSchemeNotFound:
		return http.StatusNotFound
	case ErrCodeCorpusSourceUnavailable, ErrCodeEnrichmentUnavailable, ErrCodeCacheUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeEnrichmentTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeCorpusLoadFailed, ErrCodeCorpusDecodeFailed, ErrCodeCorpusEmpty:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GetRetryCount returns the recommended retry count for boot-time operations.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCorpusLoadFailed,
		ErrCodeCorpusSourceUnavailable,
		ErrCodeCacheUnavailable:
		return 3 // Retryable technical errors

	case ErrCodeEnrichmentUnavailable:
		return 2

	default:
		return 0 // Business errors: no retry
	}
}

// ==========================
// 4. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CORPUS"):
		return "CORPUS"
	case strings.Contains(codeStr, "ENRICHMENT"):
		return "ENRICHMENT"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "VOCABULARY"):
		return "VOCABULARY"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "NOT_FOUND"):
		return "LOOKUP"
	default:
		return "OTHER"
	}
}
