package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/atriumdata/docpipe/core"
	"github.com/atriumdata/docpipe/storage"
)

// Dependency errors returned by NewServer.
var (
	// ErrOrchestratorRequired is returned when an ingestion orchestrator is not provided.
	ErrOrchestratorRequired = errors.New("ingestion orchestrator required")

	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")

	// ErrDocumentStoreRequired is returned when a document store is not provided.
	ErrDocumentStoreRequired = errors.New("document store required")

	// ErrParserRequired is returned when a parsing client is not provided.
	ErrParserRequired = errors.New("parsing client required")
)

// AppError is an error carrying the HTTP status code it should map to.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// MapError maps domain errors to AppErrors with appropriate HTTP status
// codes. Validation failures map to 400, missing records to 404, failed
// collaborator calls to 502, everything else to 500.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, core.ErrEmptyPrompt),
		errors.Is(err, core.ErrEmptySQL),
		errors.Is(err, core.ErrFileRequired),
		errors.Is(err, core.ErrUnsupportedFile),
		errors.Is(err, core.ErrInvalidChunkParams),
		errors.Is(err, core.ErrEmptyContent):
		return NewAppError(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, core.ErrDocumentNotParsed), errors.Is(err, storage.ErrNotFound):
		return NewAppError(http.StatusNotFound, err.Error(), err)
	case errors.Is(err, storage.ErrRequestFailed):
		return NewAppError(http.StatusBadGateway, "storage service request failed", err)
	}

	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}
