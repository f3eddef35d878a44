package documents

import (
	"errors"
	"net/http"
)

// Domain errors for document operations.
var (
	ErrNotFound         = errors.New("document not found")
	ErrDuplicate        = errors.New("document storage key already exists")
	ErrFileTooLarge     = errors.New("file exceeds maximum upload size")
	ErrInvalidFile      = errors.New("invalid file")
	ErrUnsupportedType  = errors.New("unsupported file type, upload a .doc or .docx file")
	ErrInvalidImport    = errors.New("invalid import request")
	ErrNothingToImport  = errors.New("no eligible articles to import")
	ErrAlreadyImported  = errors.New("document article already imported")
	ErrNotPending       = errors.New("document is not awaiting parse")
	ErrMissingPrincipal = errors.New("authenticated principal required")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrAlreadyImported):
		return http.StatusConflict
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidFile),
		errors.Is(err, ErrUnsupportedType),
		errors.Is(err, ErrInvalidImport),
		errors.Is(err, ErrNothingToImport):
		return http.StatusBadRequest
	case errors.Is(err, ErrMissingPrincipal):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
