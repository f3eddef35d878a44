package documents

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// allowedMimeTypes are the content types browsers report for Word files,
// including the generic and empty types some clients send.
var allowedMimeTypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/msword":       true,
	"application/octet-stream": true,
	"application/x-msword":     true,
	"application/word":         true,
	"":                         true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// ValidateUpload accepts a file when either its MIME type or its extension
// identifies a Word document.
func ValidateUpload(name, mimeType string) error {
	if allowedMimeTypes[mimeType] {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".doc" || ext == ".docx" {
		return nil
	}

	return fmt.Errorf("%w: type %q, file %q", ErrUnsupportedType, mimeType, name)
}

// storedFilename prefixes the sanitized original name with the upload time
// in unix milliseconds.
func storedFilename(original string, at time.Time) string {
	return fmt.Sprintf("%d-%s", at.UnixMilli(), sanitizeFilename(original))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("documents/%s/%s", id.String(), filename)
}
