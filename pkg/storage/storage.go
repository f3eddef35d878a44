package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/JaimeStill/lab-catalog/pkg/lifecycle"
)

// System stores and retrieves blobs by key.
type System interface {
	// Store writes data at key, replacing any existing content.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns ErrNotFound when key does not exist.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete is idempotent: a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Validate reports whether key exists and is readable.
	Validate(ctx context.Context, key string) (bool, error)

	// Path returns a stable backend-specific location for key.
	Path(ctx context.Context, key string) (string, error)

	Start(lc *lifecycle.Coordinator) error
}

// New builds the backend selected by cfg.Backend.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Backend {
	case BackendFilesystem:
		return NewFilesystem(cfg.BasePath, logger)
	case BackendMinio:
		return NewMinio(&cfg.Minio, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}

func cleanKey(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}

	cleaned := path.Clean(strings.ReplaceAll(key, "\\", "/"))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || strings.HasPrefix(cleaned, "/") {
		return "", ErrInvalidKey
	}

	return cleaned, nil
}
