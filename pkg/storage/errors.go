// Package storage provides durable byte storage addressed by slash-separated
// keys, backed by the local filesystem or an S3-compatible object store.
package storage

import "errors"

var (
	ErrNotFound         = errors.New("storage: key not found")
	ErrPermissionDenied = errors.New("storage: permission denied")
	// ErrInvalidKey covers empty keys and keys that escape the storage root.
	ErrInvalidKey = errors.New("storage: invalid key")
)
