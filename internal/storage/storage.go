package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"vibenet_backend/internal/config"
)

// Storage stores objects inside the images container and exposes them at
// {baseURL}/{container}/{key}.
type Storage interface {
	// Save stores the object under key.
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes the object. A missing object is not an error.
	Delete(ctx context.Context, key string) error

	// Exists checks if the object exists.
	Exists(ctx context.Context, key string) (bool, error)

	// URL returns the public URL of key.
	URL(key string) string
}

// NewStorage creates a storage backend based on cfg.Type.
func NewStorage(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

func publicURL(baseURL, container, key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(baseURL, "/"), container, key)
}
