package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/parathan/blog-core/internal/config"
)

// Object describes a stored file.
type Object struct {
	// URL is the publicly reachable address of the file.
	URL string `json:"url"`
	// Key identifies the file within the provider, used for deletes.
	Key string `json:"key"`
	// Size is the stored size in bytes.
	Size int64 `json:"size"`
	// Format is the lowercase file extension without the dot.
	Format string `json:"format"`
}

// File is an upload about to be stored.
type File struct {
	// Name is the original filename, used for its extension only.
	Name string
	// Folder namespaces the object key, e.g. "posts".
	Folder string
	Data   []byte
}

// Provider stores and removes uploaded files.
type Provider interface {
	// Upload persists the file and returns its descriptor.
	Upload(ctx context.Context, file File) (Object, error)
	// Delete removes the object; it reports false when the key did not exist.
	Delete(ctx context.Context, key string) (bool, error)
	// URL resolves an object key to its public address.
	URL(key string) string
}

// New builds the provider selected by the configuration.
func New(cfg *config.Config) (Provider, error) {
	switch cfg.Storage.Provider {
	case "local":
		p, err := newLocal(cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "s3":
		p, err := newS3(cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Storage.Provider)
	}
}

// buildKey generates a collision-resistant object key that preserves the
// original extension.
func buildKey(folder, original string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(original)))
	if ext == "" || len(ext) > 10 {
		ext = ".dat"
	}
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	folder = strings.Trim(strings.ReplaceAll(folder, "\\", "/"), "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

func keyFormat(key string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(key)), ".")
}
