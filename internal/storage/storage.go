package storage

import "context"

// Well-known key prefixes for the upload layout.
const (
	DocumentsPrefix  = "documents"
	PagesPrefix      = "pages"
	ThumbnailsPrefix = "thumbnails"
)

// System defines the storage operations interface for uploaded files.
// Keys are forward-slash relative paths under the storage base path.
type System interface {
	// Init creates the base directory tree (documents, pages, thumbnails).
	// It is called once during service startup.
	Init() error

	// Store saves data at the specified key. If the key already exists,
	// its contents are overwritten. Parent directories are created as needed.
	// Returns ErrInvalidKey if the key is empty or contains path traversal.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns the data stored at the specified key.
	// Returns ErrNotFound if the key does not exist.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete deletes the file at the specified key.
	// Returns nil if the key does not exist (idempotent).
	Delete(ctx context.Context, key string) error

	// RemoveAll recursively deletes the directory at the specified key.
	// Returns nil if the directory does not exist (idempotent).
	RemoveAll(ctx context.Context, key string) error

	// Exists checks if a key exists and is accessible.
	Exists(ctx context.Context, key string) (bool, error)

	// Path resolves a key to an absolute filesystem path without
	// touching the filesystem.
	Path(key string) (string, error)
}
