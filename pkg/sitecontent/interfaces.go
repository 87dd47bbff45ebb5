package sitecontent

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// BlobStore defines the interface for storage backends.
type BlobStore interface {
	// Exists reports whether an object is stored under key. Absence is a
	// valid, expected answer, not an error.
	Exists(ctx context.Context, key string) (bool, error)

	// Upload stores the reader's bytes under key, replacing any object
	// already stored there.
	Upload(ctx context.Context, key string, reader io.Reader) error

	// Download opens the object stored under key.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object stored under key. Deleting a missing key
	// is not an error, so retries and races with concurrent deletion are
	// harmless.
	Delete(ctx context.Context, key string) error

	// ResolveURL maps a store-relative key to the public URL external
	// consumers read it from. Keys that are already absolute URLs are
	// returned unchanged.
	ResolveURL(key string) string

	// GetObjectMeta retrieves metadata for a stored object.
	GetObjectMeta(ctx context.Context, key string) (*ObjectMeta, error)
}

// NamingStrategy maps an upload to its stored name. Implementations must
// be pure: the same request always yields the same name.
type NamingStrategy interface {
	Name(req NameRequest) (string, error)
}

// Repository defines the interface for entity persistence.
type Repository interface {
	CreateEntity(ctx context.Context, entity *Entity) error
	GetEntity(ctx context.Context, id uuid.UUID) (*Entity, error)
	UpdateEntity(ctx context.Context, entity *Entity) error
	DeleteEntity(ctx context.Context, id uuid.UUID) error

	// ListEntities returns a window of a collection ordered by creation
	// time descending.
	ListEntities(ctx context.Context, collection string, offset, limit int) ([]*Entity, error)
	CountEntities(ctx context.Context, collection string) (int64, error)

	// FirstEntity returns the single row of a singleton collection (the
	// settings table), or ErrEntityNotFound when none exists yet.
	FirstEntity(ctx context.Context, collection string) (*Entity, error)
}
