package sitecontent

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrEntityNotFound indicates an entity was not found
	ErrEntityNotFound = errors.New("entity not found")

	// ErrInvalidAssetName indicates a naming strategy produced an empty or
	// invalid stored name; the bind/replace is aborted before any write
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidRecord indicates a nil record was handed to a component
	// that requires one
	ErrInvalidRecord = errors.New("invalid record")

	// ErrNoChanges indicates an update carried no field changes and no
	// new upload
	ErrNoChanges = errors.New("no changes made")
)

// StorageError represents an I/O failure against the backing blob store.
// Recoverable by caller retry; never retried internally.
type StorageError struct {
	Backend string
	Key     string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s on backend %s: %v", e.Op, e.Key, e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// EntityError represents an error related to entity operations
type EntityError struct {
	EntityID uuid.UUID
	Op       string
	Err      error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("entity operation %s failed for entity %s: %v", e.Op, e.EntityID, e.Err)
}

func (e *EntityError) Unwrap() error {
	return e.Err
}
