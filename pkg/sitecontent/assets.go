package sitecontent

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
)

// RetireFunc deletes the asset superseded by a Replace. The caller invokes
// it only after its own entity update has committed, so a failed commit
// never costs the old, still-referenced asset. Safe to call when there is
// nothing to retire.
type RetireFunc func(ctx context.Context) error

// AssetManager binds, replaces and unbinds the single asset attached to an
// entity record. It touches only the blob store; callers sequence its
// operations around their own persistence commits. Stateless and safe for
// concurrent use across distinct entities; concurrent writes against the
// same entity must be serialized by the caller.
type AssetManager struct {
	store       BlobStore
	backendName string
	logger      *slog.Logger
}

// AssetManagerConfig options for an AssetManager.
type AssetManagerConfig struct {
	BackendName string       // Backend name used in storage error reports
	Store       BlobStore    // Required blob store
	Logger      *slog.Logger // Optional logger for orphan-window reporting
}

// NewAssetManager creates an asset manager. A store is required.
func NewAssetManager(cfg AssetManagerConfig) (*AssetManager, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &AssetManager{
		store:       cfg.Store,
		backendName: cfg.BackendName,
		logger:      cfg.Logger,
	}, nil
}

// Bind stores a first upload for an entity and returns the pointer the
// caller must persist as part of the same logical create. If the entity
// create later fails, the written file is acceptable collateral; it must
// never make the entity write look successful.
func (m *AssetManager) Bind(ctx context.Context, req NameRequest, strategy NamingStrategy) (AssetPointer, error) {
	name, err := strategy.Name(req)
	if err != nil {
		return AssetPointer{}, err
	}

	if err := m.store.Upload(ctx, name, bytes.NewReader(req.Data)); err != nil {
		return AssetPointer{}, &StorageError{Backend: m.backendName, Key: name, Op: "upload", Err: err}
	}

	return AssetPointer{Path: name}, nil
}

// Replace stores a replacement upload and returns the new pointer plus a
// RetireFunc for the superseded file.
//
// When the strategy resolves to the same stored name as the old pointer,
// the upload is the same logical asset: both the write and the delete are
// skipped, so a transient delete-then-failed-rewrite can never erase a
// live asset. Otherwise the new object is written before the old one is
// touched, and the old one is deleted only when the caller invokes the
// RetireFunc after committing the new pointer.
func (m *AssetManager) Replace(ctx context.Context, old AssetPointer, req NameRequest, strategy NamingStrategy) (AssetPointer, RetireFunc, error) {
	name, err := strategy.Name(req)
	if err != nil {
		return AssetPointer{}, nil, err
	}

	if old.Bound() && old.Path == name {
		return old, func(context.Context) error { return nil }, nil
	}

	if err := m.store.Upload(ctx, name, bytes.NewReader(req.Data)); err != nil {
		return AssetPointer{}, nil, &StorageError{Backend: m.backendName, Key: name, Op: "upload", Err: err}
	}

	retire := func(ctx context.Context) error {
		if !old.Bound() {
			return nil
		}
		if err := m.store.Delete(ctx, old.Path); err != nil {
			return &StorageError{Backend: m.backendName, Key: old.Path, Op: "delete", Err: err}
		}
		return nil
	}

	return AssetPointer{Path: name}, retire, nil
}

// Unbind deletes the referenced asset. Unbound pointers and
// already-deleted files are no-ops.
func (m *AssetManager) Unbind(ctx context.Context, ptr AssetPointer) error {
	if !ptr.Bound() {
		return nil
	}
	if err := m.store.Delete(ctx, ptr.Path); err != nil {
		return &StorageError{Backend: m.backendName, Key: ptr.Path, Op: "delete", Err: err}
	}
	return nil
}

// Exists reports whether the pointer's asset is present in the store.
func (m *AssetManager) Exists(ctx context.Context, ptr AssetPointer) (bool, error) {
	if !ptr.Bound() {
		return false, nil
	}
	ok, err := m.store.Exists(ctx, ptr.Path)
	if err != nil {
		return false, &StorageError{Backend: m.backendName, Key: ptr.Path, Op: "exists", Err: err}
	}
	return ok, nil
}

// ResolveURL maps the pointer to its public URL, or "" when unbound.
func (m *AssetManager) ResolveURL(ptr AssetPointer) string {
	if !ptr.Bound() {
		return ""
	}
	return m.store.ResolveURL(ptr.Path)
}

// DiscardOrphan logs a written-but-never-committed asset. The orphan stays
// in the store; cleanup is a deliberate non-goal, but the window is always
// reported.
func (m *AssetManager) DiscardOrphan(ptr AssetPointer, reason string) {
	if !ptr.Bound() {
		return
	}
	m.logger.Warn("orphaned asset left in store",
		"backend", m.backendName,
		"key", ptr.Path,
		"reason", reason)
}
