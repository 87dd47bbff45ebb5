package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/shaktatech/sitecontent/pkg/sitecontent"
)

// Backend is an in-memory implementation of the sitecontent.BlobStore
// interface, intended for tests and development.
type Backend struct {
	mu        sync.RWMutex
	objects   map[string][]byte
	updatedAt map[string]time.Time
	baseURL   string
}

// Config options for the in-memory backend
type Config struct {
	BaseURL string // Optional public base URL for ResolveURL
}

// New creates a new in-memory storage backend
func New() *Backend {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a new in-memory storage backend with options
func NewWithConfig(config Config) *Backend {
	return &Backend{
		objects:   make(map[string][]byte),
		updatedAt: make(map[string]time.Time),
		baseURL:   config.BaseURL,
	}
}

// Exists reports whether an object is stored under key
func (b *Backend) Exists(ctx context.Context, key string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, exists := b.objects[key]
	return exists, nil
}

// Upload stores the reader's bytes under key
func (b *Backend) Upload(ctx context.Context, key string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[key] = data
	b.updatedAt[key] = time.Now().UTC()
	return nil
}

// Download opens the object stored under key
func (b *Backend) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[key]
	if !exists {
		return nil, errors.New("object not found")
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes the object stored under key. Missing keys are a no-op.
func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.objects, key)
	delete(b.updatedAt, key)
	return nil
}

// ResolveURL maps a key to its public URL
func (b *Backend) ResolveURL(key string) string {
	return sitecontent.ResolvePublicURL(b.baseURL, key)
}

// GetObjectMeta retrieves metadata for an object in memory
func (b *Backend) GetObjectMeta(ctx context.Context, key string) (*sitecontent.ObjectMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[key]
	if !exists {
		return nil, errors.New("object not found")
	}

	return &sitecontent.ObjectMeta{
		Key:       key,
		Size:      int64(len(data)),
		UpdatedAt: b.updatedAt[key],
	}, nil
}

// Len reports the number of stored objects. Test helper.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.objects)
}
