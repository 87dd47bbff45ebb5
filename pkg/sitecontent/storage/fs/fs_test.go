package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	backend, err := New(Config{BaseDir: t.TempDir()})
	require.NoError(t, err)
	return backend
}

func TestNewRequiresBaseDir(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestUploadDownload(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)

	require.NoError(t, backend.Upload(ctx, "members/jane-doe.png", strings.NewReader("image bytes")))

	reader, err := backend.Download(ctx, "members/jane-doe.png")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)

	exists, err := backend.Exists(ctx, "missing.png")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, backend.Upload(ctx, "present.png", strings.NewReader("x")))

	exists, err = backend.Exists(ctx, "present.png")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDeleteMissingIsNoOp(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)

	assert.NoError(t, backend.Delete(ctx, "never-existed.png"))
	assert.NoError(t, backend.Delete(ctx, "deep/nested/never-existed.png"))
}

func TestDeleteCleansEmptyDirectories(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	backend, err := New(Config{BaseDir: dir})
	require.NoError(t, err)

	require.NoError(t, backend.Upload(ctx, "members/avatars/jane.png", strings.NewReader("x")))
	require.NoError(t, backend.Delete(ctx, "members/avatars/jane.png"))

	_, err = os.Stat(filepath.Join(dir, "members"))
	assert.True(t, os.IsNotExist(err), "empty parent directories are removed")

	_, err = os.Stat(dir)
	assert.NoError(t, err, "base directory survives")
}

func TestUploadOverwrite(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)

	require.NoError(t, backend.Upload(ctx, "a.png", strings.NewReader("v1")))
	require.NoError(t, backend.Upload(ctx, "a.png", strings.NewReader("v2")))

	reader, err := backend.Download(ctx, "a.png")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}

func TestResolveURL(t *testing.T) {
	backend, err := New(Config{BaseDir: t.TempDir(), BaseURL: "https://host.example.com/storage"})
	require.NoError(t, err)

	assert.Equal(t, "https://host.example.com/storage/members/jane.png", backend.ResolveURL("members/jane.png"))
}

func TestGetObjectMeta(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)

	require.NoError(t, backend.Upload(ctx, "note.txt", strings.NewReader("hello world")))

	meta, err := backend.GetObjectMeta(ctx, "note.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(11), meta.Size)
	assert.Contains(t, meta.ContentType, "text/plain")

	_, err = backend.GetObjectMeta(ctx, "missing.txt")
	assert.Error(t, err)
}
