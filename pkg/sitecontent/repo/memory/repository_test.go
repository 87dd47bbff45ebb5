package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaktatech/sitecontent/pkg/sitecontent"
)

func newEntity(collection, name string, createdAt time.Time) *sitecontent.Entity {
	return &sitecontent.Entity{
		ID:         uuid.New(),
		Collection: collection,
		Fields:     sitecontent.Record{sitecontent.FieldName: name},
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func TestCreateAndGetEntity(t *testing.T) {
	ctx := context.Background()
	repo := New()

	entity := newEntity("members", "Jane Doe", time.Now().UTC())
	require.NoError(t, repo.CreateEntity(ctx, entity))

	loaded, err := repo.GetEntity(ctx, entity.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ID, loaded.ID)
	assert.Equal(t, "Jane Doe", loaded.Fields.Get(sitecontent.FieldName))

	// Stored copy is isolated from later caller mutation.
	entity.Fields[sitecontent.FieldName] = "Changed"
	loaded, err = repo.GetEntity(ctx, entity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", loaded.Fields.Get(sitecontent.FieldName))
}

func TestGetEntityNotFound(t *testing.T) {
	repo := New()
	_, err := repo.GetEntity(context.Background(), uuid.New())
	assert.ErrorIs(t, err, sitecontent.ErrEntityNotFound)
}

func TestUpdateEntity(t *testing.T) {
	ctx := context.Background()
	repo := New()

	entity := newEntity("members", "Jane Doe", time.Now().UTC())
	require.NoError(t, repo.CreateEntity(ctx, entity))

	entity.Fields[sitecontent.FieldName] = "Jane Smith"
	require.NoError(t, repo.UpdateEntity(ctx, entity))

	loaded, err := repo.GetEntity(ctx, entity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", loaded.Fields.Get(sitecontent.FieldName))

	missing := newEntity("members", "Nobody", time.Now().UTC())
	assert.ErrorIs(t, repo.UpdateEntity(ctx, missing), sitecontent.ErrEntityNotFound)
}

func TestDeleteEntity(t *testing.T) {
	ctx := context.Background()
	repo := New()

	entity := newEntity("members", "Jane Doe", time.Now().UTC())
	require.NoError(t, repo.CreateEntity(ctx, entity))

	require.NoError(t, repo.DeleteEntity(ctx, entity.ID))

	_, err := repo.GetEntity(ctx, entity.ID)
	assert.ErrorIs(t, err, sitecontent.ErrEntityNotFound)
	assert.ErrorIs(t, repo.DeleteEntity(ctx, entity.ID), sitecontent.ErrEntityNotFound)
}

func TestListEntitiesOrderAndWindow(t *testing.T) {
	ctx := context.Background()
	repo := New()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.CreateEntity(ctx, newEntity("projects", fmt.Sprintf("Project %d", i), base.Add(time.Duration(i)*time.Minute))))
	}
	require.NoError(t, repo.CreateEntity(ctx, newEntity("members", "Jane Doe", base)))

	// Newest first.
	all, err := repo.ListEntities(ctx, "projects", 0, 10)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "Project 4", all[0].Fields.Get(sitecontent.FieldName))
	assert.Equal(t, "Project 0", all[4].Fields.Get(sitecontent.FieldName))

	// Window past the end is empty, not an error.
	window, err := repo.ListEntities(ctx, "projects", 4, 10)
	require.NoError(t, err)
	assert.Len(t, window, 1)

	none, err := repo.ListEntities(ctx, "projects", 10, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCountEntities(t *testing.T) {
	ctx := context.Background()
	repo := New()

	count, err := repo.CountEntities(ctx, "projects")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, repo.CreateEntity(ctx, newEntity("projects", "A", time.Now().UTC())))
	require.NoError(t, repo.CreateEntity(ctx, newEntity("projects", "B", time.Now().UTC())))
	require.NoError(t, repo.CreateEntity(ctx, newEntity("members", "C", time.Now().UTC())))

	count, err = repo.CountEntities(ctx, "projects")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestFirstEntity(t *testing.T) {
	ctx := context.Background()
	repo := New()

	_, err := repo.FirstEntity(ctx, "settings")
	assert.ErrorIs(t, err, sitecontent.ErrEntityNotFound)

	base := time.Now().UTC()
	oldest := newEntity("settings", "Original", base)
	require.NoError(t, repo.CreateEntity(ctx, oldest))
	require.NoError(t, repo.CreateEntity(ctx, newEntity("settings", "Later", base.Add(time.Hour))))

	first, err := repo.FirstEntity(ctx, "settings")
	require.NoError(t, err)
	assert.Equal(t, oldest.ID, first.ID)
}
