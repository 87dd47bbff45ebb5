package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/shaktatech/sitecontent/pkg/sitecontent"
)

// Repository implements sitecontent.Repository using in-memory storage
type Repository struct {
	mu       sync.RWMutex
	entities map[uuid.UUID]*sitecontent.Entity
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		entities: make(map[uuid.UUID]*sitecontent.Entity),
	}
}

func (r *Repository) CreateEntity(ctx context.Context, entity *sitecontent.Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy to avoid external modifications
	r.entities[entity.ID] = copyEntity(entity)

	return nil
}

func (r *Repository) GetEntity(ctx context.Context, id uuid.UUID) (*sitecontent.Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entity, exists := r.entities[id]
	if !exists {
		return nil, sitecontent.ErrEntityNotFound
	}

	return copyEntity(entity), nil
}

func (r *Repository) UpdateEntity(ctx context.Context, entity *sitecontent.Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entities[entity.ID]; !exists {
		return sitecontent.ErrEntityNotFound
	}

	r.entities[entity.ID] = copyEntity(entity)

	return nil
}

func (r *Repository) DeleteEntity(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entities[id]; !exists {
		return sitecontent.ErrEntityNotFound
	}

	delete(r.entities, id)
	return nil
}

func (r *Repository) ListEntities(ctx context.Context, collection string, offset, limit int) ([]*sitecontent.Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.collect(collection)

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	return all[offset:end], nil
}

func (r *Repository) CountEntities(ctx context.Context, collection string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, entity := range r.entities {
		if entity.Collection == collection {
			count++
		}
	}
	return count, nil
}

func (r *Repository) FirstEntity(ctx context.Context, collection string) (*sitecontent.Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.collect(collection)
	if len(all) == 0 {
		return nil, sitecontent.ErrEntityNotFound
	}
	// Oldest row is the singleton
	return all[len(all)-1], nil
}

// collect returns copies of a collection sorted by created_at descending.
func (r *Repository) collect(collection string) []*sitecontent.Entity {
	var result []*sitecontent.Entity
	for _, entity := range r.entities {
		if entity.Collection == collection {
			result = append(result, copyEntity(entity))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID.String() < result[j].ID.String()
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result
}

func copyEntity(entity *sitecontent.Entity) *sitecontent.Entity {
	entityCopy := *entity
	entityCopy.Fields = entity.Fields.Clone()
	return &entityCopy
}
