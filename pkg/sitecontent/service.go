package sitecontent

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the main interface for the sitecontent library. It
// sequences asset lifecycle operations around entity persistence so that
// a live record never points at a missing file.
type Service interface {
	// Entity operations
	CreateEntity(ctx context.Context, req CreateEntityRequest) (*Entity, error)
	GetEntity(ctx context.Context, id uuid.UUID) (*Entity, error)
	UpdateEntity(ctx context.Context, req UpdateEntityRequest) (*Entity, error)
	DeleteEntity(ctx context.Context, id uuid.UUID) error
	ListEntities(ctx context.Context, req ListEntitiesRequest) (*EntityPage, error)

	// UpsertSingleton updates the single row of a settings-style
	// collection, creating it on first write.
	UpsertSingleton(ctx context.Context, req UpsertSingletonRequest) (*Entity, error)

	// AssetURL resolves an entity's asset pointer to its public URL, or
	// "" when no asset is bound.
	AssetURL(entity *Entity) string
}
