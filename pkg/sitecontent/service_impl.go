package sitecontent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repository    Repository
	assets        *AssetManager
	naming        map[string]NamingStrategy
	defaultNaming NamingStrategy
	logger        *slog.Logger
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithAssetManager sets the asset manager for the service
func WithAssetManager(m *AssetManager) Option {
	return func(s *service) {
		s.assets = m
	}
}

// WithNamingStrategy sets the default naming strategy for uploads
func WithNamingStrategy(strategy NamingStrategy) Option {
	return func(s *service) {
		s.defaultNaming = strategy
	}
}

// WithCollectionNaming sets the naming strategy for one collection,
// overriding the default.
func WithCollectionNaming(collection string, strategy NamingStrategy) Option {
	return func(s *service) {
		if s.naming == nil {
			s.naming = make(map[string]NamingStrategy)
		}
		s.naming[collection] = strategy
	}
}

// WithServiceLogger sets the logger for the service
func WithServiceLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		naming: make(map[string]NamingStrategy),
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.assets == nil {
		return nil, fmt.Errorf("asset manager is required")
	}
	if s.defaultNaming == nil {
		return nil, fmt.Errorf("default naming strategy is required")
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s, nil
}

func (s *service) strategyFor(collection string) NamingStrategy {
	if strategy, ok := s.naming[collection]; ok {
		return strategy
	}
	return s.defaultNaming
}

func (s *service) CreateEntity(ctx context.Context, req CreateEntityRequest) (*Entity, error) {
	if req.Collection == "" {
		return nil, fmt.Errorf("collection is required")
	}
	if req.Fields == nil {
		return nil, ErrInvalidRecord
	}

	now := time.Now().UTC()
	entity := &Entity{
		ID:         uuid.New(),
		Collection: req.Collection,
		Fields:     req.Fields.Clone(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if req.Upload != nil {
		ptr, err := s.assets.Bind(ctx, NameRequest{
			EntityID:  entity.ID,
			Fields:    entity.Fields,
			Data:      req.Upload.Data,
			Extension: req.Upload.Extension,
		}, s.strategyFor(req.Collection))
		if err != nil {
			return nil, &EntityError{EntityID: entity.ID, Op: "create", Err: err}
		}
		entity.Asset = ptr
	}

	if err := s.repository.CreateEntity(ctx, entity); err != nil {
		// The bound file stays behind as a logged orphan; the create is
		// still a failure.
		s.assets.DiscardOrphan(entity.Asset, "entity create failed")
		return nil, &EntityError{EntityID: entity.ID, Op: "create", Err: err}
	}

	return entity, nil
}

func (s *service) GetEntity(ctx context.Context, id uuid.UUID) (*Entity, error) {
	return s.repository.GetEntity(ctx, id)
}

func (s *service) UpdateEntity(ctx context.Context, req UpdateEntityRequest) (*Entity, error) {
	entity, err := s.repository.GetEntity(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	merged := MergeFields(entity.Fields, req.Fields)
	if req.Upload == nil && !req.ClearAsset && !FieldsChanged(entity.Fields, merged) {
		return nil, ErrNoChanges
	}

	oldAsset := entity.Asset
	retire := RetireFunc(func(context.Context) error { return nil })

	switch {
	case req.Upload != nil:
		newPtr, r, err := s.assets.Replace(ctx, oldAsset, NameRequest{
			EntityID:  entity.ID,
			Fields:    merged,
			Data:      req.Upload.Data,
			Extension: req.Upload.Extension,
		}, s.strategyFor(entity.Collection))
		if err != nil {
			return nil, &EntityError{EntityID: entity.ID, Op: "update", Err: err}
		}
		entity.Asset = newPtr
		retire = r
	case req.ClearAsset:
		entity.Asset = AssetPointer{}
		retire = func(ctx context.Context) error {
			return s.assets.Unbind(ctx, oldAsset)
		}
	}

	entity.Fields = merged
	entity.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateEntity(ctx, entity); err != nil {
		// The old asset stays live; a freshly written replacement is a
		// logged orphan.
		if entity.Asset.Bound() && entity.Asset.Path != oldAsset.Path {
			s.assets.DiscardOrphan(entity.Asset, "entity update failed")
		}
		return nil, &EntityError{EntityID: entity.ID, Op: "update", Err: err}
	}

	// Superseded file is deleted only after the record commit. A failed
	// delete leaves a tolerated orphan, never a dangling pointer.
	if err := retire(ctx); err != nil {
		s.logger.Warn("failed to retire superseded asset",
			"entity_id", entity.ID, "key", oldAsset.Path, "error", err)
	}

	return entity, nil
}

func (s *service) DeleteEntity(ctx context.Context, id uuid.UUID) error {
	entity, err := s.repository.GetEntity(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repository.DeleteEntity(ctx, id); err != nil {
		return &EntityError{EntityID: id, Op: "delete", Err: err}
	}

	// Asset removal follows the record commit; a failure here orphans the
	// file rather than resurrecting the record.
	if err := s.assets.Unbind(ctx, entity.Asset); err != nil {
		s.logger.Warn("failed to delete asset for removed entity",
			"entity_id", id, "key", entity.Asset.Path, "error", err)
	}

	return nil
}

func (s *service) ListEntities(ctx context.Context, req ListEntitiesRequest) (*EntityPage, error) {
	if req.Collection == "" {
		return nil, fmt.Errorf("collection is required")
	}

	total, err := s.repository.CountEntities(ctx, req.Collection)
	if err != nil {
		return nil, err
	}

	p := Paginate(req.Page, req.Limit, total)

	items, err := s.repository.ListEntities(ctx, req.Collection, p.Offset, p.Limit)
	if err != nil {
		return nil, err
	}

	return &EntityPage{Items: items, Pagination: p}, nil
}

func (s *service) UpsertSingleton(ctx context.Context, req UpsertSingletonRequest) (*Entity, error) {
	existing, err := s.repository.FirstEntity(ctx, req.Collection)
	if errors.Is(err, ErrEntityNotFound) {
		return s.CreateEntity(ctx, CreateEntityRequest(req))
	}
	if err != nil {
		return nil, err
	}

	entity, err := s.UpdateEntity(ctx, UpdateEntityRequest{
		ID:     existing.ID,
		Fields: req.Fields,
		Upload: req.Upload,
	})
	if errors.Is(err, ErrNoChanges) {
		return existing, nil
	}
	return entity, err
}

func (s *service) AssetURL(entity *Entity) string {
	if entity == nil {
		return ""
	}
	return s.assets.ResolveURL(entity.Asset)
}
