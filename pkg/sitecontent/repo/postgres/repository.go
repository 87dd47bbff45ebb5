// Package postgres implements sitecontent.Repository on PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE entity (
//	    id         UUID PRIMARY KEY,
//	    collection TEXT NOT NULL,
//	    fields     JSONB NOT NULL DEFAULT '{}',
//	    asset_path TEXT,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX entity_collection_created_idx ON entity (collection, created_at DESC);
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaktatech/sitecontent/pkg/sitecontent"
)

// DBTX is an interface that allows us to use either a database connection
// or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements sitecontent.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with a connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("entity already exists")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

func (r *Repository) CreateEntity(ctx context.Context, entity *sitecontent.Entity) error {
	query := `
		INSERT INTO entity (id, collection, fields, asset_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		entity.ID, entity.Collection, entity.Fields,
		nullablePath(entity.Asset), entity.CreatedAt, entity.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("create entity", err)
	}

	return nil
}

func (r *Repository) GetEntity(ctx context.Context, id uuid.UUID) (*sitecontent.Entity, error) {
	query := `
		SELECT id, collection, fields, asset_path, created_at, updated_at
		FROM entity WHERE id = $1`

	entity, err := scanEntity(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sitecontent.ErrEntityNotFound
		}
		return nil, err
	}

	return entity, nil
}

func (r *Repository) UpdateEntity(ctx context.Context, entity *sitecontent.Entity) error {
	query := `
		UPDATE entity SET collection = $2, fields = $3, asset_path = $4, updated_at = $5
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		entity.ID, entity.Collection, entity.Fields,
		nullablePath(entity.Asset), entity.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("update entity", err)
	}
	if tag.RowsAffected() == 0 {
		return sitecontent.ErrEntityNotFound
	}

	return nil
}

func (r *Repository) DeleteEntity(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM entity WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete entity", err)
	}
	if tag.RowsAffected() == 0 {
		return sitecontent.ErrEntityNotFound
	}
	return nil
}

func (r *Repository) ListEntities(ctx context.Context, collection string, offset, limit int) ([]*sitecontent.Entity, error) {
	query := `
		SELECT id, collection, fields, asset_path, created_at, updated_at
		FROM entity WHERE collection = $1
		ORDER BY created_at DESC, id
		OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, collection, offset, limit)
	if err != nil {
		return nil, r.handlePostgresError("list entities", err)
	}
	defer rows.Close()

	var entities []*sitecontent.Entity
	for rows.Next() {
		entity, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}

	return entities, rows.Err()
}

func (r *Repository) CountEntities(ctx context.Context, collection string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM entity WHERE collection = $1`, collection).Scan(&count)
	if err != nil {
		return 0, r.handlePostgresError("count entities", err)
	}
	return count, nil
}

func (r *Repository) FirstEntity(ctx context.Context, collection string) (*sitecontent.Entity, error) {
	query := `
		SELECT id, collection, fields, asset_path, created_at, updated_at
		FROM entity WHERE collection = $1
		ORDER BY created_at ASC, id
		LIMIT 1`

	entity, err := scanEntity(r.db.QueryRow(ctx, query, collection))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sitecontent.ErrEntityNotFound
		}
		return nil, err
	}

	return entity, nil
}

func scanEntity(row pgx.Row) (*sitecontent.Entity, error) {
	var entity sitecontent.Entity
	var assetPath *string

	if err := row.Scan(
		&entity.ID, &entity.Collection, &entity.Fields,
		&assetPath, &entity.CreatedAt, &entity.UpdatedAt); err != nil {
		return nil, err
	}

	if assetPath != nil {
		entity.Asset = sitecontent.AssetPointer{Path: *assetPath}
	}

	return &entity, nil
}

func nullablePath(ptr sitecontent.AssetPointer) *string {
	if !ptr.Bound() {
		return nil
	}
	return &ptr.Path
}
