// Package config builds a configured sitecontent service from defaults,
// programmatic options, and environment overrides.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaktatech/sitecontent/pkg/sitecontent"
	"github.com/shaktatech/sitecontent/pkg/sitecontent/naming"
	repomemory "github.com/shaktatech/sitecontent/pkg/sitecontent/repo/memory"
	repopg "github.com/shaktatech/sitecontent/pkg/sitecontent/repo/postgres"
	fsstorage "github.com/shaktatech/sitecontent/pkg/sitecontent/storage/fs"
	memorystorage "github.com/shaktatech/sitecontent/pkg/sitecontent/storage/memory"
	s3storage "github.com/shaktatech/sitecontent/pkg/sitecontent/storage/s3"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top
// of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:           "8080",
		Environment:    "development",
		DatabaseType:   "memory",
		Storage:        StorageConfig{Name: "memory", Type: "memory"},
		NamingStrategy: "unique-slug",
		NamingKeyField: sitecontent.FieldName,
	}
}

// ServerConfig represents server configuration for the sitecontent service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"

	// Storage configuration
	Storage StorageConfig

	// PublicBaseURL is the URL prefix stored asset keys resolve under.
	PublicBaseURL string

	// NamingStrategy selects how uploads are named: "slug",
	// "unique-slug", or "hash".
	NamingStrategy string
	NamingKeyField string
}

// StorageConfig represents configuration for the storage backend
type StorageConfig struct {
	Name string // Backend name used in error reports
	Type string // "memory", "fs", "s3"

	// fs options
	BaseDir string

	// s3 options
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	UsePathStyle    bool
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}

	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	switch c.Storage.Type {
	case "memory":
	case "fs":
		if c.Storage.BaseDir == "" {
			return errors.New("storage base_dir is required for fs storage")
		}
	case "s3":
		if c.Storage.Bucket == "" {
			return errors.New("storage bucket is required for s3 storage")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}

	switch c.NamingStrategy {
	case "slug", "unique-slug", "hash":
	default:
		return fmt.Errorf("unsupported naming strategy: %s", c.NamingStrategy)
	}

	return nil
}

// BuildService creates a Service instance from the server configuration
func (c *ServerConfig) BuildService(logger *slog.Logger) (sitecontent.Service, error) {
	repo, err := c.buildRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}

	store, err := c.buildStorageBackend()
	if err != nil {
		return nil, fmt.Errorf("failed to build storage backend: %w", err)
	}

	assets, err := sitecontent.NewAssetManager(sitecontent.AssetManagerConfig{
		BackendName: c.Storage.Name,
		Store:       store,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build asset manager: %w", err)
	}

	return sitecontent.New(
		sitecontent.WithRepository(repo),
		sitecontent.WithAssetManager(assets),
		sitecontent.WithNamingStrategy(c.buildNamingStrategy()),
		sitecontent.WithServiceLogger(logger),
	)
}

// buildRepository creates a Repository based on the configuration
func (c *ServerConfig) buildRepository() (sitecontent.Repository, error) {
	switch c.DatabaseType {
	case "memory":
		return repomemory.New(), nil
	case "postgres":
		if c.DatabaseURL == "" {
			return nil, errors.New("database_url is required for postgres")
		}
		cfg, err := pgxpool.ParseConfig(c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
		}
		pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		return repopg.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

// buildStorageBackend creates a BlobStore based on the configuration
func (c *ServerConfig) buildStorageBackend() (sitecontent.BlobStore, error) {
	switch c.Storage.Type {
	case "memory":
		return memorystorage.NewWithConfig(memorystorage.Config{
			BaseURL: c.PublicBaseURL,
		}), nil

	case "fs":
		return fsstorage.New(fsstorage.Config{
			BaseDir: c.Storage.BaseDir,
			BaseURL: c.PublicBaseURL,
		})

	case "s3":
		return s3storage.New(s3storage.Config{
			Region:          c.Storage.Region,
			Bucket:          c.Storage.Bucket,
			AccessKeyID:     c.Storage.AccessKeyID,
			SecretAccessKey: c.Storage.SecretAccessKey,
			Endpoint:        c.Storage.Endpoint,
			UsePathStyle:    c.Storage.UsePathStyle,
			PublicBaseURL:   c.PublicBaseURL,
		})

	default:
		return nil, fmt.Errorf("unsupported storage backend type: %s", c.Storage.Type)
	}
}

func (c *ServerConfig) buildNamingStrategy() sitecontent.NamingStrategy {
	switch c.NamingStrategy {
	case "slug":
		return naming.NewSlugStrategy("", c.NamingKeyField)
	case "hash":
		return naming.NewContentHashStrategy("")
	default:
		return naming.NewUniqueSlugStrategy("", c.NamingKeyField)
	}
}

// PingPostgres verifies connectivity to Postgres.
func PingPostgres(databaseURL string) error {
	if databaseURL == "" {
		return errors.New("database_url is required")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
