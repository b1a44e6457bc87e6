package snapshots

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/multierr"

	"github.com/fatimaskitchen/storefront/internal/cart"
	"github.com/fatimaskitchen/storefront/pkg/config"
	"github.com/fatimaskitchen/storefront/pkg/db"
	pkgerrors "github.com/fatimaskitchen/storefront/pkg/errors"
	"github.com/fatimaskitchen/storefront/pkg/logger"
	"github.com/fatimaskitchen/storefront/pkg/migrate"
	"github.com/fatimaskitchen/storefront/pkg/redis"
)

// Pinger is implemented by backends with a remote dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Backend bundles the configured snapshot store with the connections it owns.
type Backend struct {
	Name  string
	Store cart.SnapshotStore

	pingers []Pinger
	closers []io.Closer
}

// Open builds the snapshot store selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*Backend, error) {
	backend := &Backend{Name: cfg.Storage.Backend}

	switch cfg.Storage.Backend {
	case config.StorageBackendMemory:
		backend.Store = NewMemoryStore()

	case config.StorageBackendFile:
		store, err := NewFileStore(cfg.Storage.FileDir)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open file snapshot store")
		}
		backend.Store = store

	case config.StorageBackendRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open redis snapshot store")
		}
		backend.Store = NewRedisStore(client, cfg.Redis.SnapshotTTL)
		backend.pingers = append(backend.pingers, client)
		backend.closers = append(backend.closers, client)

	case config.StorageBackendDB:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open db snapshot store")
		}
		backend.pingers = append(backend.pingers, client)
		backend.closers = append(backend.closers, client)
		if err := migrate.MaybeRunDev(ctx, cfg, logg, client); err != nil {
			return nil, multierr.Append(pkgerrors.Wrap(pkgerrors.CodeDependency, err, "migrate snapshot table"), backend.Close())
		}
		store, err := NewDBStore(client.DB())
		if err != nil {
			return nil, multierr.Append(err, backend.Close())
		}
		backend.Store = store

	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown storage backend %q", cfg.Storage.Backend))
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "storage_backend", backend.Name), "snapshot store ready")
	}
	return backend, nil
}

// Ping checks every remote dependency of the backend.
func (b *Backend) Ping(ctx context.Context) error {
	var err error
	for _, p := range b.pingers {
		err = multierr.Append(err, p.Ping(ctx))
	}
	return err
}

// Close releases every connection the backend opened.
func (b *Backend) Close() error {
	var err error
	for i := len(b.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, b.closers[i].Close())
	}
	b.closers = nil
	return err
}
