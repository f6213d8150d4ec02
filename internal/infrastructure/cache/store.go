package cache

import (
	"context"
	"fmt"
	"time"

	ucerrors "github.com/johnquangdev/meeting-archive/internal/usecase/errors"
	"github.com/johnquangdev/meeting-archive/pkg/config"
)

// Store is a string key-value cache with per-entry expiration
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

// New selects a Store for the configured driver. The returned close func
// releases driver resources and is never nil.
func New(cfg *config.Config) (Store, func() error, error) {
	switch cfg.Cache.Driver {
	case config.CacheMemory:
		return NewMemoryStore(cfg.Cache.TTL), noopClose, nil
	case config.CacheRedis:
		client, err := NewRedisClient(context.Background(), &cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(client, "meeting-archive:"), client.Close, nil
	case config.CacheNone, "":
		return NopStore{}, noopClose, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ucerrors.ErrUnknownCacheDriver, cfg.Cache.Driver)
	}
}

func noopClose() error { return nil }

// NopStore never holds anything
type NopStore struct{}

func (NopStore) Get(context.Context, string) (string, bool, error) { return "", false, nil }

func (NopStore) Set(context.Context, string, string, time.Duration) error { return nil }

func (NopStore) Delete(context.Context, string) error { return nil }
