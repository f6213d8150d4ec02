package source

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-archive/internal/infrastructure/cache"
)

// CachedSource serves the last fetched document from a cache.Store until it expires
type CachedSource struct {
	inner  Source
	store  cache.Store
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedSource(inner Source, store cache.Store, ttl time.Duration, logger *zap.Logger) *CachedSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSource{inner: inner, store: store, ttl: ttl, logger: logger}
}

func (s *CachedSource) Name() string { return s.inner.Name() }

func (s *CachedSource) key() string { return "archive:raw:" + s.inner.Name() }

// Fetch falls through to the inner source on a miss. Cache failures are
// logged and never fail the fetch.
func (s *CachedSource) Fetch(ctx context.Context) ([]byte, error) {
	cached, ok, err := s.store.Get(ctx, s.key())
	if err != nil {
		s.logger.Warn("archive.cache.get_failed", zap.String("source", s.Name()), zap.Error(err))
	}
	if ok {
		s.logger.Debug("archive.cache.hit", zap.String("source", s.Name()))
		return []byte(cached), nil
	}

	data, err := s.inner.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.Set(ctx, s.key(), string(data), s.ttl); err != nil {
		s.logger.Warn("archive.cache.set_failed", zap.String("source", s.Name()), zap.Error(err))
	}
	return data, nil
}

// Invalidate drops the cached document so the next Fetch hits the source
func (s *CachedSource) Invalidate(ctx context.Context) error {
	return s.store.Delete(ctx, s.key())
}
