package source

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-archive/internal/infrastructure/cache"
	ucerrors "github.com/johnquangdev/meeting-archive/internal/usecase/errors"
	"github.com/johnquangdev/meeting-archive/pkg/config"
)

// Source yields the raw bytes of a meeting archive document
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Name() string
}

// New builds the configured source, wrapped in a CachedSource when the store
// can hold anything.
func New(cfg *config.Config, store cache.Store, logger *zap.Logger) (Source, error) {
	var (
		src Source
		err error
	)

	switch cfg.Archive.SourceType {
	case config.SourceFile:
		src = NewFileSource(cfg.Archive.Path, cfg.Archive.MaxSizeBytes)
	case config.SourceHTTP:
		src = NewHTTPSource(cfg.Archive.URL, HTTPOptions{
			Timeout:      cfg.Archive.FetchTimeout,
			MaxRetryTime: cfg.Archive.MaxRetryTime,
			MaxSizeBytes: cfg.Archive.MaxSizeBytes,
		})
	case config.SourceMinIO:
		src, err = NewMinIOSource(&cfg.Storage, cfg.Archive.Object, cfg.Archive.MaxRetryTime, cfg.Archive.MaxSizeBytes)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ucerrors.ErrUnknownSourceType, cfg.Archive.SourceType)
	}

	if _, isNop := store.(cache.NopStore); store == nil || isNop {
		return src, nil
	}
	return NewCachedSource(src, store, cfg.Cache.TTL, logger), nil
}

// readLimited reads r fully, failing once more than limit bytes arrive.
// A non-positive limit disables the check.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ucerrors.ErrArchiveDocumentSize, limit)
	}
	return data, nil
}

// newBackOff retries for up to maxElapsed; a non-positive value means a single attempt
func newBackOff(ctx context.Context, maxElapsed time.Duration) backoff.BackOffContext {
	if maxElapsed <= 0 {
		return backoff.WithContext(&backoff.StopBackOff{}, ctx)
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = maxElapsed
	return backoff.WithContext(bo, ctx)
}
