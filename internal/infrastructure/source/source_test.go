package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-archive/internal/infrastructure/cache"
	ucerrors "github.com/johnquangdev/meeting-archive/internal/usecase/errors"
	"github.com/johnquangdev/meeting-archive/pkg/config"
)

const doc = `[{"workgroup_id":"a","workgroup":"A","meetingInfo":{"date":"2025-01-15"}}]`

func writeArchive(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meetings.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFileSource(t *testing.T) {
	path := writeArchive(t, doc)

	data, err := NewFileSource(path, 0).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, doc, string(data))

	_, err = NewFileSource(path, 10).Fetch(context.Background())
	assert.ErrorIs(t, err, ucerrors.ErrArchiveDocumentSize)

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.json"), 0).Fetch(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHTTPSource_RetriesTransientFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(doc))
	}))
	defer srv.Close()

	data, err := NewHTTPSource(srv.URL, HTTPOptions{MaxRetryTime: 10 * time.Second}).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, doc, string(data))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestHTTPSource_ClientErrorIsPermanent(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, HTTPOptions{MaxRetryTime: 10 * time.Second}).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ucerrors.ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHTTPSource_NoRetryBudget(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, HTTPOptions{}).Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

type countingSource struct {
	calls int
	body  string
}

func (c *countingSource) Name() string { return "counting" }

func (c *countingSource) Fetch(context.Context) ([]byte, error) {
	c.calls++
	return []byte(c.body), nil
}

func TestCachedSource(t *testing.T) {
	inner := &countingSource{body: doc}
	src := NewCachedSource(inner, cache.NewMemoryStore(time.Minute), time.Minute, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		data, err := src.Fetch(ctx)
		require.NoError(t, err)
		assert.Equal(t, doc, string(data))
	}
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, "counting", src.Name())

	require.NoError(t, src.Invalidate(ctx))
	_, err := src.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestNew(t *testing.T) {
	cfg := &config.Config{
		Archive: config.ArchiveConfig{SourceType: config.SourceFile, Path: writeArchive(t, doc)},
		Cache:   config.CacheConfig{TTL: time.Minute},
	}

	src, err := New(cfg, cache.NopStore{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &FileSource{}, src)

	src, err = New(cfg, cache.NewMemoryStore(time.Minute), nil)
	require.NoError(t, err)
	assert.IsType(t, &CachedSource{}, src)

	cfg.Archive.SourceType = config.SourceHTTP
	cfg.Archive.URL = "http://localhost/archive.json"
	src, err = New(cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "http:http://localhost/archive.json", src.Name())

	cfg.Archive.SourceType = config.SourceMinIO
	cfg.Archive.Object = "meetings.json"
	cfg.Storage = config.StorageConfig{Endpoint: "localhost:9000", BucketName: "archive"}
	src, err = New(cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "minio:archive/meetings.json", src.Name())

	cfg.Archive.SourceType = "ftp"
	_, err = New(cfg, nil, nil)
	assert.ErrorIs(t, err, ucerrors.ErrUnknownSourceType)
}
