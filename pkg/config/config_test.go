package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, SourceFile, cfg.Archive.SourceType)
	assert.Equal(t, "data/meetings.json", cfg.Archive.Path)
	assert.Equal(t, CacheMemory, cfg.Cache.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, time.Duration(0), cfg.Archive.ReloadInterval)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ARCHIVE_SOURCE_TYPE", "HTTP")
	t.Setenv("ARCHIVE_URL", "https://example.org/archive.json")
	t.Setenv("ARCHIVE_RELOAD_INTERVAL", "15m")
	t.Setenv("CACHE_DRIVER", "redis")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("STORAGE_USE_SSL", "true")
	t.Setenv("NATS_URL", "nats://localhost:4222")
	t.Setenv("LOG_FILE", "/tmp/archive.log")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, SourceHTTP, cfg.Archive.SourceType)
	assert.Equal(t, "https://example.org/archive.json", cfg.Archive.URL)
	assert.Equal(t, 15*time.Minute, cfg.Archive.ReloadInterval)
	assert.Equal(t, CacheRedis, cfg.Cache.Driver)
	assert.Equal(t, "cache:6379", cfg.GetRedisAddr())
	assert.True(t, cfg.Storage.UseSSL)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, "archive.reloaded", cfg.NATS.Subject)
	assert.Equal(t, "/tmp/archive.log", cfg.Log.File)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"http without url", map[string]string{"ARCHIVE_SOURCE_TYPE": "http"}, "ARCHIVE_URL"},
		{"unknown source", map[string]string{"ARCHIVE_SOURCE_TYPE": "ftp"}, "ARCHIVE_SOURCE_TYPE"},
		{"unknown cache", map[string]string{"CACHE_DRIVER": "disk"}, "CACHE_DRIVER"},
		{"default secret in production", map[string]string{"SERVER_ENVIRONMENT": "production"}, "JWT_ACCESS_SECRET"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
