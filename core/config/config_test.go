package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 30, cfg.Database.TimeoutSeconds)
	assert.Equal(t, "daysync", cfg.Storage.Bucket)
	assert.True(t, cfg.Storage.CreateBucket)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "days/", cfg.Sync.DayPrefix)
	assert.Equal(t, "catalog/products.json", cfg.Sync.CatalogObject)
	assert.Equal(t, 4, cfg.Sync.Concurrency)
	assert.False(t, cfg.Sync.DryRun)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_REPLICA_ID", "server-a")
	t.Setenv("SYNC_CONCURRENCY", "9")
	t.Setenv("SYNC_DRY_RUN", "true")
	t.Setenv("DATABASE_DRIVER", "mysql")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "server-a", cfg.Server.ReplicaID)
	assert.Equal(t, 9, cfg.Sync.Concurrency)
	assert.True(t, cfg.Sync.DryRun)
	assert.Equal(t, "mysql", cfg.Database.Driver)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SYNC_DAY_PREFIX=replica/days/\nLOG_FORMAT=console\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SYNC_DAY_PREFIX")
		os.Unsetenv("LOG_FORMAT")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "replica/days/", cfg.Sync.DayPrefix)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadConfig_RejectsUnusableSync(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"Zero concurrency", map[string]string{"SYNC_CONCURRENCY": "0"}, "sync.concurrency must be at least 1"},
		{"Empty catalog object", map[string]string{"SYNC_CATALOG_OBJECT": " "}, "sync.catalog_object must not be empty"},
		{"Catalog inside day prefix", map[string]string{"SYNC_CATALOG_OBJECT": "days/catalog.json"}, "must live outside sync.day_prefix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(t.TempDir())
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
