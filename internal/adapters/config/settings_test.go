package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/provcache/internal/adapters/config"
	"go.trai.ch/provcache/internal/core/domain"
)

func noEnv(string) string { return "" }

func TestSettingsLoader_Defaults(t *testing.T) {
	fsys := config.NewMapFSAdapter("/work", fstest.MapFS{
		"project/src/main.go": &fstest.MapFile{Data: []byte("package main")},
	})

	settings, err := config.NewSettingsLoader(fsys, noEnv).Load("/work/project/src")
	require.NoError(t, err)

	assert.Empty(t, settings.Path)
	assert.Equal(t, config.BackendFile, settings.Storage.Backend)
	assert.Equal(t, "/work/project/src/.provcache/scan-results", settings.Storage.File.Root)
	assert.Equal(t, "/work/project/src/package-configurations", settings.PackageConfigurations)
	assert.Equal(t, 30*time.Second, settings.Storage.Timeout)
	assert.Equal(t, 3, settings.Storage.Retry.MaxAttempts)
}

func TestSettingsLoader_Discovery(t *testing.T) {
	fsys := config.NewMapFSAdapter("/work", fstest.MapFS{
		"provcache.yaml": &fstest.MapFile{Data: []byte(`
version: "1"
storage:
  backend: postgres
  timeout: 10s
  retry:
    max_attempts: 5
    initial_delay: 50ms
  postgres:
    url: postgres://cache@localhost/provcache
    table: results
  file:
    root: cache
package_configurations: configs/packages
`)},
		"project/src/main.go": &fstest.MapFile{Data: []byte("package main")},
	})

	settings, err := config.NewSettingsLoader(fsys, noEnv).Load("/work/project/src")
	require.NoError(t, err)

	assert.Equal(t, "/work/provcache.yaml", settings.Path)
	assert.Equal(t, "/work", settings.Dir)
	assert.Equal(t, config.BackendPostgres, settings.Storage.Backend)
	assert.Equal(t, 10*time.Second, settings.Storage.Timeout)
	assert.Equal(t, 5, settings.Storage.Retry.MaxAttempts)
	assert.Equal(t, 50*time.Millisecond, settings.Storage.Retry.InitialDelay)
	assert.Equal(t, 5*time.Second, settings.Storage.Retry.MaxDelay, "unset values keep their defaults")
	assert.Equal(t, "postgres://cache@localhost/provcache", settings.Storage.Postgres.URL)
	assert.Equal(t, "results", settings.Storage.Postgres.Table)
	assert.Equal(t, "/work/cache", settings.Storage.File.Root)
	assert.Equal(t, "/work/configs/packages", settings.PackageConfigurations)
}

func TestSettingsLoader_EnvOverrides(t *testing.T) {
	fsys := config.NewMapFSAdapter("/work", fstest.MapFS{
		"provcache.yaml": &fstest.MapFile{Data: []byte(`
storage:
  backend: s3
  s3:
    endpoint: localhost:9000
    bucket: scan-results
    use_ssl: true
`)},
	})

	env := map[string]string{
		config.EnvS3AccessKey: "minio",
		config.EnvS3SecretKey: "minio-secret",
		config.EnvPostgresURL: "postgres://env@db/provcache",
	}

	settings, err := config.NewSettingsLoader(fsys, func(key string) string { return env[key] }).Load("/work")
	require.NoError(t, err)

	assert.Equal(t, config.BackendS3, settings.Storage.Backend)
	assert.Equal(t, "localhost:9000", settings.Storage.S3.Endpoint)
	assert.True(t, settings.Storage.S3.UseSSL)
	assert.Equal(t, "minio", settings.Storage.S3.AccessKey)
	assert.Equal(t, "minio-secret", settings.Storage.S3.SecretKey)
	assert.Equal(t, "postgres://env@db/provcache", settings.Storage.Postgres.URL)
}

func TestSettingsLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "unknown backend",
			content: "storage:\n  backend: redis\n",
			wantErr: domain.ErrUnknownBackend,
		},
		{
			name:    "postgres without url",
			content: "storage:\n  backend: postgres\n",
			wantErr: domain.ErrMissingBackendSetting,
		},
		{
			name:    "s3 without bucket",
			content: "storage:\n  backend: s3\n  s3:\n    endpoint: localhost:9000\n",
			wantErr: domain.ErrMissingBackendSetting,
		},
		{
			name:    "malformed yaml",
			content: "storage: [",
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "malformed duration",
			content: "storage:\n  timeout: soon\n",
			wantErr: domain.ErrConfigParseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := config.NewMapFSAdapter("/work", fstest.MapFS{
				"provcache.yaml": &fstest.MapFile{Data: []byte(tt.content)},
			})

			_, err := config.NewSettingsLoader(fsys, noEnv).Load("/work")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr.Error())
		})
	}
}

func TestSettingsLoader_OSFS(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, domain.SettingsFileName), []byte("storage:\n  backend: file\n"), 0o600))

	nested := filepath.Join(tmpDir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	settings, err := config.NewSettingsLoader(config.NewOSFS(), noEnv).Load(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, domain.SettingsFileName), settings.Path)
	assert.Equal(t, filepath.Join(tmpDir, ".provcache", "scan-results"), settings.Storage.File.Root)
}
