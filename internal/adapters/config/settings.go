// Package config loads provcache settings and package configurations.
package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"go.trai.ch/provcache/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Backend names a scan result storage backend.
type Backend string

// Supported backends.
const (
	BackendFile     Backend = "file"
	BackendPostgres Backend = "postgres"
	BackendS3       Backend = "s3"
)

// Environment variables that override settings file values.
const (
	EnvPostgresURL = "PROVCACHE_POSTGRES_URL"
	EnvS3AccessKey = "PROVCACHE_S3_ACCESS_KEY"
	EnvS3SecretKey = "PROVCACHE_S3_SECRET_KEY"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	// Path is the settings file that was loaded, empty if none was found.
	Path string
	// Dir is the directory relative paths were resolved against.
	Dir string

	Storage StorageSettings

	// PackageConfigurations is the directory holding package configuration files.
	PackageConfigurations string
}

// StorageSettings selects and configures the storage backend.
type StorageSettings struct {
	Backend  Backend
	Timeout  time.Duration
	Retry    RetrySettings
	File     FileSettings
	Postgres PostgresSettings
	S3       S3Settings
}

// RetrySettings configures retries of transient backend failures.
type RetrySettings struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// FileSettings configures the local directory backend.
type FileSettings struct {
	Root string
}

// PostgresSettings configures the PostgreSQL backend.
type PostgresSettings struct {
	URL   string
	Table string
}

// S3Settings configures the S3-compatible backend.
type S3Settings struct {
	Endpoint  string
	Bucket    string
	Prefix    string
	Region    string
	UseSSL    bool
	AccessKey string
	SecretKey string
}

// DefaultSettings returns the settings used when no settings file exists,
// with relative paths resolved against dir.
func DefaultSettings(dir string) *Settings {
	return &Settings{
		Dir: dir,
		Storage: StorageSettings{
			Backend: BackendFile,
			Timeout: 30 * time.Second,
			Retry: RetrySettings{
				MaxAttempts:  3,
				InitialDelay: 100 * time.Millisecond,
				MaxDelay:     5 * time.Second,
			},
			File:     FileSettings{Root: filepath.Join(dir, domain.DefaultScanResultsPath())},
			Postgres: PostgresSettings{Table: "scan_results"},
		},
		PackageConfigurations: filepath.Join(dir, domain.PackageConfigurationsDirName),
	}
}

// SettingsLoader discovers and reads provcache.yaml.
type SettingsLoader struct {
	FS     FileSystem
	Getenv func(string) string
}

// NewSettingsLoader creates a SettingsLoader.
func NewSettingsLoader(fsys FileSystem, getenv func(string) string) *SettingsLoader {
	return &SettingsLoader{FS: fsys, Getenv: getenv}
}

// Load finds the settings file by walking up from cwd and resolves it.
// Without a settings file the defaults apply, rooted at cwd.
func (l *SettingsLoader) Load(cwd string) (*Settings, error) {
	path, err := l.find(cwd)
	if err != nil {
		return nil, err
	}

	if path == "" {
		settings := DefaultSettings(cwd)
		l.applyEnv(settings)
		if err := settings.Validate(); err != nil {
			return nil, err
		}
		return settings, nil
	}

	data, err := l.FS.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file SettingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	settings := DefaultSettings(filepath.Dir(path))
	settings.Path = path
	merge(settings, &file)
	l.applyEnv(settings)

	if err := settings.Validate(); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return settings, nil
}

func (l *SettingsLoader) find(cwd string) (string, error) {
	currentDir := cwd

	for {
		candidate := filepath.Join(currentDir, domain.SettingsFileName)
		info, err := l.FS.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", candidate)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", nil
		}
		currentDir = parentDir
	}
}

func (l *SettingsLoader) applyEnv(settings *Settings) {
	if l.Getenv == nil {
		return
	}

	if v := l.Getenv(EnvPostgresURL); v != "" {
		settings.Storage.Postgres.URL = v
	}
	if v := l.Getenv(EnvS3AccessKey); v != "" {
		settings.Storage.S3.AccessKey = v
	}
	if v := l.Getenv(EnvS3SecretKey); v != "" {
		settings.Storage.S3.SecretKey = v
	}
}

func merge(settings *Settings, file *SettingsFile) {
	storage := &settings.Storage
	dto := file.Storage

	if dto.Backend != "" {
		storage.Backend = Backend(dto.Backend)
	}
	if dto.Timeout > 0 {
		storage.Timeout = dto.Timeout
	}
	if dto.Retry.MaxAttempts > 0 {
		storage.Retry.MaxAttempts = dto.Retry.MaxAttempts
	}
	if dto.Retry.InitialDelay > 0 {
		storage.Retry.InitialDelay = dto.Retry.InitialDelay
	}
	if dto.Retry.MaxDelay > 0 {
		storage.Retry.MaxDelay = dto.Retry.MaxDelay
	}

	if dto.File.Root != "" {
		storage.File.Root = resolvePath(settings.Dir, dto.File.Root)
	}

	if dto.Postgres.URL != "" {
		storage.Postgres.URL = dto.Postgres.URL
	}
	if dto.Postgres.Table != "" {
		storage.Postgres.Table = dto.Postgres.Table
	}

	storage.S3.Endpoint = dto.S3.Endpoint
	storage.S3.Bucket = dto.S3.Bucket
	storage.S3.Prefix = dto.S3.Prefix
	storage.S3.Region = dto.S3.Region
	storage.S3.UseSSL = dto.S3.UseSSL

	if file.PackageConfigurations != "" {
		settings.PackageConfigurations = resolvePath(settings.Dir, file.PackageConfigurations)
	}
}

// Validate checks that the selected backend is known and fully configured.
func (s *Settings) Validate() error {
	switch s.Storage.Backend {
	case BackendFile:
		return nil
	case BackendPostgres:
		if s.Storage.Postgres.URL == "" {
			return zerr.With(domain.ErrMissingBackendSetting, "setting", "storage.postgres.url")
		}
		return nil
	case BackendS3:
		if s.Storage.S3.Endpoint == "" {
			return zerr.With(domain.ErrMissingBackendSetting, "setting", "storage.s3.endpoint")
		}
		if s.Storage.S3.Bucket == "" {
			return zerr.With(domain.ErrMissingBackendSetting, "setting", "storage.s3.bucket")
		}
		return nil
	default:
		return zerr.With(domain.ErrUnknownBackend, "backend", string(s.Storage.Backend))
	}
}

func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, path)
}
