package config

import "time"

// SettingsFile represents the structure of the provcache.yaml settings file.
type SettingsFile struct {
	Version               string     `yaml:"version"`
	Storage               StorageDTO `yaml:"storage"`
	PackageConfigurations string     `yaml:"package_configurations"`
}

// StorageDTO represents the storage section of the settings file.
type StorageDTO struct {
	Backend  string        `yaml:"backend"`
	Timeout  time.Duration `yaml:"timeout"`
	Retry    RetryDTO      `yaml:"retry"`
	File     FileDTO       `yaml:"file"`
	Postgres PostgresDTO   `yaml:"postgres"`
	S3       S3DTO         `yaml:"s3"`
}

// RetryDTO represents the retry policy of the storage section.
type RetryDTO struct {
	MaxAttempts  int           `yaml:"max_attempts"`
	InitialDelay time.Duration `yaml:"initial_delay"`
	MaxDelay     time.Duration `yaml:"max_delay"`
}

// FileDTO configures the local directory backend.
type FileDTO struct {
	Root string `yaml:"root"`
}

// PostgresDTO configures the PostgreSQL backend.
type PostgresDTO struct {
	URL   string `yaml:"url"`
	Table string `yaml:"table"`
}

// S3DTO configures the S3-compatible backend.
type S3DTO struct {
	Endpoint string `yaml:"endpoint"`
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Region   string `yaml:"region"`
	UseSSL   bool   `yaml:"use_ssl"`
}

// PackageConfigurationDTO represents one package configuration file.
type PackageConfigurationDTO struct {
	ID                string           `yaml:"id"`
	SourceArtifactURL string           `yaml:"source_artifact_url"`
	VCS               *VcsMatcherDTO   `yaml:"vcs"`
	PathExcludes      []PathExcludeDTO `yaml:"path_excludes"`
}

// VcsMatcherDTO represents the VCS matcher of a package configuration.
type VcsMatcherDTO struct {
	Type     string `yaml:"type"`
	URL      string `yaml:"url"`
	Revision string `yaml:"revision"`
}

// PathExcludeDTO represents a path exclude entry.
type PathExcludeDTO struct {
	Pattern string `yaml:"pattern"`
	Reason  string `yaml:"reason"`
	Comment string `yaml:"comment"`
}
