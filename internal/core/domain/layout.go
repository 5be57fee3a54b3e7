package domain

import "path/filepath"

const (
	// StateDirName is the name of the local state directory.
	StateDirName = ".provcache"

	// ScanResultsDirName is the name of the directory holding file based scan results.
	ScanResultsDirName = "scan-results"

	// SettingsFileName is the name of the settings file.
	SettingsFileName = "provcache.yaml"

	// PackageConfigurationsDirName is the default directory of package configuration files.
	PackageConfigurationsDirName = "package-configurations"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultScanResultsPath returns the default root of the file based store.
// It joins .provcache and scan-results.
func DefaultScanResultsPath() string {
	return filepath.Join(StateDirName, ScanResultsDirName)
}
