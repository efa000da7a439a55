package domain

import (
	"os"
	"path/filepath"
)

const (
	// AppDirName is the name of the application directory under the user config and cache roots.
	AppDirName = "symres"

	// CacheDirName is the name of the default symbol cache directory.
	CacheDirName = "SymbolCache"

	// StagingDirName is the directory under the cache root that receives downloads before mirroring.
	StagingDirName = ".staging"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "symres.yaml"

	// PrefsFileName is the name of the persisted preferences file.
	PrefsFileName = "preferences.xml"

	// SymbolsDirName is the conventional symbols directory next to a trace file.
	SymbolsDirName = "symbols"

	// NgenPdbSuffix is the suffix of directories holding NGEN image symbols next to a trace file.
	NgenPdbSuffix = ".NGENPDB"

	// NgenPdbsSuffix is the suffix of the per-trace NGEN symbol collection directory.
	NgenPdbsSuffix = ".NGENPDBS"

	// TempSuffix marks in-flight cache copies.
	TempSuffix = ".new"

	// DefaultServerURL is the public symbol server offered when no path is configured.
	DefaultServerURL = "https://msdl.microsoft.com/download/symbols"

	// EnvSymbolPath is the environment variable holding the symbol search path.
	EnvSymbolPath = "_NT_SYMBOL_PATH"

	// EnvAltSymbolPath is searched ahead of EnvSymbolPath.
	EnvAltSymbolPath = "_NT_ALT_SYMBOL_PATH"

	// EnvSourcePath is the environment variable holding the source search path.
	EnvSourcePath = "_NT_SOURCE_PATH"

	// PrefSymbolPath is the preferences key of the last used symbol path.
	PrefSymbolPath = "SymbolPath"

	// PrefSourcePath is the preferences key of the last used source path.
	PrefSourcePath = "SourcePath"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultConfigDir returns the directory holding symres.yaml and preferences.xml.
// It falls back to the working directory when the user config dir is unknown.
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "." + AppDirName
	}
	return filepath.Join(dir, AppDirName)
}

// DefaultConfigPath returns the default path of the configuration file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), ConfigFileName)
}

// DefaultPrefsPath returns the default path of the preferences file.
func DefaultPrefsPath() string {
	return filepath.Join(DefaultConfigDir(), PrefsFileName)
}

// DefaultCacheDir returns the default local symbol cache.
// It joins the user cache dir, symres and SymbolCache.
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, AppDirName, CacheDirName)
}

// StagingDir returns the download staging directory under the given cache root.
func StagingDir(cacheDir string) string {
	return filepath.Join(cacheDir, StagingDirName)
}
