package domain

import (
	"runtime"
	"time"
)

const (
	// DefaultPromptTimeout bounds how long a trust confirmation may block a resolve.
	DefaultPromptTimeout = 2 * time.Minute

	// DefaultHTTPTimeout bounds a single symbol server download.
	DefaultHTTPTimeout = 60 * time.Second
)

// Config is the resolved tool configuration.
type Config struct {
	// CacheDir is the local cache every remote hit is mirrored into.
	CacheDir string
	// DefaultServer is offered when no search path is configured.
	DefaultServer string
	// PrefsPath is the persisted preferences file.
	PrefsPath string
	// TrustAll approves every symbol file without asking.
	TrustAll bool
	// TrustedPrincipal marks an internal, verified context that never prompts.
	TrustedPrincipal bool
	// Workers bounds concurrent cache copies.
	Workers int
	// PromptTimeout bounds a trust confirmation.
	PromptTimeout time.Duration
	// HTTPTimeout bounds one symbol server request.
	HTTPTimeout time.Duration
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		CacheDir:      DefaultCacheDir(),
		DefaultServer: DefaultServerURL,
		PrefsPath:     DefaultPrefsPath(),
		Workers:       runtime.NumCPU(),
		PromptTimeout: DefaultPromptTimeout,
		HTTPTimeout:   DefaultHTTPTimeout,
	}
}
