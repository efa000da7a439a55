// Package config provides the configuration loader for symres.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/symres/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	FS FileSystem
}

// NewLoader creates a new Loader reading from fsys.
func NewLoader(fsys FileSystem) *Loader {
	if fsys == nil {
		fsys = NewOSFS()
	}
	return &Loader{FS: fsys}
}

// Load reads the configuration file at path and layers it over the defaults.
// An empty path selects the default location; a missing file yields the defaults.
func (l *Loader) Load(path string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	if path == "" {
		path = domain.DefaultConfigPath()
		if path == "" {
			return &cfg, nil
		}
	}

	data, err := l.FS.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Configfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	if err := apply(&cfg, &file, filepath.Dir(path)); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return &cfg, nil
}

// apply copies the set fields of file onto cfg. Relative directories are
// resolved against the directory holding the config file.
func apply(cfg *domain.Config, file *Configfile, baseDir string) error {
	if file.CacheDir != "" {
		cfg.CacheDir = resolveDir(file.CacheDir, baseDir)
	}
	if file.DefaultServer != "" {
		cfg.DefaultServer = strings.TrimSpace(file.DefaultServer)
	}
	if file.PrefsFile != "" {
		cfg.PrefsPath = resolveDir(file.PrefsFile, baseDir)
	}
	if file.TrustAll != nil {
		cfg.TrustAll = *file.TrustAll
	}
	if file.TrustedPrincipal != nil {
		cfg.TrustedPrincipal = *file.TrustedPrincipal
	}
	if file.Workers != nil {
		if *file.Workers < 1 {
			return zerr.With(domain.ErrInvalidConfigValue, "workers", *file.Workers)
		}
		cfg.Workers = *file.Workers
	}

	var err error
	if cfg.PromptTimeout, err = parseDuration("prompt_timeout", file.PromptTimeout, cfg.PromptTimeout); err != nil {
		return err
	}
	if cfg.HTTPTimeout, err = parseDuration("http_timeout", file.HTTPTimeout, cfg.HTTPTimeout); err != nil {
		return err
	}
	return nil
}

func parseDuration(field, raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, zerr.With(domain.ErrInvalidConfigValue, field, raw)
	}
	return d, nil
}

func resolveDir(p, baseDir string) string {
	p = os.ExpandEnv(strings.TrimSpace(p))
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	if filepath.IsAbs(p) || domain.IsNetworkShare(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}
