package prefs

import (
	"os"

	"go.trai.ch/symres/internal/core/domain"
	"go.trai.ch/symres/internal/core/ports"
)

// PathSource implements ports.PathSource from the process environment and
// the preference store. It is read on every call, so environment or
// preference changes are picked up by the next resolve.
type PathSource struct {
	Getenv func(string) string
	Prefs  ports.PreferenceStore
}

// NewPathSource reads os.Getenv and prefs. A nil store contributes nothing.
func NewPathSource(store ports.PreferenceStore) *PathSource {
	return &PathSource{Getenv: os.Getenv, Prefs: store}
}

// Current snapshots every raw input.
func (p *PathSource) Current() domain.PathSources {
	getenv := p.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	src := domain.PathSources{
		EnvPath:       getenv(domain.EnvSymbolPath),
		AltEnvPath:    getenv(domain.EnvAltSymbolPath),
		EnvSourcePath: getenv(domain.EnvSourcePath),
	}
	if p.Prefs != nil {
		src.PersistedPath, _ = p.Prefs.Get(domain.PrefSymbolPath)
		src.PersistedSource, _ = p.Prefs.Get(domain.PrefSourcePath)
	}
	return src
}
