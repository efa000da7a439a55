package ports

import "go.trai.ch/symres/internal/core/domain"

// PreferenceStore is the persisted settings store.
//
//go:generate go run go.uber.org/mock/mockgen -source=prefs.go -destination=mocks/mock_prefs.go -package=mocks
type PreferenceStore interface {
	// Get returns the stored value and whether it was present.
	Get(key string) (string, bool)

	// Set stores value under key and writes the store to disk.
	Set(key, value string) error
}

// PathSource snapshots the raw search path inputs of the process.
type PathSource interface {
	Current() domain.PathSources
}
