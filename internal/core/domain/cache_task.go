package domain

import (
	"path/filepath"
	"strings"
)

// CacheTask is one unit of mirroring work. Tasks share no mutable state.
type CacheTask struct {
	SourcePath         string
	DestinationBaseDir string
	Identity           SymbolIdentity
	// Staged marks SourcePath as a staged download. It is removed once the
	// destination holds its content.
	Staged bool
}

// FileName returns the bare symbol file name, without any directory part.
func (t CacheTask) FileName() string {
	return BaseName(t.Identity.FileName)
}

// Destination returns the directory and file the task writes.
// Identities with a UniqueID land in base/name/KEY/name, collision-free across
// binaries sharing a name; zero UniqueIDs land in base/name.
func (t CacheTask) Destination() (dir, file string) {
	name := t.FileName()
	if key := t.Identity.CacheKey(); key != "" {
		dir = filepath.Join(t.DestinationBaseDir, name, key)
		return dir, filepath.Join(dir, name)
	}
	return t.DestinationBaseDir, filepath.Join(t.DestinationBaseDir, name)
}

// NameSlot returns base/name, which must be a directory for keyed placement.
func (t CacheTask) NameSlot() string {
	return filepath.Join(t.DestinationBaseDir, t.FileName())
}

// BaseName strips both '/' and '\' directory prefixes.
func BaseName(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}
