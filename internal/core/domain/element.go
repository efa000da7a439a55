package domain

import (
	"runtime"
	"strings"
)

// ElementKind tells how a search path element is queried.
type ElementKind uint8

const (
	// LocalDirectory is a plain directory searched in place.
	LocalDirectory ElementKind = iota
	// RemoteRepository is a symbol server (or a cache-only store) backed by a local mirror.
	RemoteRepository
)

// String returns the kind name.
func (k ElementKind) String() string {
	switch k {
	case LocalDirectory:
		return "local"
	case RemoteRepository:
		return "remote"
	default:
		return "unknown"
	}
}

// srvPrefix introduces a repository descriptor in a symbol path string.
const srvPrefix = "SRV*"

// PathElement is one entry of a SearchPathSpec. It is immutable once constructed.
type PathElement struct {
	kind     ElementKind
	location string
	mirror   string
}

// NewLocalDirectory creates a LocalDirectory element.
func NewLocalDirectory(dir string) PathElement {
	return PathElement{kind: LocalDirectory, location: strings.TrimSpace(dir)}
}

// NewRemoteRepository creates a RemoteRepository element. Server may be empty
// for a cache-only repository, in which case mirror is the only location.
func NewRemoteRepository(server, mirror string) PathElement {
	return PathElement{
		kind:     RemoteRepository,
		location: strings.TrimSpace(server),
		mirror:   strings.TrimSpace(mirror),
	}
}

// Kind returns the element kind.
func (e PathElement) Kind() ElementKind { return e.kind }

// Location returns the directory of a LocalDirectory, or the server of a RemoteRepository.
func (e PathElement) Location() string { return e.location }

// LocalMirrorDir returns the local mirror of a RemoteRepository, if any.
func (e PathElement) LocalMirrorDir() (string, bool) {
	return e.mirror, e.mirror != ""
}

// IsRemote reports whether the element is a RemoteRepository.
func (e PathElement) IsRemote() bool { return e.kind == RemoteRepository }

// CacheOnly reports whether a RemoteRepository wraps only its local mirror.
func (e PathElement) CacheOnly() bool {
	return e.kind == RemoteRepository && e.location == ""
}

// WithMirror returns a copy of a RemoteRepository bound to the given mirror.
func (e PathElement) WithMirror(mirror string) PathElement {
	e.mirror = strings.TrimSpace(mirror)
	return e
}

// String serializes the element in symbol path syntax.
func (e PathElement) String() string {
	if e.kind == LocalDirectory {
		return e.location
	}

	switch {
	case e.mirror != "" && e.location != "":
		return srvPrefix + e.mirror + "*" + e.location
	case e.mirror != "":
		return cachePrefix + e.mirror
	default:
		return srvPrefix + e.location
	}
}

// Key returns the normalized form used for de-duplication.
func (e PathElement) Key() string {
	if e.kind == LocalDirectory {
		return NormalizeLocation(e.location)
	}
	return srvPrefix + NormalizeLocation(e.mirror) + "*" + NormalizeLocation(e.location)
}

// NormalizeLocation folds the spellings of one location onto a single key:
// separators are unified, trailing separators dropped, and Windows-style
// locations compared case-insensitively.
func NormalizeLocation(loc string) string {
	loc = strings.TrimSpace(loc)
	if loc == "" {
		return ""
	}

	if IsURL(loc) {
		return strings.ToLower(strings.TrimRight(loc, "/"))
	}

	n := strings.ReplaceAll(loc, `\`, "/")
	if trimmed := strings.TrimRight(n, "/"); trimmed != "" {
		n = trimmed
	} else {
		n = "/"
	}

	if runtime.GOOS == "windows" || looksLikeWindowsPath(loc) {
		n = strings.ToLower(n)
	}
	return n
}

// IsURL reports whether the location is an http or https URL.
func IsURL(loc string) bool {
	l := strings.ToLower(loc)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// IsNetworkShare reports whether the location is a UNC share (\\server\share).
func IsNetworkShare(loc string) bool {
	return strings.HasPrefix(loc, `\\`) || strings.HasPrefix(loc, "//")
}

func looksLikeWindowsPath(loc string) bool {
	if IsNetworkShare(loc) {
		return true
	}
	if len(loc) >= 2 && loc[1] == ':' {
		c := loc[0] | 0x20
		return c >= 'a' && c <= 'z'
	}
	return false
}
