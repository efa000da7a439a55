package domain

// ResolveOption controls whether remote repositories may be contacted.
type ResolveOption uint8

const (
	// OptionNone allows every configured location.
	OptionNone ResolveOption = iota
	// OptionCacheOnly restricts resolution to the local cache.
	OptionCacheOnly
)

// String returns the option name.
func (o ResolveOption) String() string {
	if o == OptionCacheOnly {
		return "CacheOnly"
	}
	return "None"
}

// ResolveRequest is one symbol resolution request.
type ResolveRequest struct {
	Identity SymbolIdentity
	// TracePath is the trace file being analyzed, if any.
	TracePath string
	// SourceOverlay is an extra source search path for companion text files.
	SourceOverlay string
	Option        ResolveOption
}

// Resolution is the outcome of a resolve call. Found is false for NotFound,
// which is a normal negative result and never an error.
type Resolution struct {
	Path    string
	Found   bool
	Element PathElement
	Origin  Origin
	// CachePath is where the scheduled cache task writes the file, empty
	// when none was scheduled. A staged download at Path is removed once
	// CachePath holds it.
	CachePath string
}

// FromRemote reports whether the hit came from a RemoteRepository element.
func (r Resolution) FromRemote() bool {
	return r.Found && r.Element.IsRemote()
}

// NotFound is the negative resolution.
var NotFound = Resolution{}

// PathSources are the raw configuration strings a search path is built from.
type PathSources struct {
	EnvPath         string
	AltEnvPath      string
	PersistedPath   string
	EnvSourcePath   string
	PersistedSource string
}

// Origin says how a candidate file was obtained.
type Origin uint8

const (
	// OriginLocal is a file on a local disk.
	OriginLocal Origin = iota
	// OriginShare is a file read from a network share.
	OriginShare
	// OriginDownload is a file fetched from a symbol server.
	OriginDownload
)

// String returns the origin name.
func (o Origin) String() string {
	switch o {
	case OriginShare:
		return "share"
	case OriginDownload:
		return "download"
	default:
		return "local"
	}
}

// Trusted reports whether files of this origin may load without approval.
func (o Origin) Trusted() bool {
	return o == OriginLocal
}

// Candidate is a file a search path element offers for an identity.
type Candidate struct {
	Path   string
	Origin Origin
}

// OnDisk returns the candidate for a file found at path, classifying
// network shares.
func OnDisk(path string) Candidate {
	if IsNetworkShare(path) {
		return Candidate{Path: path, Origin: OriginShare}
	}
	return Candidate{Path: path, Origin: OriginLocal}
}
