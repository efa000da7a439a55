package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedPathElement is reported when a search path fragment cannot be parsed.
	ErrMalformedPathElement = zerr.New("malformed symbol path element")

	// ErrEmptySearchPath is reported when no symbol path is configured and none could be defaulted.
	ErrEmptySearchPath = zerr.New("symbol search path is empty")

	// ErrInvalidGUID is returned when a unique identifier cannot be parsed.
	ErrInvalidGUID = zerr.New("invalid unique identifier, expected 32 hex digits")

	// ErrInvalidAge is returned when an age stamp cannot be parsed.
	ErrInvalidAge = zerr.New("invalid age stamp")

	// ErrMissingFileName is returned when a symbol identity has no file name.
	ErrMissingFileName = zerr.New("symbol file name is required")

	// ErrMalformedBatchLine is returned when a batch file line is not "<file> <guid> <age>".
	ErrMalformedBatchLine = zerr.New("expected <file> <guid> <age>")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfigValue is returned when a config value is out of range.
	ErrInvalidConfigValue = zerr.New("invalid config value")

	// ErrPrefsReadFailed is returned when the preferences file cannot be read.
	ErrPrefsReadFailed = zerr.New("failed to read preferences")

	// ErrPrefsParseFailed is returned when the preferences file is not valid XML.
	ErrPrefsParseFailed = zerr.New("failed to parse preferences")

	// ErrPrefsWriteFailed is returned when the preferences file cannot be written.
	ErrPrefsWriteFailed = zerr.New("failed to write preferences")

	// ErrPromptUnavailable is returned when no interactive surface can answer a confirmation.
	ErrPromptUnavailable = zerr.New("no interactive surface available")

	// ErrPromptReadFailed is returned when reading the operator's answer fails.
	ErrPromptReadFailed = zerr.New("failed to read confirmation answer")

	// ErrCacheStatFailed is returned when the cache source or destination cannot be inspected.
	ErrCacheStatFailed = zerr.New("failed to stat cache path")

	// ErrCacheClearFailed is returned when a stray file blocking the cache layout cannot be removed.
	ErrCacheClearFailed = zerr.New("failed to remove stray cache file")

	// ErrCacheCreateFailed is returned when the cache directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create cache directory")

	// ErrCacheCopyFailed is returned when copying into the cache fails.
	ErrCacheCopyFailed = zerr.New("failed to copy file into cache")

	// ErrCacheVerifyFailed is returned when the copied bytes do not match the source.
	ErrCacheVerifyFailed = zerr.New("cache copy checksum mismatch")

	// ErrCacheCommitFailed is returned when the temporary copy cannot be renamed into place.
	ErrCacheCommitFailed = zerr.New("failed to commit cache file")

	// ErrRemoteFetchFailed is returned when a symbol server request fails.
	ErrRemoteFetchFailed = zerr.New("failed to fetch from symbol server")

	// ErrRemoteStatus is returned when a symbol server answers with an unexpected status.
	ErrRemoteStatus = zerr.New("unexpected symbol server status")

	// ErrStagingFailed is returned when a downloaded file cannot be staged locally.
	ErrStagingFailed = zerr.New("failed to stage downloaded file")

	// ErrStagingCleanupFailed is returned when a mirrored download cannot be removed from staging.
	ErrStagingCleanupFailed = zerr.New("failed to remove staged download")

	// ErrSymbolReadFailed is returned when a candidate symbol file cannot be opened.
	ErrSymbolReadFailed = zerr.New("failed to read symbol file")

	// ErrSymbolFormat is returned when a program database is structurally invalid.
	ErrSymbolFormat = zerr.New("malformed program database")

	// ErrLocateFailed is returned when probing a search path element fails unexpectedly.
	ErrLocateFailed = zerr.New("failed to probe search path element")
)
