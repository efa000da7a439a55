// Package session implements the resolver session: the long-lived object
// that keeps a built search path and its trust gate across resolve calls
// and rebuilds them when the configuration changes.
package session

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.trai.ch/symres/internal/core/domain"
	"go.trai.ch/symres/internal/core/ports"
	"go.trai.ch/symres/internal/engine/searchpath"
	"go.trai.ch/zerr"
)

// Config holds the settings that stay fixed for the life of a session.
type Config struct {
	CacheDir      string
	DefaultServer string
	Unattended    bool
}

// state is one built configuration. It is immutable once published;
// only the gate it owns changes, when it is closed.
type state struct {
	spec      domain.SearchPathSpec
	cacheOnly bool
	gate      ports.TrustGate
	cacheDir  string
}

func (s *state) matches(spec domain.SearchPathSpec, cacheOnly bool) bool {
	return s != nil && s.cacheOnly == cacheOnly && s.spec.Equal(spec)
}

// Session resolves symbol identities against the live search path.
// It is safe for concurrent use. A resolve that races with a rebuild
// finishes against the state it started with.
type Session struct {
	cfg     Config
	logger  ports.Logger
	tracer  ports.Tracer
	sources ports.PathSource
	builder *searchpath.Builder
	locator ports.Locator
	gates   ports.TrustGateFactory
	writer  ports.CacheWriter

	rebuild sync.Mutex
	current atomic.Pointer[state]
	overlay atomic.Pointer[string]
	warned  sync.Map
}

// New creates a Session. Nothing is built until the first call.
func New(
	cfg Config,
	logger ports.Logger,
	tracer ports.Tracer,
	sources ports.PathSource,
	builder *searchpath.Builder,
	locator ports.Locator,
	gates ports.TrustGateFactory,
	writer ports.CacheWriter,
) *Session {
	return &Session{
		cfg:     cfg,
		logger:  logger,
		tracer:  tracer,
		sources: sources,
		builder: builder,
		locator: locator,
		gates:   gates,
		writer:  writer,
	}
}

// Resolve walks the search path in order and returns the first acceptable
// file. A miss is domain.NotFound with a nil error; errors are reserved
// for invalid requests and cancellation.
func (s *Session) Resolve(ctx context.Context, req domain.ResolveRequest) (domain.Resolution, error) {
	if domain.BaseName(req.Identity.FileName) == "" {
		return domain.NotFound, domain.ErrMissingFileName
	}
	if req.SourceOverlay != "" {
		overlay := req.SourceOverlay
		s.overlay.Store(&overlay)
	}

	ctx, span := s.tracer.Start(ctx, "session.resolve",
		ports.WithAttribute("file", req.Identity.FileName),
		ports.WithAttribute("key", req.Identity.CacheKey()),
		ports.WithAttribute("option", req.Option.String()),
	)
	defer span.End()

	st := s.acquire(ctx, req.TracePath, req.Option)

	for _, elem := range st.spec.Elements() {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return domain.NotFound, err
		}

		c, found, err := s.locator.Locate(ctx, elem, req.Identity)
		if err != nil {
			s.logger.Error(zerr.With(zerr.Wrap(err, domain.ErrLocateFailed.Error()), "element", elem.String()))
			continue
		}
		if !found {
			continue
		}
		if !c.Origin.Trusted() && !st.gate.MayLoad(ctx, c.Path) {
			s.discard(c)
			continue
		}

		res := domain.Resolution{Path: c.Path, Found: true, Element: elem, Origin: c.Origin}
		if elem.IsRemote() {
			res.CachePath = s.schedule(st, elem, c, req.Identity)
		}
		span.SetAttribute("path", c.Path)
		return res, nil
	}

	span.SetAttribute("found", false)
	return domain.NotFound, nil
}

// SearchPath returns the search path a resolve with these parameters
// would walk, rebuilding the session state if needed.
func (s *Session) SearchPath(ctx context.Context, tracePath string, option domain.ResolveOption) domain.SearchPathSpec {
	return s.acquire(ctx, tracePath, option).spec
}

// Spec returns the search path of the current state, if one is built.
func (s *Session) Spec() (domain.SearchPathSpec, bool) {
	st := s.current.Load()
	if st == nil {
		return domain.SearchPathSpec{}, false
	}
	return st.spec, true
}

// Close releases the current state. Scheduled cache tasks keep running.
func (s *Session) Close() error {
	s.rebuild.Lock()
	defer s.rebuild.Unlock()

	if st := s.current.Swap(nil); st != nil {
		return st.gate.Close()
	}
	return nil
}

// acquire returns a state matching the live configuration, replacing the
// current one when it no longer matches.
func (s *Session) acquire(ctx context.Context, tracePath string, option domain.ResolveOption) *state {
	cacheOnly := option == domain.OptionCacheOnly
	res := s.builder.Build(ctx, searchpath.Input{
		Sources:       s.sources.Current(),
		TracePath:     tracePath,
		CacheOnly:     cacheOnly,
		Unattended:    s.cfg.Unattended,
		CacheDir:      s.cfg.CacheDir,
		DefaultServer: s.cfg.DefaultServer,
	})
	s.report(res.Warnings)

	if st := s.current.Load(); st.matches(res.Spec, cacheOnly) {
		return st
	}

	s.rebuild.Lock()
	defer s.rebuild.Unlock()

	old := s.current.Load()
	if old.matches(res.Spec, cacheOnly) {
		return old
	}
	if old != nil {
		if err := old.gate.Close(); err != nil {
			s.logger.Error(err)
		}
	}

	next := &state{
		spec:      res.Spec,
		cacheOnly: cacheOnly,
		gate:      s.gates.NewGate(s.cfg.Unattended),
		cacheDir:  s.cfg.CacheDir,
	}
	s.current.Store(next)
	return next
}

// report logs each distinct warning cause once per session.
func (s *Session) report(warnings []domain.Warning) {
	for _, w := range warnings {
		if _, seen := s.warned.LoadOrStore(w.Cause, struct{}{}); seen {
			continue
		}
		s.logger.Warn(w.String())
	}
}

// discard removes a refused download from the staging area.
func (s *Session) discard(c domain.Candidate) {
	if c.Origin != domain.OriginDownload {
		return
	}
	if err := os.Remove(c.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Error(zerr.With(zerr.Wrap(err, domain.ErrStagingCleanupFailed.Error()), "path", c.Path))
		return
	}
	_ = os.Remove(filepath.Dir(c.Path))
}

// schedule mirrors a remote hit and returns the file the task writes,
// or "" when nothing was scheduled.
func (s *Session) schedule(st *state, elem domain.PathElement, c domain.Candidate, id domain.SymbolIdentity) string {
	base, ok := elem.LocalMirrorDir()
	if !ok {
		base = st.cacheDir
	}
	if base == "" {
		return ""
	}
	task := domain.CacheTask{
		SourcePath:         c.Path,
		DestinationBaseDir: base,
		Identity:           id,
		Staged:             c.Origin == domain.OriginDownload,
	}
	// A hit served from the mirror itself is already cached.
	_, dest := task.Destination()
	if domain.NormalizeLocation(dest) == domain.NormalizeLocation(c.Path) {
		return ""
	}
	s.writer.Schedule(task)
	return dest
}
