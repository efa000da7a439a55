// Package app implements the application layer for symres.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"go.trai.ch/symres/internal/adapters/detector"
	"go.trai.ch/symres/internal/adapters/mirror"
	"go.trai.ch/symres/internal/adapters/prefs"
	"go.trai.ch/symres/internal/adapters/prompt"
	"go.trai.ch/symres/internal/adapters/symstore"
	"go.trai.ch/symres/internal/adapters/telemetry"
	"go.trai.ch/symres/internal/adapters/trust"
	"go.trai.ch/symres/internal/core/domain"
	"go.trai.ch/symres/internal/core/ports"
	"go.trai.ch/symres/internal/engine/searchpath"
	"go.trai.ch/symres/internal/engine/session"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	tracer       ports.Tracer
	getenv       func(string) string
	detect       func() detector.SessionMode
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, log ports.Logger, tracer ports.Tracer) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		tracer:       tracer,
		getenv:       os.Getenv,
		detect:       detector.DetectSession,
	}
}

// WithEnv replaces the environment lookup used for symbol path variables.
// This is primarily used for testing.
func (a *App) WithEnv(getenv func(string) string) *App {
	a.getenv = getenv
	return a
}

// WithSessionMode pins the detected session mode.
// This is primarily used for testing, where stdin is never a terminal.
func (a *App) WithSessionMode(mode detector.SessionMode) *App {
	a.detect = func() detector.SessionMode { return mode }
	return a
}

// Options holds the settings shared by every command.
type Options struct {
	// ConfigPath is the symres.yaml to load. Empty selects the default location.
	ConfigPath string
	// Mode is the --mode flag: auto, interactive or unattended.
	Mode string
	// TrustAll approves every symbol file without asking.
	TrustAll bool
	// AssumeYes answers yes to every question.
	AssumeYes bool
	// JSONLog switches the logger to JSON output.
	JSONLog bool
	// TraceSpans exports spans to Err and prints a summary when the command ends.
	TraceSpans bool
	// In and Err carry prompts. Nil selects stdin and stderr.
	In  io.Reader
	Err io.Writer
	// BatchFromStdin means In carries resolve requests, so no question can
	// be answered on it.
	BatchFromStdin bool
}

// ResolveResult pairs a request with its outcome.
type ResolveResult struct {
	Request    domain.ResolveRequest
	Resolution domain.Resolution
	Err        error
}

// Resolve resolves every request against one session, at most NumCPU at a
// time. Results are returned in request order. A miss is not an error.
// Downloads are reported at their cache location once mirrored.
func (a *App) Resolve(ctx context.Context, opts Options, reqs []domain.ResolveRequest) ([]ResolveResult, error) {
	rt, err := a.open(ctx, opts)
	if err != nil {
		return nil, err
	}

	results := make([]ResolveResult, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, req := range reqs {
		g.Go(func() error {
			res, err := rt.session.Resolve(gctx, req)
			results[i] = ResolveResult{Request: req, Resolution: res, Err: err}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		})
	}
	err = g.Wait()
	rt.close(ctx)

	for i := range results {
		results[i].Resolution = settled(results[i].Resolution)
	}
	return results, err
}

// settled points a download at its cache copy. Until the writer has finished,
// the staged file is the only copy; after it, the staged file is gone.
func settled(res domain.Resolution) domain.Resolution {
	if res.Origin != domain.OriginDownload || res.CachePath == "" {
		return res
	}
	if info, err := os.Stat(res.CachePath); err == nil && info.Mode().IsRegular() {
		res.Path = res.CachePath
	}
	return res
}

// SearchPath returns the search path a resolve with these parameters would walk.
func (a *App) SearchPath(ctx context.Context, opts Options, tracePath string, cacheOnly bool) (domain.SearchPathSpec, error) {
	rt, err := a.open(ctx, opts)
	if err != nil {
		return domain.SearchPathSpec{}, err
	}
	defer rt.close(ctx)

	option := domain.OptionNone
	if cacheOnly {
		option = domain.OptionCacheOnly
	}
	return rt.session.SearchPath(ctx, tracePath, option), nil
}

// SetPersistedPath stores value as the persisted symbol path, or the
// persisted source path when source is set. The value is parsed first so
// malformed fragments are reported before they are saved.
func (a *App) SetPersistedPath(ctx context.Context, opts Options, value string, source bool) error {
	_, span := a.tracer.Start(ctx, "app.set_path")
	defer span.End()

	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	spec, warnings := domain.ParseSearchPath(value)
	for _, w := range warnings {
		a.logger.Warn(w.String())
	}

	store, err := prefs.Open(cfg.PrefsPath)
	if err != nil {
		span.RecordError(err)
		return err
	}

	key := domain.PrefSymbolPath
	if source {
		key = domain.PrefSourcePath
	}
	if err := store.Set(key, spec.String()); err != nil {
		span.RecordError(err)
		return err
	}
	a.logger.Info(fmt.Sprintf("saved %s to %s", key, store.Path()))
	return nil
}

// ResolveSource finds a source file through the source path.
func (a *App) ResolveSource(ctx context.Context, opts Options, relPath, overlay string) (string, bool, error) {
	rt, err := a.open(ctx, opts)
	if err != nil {
		return "", false, err
	}
	defer rt.close(ctx)

	path, ok := rt.session.ResolveSource(ctx, relPath, overlay)
	return path, ok, nil
}

// appRuntime is everything one command needs, built from the loaded configuration.
type appRuntime struct {
	session  *session.Session
	watcher  *prefs.Watcher
	writer   *mirror.Writer
	provider *telemetry.Provider
	logger   ports.Logger
	errOut   io.Writer
}

func (a *App) open(ctx context.Context, opts Options) (*appRuntime, error) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok && opts.JSONLog {
		l.SetJSON(true)
	}

	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	errOut := opts.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	rt := &appRuntime{logger: a.logger, errOut: errOut}
	tracer := a.tracer
	if opts.TraceSpans {
		if rt.provider, err = telemetry.Setup(errOut); err != nil {
			return nil, err
		}
		tracer = telemetry.NewOTelTracer("symres")
	}

	// A broken preferences file must not stop resolution; the
	// environment still supplies a path.
	var store ports.PreferenceStore
	if s, err := prefs.Open(cfg.PrefsPath); err != nil {
		a.logger.Error(err)
	} else {
		store = s
		rt.watcher = a.watch(ctx, s)
	}
	sources := prefs.NewPathSource(store)
	sources.Getenv = a.getenv

	mode := detector.ResolveMode(a.detect(), opts.Mode)
	prompter := a.prompter(mode, opts, errOut)
	policy := trust.Policy{
		TrustedPrincipal: cfg.TrustedPrincipal,
		TrustAll:         cfg.TrustAll || opts.TrustAll,
	}
	if opts.BatchFromStdin && !opts.AssumeYes && !mode.Unattended() && !policy.Trusted() {
		a.logger.Warn("stdin carries the batch, so files from untrusted locations are denied; pass --yes or --trust-all to load them")
	}

	rt.writer = mirror.NewWriter(a.logger, tracer, cfg.Workers)
	locator := symstore.NewLocator(symstore.NewMSFReader(), tracer, domain.StagingDir(cfg.CacheDir), cfg.HTTPTimeout)
	builder := searchpath.NewBuilder(trust.NewConsent(policy, prompter, cfg.PromptTimeout), nil)

	rt.session = session.New(
		session.Config{
			CacheDir:      cfg.CacheDir,
			DefaultServer: cfg.DefaultServer,
			Unattended:    mode.Unattended(),
		},
		a.logger,
		tracer,
		sources,
		builder,
		locator,
		trust.NewFactory(policy, prompter, cfg.PromptTimeout),
		rt.writer,
	)
	return rt, nil
}

// watch keeps store current while the command runs. Failing to watch only
// means changes made meanwhile are seen by the next command.
func (a *App) watch(ctx context.Context, store *prefs.Store) *prefs.Watcher {
	w, err := prefs.NewWatcher(store, a.logger)
	if err != nil {
		a.logger.Warn(err.Error())
		return nil
	}
	if err := w.Start(ctx); err != nil {
		_ = w.Stop()
		a.logger.Warn(err.Error())
		return nil
	}
	return w
}

func (a *App) prompter(mode detector.SessionMode, opts Options, errOut io.Writer) ports.Prompter {
	switch {
	case opts.AssumeYes:
		return prompt.NewAutoApprovePrompter()
	case mode.Unattended(), opts.BatchFromStdin:
		return prompt.NewNonInteractivePrompter()
	case opts.In != nil:
		return prompt.NewInteractivePrompterWithIO(opts.In, errOut)
	default:
		return prompt.NewInteractivePrompter()
	}
}

// close releases the session, waits for pending cache copies and flushes spans.
func (rt *appRuntime) close(ctx context.Context) {
	if err := rt.session.Close(); err != nil {
		rt.logger.Error(err)
	}
	rt.writer.Wait()
	if rt.watcher != nil {
		if err := rt.watcher.Stop(); err != nil {
			rt.logger.Error(err)
		}
	}

	if rt.provider == nil {
		return
	}
	if err := rt.provider.Shutdown(context.WithoutCancel(ctx)); err != nil {
		rt.logger.Error(zerr.Wrap(err, "failed to flush spans"))
	}
	if summary := rt.provider.Stats().Summary(); summary != "" {
		_, _ = fmt.Fprintln(rt.errOut, "spans: "+summary)
	}
}
