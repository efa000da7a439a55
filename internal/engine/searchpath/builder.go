// Package searchpath assembles the ordered symbol search path from the
// environment, persisted preferences and the trace being analyzed.
package searchpath

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/symres/internal/core/domain"
	"go.trai.ch/symres/internal/core/ports"
	"go.trai.ch/zerr"
)

// Warning causes raised by the builder itself.
const (
	CauseEmptyUnattended = "unattended session"
	CauseEmptyDeclined   = "default server declined"
)

// StatFunc reports file information, normally os.Stat.
type StatFunc func(name string) (fs.FileInfo, error)

// Input carries everything one build depends on.
type Input struct {
	Sources   domain.PathSources
	TracePath string
	CacheOnly bool
	// Unattended forbids asking for consent to use DefaultServer.
	Unattended    bool
	CacheDir      string
	DefaultServer string
}

// Result is a built search path and the warnings raised while building it.
type Result struct {
	Spec     domain.SearchPathSpec
	Warnings []domain.Warning
}

// Builder builds search paths. The only filesystem access is the NGEN
// directory probe next to a trace file.
type Builder struct {
	consent ports.Consent
	stat    StatFunc
}

// NewBuilder creates a Builder. A nil stat selects os.Stat.
func NewBuilder(consent ports.Consent, stat StatFunc) *Builder {
	if stat == nil {
		stat = os.Stat
	}
	return &Builder{consent: consent, stat: stat}
}

// Build assembles the search path. Earlier elements are searched first.
func (b *Builder) Build(ctx context.Context, in Input) Result {
	var res Result

	spec, warnings := domain.ParseSearchPath(in.Sources.AltEnvPath)
	res.Warnings = append(res.Warnings, warnings...)

	env, warnings := domain.ParseSearchPath(in.Sources.EnvPath)
	res.Warnings = append(res.Warnings, warnings...)
	spec.AppendAll(env)

	persisted, warnings := domain.ParseSearchPath(in.Sources.PersistedPath)
	res.Warnings = append(res.Warnings, warnings...)
	spec.AppendAll(persisted)

	if in.TracePath != "" {
		ahead := domain.NewSearchPathSpec(b.traceElements(in.TracePath)...)
		ahead.AppendAll(spec)
		spec = ahead
	}

	// A cache-only repository reads its mirror itself, so it is the one
	// repository without a local directory ahead of it.
	if in.CacheOnly {
		res.Spec = domain.NewSearchPathSpec(domain.NewRemoteRepository("", in.CacheDir))
		return res
	}

	if spec.IsEmpty() {
		switch {
		case in.Unattended:
			res.Warnings = append(res.Warnings, domain.Warning{
				Cause: CauseEmptyUnattended,
				Err:   zerr.With(domain.ErrEmptySearchPath, "hint", "set "+domain.EnvSymbolPath),
			})
		case in.DefaultServer != "" && b.consent != nil && b.consent.AllowDefaultServer(ctx, in.DefaultServer):
			spec.Append(domain.NewRemoteRepository(in.DefaultServer, in.CacheDir))
		default:
			res.Warnings = append(res.Warnings, domain.Warning{
				Cause: CauseEmptyDeclined,
				Err:   zerr.With(domain.ErrEmptySearchPath, "server", in.DefaultServer),
			})
		}
	}

	res.Spec = bindMirrors(spec, in.CacheDir)
	return res
}

// traceElements lists the conventional symbol locations next to a trace
// file. Only the NGEN directory choice looks at the disk.
func (b *Builder) traceElements(trace string) []domain.PathElement {
	trace = filepath.Clean(trace)
	dir := filepath.Dir(trace)
	symbols := filepath.Join(dir, domain.SymbolsDirName)

	ngen := trace + domain.NgenPdbSuffix
	if !b.isDir(ngen) {
		if sibling := strings.TrimSuffix(trace, filepath.Ext(trace)) + domain.NgenPdbSuffix; b.isDir(sibling) {
			ngen = sibling
		}
	}

	return []domain.PathElement{
		domain.NewLocalDirectory(dir),
		domain.NewLocalDirectory(symbols),
		domain.NewRemoteRepository(symbols, ""),
		domain.NewLocalDirectory(ngen),
		domain.NewLocalDirectory(trace + domain.NgenPdbsSuffix),
	}
}

func (b *Builder) isDir(path string) bool {
	info, err := b.stat(path)
	return err == nil && info.IsDir()
}

// bindMirrors gives every repository a mirror, cacheDir by default, and
// places that mirror as a local directory ahead of the repository unless
// it already appears earlier.
func bindMirrors(spec domain.SearchPathSpec, cacheDir string) domain.SearchPathSpec {
	var out domain.SearchPathSpec
	for _, e := range spec.Elements() {
		if !e.IsRemote() {
			out.Append(e)
			continue
		}

		mirror, ok := e.LocalMirrorDir()
		if !ok && cacheDir != "" {
			mirror = cacheDir
			e = e.WithMirror(cacheDir)
		}
		if mirror != "" {
			out.Append(domain.NewLocalDirectory(mirror))
		}
		out.Append(e)
	}
	return out
}
