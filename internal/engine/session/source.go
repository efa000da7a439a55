package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/symres/internal/core/domain"
	"go.trai.ch/symres/internal/core/ports"
)

// ResolveSource finds a companion text file, typically a source file named
// by a symbol file. overlay is searched first; when empty, the overlay of
// the most recent resolve request is used. Each directory of the source
// path is tried with relPath and then with its leading directories
// stripped one at a time.
func (s *Session) ResolveSource(ctx context.Context, relPath, overlay string) (string, bool) {
	_, span := s.tracer.Start(ctx, "session.source", ports.WithAttribute("path", relPath))
	defer span.End()

	relPath = strings.TrimSpace(relPath)
	if relPath == "" {
		return "", false
	}
	if filepath.IsAbs(relPath) && isFile(relPath) {
		return relPath, true
	}

	suffixes := pathSuffixes(relPath)
	for _, dir := range s.sourceDirs(overlay) {
		for _, suffix := range suffixes {
			if p := filepath.Join(dir, suffix); isFile(p) {
				span.SetAttribute("found", p)
				return p, true
			}
		}
	}
	return "", false
}

// sourceDirs lists the directories of the effective source path.
// Symbol server entries have no meaning for source files and are skipped.
func (s *Session) sourceDirs(overlay string) []string {
	if overlay == "" {
		if stored := s.overlay.Load(); stored != nil {
			overlay = *stored
		}
	}
	src := s.sources.Current()

	var spec domain.SearchPathSpec
	for _, raw := range []string{overlay, src.EnvSourcePath, src.PersistedSource} {
		parsed, warnings := domain.ParseSearchPath(raw)
		s.report(warnings)
		spec.AppendAll(parsed)
	}

	dirs := make([]string, 0, spec.Len())
	for _, e := range spec.Elements() {
		if !e.IsRemote() {
			dirs = append(dirs, e.Location())
		}
	}
	return dirs
}

// pathSuffixes returns "a/b/c.cs", "b/c.cs" and "c.cs" for "a/b/c.cs".
// Drive letters and leading separators are dropped first.
func pathSuffixes(p string) []string {
	p = strings.ReplaceAll(p, `\`, "/")
	if len(p) >= 2 && p[1] == ':' {
		p = p[2:]
	}
	parts := strings.FieldsFunc(p, func(r rune) bool { return r == '/' })

	out := make([]string, 0, len(parts))
	for i := range parts {
		out = append(out, filepath.Join(parts[i:]...))
	}
	return out
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
