// Package symstore probes symbol stores: plain directories, identity-keyed
// mirrors, file shares and HTTP symbol servers.
package symstore

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/symres/internal/core/domain"
	"go.trai.ch/symres/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Locator implements ports.Locator.
type Locator struct {
	reader     ports.SymbolFileReader
	client     *http.Client
	tracer     ports.Tracer
	stagingDir string

	downloads singleflight.Group
}

// NewLocator creates a Locator. Downloads from HTTP servers are staged
// under stagingDir, one directory per identity key.
func NewLocator(reader ports.SymbolFileReader, tracer ports.Tracer, stagingDir string, timeout time.Duration) *Locator {
	return &Locator{
		reader:     reader,
		client:     &http.Client{Timeout: timeout},
		tracer:     tracer,
		stagingDir: stagingDir,
	}
}

// Locate looks up id inside elem.
func (l *Locator) Locate(ctx context.Context, elem domain.PathElement, id domain.SymbolIdentity) (domain.Candidate, bool, error) {
	if !elem.IsRemote() {
		return l.probeDir(elem.Location(), id)
	}

	if mirror, ok := elem.LocalMirrorDir(); ok {
		c, found, err := l.probeStore(mirror, id)
		if found || err != nil {
			return c, found, err
		}
	}
	if elem.CacheOnly() {
		return domain.Candidate{}, false, nil
	}

	server := elem.Location()
	if domain.IsURL(server) {
		return l.fetch(ctx, server, id)
	}
	return l.probeStore(server, id)
}

// probeDir searches a plain directory: the keyed layout first, then the
// file name directly under dir.
func (l *Locator) probeDir(dir string, id domain.SymbolIdentity) (domain.Candidate, bool, error) {
	name := domain.BaseName(id.FileName)
	if key := id.CacheKey(); key != "" {
		if p := filepath.Join(dir, name, key, name); isFile(p) {
			return domain.OnDisk(p), true, nil
		}
	}
	return l.probeFlat(dir, id)
}

// probeStore searches a symbol store, which keeps identity-keyed files
// in name/KEY/name and files without a UniqueID directly under the root.
func (l *Locator) probeStore(root string, id domain.SymbolIdentity) (domain.Candidate, bool, error) {
	name := domain.BaseName(id.FileName)
	if key := id.CacheKey(); key != "" {
		if p := filepath.Join(root, name, key, name); isFile(p) {
			return domain.OnDisk(p), true, nil
		}
		return domain.Candidate{}, false, nil
	}
	return l.probeFlat(root, id)
}

func (l *Locator) probeFlat(dir string, id domain.SymbolIdentity) (domain.Candidate, bool, error) {
	p := filepath.Join(dir, domain.BaseName(id.FileName))
	if !isFile(p) {
		return domain.Candidate{}, false, nil
	}
	ok, err := l.reader.Matches(p, id)
	if err != nil || !ok {
		return domain.Candidate{}, false, err
	}
	return domain.OnDisk(p), true, nil
}

// fetch downloads server/name/KEY/name into the staging directory.
// Servers index by identity, so a zero UniqueID cannot be fetched.
func (l *Locator) fetch(ctx context.Context, server string, id domain.SymbolIdentity) (domain.Candidate, bool, error) {
	key := id.CacheKey()
	if key == "" {
		return domain.Candidate{}, false, nil
	}

	name := domain.BaseName(id.FileName)
	staged := filepath.Join(l.stagingDir, key, name)
	downloaded := domain.Candidate{Path: staged, Origin: domain.OriginDownload}
	if isFile(staged) {
		return downloaded, true, nil
	}

	v, err, _ := l.downloads.Do(staged, func() (any, error) {
		return l.download(ctx, server, name, key, staged)
	})
	if err != nil {
		return domain.Candidate{}, false, err
	}
	if found, _ := v.(bool); !found {
		return domain.Candidate{}, false, nil
	}
	return downloaded, true, nil
}

func (l *Locator) download(ctx context.Context, server, name, key, staged string) (found bool, err error) {
	target := strings.TrimRight(server, "/") + "/" + url.PathEscape(name) + "/" + key + "/" + url.PathEscape(name)

	ctx, span := l.tracer.Start(ctx, "symstore.fetch", ports.WithAttribute("url", target))
	defer func() {
		span.SetAttribute("found", found)
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrRemoteFetchFailed.Error()), "url", target)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrRemoteFetchFailed.Error()), "url", target)
	}
	defer resp.Body.Close() //nolint:errcheck // body is drained or abandoned

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode != http.StatusOK:
		return false, zerr.With(zerr.With(domain.ErrRemoteStatus, "url", target), "status", resp.Status)
	}

	if err := stage(resp.Body, staged); err != nil {
		return false, err
	}
	return true, nil
}

// stage writes body to path through a temp file so a half-written
// download is never visible under its final name.
func stage(body io.Reader, path string) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStagingFailed.Error()), "dir", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*"+domain.TempSuffix)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStagingFailed.Error()), "dir", dir)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, body); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRemoteFetchFailed.Error()), "path", path)
	}
	if err = tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStagingFailed.Error()), "path", path)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStagingFailed.Error()), "path", path)
	}
	return nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

