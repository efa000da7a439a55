package mirror

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/symres/internal/core/domain"
	"go.trai.ch/zerr"
)

// Populate performs one cache task synchronously and reports whether a file
// was written. The destination is replaced atomically: readers see either
// the previous file or the complete new one. A staged source is removed
// once the destination holds its content.
func Populate(task domain.CacheTask) (bool, error) {
	copied, err := populate(task)
	if err != nil || !task.Staged {
		return copied, err
	}
	return copied, discardStaged(task)
}

func populate(task domain.CacheTask) (bool, error) {
	name := task.FileName()
	if name == "" {
		return false, zerr.With(domain.ErrMissingFileName, "source", task.SourcePath)
	}

	dir, dest := task.Destination()

	srcInfo, err := os.Stat(task.SourcePath)
	if err != nil {
		// An earlier task for the same download already moved it into place.
		if task.Staged && errors.Is(err, fs.ErrNotExist) && isRegular(dest) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrCacheStatFailed.Error()), "source", task.SourcePath)
	}

	// A source already sitting at its cache location needs no copy.
	if sameFile(dest, task.SourcePath) {
		return false, nil
	}
	if task.Identity.CacheKey() != "" {
		done, err := clearNameSlot(task)
		if done || err != nil {
			return false, err
		}
	}

	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "dir", dir)
	}

	if dstInfo, err := os.Stat(dest); err == nil && dstInfo.ModTime().Equal(srcInfo.ModTime()) {
		return false, nil
	}

	if err := copyAtomic(task.SourcePath, dir, dest, srcInfo.ModTime()); err != nil {
		return false, err
	}
	return true, nil
}

// discardStaged removes a staged download whose content now sits at the
// destination, then its identity directory if that is left empty.
func discardStaged(task domain.CacheTask) error {
	_, dest := task.Destination()
	if !isRegular(dest) || sameFile(dest, task.SourcePath) {
		return nil
	}
	if err := os.Remove(task.SourcePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrStagingCleanupFailed.Error()), "path", task.SourcePath)
	}
	_ = os.Remove(filepath.Dir(task.SourcePath))
	return nil
}

// clearNameSlot removes a plain file at base/name, where keyed placement
// needs a directory. When that file is the source itself the task is
// abandoned and done is true.
func clearNameSlot(task domain.CacheTask) (done bool, err error) {
	slot := task.NameSlot()

	info, err := os.Lstat(slot)
	if err != nil || info.IsDir() {
		return false, nil
	}

	if sameFile(slot, task.SourcePath) {
		return true, nil
	}
	if err := os.Remove(slot); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, zerr.With(zerr.Wrap(err, domain.ErrCacheClearFailed.Error()), "path", slot)
	}
	return false, nil
}

// copyAtomic streams src into a temp file next to dest, verifies it, stamps
// the source mtime and renames it over dest. The temp file never survives a
// failure.
func copyAtomic(src, dir, dest string, mtime time.Time) (err error) {
	//nolint:gosec // source comes from a resolved search path element
	in, err := os.Open(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCopyFailed.Error()), "source", src)
	}
	defer in.Close() //nolint:errcheck // read-only

	tmp, err := os.CreateTemp(dir, filepath.Base(dest)+".*"+domain.TempSuffix)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCopyFailed.Error()), "dir", dir)
	}
	tmpName := tmp.Name()
	closed := false
	defer func() {
		if !closed {
			_ = tmp.Close()
		}
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	want := xxhash.New()
	if _, err = io.Copy(tmp, io.TeeReader(in, want)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCopyFailed.Error()), "destination", dest)
	}
	if err = tmp.Chmod(domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCopyFailed.Error()), "destination", dest)
	}
	if err = tmp.Sync(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCopyFailed.Error()), "destination", dest)
	}
	closed = true
	if err = tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCopyFailed.Error()), "destination", dest)
	}

	got, err := hashFile(tmpName)
	if err != nil {
		return err
	}
	if got != want.Sum64() {
		err = zerr.With(domain.ErrCacheVerifyFailed, "destination", dest)
		return err
	}

	if err = os.Chtimes(tmpName, mtime, mtime); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCopyFailed.Error()), "destination", dest)
	}
	if err = os.Rename(tmpName, dest); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCommitFailed.Error()), "destination", dest)
	}
	return nil
}

// hashFile computes the xxhash of a file's content.
func hashFile(path string) (uint64, error) {
	//nolint:gosec // temp file created by copyAtomic
	f, err := os.Open(path)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrCacheVerifyFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // read-only

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrCacheVerifyFailed.Error()), "path", path)
	}
	return h.Sum64(), nil
}

// sameFile reports whether a and b name the same file, by inode where the
// filesystem allows and by canonical path otherwise.
func sameFile(a, b string) bool {
	ai, aerr := os.Stat(a)
	bi, berr := os.Stat(b)
	if aerr == nil && berr == nil {
		return os.SameFile(ai, bi)
	}
	return canonical(a) == canonical(b)
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func canonical(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		p = resolved
	}
	return domain.NormalizeLocation(p)
}
