package mirror_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/symres/internal/adapters/mirror"
	"go.trai.ch/symres/internal/adapters/telemetry"
	"go.trai.ch/symres/internal/core/domain"
	"go.trai.ch/symres/internal/core/ports"
	"go.trai.ch/symres/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var testGUID = domain.MustParseGUID("12345678-9abc-def0-1234-56789abcdef0")

func writeSource(t *testing.T, dir, name string, content []byte, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, content, 0o600))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func keyedTask(src, base string) domain.CacheTask {
	return domain.CacheTask{
		SourcePath:         src,
		DestinationBaseDir: base,
		Identity:           domain.SymbolIdentity{FileName: "app.pdb", UniqueID: testGUID, Age: 2},
	}
}

func assertNoTempFiles(t *testing.T, root string) {
	t.Helper()
	err := filepath.WalkDir(root, func(path string, _ os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		assert.False(t, strings.HasSuffix(path, domain.TempSuffix), "leftover temp file %s", path)
		return nil
	})
	require.NoError(t, err)
}

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.CacheWriter = (*mirror.Writer)(nil)
}

func TestPopulate_KeyedLayout(t *testing.T) {
	srcDir, base := t.TempDir(), t.TempDir()
	mtime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	src := writeSource(t, srcDir, "app.pdb", []byte("pdb bytes"), mtime)

	copied, err := mirror.Populate(keyedTask(src, base))
	require.NoError(t, err)
	assert.True(t, copied)

	dest := filepath.Join(base, "app.pdb", "123456789ABCDEF0123456789ABCDEF02", "app.pdb")
	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "pdb bytes", string(got))

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime), "source mtime is preserved")
	assertNoTempFiles(t, base)
}

func TestPopulate_ZeroUniqueIDIsFlat(t *testing.T) {
	srcDir, base := t.TempDir(), t.TempDir()
	src := writeSource(t, srcDir, "app.pdb", []byte("flat"), time.Now().Add(-time.Hour))

	task := domain.CacheTask{
		SourcePath:         src,
		DestinationBaseDir: base,
		Identity:           domain.SymbolIdentity{FileName: "app.pdb"},
	}
	copied, err := mirror.Populate(task)
	require.NoError(t, err)
	assert.True(t, copied)

	got, err := os.ReadFile(filepath.Join(base, "app.pdb"))
	require.NoError(t, err)
	assert.Equal(t, "flat", string(got))
}

func TestPopulate_SourceAlreadyInPlace(t *testing.T) {
	base := t.TempDir()

	t.Run("flat", func(t *testing.T) {
		src := writeSource(t, base, "app.pdb", []byte("cached"), time.Now())
		task := domain.CacheTask{
			SourcePath:         src,
			DestinationBaseDir: base,
			Identity:           domain.SymbolIdentity{FileName: "app.pdb"},
		}

		copied, err := mirror.Populate(task)
		require.NoError(t, err)
		assert.False(t, copied)

		got, err := os.ReadFile(src)
		require.NoError(t, err)
		assert.Equal(t, "cached", string(got), "source must survive")
	})

	t.Run("keyed source sitting in the name slot", func(t *testing.T) {
		dir := t.TempDir()
		src := writeSource(t, dir, "app.pdb", []byte("slot"), time.Now())

		copied, err := mirror.Populate(keyedTask(src, dir))
		require.NoError(t, err)
		assert.False(t, copied)

		info, err := os.Stat(src)
		require.NoError(t, err)
		assert.False(t, info.IsDir(), "the source file is not replaced by a directory")
	})
}

func TestPopulate_ReplacesStrayFileInNameSlot(t *testing.T) {
	srcDir, base := t.TempDir(), t.TempDir()
	src := writeSource(t, srcDir, "app.pdb", []byte("keyed"), time.Now().Add(-time.Minute))
	writeSource(t, base, "app.pdb", []byte("stray"), time.Now())

	copied, err := mirror.Populate(keyedTask(src, base))
	require.NoError(t, err)
	assert.True(t, copied)

	info, err := os.Stat(filepath.Join(base, "app.pdb"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPopulate_SkipsUpToDateDestination(t *testing.T) {
	srcDir, base := t.TempDir(), t.TempDir()
	mtime := time.Now().Add(-time.Hour).Truncate(time.Second)
	src := writeSource(t, srcDir, "app.pdb", []byte("v1"), mtime)
	task := keyedTask(src, base)

	copied, err := mirror.Populate(task)
	require.NoError(t, err)
	require.True(t, copied)

	copied, err = mirror.Populate(task)
	require.NoError(t, err)
	assert.False(t, copied, "same mtime means the copy is current")

	newer := mtime.Add(time.Minute)
	writeSource(t, srcDir, "app.pdb", []byte("v2"), newer)
	copied, err = mirror.Populate(task)
	require.NoError(t, err)
	assert.True(t, copied)

	_, dest := task.Destination()
	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))
}

func TestPopulate_StagedSource(t *testing.T) {
	cache := t.TempDir()
	staging := domain.StagingDir(cache)

	stage := func(t *testing.T) domain.CacheTask {
		t.Helper()
		src := writeSource(t, staging, filepath.Join("123456789ABCDEF0123456789ABCDEF02", "app.pdb"), []byte("download"), time.Now())
		task := keyedTask(src, cache)
		task.Staged = true
		return task
	}

	t.Run("removed once mirrored", func(t *testing.T) {
		task := stage(t)

		copied, err := mirror.Populate(task)
		require.NoError(t, err)
		assert.True(t, copied)

		_, dest := task.Destination()
		got, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "download", string(got))

		assert.NoFileExists(t, task.SourcePath)
		entries, err := os.ReadDir(staging)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("already moved by an earlier task", func(t *testing.T) {
		task := stage(t)
		_, err := mirror.Populate(task)
		require.NoError(t, err)

		copied, err := mirror.Populate(task)
		require.NoError(t, err)
		assert.False(t, copied)
	})

	t.Run("kept when the copy fails", func(t *testing.T) {
		task := stage(t)
		blocked := filepath.Join(t.TempDir(), "not-a-dir")
		require.NoError(t, os.WriteFile(blocked, nil, 0o600))
		task.DestinationBaseDir = blocked

		_, err := mirror.Populate(task)
		require.Error(t, err)
		assert.FileExists(t, task.SourcePath)
	})
}

func TestPopulate_MissingSource(t *testing.T) {
	base := t.TempDir()
	_, err := mirror.Populate(keyedTask(filepath.Join(t.TempDir(), "gone.pdb"), base))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCacheStatFailed.Error())
}

func TestPopulate_MissingFileName(t *testing.T) {
	_, err := mirror.Populate(domain.CacheTask{SourcePath: "/x", DestinationBaseDir: t.TempDir()})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMissingFileName.Error())
}

func TestPopulate_ReadersNeverSeePartialFiles(t *testing.T) {
	srcDir, base := t.TempDir(), t.TempDir()
	oldContent := bytes.Repeat([]byte("a"), 1<<20)
	newContent := bytes.Repeat([]byte("b"), 1<<20)

	src := writeSource(t, srcDir, "app.pdb", oldContent, time.Now().Add(-time.Hour))
	task := keyedTask(src, base)
	_, err := mirror.Populate(task)
	require.NoError(t, err)
	_, dest := task.Destination()

	writeSource(t, srcDir, "app.pdb", newContent, time.Now())

	stop := make(chan struct{})
	var wg sync.WaitGroup
	var torn int
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			got, err := os.ReadFile(dest)
			if err != nil || !(bytes.Equal(got, oldContent) || bytes.Equal(got, newContent)) {
				torn++
			}
		}
	}()

	copied, err := mirror.Populate(task)
	close(stop)
	wg.Wait()

	require.NoError(t, err)
	assert.True(t, copied)
	assert.Zero(t, torn)
}

func TestWriter_ScheduleAndWait(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Error(gomock.Any()).Times(0)

	srcDir, base := t.TempDir(), t.TempDir()
	src := writeSource(t, srcDir, "app.pdb", []byte("payload"), time.Now().Add(-time.Hour))
	task := keyedTask(src, base)

	w := mirror.NewWriter(logger, telemetry.NewNoOpTracer(), 2)
	for range 16 {
		w.Schedule(task)
	}
	w.Wait()

	_, dest := task.Destination()
	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
	assertNoTempFiles(t, base)
}

func TestWriter_DistinctIdentitiesSharingAName(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	srcDir, base := t.TempDir(), t.TempDir()
	first := writeSource(t, filepath.Join(srcDir, "one"), "app.pdb", []byte("one"), time.Now())
	second := writeSource(t, filepath.Join(srcDir, "two"), "app.pdb", []byte("two"), time.Now())

	other := keyedTask(second, base)
	other.Identity.Age = 3

	w := mirror.NewWriter(logger, telemetry.NewNoOpTracer(), 0)
	w.Schedule(keyedTask(first, base))
	w.Schedule(other)
	w.Wait()

	_, dest1 := keyedTask(first, base).Destination()
	_, dest2 := other.Destination()
	got1, err := os.ReadFile(dest1)
	require.NoError(t, err)
	got2, err := os.ReadFile(dest2)
	require.NoError(t, err)
	assert.Equal(t, "one", string(got1))
	assert.Equal(t, "two", string(got2))
}

func TestWriter_LogsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().
		Error(gomock.Any()).
		Do(func(err error) {
			assert.ErrorContains(t, err, domain.ErrCacheStatFailed.Error())
		}).
		Times(1)

	w := mirror.NewWriter(logger, telemetry.NewNoOpTracer(), 1)
	w.Schedule(keyedTask(filepath.Join(t.TempDir(), "missing.pdb"), t.TempDir()))
	w.Wait()
}
