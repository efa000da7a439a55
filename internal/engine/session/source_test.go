package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/symres/internal/core/domain"
	"go.trai.ch/symres/internal/engine/session"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("// source"), 0o600))
}

func TestResolveSource(t *testing.T) {
	envDir, prefDir, overlayDir := t.TempDir(), t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(envDir, "lib", "util.cs"))
	writeFile(t, filepath.Join(prefDir, "src", "app", "main.cs"))
	writeFile(t, filepath.Join(overlayDir, "main.cs"))

	f := newFixture(t, session.Config{})
	f.sources.EXPECT().Current().Return(domain.PathSources{
		EnvSourcePath:   envDir + ";SRV*http://sources",
		PersistedSource: prefDir,
	}).AnyTimes()

	t.Run("leading directories are stripped", func(t *testing.T) {
		got, ok := f.session.ResolveSource(t.Context(), `d:\build\agent\lib\util.cs`, "")
		require.True(t, ok)
		assert.Equal(t, filepath.Join(envDir, "lib", "util.cs"), got)
	})

	t.Run("full relative path wins over shorter suffixes", func(t *testing.T) {
		got, ok := f.session.ResolveSource(t.Context(), "src/app/main.cs", "")
		require.True(t, ok)
		assert.Equal(t, filepath.Join(prefDir, "src", "app", "main.cs"), got)
	})

	t.Run("overlay is searched first", func(t *testing.T) {
		got, ok := f.session.ResolveSource(t.Context(), "src/app/main.cs", overlayDir)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(overlayDir, "main.cs"), got)
	})

	t.Run("missing file", func(t *testing.T) {
		_, ok := f.session.ResolveSource(t.Context(), "nope.cs", "")
		assert.False(t, ok)
	})

	t.Run("empty path", func(t *testing.T) {
		_, ok := f.session.ResolveSource(t.Context(), "  ", "")
		assert.False(t, ok)
	})
}

func TestResolveSource_RemembersRequestOverlay(t *testing.T) {
	ctrl := gomock.NewController(t)
	overlayDir := t.TempDir()
	writeFile(t, filepath.Join(overlayDir, "x.cs"))

	f := newFixture(t, session.Config{})
	f.withEnv("/sym")
	f.gates.EXPECT().NewGate(false).Return(newGate(ctrl))
	f.locator.EXPECT().Locate(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Candidate{}, false, nil)

	_, ok := f.session.ResolveSource(t.Context(), "x.cs", "")
	require.False(t, ok)

	_, err := f.session.Resolve(t.Context(), domain.ResolveRequest{Identity: testID, SourceOverlay: overlayDir})
	require.NoError(t, err)

	got, ok := f.session.ResolveSource(t.Context(), "x.cs", "")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(overlayDir, "x.cs"), got)
}

func TestResolveSource_AbsolutePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abs.cs")
	writeFile(t, path)

	f := newFixture(t, session.Config{})
	got, ok := f.session.ResolveSource(t.Context(), path, "")
	require.True(t, ok)
	assert.Equal(t, path, got)
}
