package domain_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/symres/internal/core/domain"
)

func TestSearchPathSpec_AppendDeduplicates(t *testing.T) {
	tests := []struct {
		name  string
		first string
		again string
	}{
		{name: "trailing backslash", first: `C:\sym`, again: `C:\sym\`},
		{name: "case and slashes on windows paths", first: `C:\Sym\Local`, again: `c:/sym/local/`},
		{name: "posix trailing slash", first: "/srv/symbols", again: "/srv/symbols/"},
		{name: "unc share", first: `\\build\drop\sym`, again: `\\BUILD\drop\sym\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var spec domain.SearchPathSpec
			require.True(t, spec.Append(domain.NewLocalDirectory("/other")))
			require.True(t, spec.Append(domain.NewLocalDirectory(tt.first)))
			assert.False(t, spec.Append(domain.NewLocalDirectory(tt.again)))

			require.Equal(t, 2, spec.Len())
			assert.Equal(t, tt.first, spec.At(1).Location(), "first insertion wins")
		})
	}
}

func TestSearchPathSpec_PosixPathsKeepCase(t *testing.T) {
	spec := domain.NewSearchPathSpec(
		domain.NewLocalDirectory("/srv/Symbols"),
		domain.NewLocalDirectory("/srv/symbols"),
	)
	if runtime.GOOS == "windows" {
		t.Skip("windows paths are case-insensitive")
	}
	assert.Equal(t, 2, spec.Len(), "posix paths are case-sensitive")
}

func TestSearchPathSpec_RepositoryKeyIncludesMirror(t *testing.T) {
	spec := domain.NewSearchPathSpec(
		domain.NewRemoteRepository("http://server", `C:\cache`),
		domain.NewRemoteRepository("http://server/", `c:\cache\`),
		domain.NewRemoteRepository("http://server", `D:\other`),
	)
	assert.Equal(t, 2, spec.Len())
}

func TestSearchPathSpec_IgnoresEmptyElements(t *testing.T) {
	var spec domain.SearchPathSpec
	assert.False(t, spec.Append(domain.NewLocalDirectory("  ")))
	assert.False(t, spec.Append(domain.NewRemoteRepository("", "")))
	assert.True(t, spec.IsEmpty())
}

func TestSearchPathSpec_Equal(t *testing.T) {
	a := domain.NewSearchPathSpec(
		domain.NewLocalDirectory(`C:\sym1`),
		domain.NewRemoteRepository("http://server", `C:\cache`),
	)
	b := domain.NewSearchPathSpec(
		domain.NewLocalDirectory(`C:\sym1`),
		domain.NewRemoteRepository("http://server", `C:\cache`),
	)
	reordered := domain.NewSearchPathSpec(
		domain.NewRemoteRepository("http://server", `C:\cache`),
		domain.NewLocalDirectory(`C:\sym1`),
	)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(reordered), "order is part of equality")
	assert.True(t, domain.SearchPathSpec{}.Equal(domain.NewSearchPathSpec()))
}

func TestSearchPathSpec_ElementsIsACopy(t *testing.T) {
	spec := domain.NewSearchPathSpec(domain.NewLocalDirectory("/a"))
	elems := spec.Elements()
	elems[0] = domain.NewLocalDirectory("/mutated")

	assert.Equal(t, "/a", spec.At(0).Location())
}

func TestPathElement_String(t *testing.T) {
	tests := []struct {
		name string
		elem domain.PathElement
		want string
	}{
		{name: "local", elem: domain.NewLocalDirectory(`C:\sym1`), want: `C:\sym1`},
		{name: "server with mirror", elem: domain.NewRemoteRepository("http://server", `C:\cache`), want: `SRV*C:\cache*http://server`},
		{name: "server only", elem: domain.NewRemoteRepository("http://server", ""), want: "SRV*http://server"},
		{name: "cache only", elem: domain.NewRemoteRepository("", `C:\cache`), want: `cache*C:\cache`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.elem.String())
		})
	}
}

func TestPathElement_Accessors(t *testing.T) {
	repo := domain.NewRemoteRepository("http://server", "")
	_, ok := repo.LocalMirrorDir()
	assert.False(t, ok)
	assert.True(t, repo.IsRemote())
	assert.False(t, repo.CacheOnly())

	bound := repo.WithMirror("/cache")
	mirror, ok := bound.LocalMirrorDir()
	assert.True(t, ok)
	assert.Equal(t, "/cache", mirror)
	_, ok = repo.LocalMirrorDir()
	assert.False(t, ok, "WithMirror must not mutate the receiver")

	assert.True(t, domain.NewRemoteRepository("", "/cache").CacheOnly())
	assert.Equal(t, "remote", repo.Kind().String())
	assert.Equal(t, "local", domain.NewLocalDirectory("/x").Kind().String())
}

func TestIsNetworkShare(t *testing.T) {
	assert.True(t, domain.IsNetworkShare(`\\server\share`))
	assert.True(t, domain.IsNetworkShare("//server/share"))
	assert.False(t, domain.IsNetworkShare(`C:\local`))
	assert.False(t, domain.IsNetworkShare("/usr/lib/debug"))
}
