package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/symres/cmd/symres/commands"
	"go.trai.ch/symres/internal/app"
	"go.trai.ch/symres/internal/build"
	"go.trai.ch/symres/internal/core/domain"
)

const testGUID = "a3b1c2d4-e5f6-4789-8abc-def012345678"

type mockApp struct {
	resolveFunc    func(ctx context.Context, opts app.Options, reqs []domain.ResolveRequest) ([]app.ResolveResult, error)
	searchPathFunc func(ctx context.Context, opts app.Options, tracePath string, cacheOnly bool) (domain.SearchPathSpec, error)
	setPathFunc    func(ctx context.Context, opts app.Options, value string, source bool) error
	sourceFunc     func(ctx context.Context, opts app.Options, relPath, overlay string) (string, bool, error)
}

func (m *mockApp) Resolve(ctx context.Context, opts app.Options, reqs []domain.ResolveRequest) ([]app.ResolveResult, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, opts, reqs)
	}
	results := make([]app.ResolveResult, len(reqs))
	for i, r := range reqs {
		results[i] = app.ResolveResult{Request: r, Resolution: domain.NotFound}
	}
	return results, nil
}

func (m *mockApp) SearchPath(ctx context.Context, opts app.Options, tracePath string, cacheOnly bool) (domain.SearchPathSpec, error) {
	if m.searchPathFunc != nil {
		return m.searchPathFunc(ctx, opts, tracePath, cacheOnly)
	}
	return domain.SearchPathSpec{}, nil
}

func (m *mockApp) SetPersistedPath(ctx context.Context, opts app.Options, value string, source bool) error {
	if m.setPathFunc != nil {
		return m.setPathFunc(ctx, opts, value, source)
	}
	return nil
}

func (m *mockApp) ResolveSource(ctx context.Context, opts app.Options, relPath, overlay string) (string, bool, error) {
	if m.sourceFunc != nil {
		return m.sourceFunc(ctx, opts, relPath, overlay)
	}
	return "", false, nil
}

func execute(t *testing.T, a commands.Application, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cli := commands.New(a)
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cli.SetOutput(out, errOut)
	cli.SetArgs(args)
	err = cli.Execute(context.Background())
	return out.String(), errOut.String(), err
}

func TestCommands_Resolve(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var (
			captured     []domain.ResolveRequest
			capturedOpts app.Options
		)
		mock := &mockApp{
			resolveFunc: func(_ context.Context, opts app.Options, reqs []domain.ResolveRequest) ([]app.ResolveResult, error) {
				captured, capturedOpts = reqs, opts
				return []app.ResolveResult{{
					Request:    reqs[0],
					Resolution: domain.Resolution{Path: "/sym/app.pdb", Found: true},
				}}, nil
			},
		}

		stdout, _, err := execute(t, mock,
			"resolve", "app.pdb", testGUID, "2",
			"--trace", "/traces/run.etl", "--cache-only", "--source-path", "/src",
			"--config", "custom.yaml", "--mode", "unattended", "--trust-all", "-y",
		)
		require.NoError(t, err)
		assert.Equal(t, "/sym/app.pdb\n", stdout)

		require.Len(t, captured, 1)
		assert.Equal(t, "app.pdb", captured[0].Identity.FileName)
		assert.Equal(t, uint32(2), captured[0].Identity.Age)
		assert.Equal(t, "/traces/run.etl", captured[0].TracePath)
		assert.Equal(t, "/src", captured[0].SourceOverlay)
		assert.Equal(t, domain.OptionCacheOnly, captured[0].Option)

		assert.Equal(t, "custom.yaml", capturedOpts.ConfigPath)
		assert.Equal(t, "unattended", capturedOpts.Mode)
		assert.True(t, capturedOpts.TrustAll)
		assert.True(t, capturedOpts.AssumeYes)
		assert.False(t, capturedOpts.TraceSpans)
	})

	t.Run("miss is reported without failing", func(t *testing.T) {
		stdout, stderr, err := execute(t, &mockApp{}, "resolve", "app.pdb", testGUID, "1")
		require.NoError(t, err)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "not found")
	})

	t.Run("invalid guid", func(t *testing.T) {
		_, _, err := execute(t, &mockApp{}, "resolve", "app.pdb", "nope", "1")
		require.ErrorContains(t, err, domain.ErrInvalidGUID.Error())
	})

	t.Run("requires three arguments", func(t *testing.T) {
		_, _, err := execute(t, &mockApp{}, "resolve", "app.pdb")
		require.Error(t, err)
	})

	t.Run("returns error on app failure", func(t *testing.T) {
		mock := &mockApp{
			resolveFunc: func(context.Context, app.Options, []domain.ResolveRequest) ([]app.ResolveResult, error) {
				return nil, errors.New("simulated error")
			},
		}
		_, _, err := execute(t, mock, "resolve", "app.pdb", testGUID, "1")
		require.ErrorContains(t, err, "simulated error")
	})
}

func TestCommands_ResolveBatch(t *testing.T) {
	batch := filepath.Join(t.TempDir(), "ids.txt")
	require.NoError(t, os.WriteFile(batch, []byte(
		"# modules\n"+
			"app.pdb "+testGUID+" 1\n"+
			"\n"+
			"lib.pdb "+testGUID+" 0x2\n",
	), 0o600))

	var captured []domain.ResolveRequest
	mock := &mockApp{
		resolveFunc: func(_ context.Context, _ app.Options, reqs []domain.ResolveRequest) ([]app.ResolveResult, error) {
			captured = reqs
			return []app.ResolveResult{
				{Request: reqs[0], Resolution: domain.Resolution{Path: "/sym/app.pdb", Found: true}},
				{Request: reqs[1], Resolution: domain.NotFound},
			}, nil
		},
	}

	stdout, _, err := execute(t, mock, "resolve", "--from", batch)
	require.NoError(t, err)
	require.Len(t, captured, 2)
	assert.Equal(t, uint32(2), captured[1].Identity.Age)
	assert.Contains(t, stdout, "/sym/app.pdb")
	assert.Contains(t, stdout, "lib.pdb")
	assert.Contains(t, stdout, "not found")

	t.Run("malformed line", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.txt")
		require.NoError(t, os.WriteFile(bad, []byte("app.pdb "+testGUID+"\n"), 0o600))
		_, _, err := execute(t, &mockApp{}, "resolve", "--from", bad)
		require.ErrorContains(t, err, domain.ErrMalformedBatchLine.Error())
	})

	t.Run("positional arguments are rejected", func(t *testing.T) {
		_, _, err := execute(t, &mockApp{}, "resolve", "--from", batch, "app.pdb")
		require.Error(t, err)
	})

	t.Run("stdin batch disables questions", func(t *testing.T) {
		var (
			gotReqs []domain.ResolveRequest
			gotOpts app.Options
		)
		mock := &mockApp{
			resolveFunc: func(_ context.Context, opts app.Options, reqs []domain.ResolveRequest) ([]app.ResolveResult, error) {
				gotReqs, gotOpts = reqs, opts
				return []app.ResolveResult{{Request: reqs[0], Resolution: domain.NotFound}}, nil
			},
		}

		cli := commands.New(mock)
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetInput(bytes.NewBufferString("app.pdb " + testGUID + " 1\n"))
		cli.SetArgs([]string{"resolve", "--from", "-"})
		require.NoError(t, cli.Execute(context.Background()))

		require.Len(t, gotReqs, 1)
		assert.Equal(t, "app.pdb", gotReqs[0].Identity.FileName)
		assert.True(t, gotOpts.BatchFromStdin)
	})

	t.Run("file batch keeps questions", func(t *testing.T) {
		var gotOpts app.Options
		mock := &mockApp{
			resolveFunc: func(_ context.Context, opts app.Options, reqs []domain.ResolveRequest) ([]app.ResolveResult, error) {
				gotOpts = opts
				return make([]app.ResolveResult, len(reqs)), nil
			},
		}
		_, _, err := execute(t, mock, "resolve", "--from", batch)
		require.NoError(t, err)
		assert.False(t, gotOpts.BatchFromStdin)
	})

	t.Run("per request errors are returned", func(t *testing.T) {
		mock := &mockApp{
			resolveFunc: func(_ context.Context, _ app.Options, reqs []domain.ResolveRequest) ([]app.ResolveResult, error) {
				return []app.ResolveResult{
					{Request: reqs[0], Err: context.Canceled},
					{Request: reqs[1], Resolution: domain.NotFound},
				}, nil
			},
		}
		_, _, err := execute(t, mock, "resolve", "--from", batch)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestCommands_Path(t *testing.T) {
	spec := domain.NewSearchPathSpec(
		domain.NewLocalDirectory("/cache"),
		domain.NewRemoteRepository("https://symbols.example.com", "/cache"),
	)

	var gotTrace string
	var gotCacheOnly bool
	mock := &mockApp{
		searchPathFunc: func(_ context.Context, _ app.Options, tracePath string, cacheOnly bool) (domain.SearchPathSpec, error) {
			gotTrace, gotCacheOnly = tracePath, cacheOnly
			return spec, nil
		},
	}

	t.Run("lists elements", func(t *testing.T) {
		stdout, _, err := execute(t, mock, "path", "--trace", "/t/run.etl", "--cache-only")
		require.NoError(t, err)
		assert.Equal(t, "/t/run.etl", gotTrace)
		assert.True(t, gotCacheOnly)
		assert.Contains(t, stdout, "/cache")
		assert.Contains(t, stdout, "SRV*/cache*https://symbols.example.com")
		assert.Contains(t, stdout, "remote")
	})

	t.Run("raw", func(t *testing.T) {
		stdout, _, err := execute(t, mock, "path", "--raw")
		require.NoError(t, err)
		assert.Equal(t, spec.String()+"\n", stdout)
	})
}

func TestCommands_PathSet(t *testing.T) {
	var (
		gotValue  string
		gotSource bool
	)
	mock := &mockApp{
		setPathFunc: func(_ context.Context, _ app.Options, value string, source bool) error {
			gotValue, gotSource = value, source
			return nil
		},
	}

	_, _, err := execute(t, mock, "path", "set", "C:\\sym;SRV*https://b")
	require.NoError(t, err)
	assert.Equal(t, "C:\\sym;SRV*https://b", gotValue)
	assert.False(t, gotSource)

	_, _, err = execute(t, mock, "path", "set", "--source", "/src")
	require.NoError(t, err)
	assert.Equal(t, "/src", gotValue)
	assert.True(t, gotSource)
}

func TestCommands_Source(t *testing.T) {
	mock := &mockApp{
		sourceFunc: func(_ context.Context, _ app.Options, relPath, overlay string) (string, bool, error) {
			if relPath == "lib/util.cs" && overlay == "/overlay" {
				return "/overlay/lib/util.cs", true, nil
			}
			return "", false, nil
		},
	}

	stdout, _, err := execute(t, mock, "source", "lib/util.cs", "--source-path", "/overlay")
	require.NoError(t, err)
	assert.Equal(t, "/overlay/lib/util.cs\n", stdout)

	stdout, stderr, err := execute(t, mock, "source", "missing.cs")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "not found: missing.cs")
}

func TestCommands_Version(t *testing.T) {
	stdout, _, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, build.Version)
}
