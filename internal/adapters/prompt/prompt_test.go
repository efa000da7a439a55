package prompt_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/symres/internal/adapters/prompt"
	"go.trai.ch/symres/internal/core/domain"
	"go.trai.ch/symres/internal/core/ports"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Prompter = (*prompt.InteractivePrompter)(nil)
	var _ ports.Prompter = prompt.NonInteractivePrompter{}
	var _ ports.Prompter = prompt.AutoApprovePrompter{}
}

func TestInteractivePrompter_Confirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "lowercase y", input: "y\n", want: true},
		{name: "uppercase YES", input: "YES\n", want: true},
		{name: "with spaces", input: "  yes  \n", want: true},
		{name: "no line ending", input: "y", want: true},
		{name: "n", input: "n\n", want: false},
		{name: "empty line", input: "\n", want: false},
		{name: "random text", input: "sure\n", want: false},
		{name: "eof", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			p := prompt.NewInteractivePrompterWithIO(strings.NewReader(tt.input), out)

			got, err := p.Confirm(t.Context(), "Load symbols?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Load symbols? [y/N]")
		})
	}
}

func TestInteractivePrompter_SequentialAnswers(t *testing.T) {
	p := prompt.NewInteractivePrompterWithIO(strings.NewReader("y\nn\n"), io.Discard)

	first, err := p.Confirm(t.Context(), "first?")
	require.NoError(t, err)
	second, err := p.Confirm(t.Context(), "second?")
	require.NoError(t, err)
	third, err := p.Confirm(t.Context(), "third?")
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
	assert.False(t, third, "input exhausted")
}

func TestInteractivePrompter_ContextCancelled(t *testing.T) {
	p := prompt.NewInteractivePrompterWithIO(strings.NewReader("y\n"), io.Discard)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	got, err := p.Confirm(ctx, "Continue?")
	assert.False(t, got)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestInteractivePrompter_Timeout(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	p := prompt.NewInteractivePrompterWithIO(pr, io.Discard)

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	got, err := p.Confirm(ctx, "Continue?")
	assert.False(t, got)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestInteractivePrompter_LateAnswerIsDiscarded(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	p := prompt.NewInteractivePrompterWithIO(pr, io.Discard)

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	got, err := p.Confirm(ctx, "Load a.pdb?")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, got)

	// The operator answers a.pdb after its question gave up.
	_, err = pw.Write([]byte("y\n"))
	require.NoError(t, err)

	go func() { _, _ = pw.Write([]byte("n\n")) }()

	got, err = p.Confirm(t.Context(), "Load b.pdb?")
	require.NoError(t, err)
	assert.False(t, got, "the answer for a.pdb must not approve b.pdb")

	go func() { _, _ = pw.Write([]byte("y\n")) }()

	got, err = p.Confirm(t.Context(), "Load c.pdb?")
	require.NoError(t, err)
	assert.True(t, got, "answers resume normally after the late one is dropped")
}

func TestInteractivePrompter_ReadFailure(t *testing.T) {
	p := prompt.NewInteractivePrompterWithIO(iotest.ErrReader(errors.New("tty gone")), io.Discard)

	ok, err := p.Confirm(context.Background(), "load?")
	assert.False(t, ok)
	require.ErrorContains(t, err, domain.ErrPromptReadFailed.Error())
}

func TestNonInteractivePrompter_Confirm(t *testing.T) {
	got, err := prompt.NewNonInteractivePrompter().Confirm(t.Context(), "Continue?")
	assert.False(t, got)
	assert.True(t, errors.Is(err, domain.ErrPromptUnavailable))
}

func TestAutoApprovePrompter_Confirm(t *testing.T) {
	got, err := prompt.NewAutoApprovePrompter().Confirm(t.Context(), "Continue?")
	require.NoError(t, err)
	assert.True(t, got)
}
