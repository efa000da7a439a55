// Package prompt implements ports.Prompter for terminal and unattended use.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"go.trai.ch/symres/internal/core/domain"
	"go.trai.ch/zerr"
)

// lateAnswerGrace is how long a question waits for the answer to an
// abandoned question before it is printed.
const lateAnswerGrace = 100 * time.Millisecond

// InteractivePrompter asks questions on a terminal.
// Questions are serialized. An answer typed for a question that was already
// abandoned is discarded and never applied to the next question.
type InteractivePrompter struct {
	reader *bufio.Reader
	writer io.Writer

	mu    sync.Mutex
	once  sync.Once
	lines chan string
	// abandoned is set when a question ends without an answer.
	abandoned bool
	// readErr is set before lines is closed.
	readErr error
}

// NewInteractivePrompter reads answers from stdin and writes questions to stderr.
func NewInteractivePrompter() *InteractivePrompter {
	return NewInteractivePrompterWithIO(os.Stdin, os.Stderr)
}

// NewInteractivePrompterWithIO creates a prompter on the given streams.
func NewInteractivePrompterWithIO(r io.Reader, w io.Writer) *InteractivePrompter {
	return &InteractivePrompter{
		reader: bufio.NewReader(r),
		writer: w,
		lines:  make(chan string),
	}
}

// Confirm prints question with a [y/N] hint and waits for an answer.
// Only y or yes (any case) approve; EOF counts as no.
func (p *InteractivePrompter) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.once.Do(func() { go p.readLines() })

	if p.abandoned {
		p.abandoned = false
		p.discardLateAnswer(ctx)
	}

	if _, err := fmt.Fprintf(p.writer, "%s [y/N]: ", question); err != nil {
		return false, err
	}

	select {
	case <-ctx.Done():
		p.abandoned = true
		_, _ = fmt.Fprintln(p.writer)
		return false, ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			if p.readErr != nil {
				return false, zerr.Wrap(p.readErr, domain.ErrPromptReadFailed.Error())
			}
			return false, nil
		}
		return isYes(line), nil
	}
}

// discardLateAnswer drops one line that was typed for the abandoned question.
func (p *InteractivePrompter) discardLateAnswer(ctx context.Context) {
	timer := time.NewTimer(lateAnswerGrace)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	case <-p.lines:
	}
}

// readLines feeds lines to Confirm until the reader fails.
func (p *InteractivePrompter) readLines() {
	defer close(p.lines)
	for {
		line, err := p.reader.ReadString('\n')
		if line != "" {
			p.lines <- line
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				p.readErr = err
			}
			return
		}
	}
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// NonInteractivePrompter never asks. It returns ErrPromptUnavailable,
// which callers treat as a denial.
type NonInteractivePrompter struct{}

// NewNonInteractivePrompter creates a NonInteractivePrompter.
func NewNonInteractivePrompter() NonInteractivePrompter {
	return NonInteractivePrompter{}
}

// Confirm always fails with domain.ErrPromptUnavailable.
func (NonInteractivePrompter) Confirm(_ context.Context, _ string) (bool, error) {
	return false, domain.ErrPromptUnavailable
}

// AutoApprovePrompter answers yes to everything (--yes).
type AutoApprovePrompter struct{}

// NewAutoApprovePrompter creates an AutoApprovePrompter.
func NewAutoApprovePrompter() AutoApprovePrompter {
	return AutoApprovePrompter{}
}

// Confirm approves unless ctx is already done.
func (AutoApprovePrompter) Confirm(ctx context.Context, _ string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return true, nil
}
