// Package trust implements the trust gate that approves symbol files from
// locations not known to be safe.
package trust

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/symres/internal/core/domain"
	"go.trai.ch/symres/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

// Policy short-circuits confirmation. Either flag approves every file.
type Policy struct {
	// TrustedPrincipal marks an internal, verified context.
	TrustedPrincipal bool
	// TrustAll is the operator's explicit opt-out from confirmation.
	TrustAll bool
}

// Trusted reports whether the policy approves without asking.
func (p Policy) Trusted() bool {
	return p.TrustedPrincipal || p.TrustAll
}

// Gate implements ports.TrustGate. Approvals are remembered for the life of
// the gate; denials are not, so the operator is asked again next time.
type Gate struct {
	policy     Policy
	prompter   ports.Prompter
	timeout    time.Duration
	unattended bool

	mu       sync.RWMutex
	approved map[string]struct{}
	asking   singleflight.Group
	closed   atomic.Bool
}

// NewGate creates a gate. A zero timeout selects domain.DefaultPromptTimeout.
func NewGate(policy Policy, prompter ports.Prompter, timeout time.Duration, unattended bool) *Gate {
	if timeout <= 0 {
		timeout = domain.DefaultPromptTimeout
	}
	return &Gate{
		policy:     policy,
		prompter:   prompter,
		timeout:    timeout,
		unattended: unattended,
		approved:   make(map[string]struct{}),
	}
}

// MayLoad reports whether the file at path may be loaded.
// Anything short of an explicit approval is a denial.
func (g *Gate) MayLoad(ctx context.Context, path string) bool {
	if g.closed.Load() {
		return false
	}
	if g.policy.Trusted() {
		return true
	}

	key := filepath.Clean(path)
	if g.isApproved(key) {
		return true
	}
	if g.unattended || g.prompter == nil {
		return false
	}

	// Concurrent resolves of the same file share one question.
	v, _, _ := g.asking.Do(key, func() (any, error) {
		return g.ask(ctx, key), nil
	})
	ok, _ := v.(bool)
	return ok
}

func (g *Gate) ask(ctx context.Context, path string) bool {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	question := fmt.Sprintf("Load symbol file %s from a location that is not known to be safe?", path)
	ok, err := g.prompter.Confirm(ctx, question)
	if err != nil || !ok {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed.Load() {
		return false
	}
	g.approved[path] = struct{}{}
	return true
}

func (g *Gate) isApproved(path string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.approved[path]
	return ok
}

// Close releases the gate. Remembered approvals are dropped and MayLoad
// returns false from now on.
func (g *Gate) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.closed.Store(true)
	clear(g.approved)
	return nil
}

// Factory implements ports.TrustGateFactory.
type Factory struct {
	Policy   Policy
	Prompter ports.Prompter
	Timeout  time.Duration
}

// NewFactory creates a Factory.
func NewFactory(policy Policy, prompter ports.Prompter, timeout time.Duration) *Factory {
	return &Factory{Policy: policy, Prompter: prompter, Timeout: timeout}
}

// NewGate returns a fresh gate with no remembered approvals.
func (f *Factory) NewGate(unattended bool) ports.TrustGate {
	return NewGate(f.Policy, f.Prompter, f.Timeout, unattended)
}
