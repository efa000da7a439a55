package trust

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.trai.ch/symres/internal/core/domain"
	"go.trai.ch/symres/internal/core/ports"
)

// Consent implements ports.Consent. The operator is asked at most once per
// process whether the default symbol server may be used; the answer is not
// persisted.
type Consent struct {
	policy   Policy
	prompter ports.Prompter
	timeout  time.Duration

	once   sync.Once
	answer bool
}

// NewConsent creates a Consent. A zero timeout selects domain.DefaultPromptTimeout.
func NewConsent(policy Policy, prompter ports.Prompter, timeout time.Duration) *Consent {
	if timeout <= 0 {
		timeout = domain.DefaultPromptTimeout
	}
	return &Consent{policy: policy, prompter: prompter, timeout: timeout}
}

// AllowDefaultServer returns the memoized answer, asking on first use.
func (c *Consent) AllowDefaultServer(ctx context.Context, server string) bool {
	c.once.Do(func() {
		if c.policy.Trusted() {
			c.answer = true
			return
		}
		if c.prompter == nil {
			return
		}

		ctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		question := fmt.Sprintf("No symbol path is configured. Download symbols from %s?", server)
		ok, err := c.prompter.Confirm(ctx, question)
		c.answer = err == nil && ok
	})
	return c.answer
}
