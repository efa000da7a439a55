package telemetry

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Stats is an sdktrace.SpanProcessor that counts finished spans per name,
// so a run can end with a one-line summary.
type Stats struct {
	mu       sync.Mutex
	ended    map[string]int
	failures map[string]int
}

// NewStats returns an empty Stats processor.
func NewStats() *Stats {
	return &Stats{
		ended:    make(map[string]int),
		failures: make(map[string]int),
	}
}

// OnStart does nothing.
func (s *Stats) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd counts the span and whether it failed.
func (s *Stats) OnEnd(span sdktrace.ReadOnlySpan) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ended[span.Name()]++
	if span.Status().Code == codes.Error {
		s.failures[span.Name()]++
	}
}

// Shutdown does nothing.
func (s *Stats) Shutdown(_ context.Context) error { return nil }

// ForceFlush does nothing.
func (s *Stats) ForceFlush(_ context.Context) error { return nil }

// Count returns how many spans with the given name ended, and how many failed.
func (s *Stats) Count(name string) (ended, failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended[name], s.failures[name]
}

// Summary renders "name=ended[/failed]" pairs sorted by name.
func (s *Stats) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.ended))
	for name := range s.ended {
		names = append(names, name)
	}
	slices.Sort(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		part := fmt.Sprintf("%s=%d", name, s.ended[name])
		if f := s.failures[name]; f > 0 {
			part += fmt.Sprintf(" (%d failed)", f)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}
