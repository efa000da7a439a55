package ports

import "context"

// TrustGate decides whether a symbol file found on disk may be handed to
// the debugger stack.
//
//go:generate go run go.uber.org/mock/mockgen -source=trust.go -destination=mocks/mock_trust.go -package=mocks
type TrustGate interface {
	// MayLoad reports whether the file at path may be loaded.
	// It is safe for concurrent use.
	MayLoad(ctx context.Context, path string) bool

	// Close releases the gate. MayLoad returns false afterwards.
	Close() error
}

// TrustGateFactory creates a fresh gate for every search path build.
type TrustGateFactory interface {
	NewGate(unattended bool) TrustGate
}
