package ports

import (
	"context"

	"go.trai.ch/symres/internal/core/domain"
)

// Locator looks up a symbol file inside a single search path element.
//
//go:generate go run go.uber.org/mock/mockgen -source=locator.go -destination=mocks/mock_locator.go -package=mocks
type Locator interface {
	// Locate returns a readable file matching id and where it came from.
	// found is false when the element does not hold it.
	Locate(ctx context.Context, elem domain.PathElement, id domain.SymbolIdentity) (c domain.Candidate, found bool, err error)
}

// SymbolFileReader checks whether a file on disk carries the wanted identity.
type SymbolFileReader interface {
	Matches(path string, id domain.SymbolIdentity) (bool, error)
}
