package ports

import "context"

// Prompter asks the user a yes/no question.
//
//go:generate go run go.uber.org/mock/mockgen -source=prompter.go -destination=mocks/mock_prompter.go -package=mocks
type Prompter interface {
	// Confirm blocks until the user answers or ctx is done.
	// Anything other than an explicit yes is a no.
	Confirm(ctx context.Context, question string) (bool, error)
}

// Consent decides whether the built-in default server may be contacted.
type Consent interface {
	// AllowDefaultServer is asked at most once per process; later calls
	// return the first answer.
	AllowDefaultServer(ctx context.Context, server string) bool
}
