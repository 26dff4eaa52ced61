package ports

import "context"

// Engine defines the contract with the external packaging engine: a
// black-box executable builder that consumes an argument list and
// produces a directory tree (or a single file, for one-file builds) at
// distPath. Any failure is surfaced as an error with no partial-output
// guarantee.
//
//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks
type Engine interface {
	Build(ctx context.Context, args []string, distPath string) error
}
