package domain

import "context"

// Store is the persistence backend as seen by process wiring: it owns its
// schema migrations and its connection lifecycle. Repositories are obtained
// from the concrete implementation.
type Store interface {
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
