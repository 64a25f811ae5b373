package port_persistence

import "context"

// UnitOfWork runs fn with exclusive access to the bank and the stores.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
