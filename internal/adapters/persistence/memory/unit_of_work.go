// Package memory keeps receipts and outbox messages in process memory.
// Nothing survives a restart.
package memory

import (
	"context"
	"sync"
)

// UnitOfWork serializes callers with a single mutex. It is the external
// synchronization the unlocked domain_bank types rely on. Work is not rolled
// back when fn fails.
type UnitOfWork struct {
	mu sync.Mutex
}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{}
}

func (u *UnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	return fn(ctx)
}
