package port_persistence

import (
	"context"
	"errors"

	domain_transfer "github.com/PedroCamargo-dev/core-bank-accounts/internal/domain/transfer"
)

var (
	ErrNotFound     = errors.New("persistence: not found")
	ErrDuplicateKey = errors.New("persistence: duplicate idempotency key")
)

// StoredTransfer pairs a receipt with the fingerprint of the request that
// created it, so a reused idempotency key can be checked against the payload.
type StoredTransfer struct {
	Transfer    *domain_transfer.Transfer
	RequestHash string
}

type TransferRepository interface {
	GetByIdempotencyKey(ctx context.Context, key string) (*StoredTransfer, error)
	// Create fails with ErrDuplicateKey when the receipt's idempotency key is
	// already taken.
	Create(ctx context.Context, t *domain_transfer.Transfer, requestHash string) error
	GetByID(ctx context.Context, transferID string) (*StoredTransfer, error)
}
