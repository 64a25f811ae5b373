package memory

import (
	"context"
	"sync"

	domain_transfer "github.com/PedroCamargo-dev/core-bank-accounts/internal/domain/transfer"
	port_persistence "github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/gateway/persistence"
)

type TransferRepository struct {
	mu    sync.RWMutex
	byID  map[string]*port_persistence.StoredTransfer
	byKey map[string]*port_persistence.StoredTransfer
}

func NewTransferRepository() *TransferRepository {
	return &TransferRepository{
		byID:  make(map[string]*port_persistence.StoredTransfer),
		byKey: make(map[string]*port_persistence.StoredTransfer),
	}
}

func (r *TransferRepository) GetByIdempotencyKey(_ context.Context, key string) (*port_persistence.StoredTransfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.byKey[key]
	if !ok {
		return nil, port_persistence.ErrNotFound
	}

	return st, nil
}

func (r *TransferRepository) Create(_ context.Context, t *domain_transfer.Transfer, requestHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byKey[t.IdempotencyKey()]; ok {
		return port_persistence.ErrDuplicateKey
	}

	st := &port_persistence.StoredTransfer{Transfer: t, RequestHash: requestHash}
	r.byID[t.ID().String()] = st
	r.byKey[t.IdempotencyKey()] = st

	return nil
}

func (r *TransferRepository) GetByID(_ context.Context, transferID string) (*port_persistence.StoredTransfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.byID[transferID]
	if !ok {
		return nil, port_persistence.ErrNotFound
	}

	return st, nil
}
