package memory

import (
	"context"
	"sync"

	port_persistence "github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/gateway/persistence"
)

type OutboxRepository struct {
	mu      sync.Mutex
	pending []port_persistence.OutboxMessage
}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{}
}

func (r *OutboxRepository) Enqueue(_ context.Context, msg port_persistence.OutboxMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = append(r.pending, msg)

	return nil
}

func (r *OutboxRepository) DequeueBatch(_ context.Context, limit int) ([]port_persistence.OutboxMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.pending)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]port_persistence.OutboxMessage, n)
	copy(out, r.pending[:n])

	return out, nil
}

func (r *OutboxRepository) MarkPublished(_ context.Context, messageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, msg := range r.pending {
		if msg.MessageID == messageID {
			r.pending = append(r.pending[:i], r.pending[i+1:]...)
			return nil
		}
	}

	return port_persistence.ErrNotFound
}

// Len reports how many messages are still waiting to be published.
func (r *OutboxRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.pending)
}
