package impl_transfer

import "errors"

var (
	ErrIdempotencyConflict = errors.New("idempotency key conflict: different payload for same key")
	ErrInvalidInput        = errors.New("invalid input data")
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransferNotFound    = errors.New("transfer not found")
)
