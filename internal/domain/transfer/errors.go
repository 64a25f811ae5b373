package domain_transfer

import "errors"

var (
	ErrInvalidTransferID     = errors.New("transfer: invalid transfer_id")
	ErrMissingOwner          = errors.New("transfer: from_owner and to_owner are required")
	ErrMissingCorrelationID  = errors.New("transfer: correlation_id is required")
	ErrMissingIdempotencyKey = errors.New("transfer: idempotency_key is required")

	ErrInvalidStateTransition = errors.New("transfer: invalid state transition")
	ErrAlreadyFinalized       = errors.New("transfer: transfer already finalized")
	ErrMissingFailureReason   = errors.New("transfer: failure_reason is required to fail transfer")
)
