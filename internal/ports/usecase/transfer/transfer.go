package port_transfer

import (
	"context"
	"time"
)

// TransferFundsInput carries amounts as decimal strings so no precision is
// lost before the use case parses them.
type TransferFundsInput struct {
	FromOwner      string
	ToOwner        string
	Amount         string
	IdempotencyKey string
	CorrelationID  string
	Traceparent    string
}

type TransferFundsOutput struct {
	TransferID    string
	FromOwner     string
	ToOwner       string
	Amount        string
	Status        string
	FromBalance   string
	ToBalance     string
	FailureReason string
	CreatedAt     time.Time
	CorrelationID string
}

type TransferFundsUseCase interface {
	Execute(ctx context.Context, input TransferFundsInput) (TransferFundsOutput, error)
}

// GetTransferUseCase reads back a receipt by transfer id.
type GetTransferUseCase interface {
	Get(ctx context.Context, transferID string) (TransferFundsOutput, error)
}
