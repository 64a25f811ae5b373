package impl_transfer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	port_persistence "github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/gateway/persistence"
	port_transfer "github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/usecase/transfer"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/google/uuid"
)

type GetTransferUsecaseImpl struct {
	repo   port_persistence.TransferRepository
	logger log.Logger
}

func NewGetTransferUsecaseImpl(repo port_persistence.TransferRepository, logger log.Logger) *GetTransferUsecaseImpl {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	return &GetTransferUsecaseImpl{
		repo:   repo,
		logger: log.With(logger, "usecase", "get_transfer"),
	}
}

func (u *GetTransferUsecaseImpl) Get(ctx context.Context, transferID string) (port_transfer.TransferFundsOutput, error) {
	id, err := uuid.Parse(strings.TrimSpace(transferID))
	if err != nil {
		return port_transfer.TransferFundsOutput{}, fmt.Errorf("%w: transfer id %q", ErrInvalidInput, transferID)
	}

	stored, err := u.repo.GetByID(ctx, id.String())
	switch {
	case errors.Is(err, port_persistence.ErrNotFound):
		return port_transfer.TransferFundsOutput{}, fmt.Errorf("%w: %s", ErrTransferNotFound, id)
	case err != nil:
		level.Error(u.logger).Log("msg", "load transfer failed", "transfer_id", id, "err", err)
		return port_transfer.TransferFundsOutput{}, fmt.Errorf("load transfer: %w", err)
	}

	return toOutput(stored.Transfer), nil
}
