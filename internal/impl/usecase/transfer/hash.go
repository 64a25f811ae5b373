package impl_transfer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	port_transfer "github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/usecase/transfer"
	"github.com/shopspring/decimal"
)

// HashTransferFundsInput fingerprints the parts of a request that must match
// when an idempotency key is reused. Owners are trimmed and amounts are
// compared by value, so "500" and "500.00" hash the same. Fields are JSON
// encoded, so no owner text can shift a value into its neighbour.
func HashTransferFundsInput(in port_transfer.TransferFundsInput) string {
	amount := strings.TrimSpace(in.Amount)
	if d, err := decimal.NewFromString(amount); err == nil {
		amount = d.String()
	}

	// Marshaling a slice of strings cannot fail.
	payload, _ := json.Marshal([]string{
		strings.TrimSpace(in.FromOwner),
		strings.TrimSpace(in.ToOwner),
		amount,
	})

	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
