package domain_bank

import "errors"

// ErrInsufficientFunds is returned by Account.Debit when the result would be
// negative. The message is part of the contract.
var ErrInsufficientFunds = errors.New("Insufficient funds")
