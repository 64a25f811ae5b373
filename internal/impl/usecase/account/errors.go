package impl_account

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input data")
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists for owner")
)
