package domain

import (
	"errors"
	"fmt"
)

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Balance errors
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrAmountOutOfRange  = fmt.Errorf("%w: out of range", ErrInvalidAmount)
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Transaction errors
	ErrInvalidTransactionType = errors.New("invalid transaction type")
)
