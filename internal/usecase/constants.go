package usecase

import "time"

const (
	// DefaultSaveTimeout bounds a single data file rewrite, retries included.
	DefaultSaveTimeout = 10 * time.Second

	// Operation names reported to MetricsRecorder.
	OperationCreateAccount = "create_account"
	OperationDeposit       = "deposit"
	OperationWithdraw      = "withdraw"
)
