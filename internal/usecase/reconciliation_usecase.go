package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Kawsar6f/console-banking-system/internal/domain"
)

// ReconciliationUseCase compares stored balances against transaction history.
// It only reports; nothing is corrected.
type ReconciliationUseCase struct {
	store AccountStore
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(store AccountStore) *ReconciliationUseCase {
	return &ReconciliationUseCase{store: store}
}

// ReconciliationResult represents the result of a reconciliation check
type ReconciliationResult struct {
	AccountID         string
	Username          string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	TransactionCount  int
	IsReconciled      bool
	LastChecked       time.Time
}

// ReconcileAccount checks the account registered under username.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, username string) (*ReconciliationResult, error) {
	accounts, err := uc.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, domain.ErrAccountNotFound
	}

	return reconcile(accounts[0]), nil
}

// ReconcileAllAccounts reconciles every stored account, in file order.
func (uc *ReconciliationUseCase) ReconcileAllAccounts(ctx context.Context) ([]*ReconciliationResult, error) {
	accounts, err := uc.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	results := make([]*ReconciliationResult, 0, len(accounts))
	for _, account := range accounts {
		results = append(results, reconcile(account))
	}

	return results, nil
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	TotalAccounts      int
	ReconciledAccounts int
	Discrepancies      []*ReconciliationResult
	CheckedAt          time.Time
}

// Consistent reports whether every account agreed with its history.
func (r *ReconciliationReport) Consistent() bool {
	return len(r.Discrepancies) == 0
}

// GenerateReport reconciles all accounts and summarises the outcome.
func (uc *ReconciliationUseCase) GenerateReport(ctx context.Context) (*ReconciliationReport, error) {
	results, err := uc.ReconcileAllAccounts(ctx)
	if err != nil {
		return nil, err
	}

	report := &ReconciliationReport{
		TotalAccounts: len(results),
		Discrepancies: make([]*ReconciliationResult, 0),
		CheckedAt:     time.Now().UTC(),
	}

	for _, result := range results {
		if result.IsReconciled {
			report.ReconciledAccounts++
		} else {
			report.Discrepancies = append(report.Discrepancies, result)
		}
	}

	return report, nil
}

func reconcile(account *domain.Account) *ReconciliationResult {
	calculated := account.HistoryBalance()
	diff := account.Balance.Sub(calculated)

	return &ReconciliationResult{
		AccountID:         account.ID,
		Username:          account.Username,
		RecordedBalance:   account.Balance,
		CalculatedBalance: calculated,
		Difference:        diff,
		TransactionCount:  len(account.Transactions),
		IsReconciled:      diff.IsZero(),
		LastChecked:       time.Now().UTC(),
	}
}
