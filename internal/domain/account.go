package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a customer's bank account together with its credentials
// and transaction history.
type Account struct {
	ID           string          `json:"id"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"passwordHash"`
	FullName     string          `json:"fullName"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"createdAt"`
	Transactions []Transaction   `json:"transactions"`
}

// HasUsername reports whether the account's username matches name,
// ignoring case.
func (a *Account) HasUsername(name string) bool {
	return strings.EqualFold(a.Username, name)
}

// ValidateWithdrawal checks if account can be debited by amount.
func (a *Account) ValidateWithdrawal(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// Deposit credits amount and records a deposit transaction at time at.
func (a *Account) Deposit(amount decimal.Decimal, note string, at time.Time) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	balance := a.Balance.Add(amount)
	if err := ValidateMagnitude(balance); err != nil {
		return err
	}
	a.Balance = balance
	a.appendTransaction(TransactionTypeDeposit, amount, note, at)
	return nil
}

// Withdraw debits amount and records a withdrawal transaction at time at.
// The balance is never allowed to drop below zero.
func (a *Account) Withdraw(amount decimal.Decimal, note string, at time.Time) error {
	if err := a.ValidateWithdrawal(amount); err != nil {
		return err
	}
	a.Balance = a.Balance.Sub(amount)
	a.appendTransaction(TransactionTypeWithdrawal, amount, note, at)
	return nil
}

// appendTransaction keeps the history ordered: a clock that steps backwards
// is clamped to the previous transaction's date.
func (a *Account) appendTransaction(typ TransactionType, amount decimal.Decimal, note string, at time.Time) {
	at = at.UTC()
	if n := len(a.Transactions); n > 0 && at.Before(a.Transactions[n-1].Date) {
		at = a.Transactions[n-1].Date
	}
	a.Transactions = append(a.Transactions, Transaction{
		Date:   at,
		Type:   typ,
		Amount: amount,
		Note:   note,
	})
}

// Validate checks that the balance and every transaction amount are within
// the supported decimal range. Accounts read from disk are checked before use.
func (a *Account) Validate() error {
	if err := ValidateMagnitude(a.Balance); err != nil {
		return fmt.Errorf("account %s balance: %w", a.ID, err)
	}
	for i, t := range a.Transactions {
		if err := ValidateMagnitude(t.Amount); err != nil {
			return fmt.Errorf("account %s transaction %d: %w", a.ID, i, err)
		}
	}
	return nil
}

// HistoryBalance returns the balance implied by the transaction history.
func (a *Account) HistoryBalance() decimal.Decimal {
	total := decimal.Zero
	for _, t := range a.Transactions {
		total = total.Add(t.SignedAmount())
	}
	return total
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() *Account {
	cp := *a
	if a.Transactions != nil {
		cp.Transactions = make([]Transaction, len(a.Transactions))
		copy(cp.Transactions, a.Transactions)
	}
	return &cp
}
