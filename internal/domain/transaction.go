package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes balance-increasing from balance-decreasing events.
type TransactionType int

const (
	TransactionTypeDeposit TransactionType = iota
	TransactionTypeWithdrawal
)

var transactionTypeNames = map[TransactionType]string{
	TransactionTypeDeposit:    "Deposit",
	TransactionTypeWithdrawal: "Withdrawal",
}

// String returns the display name of the type.
func (t TransactionType) String() string {
	if name, ok := transactionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TransactionType(%d)", int(t))
}

// IsValid checks if the type is a known transaction type.
func (t TransactionType) IsValid() bool {
	_, ok := transactionTypeNames[t]
	return ok
}

// MarshalJSON writes the type by name.
func (t TransactionType) MarshalJSON() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTransactionType, int(t))
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts the type name in any case, or the numeric value
// older data files were written with.
func (t *TransactionType) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		for typ, n := range transactionTypeNames {
			if strings.EqualFold(n, name) {
				*t = typ
				return nil
			}
		}
		return fmt.Errorf("%w: %q", ErrInvalidTransactionType, name)
	}

	var num int
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTransactionType, string(data))
	}
	typ := TransactionType(num)
	if !typ.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidTransactionType, num)
	}
	*t = typ
	return nil
}

// Transaction is an immutable record of a balance change.
type Transaction struct {
	Date   time.Time       `json:"date"`
	Type   TransactionType `json:"type"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
}

// SignedAmount returns the amount as it affects the balance.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeWithdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}
