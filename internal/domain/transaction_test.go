package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestTransactionType_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(TransactionTypeWithdrawal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `"Withdrawal"` {
		t.Errorf("expected \"Withdrawal\", got %s", data)
	}

	if _, err := json.Marshal(TransactionType(7)); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestTransactionType_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input    string
		expected TransactionType
		wantErr  bool
	}{
		{input: `"Deposit"`, expected: TransactionTypeDeposit},
		{input: `"withdrawal"`, expected: TransactionTypeWithdrawal},
		{input: `0`, expected: TransactionTypeDeposit},
		{input: `1`, expected: TransactionTypeWithdrawal},
		{input: `2`, wantErr: true},
		{input: `"Transfer"`, wantErr: true},
		{input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var typ TransactionType
			err := json.Unmarshal([]byte(tt.input), &typ)

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTransactionType) {
					t.Fatalf("expected ErrInvalidTransactionType, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if typ != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, typ)
			}
		})
	}
}

func TestTransaction_JSONShape(t *testing.T) {
	tx := Transaction{
		Date:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Type:   TransactionTypeDeposit,
		Amount: decimal.RequireFromString("12.50"),
	}

	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `{"date":"2024-01-02T03:04:05Z","type":"Deposit","amount":"12.5"}`
	if string(data) != expected {
		t.Errorf("expected %s, got %s", expected, data)
	}
}

func TestTransaction_SignedAmount(t *testing.T) {
	dep := Transaction{Type: TransactionTypeDeposit, Amount: decimal.NewFromInt(5)}
	wd := Transaction{Type: TransactionTypeWithdrawal, Amount: decimal.NewFromInt(5)}

	if !dep.SignedAmount().Equal(decimal.NewFromInt(5)) {
		t.Errorf("expected 5, got %s", dep.SignedAmount())
	}
	if !wd.SignedAmount().Equal(decimal.NewFromInt(-5)) {
		t.Errorf("expected -5, got %s", wd.SignedAmount())
	}
}
