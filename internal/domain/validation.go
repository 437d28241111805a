package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidFullName = errors.New("invalid full name")
)

// Validation constants
const (
	MaxUsernameLength = 255
	MaxFullNameLength = 255

	// MaxAmountScale is the most fractional digits a balance or amount may carry.
	MaxAmountScale = 28
)

// MaxAmount is the largest balance or amount magnitude accepted, the range of
// a 96-bit decimal.
var MaxAmount = decimal.RequireFromString("79228162514264337593543950335")

// ValidateUsername validates username
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)

	if username == "" {
		return fmt.Errorf("%w: username cannot be empty", ErrInvalidUsername)
	}

	if len(username) > MaxUsernameLength {
		return fmt.Errorf("%w: username exceeds %d characters", ErrInvalidUsername, MaxUsernameLength)
	}

	return nil
}

// ValidateFullName validates full name length. An empty name is allowed.
func ValidateFullName(fullName string) error {
	if len(strings.TrimSpace(fullName)) > MaxFullNameLength {
		return fmt.Errorf("%w: full name exceeds %d characters", ErrInvalidFullName, MaxFullNameLength)
	}
	return nil
}

// ValidatePassword rejects blank passwords. Strength rules are deliberately
// not enforced for a single-user console application.
func ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: password cannot be empty", ErrInvalidPassword)
	}
	return nil
}

// ValidateAmount validates deposit/withdrawal amount
func ValidateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	return ValidateMagnitude(amount)
}

// ValidateMagnitude checks that d, of either sign, lies within MaxAmount and
// MaxAmountScale.
func ValidateMagnitude(d decimal.Decimal) error {
	// Comparisons rescale both operands, so the exponent is bounded first.
	if exp := d.Exponent(); exp < -MaxAmountScale || exp > MaxAmountScale {
		return fmt.Errorf("%w: exponent %d", ErrAmountOutOfRange, exp)
	}
	if d.Abs().GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: exceeds %s", ErrAmountOutOfRange, MaxAmount)
	}
	return nil
}
