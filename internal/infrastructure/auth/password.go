package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Supported password schemes.
const (
	SchemeBcrypt = "bcrypt"
	SchemeSHA256 = "sha256"
)

// ErrUnknownScheme is returned for an unsupported password scheme name.
var ErrUnknownScheme = errors.New("unknown password scheme")

// PasswordHasher hashes new passwords with one scheme and verifies stored
// hashes of any supported scheme.
type PasswordHasher struct {
	scheme string
	cost   int
}

// NewPasswordHasher creates a hasher producing hashes in scheme.
// A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewPasswordHasher(scheme string, cost int) (*PasswordHasher, error) {
	scheme = strings.ToLower(strings.TrimSpace(scheme))
	switch scheme {
	case SchemeBcrypt, SchemeSHA256:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}

	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &PasswordHasher{scheme: scheme, cost: cost}, nil
}

// Scheme returns the scheme used for new hashes.
func (h *PasswordHasher) Scheme() string {
	return h.scheme
}

// Hash hashes password with the configured scheme.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if h.scheme == SchemeSHA256 {
		return sha256Hex(password), nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify checks password against a stored hash. Bcrypt hashes are recognised
// by their "$2" prefix; anything else is treated as a hex SHA-256 digest.
func (h *PasswordHasher) Verify(hash, password string) bool {
	if isBcrypt(hash) {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}

	want := sha256Hex(password)
	// Legacy files may carry lowercase digests.
	return subtle.ConstantTimeCompare([]byte(strings.ToUpper(hash)), []byte(want)) == 1
}

func isBcrypt(hash string) bool {
	return strings.HasPrefix(hash, "$2")
}

// sha256Hex returns the uppercase hex digest of password.
func sha256Hex(password string) string {
	sum := sha256.Sum256([]byte(password))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
