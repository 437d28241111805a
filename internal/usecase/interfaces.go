package usecase

import (
	"context"
	"time"

	"github.com/Kawsar6f/console-banking-system/internal/domain"
)

// AccountStore defines data access for accounts. Implementations hand out
// copies, so callers may not mutate stored state directly.
type AccountStore interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error
	List(ctx context.Context) ([]*domain.Account, error)
	FindByUsername(ctx context.Context, username string) ([]*domain.Account, error)
	Insert(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, id string, fn func(*domain.Account) error) (*domain.Account, error)
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// MetricsRecorder receives operation outcomes.
type MetricsRecorder interface {
	RecordAccountCreated()
	RecordOperation(operation string, err error)
	RecordAuthAttempt(err error)
	RecordSave(elapsed time.Duration, err error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

type noopMetrics struct{}

func (noopMetrics) RecordAccountCreated()           {}
func (noopMetrics) RecordOperation(string, error)   {}
func (noopMetrics) RecordAuthAttempt(error)         {}
func (noopMetrics) RecordSave(time.Duration, error) {}
