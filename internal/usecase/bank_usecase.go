package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Kawsar6f/console-banking-system/internal/domain"
)

// BankUseCase handles account creation, authentication and balance changes.
// Every successful mutation rewrites the whole store.
type BankUseCase struct {
	mu      sync.Mutex
	store   AccountStore
	hasher  PasswordHasher
	idGen   IDGenerator
	metrics MetricsRecorder
	logger  zerolog.Logger
	now     func() time.Time
}

// BankConfig for BankUseCase.
type BankConfig struct {
	Store   AccountStore
	Hasher  PasswordHasher
	IDGen   IDGenerator
	Metrics MetricsRecorder  // optional
	Logger  *zerolog.Logger  // optional, discards by default
	Clock   func() time.Time // optional, time.Now by default
}

// NewBankUseCase creates a new BankUseCase.
func NewBankUseCase(cfg BankConfig) *BankUseCase {
	if cfg.Metrics == nil {
		cfg.Metrics = noopMetrics{}
	}
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	return &BankUseCase{
		store:   cfg.Store,
		hasher:  cfg.Hasher,
		idGen:   cfg.IDGen,
		metrics: cfg.Metrics,
		logger:  cfg.Logger.With().Str("component", "bank").Logger(),
		now:     cfg.Clock,
	}
}

// Load fills the store from disk. Failures are logged and the bank starts
// with whatever the store holds, which is nothing for an unreadable file.
func (uc *BankUseCase) Load(ctx context.Context) {
	if err := uc.store.Load(ctx); err != nil {
		uc.logger.Warn().Err(err).Msg("failed to load accounts, starting empty")
		return
	}

	accounts, err := uc.store.List(ctx)
	if err == nil {
		uc.logger.Debug().Int("accounts", len(accounts)).Msg("accounts loaded")
	}
}

// CreateAccount opens a zero-balance account. Usernames are unique
// ignoring case.
func (uc *BankUseCase) CreateAccount(ctx context.Context, username, password, fullName string) (account *domain.Account, err error) {
	defer func() { uc.metrics.RecordOperation(OperationCreateAccount, err) }()

	username = strings.TrimSpace(username)
	if err := domain.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}
	fullName = strings.TrimSpace(fullName)
	if err := domain.ValidateFullName(fullName); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	existing, err := uc.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	account = &domain.Account{
		ID:           uc.idGen.Generate(),
		Username:     username,
		PasswordHash: hash,
		FullName:     fullName,
		Balance:      decimal.Zero,
		CreatedAt:    uc.now().UTC(),
		Transactions: []domain.Transaction{},
	}

	if err := uc.store.Insert(ctx, account); err != nil {
		return nil, err
	}

	uc.metrics.RecordAccountCreated()
	uc.logger.Info().Str("account_id", account.ID).Msg("account created")
	uc.persist(ctx)

	return account, nil
}

// Authenticate returns the account matching username and password.
func (uc *BankUseCase) Authenticate(ctx context.Context, username, password string) (account *domain.Account, err error) {
	defer func() { uc.metrics.RecordAuthAttempt(err) }()

	candidates, err := uc.store.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		if uc.hasher.Verify(candidate.PasswordHash, password) {
			return candidate, nil
		}
	}

	return nil, domain.ErrInvalidCredentials
}

// Deposit credits amount to the account.
func (uc *BankUseCase) Deposit(ctx context.Context, accountID string, amount decimal.Decimal, note string) (account *domain.Account, err error) {
	defer func() { uc.metrics.RecordOperation(OperationDeposit, err) }()

	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	return uc.mutate(ctx, accountID, func(a *domain.Account) error {
		return a.Deposit(amount, note, uc.now())
	})
}

// Withdraw debits amount from the account. The balance must cover it.
func (uc *BankUseCase) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, note string) (account *domain.Account, err error) {
	defer func() { uc.metrics.RecordOperation(OperationWithdraw, err) }()

	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	return uc.mutate(ctx, accountID, func(a *domain.Account) error {
		return a.Withdraw(amount, note, uc.now())
	})
}

// GetByUsername looks an account up ignoring case.
func (uc *BankUseCase) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	accounts, err := uc.store.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, domain.ErrAccountNotFound
	}
	return accounts[0], nil
}

func (uc *BankUseCase) mutate(ctx context.Context, accountID string, fn func(*domain.Account) error) (*domain.Account, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	account, err := uc.store.Update(ctx, accountID, fn)
	if err != nil {
		return nil, err
	}

	uc.persist(ctx)
	return account, nil
}

// persist rewrites the store. A failed save does not undo the in-memory
// change; it is logged and counted.
func (uc *BankUseCase) persist(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, DefaultSaveTimeout)
	defer cancel()

	start := time.Now()
	err := uc.store.Save(ctx)
	uc.metrics.RecordSave(time.Since(start), err)

	if err != nil {
		uc.logger.Warn().Err(err).Msg("failed to save accounts")
	}
}
