package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Kawsar6f/console-banking-system/internal/domain"
)

const filePerm = 0o600

var (
	// ErrDuplicateID is returned when inserting an account whose ID is already stored.
	ErrDuplicateID = errors.New("account id already stored")
	// ErrReadOnly is returned by Save on a read-only store.
	ErrReadOnly = errors.New("account store is read-only")
)

// Config for AccountStore.
type Config struct {
	Path     string
	ReadOnly bool             // never write or rename the data file
	Retrier  *Retrier         // optional, no retries by default
	Logger   *zerolog.Logger  // optional
	Clock    func() time.Time // optional, names quarantined files
}

// AccountStore keeps every account in memory and persists the whole list as
// one JSON document.
type AccountStore struct {
	path     string
	readOnly bool
	retrier  *Retrier
	logger   zerolog.Logger
	now      func() time.Time

	// saveMu orders rewrites so an older snapshot never lands after a newer one.
	saveMu   sync.Mutex
	mu       sync.RWMutex
	accounts []*domain.Account
	// unreadable is set when the last Load left the data file in place
	// without reading it; saving would overwrite it.
	unreadable bool
}

// NewAccountStore creates a store backed by cfg.Path. Nothing is read until
// Load is called.
func NewAccountStore(cfg Config) *AccountStore {
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}
	if cfg.Retrier == nil {
		cfg.Retrier = NewRetrier(0, *cfg.Logger)
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	return &AccountStore{
		path:     cfg.Path,
		readOnly: cfg.ReadOnly,
		retrier:  cfg.Retrier,
		logger:   cfg.Logger.With().Str("component", "account_store").Str("path", cfg.Path).Logger(),
		now:      cfg.Clock,
	}
}

// Path returns the data file location.
func (s *AccountStore) Path() string {
	return s.path
}

// Load replaces the in-memory accounts with the file contents. A missing or
// empty file yields an empty store. On any other failure the store is left
// empty and the error returned. An unparsable file, or one holding amounts
// outside the supported range, is first renamed to <path>.corrupt-<unix> so a
// later Save cannot overwrite it, unless the store is read-only. A file that
// cannot be read or moved aside blocks Save until a later Load succeeds.
func (s *AccountStore) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = nil
	s.unreadable = false

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug().Msg("data file not found, starting empty")
		return nil
	}
	if err != nil {
		s.unreadable = true
		s.logger.Error().Err(err).Msg("data file unreadable, saving disabled")
		return fmt.Errorf("failed to read accounts: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	accounts, err := decodeAccounts(data)
	if err != nil {
		if !s.readOnly {
			s.quarantine()
		}
		return fmt.Errorf("failed to parse accounts: %w", err)
	}

	s.accounts = accounts
	return nil
}

func decodeAccounts(data []byte) ([]*domain.Account, error) {
	var accounts []*domain.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, err
	}

	out := make([]*domain.Account, 0, len(accounts))
	for _, a := range accounts {
		if a == nil {
			continue
		}
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if a.Transactions == nil {
			a.Transactions = []domain.Transaction{}
		}
		out = append(out, a)
	}
	return out, nil
}

// quarantine must be called with mu held.
func (s *AccountStore) quarantine() {
	dest := fmt.Sprintf("%s.corrupt-%d", s.path, s.now().Unix())
	if err := os.Rename(s.path, dest); err != nil {
		s.unreadable = true
		s.logger.Error().Err(err).Msg("failed to move corrupt data file aside, saving disabled")
		return
	}
	s.logger.Warn().Str("moved_to", dest).Msg("corrupt data file moved aside")
}

// Save serializes every account and atomically replaces the data file.
func (s *AccountStore) Save(ctx context.Context) error {
	if s.readOnly {
		return ErrReadOnly
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	if s.unreadable {
		s.mu.RUnlock()
		return fmt.Errorf("%w: data file could not be loaded", ErrReadOnly)
	}
	snapshot := s.accounts
	if snapshot == nil {
		snapshot = []*domain.Account{}
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode accounts: %w", err)
	}

	err = s.retrier.Retry(ctx, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return writeFileAtomic(s.path, data, filePerm)
	})
	if err != nil {
		return fmt.Errorf("failed to write accounts: %w", err)
	}

	s.logger.Debug().Int("bytes", len(data)).Msg("accounts saved")
	return nil
}

// List returns copies of all accounts in insertion order.
func (s *AccountStore) List(_ context.Context) ([]*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a.Clone())
	}
	return out, nil
}

// FindByUsername returns copies of every account whose username matches,
// ignoring case.
func (s *AccountStore) FindByUsername(_ context.Context, username string) ([]*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Account
	for _, a := range s.accounts {
		if a.HasUsername(username) {
			out = append(out, a.Clone())
		}
	}
	return out, nil
}

// Insert appends a copy of account. It is not persisted until Save.
func (s *AccountStore) Insert(_ context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.ID == account.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, account.ID)
		}
	}

	s.accounts = append(s.accounts, account.Clone())
	return nil
}

// Update applies fn to a copy of the account with the given ID and stores the
// result only if fn succeeds.
func (s *AccountStore) Update(_ context.Context, id string, fn func(*domain.Account) error) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.accounts {
		if a.ID != id {
			continue
		}

		working := a.Clone()
		if err := fn(working); err != nil {
			return nil, err
		}

		s.accounts[i] = working
		return working.Clone(), nil
	}

	return nil, domain.ErrAccountNotFound
}

// writeFileAtomic writes data to a temp file in the target directory, syncs
// it and renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
