package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/Kawsar6f/console-banking-system/internal/domain"
)

const (
	bankTitle  = "=== DHAKA BANK ==="
	dateLayout = "2006-01-02 15:04:05Z"
)

// Bank is the account service the menu drives.
type Bank interface {
	CreateAccount(ctx context.Context, username, password, fullName string) (*domain.Account, error)
	Authenticate(ctx context.Context, username, password string) (*domain.Account, error)
	Deposit(ctx context.Context, accountID string, amount decimal.Decimal, note string) (*domain.Account, error)
	Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, note string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
}

// Config for App.
type Config struct {
	Bank    Bank
	In      io.Reader
	Out     io.Writer
	NoColor bool
}

// App is the interactive menu. It keeps at most one logged-in account.
type App struct {
	bank   Bank
	reader *bufio.Reader
	out    io.Writer
	fd     int
	tty    bool

	session *domain.Account

	ok      *color.Color
	fail    *color.Color
	heading *color.Color
}

// NewApp creates the menu. Passwords are read without echo when In is a
// terminal.
func NewApp(cfg Config) *App {
	app := &App{
		bank:    cfg.Bank,
		reader:  bufio.NewReader(cfg.In),
		out:     cfg.Out,
		ok:      color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		heading: color.New(color.FgCyan, color.Bold),
	}

	if f, isFile := cfg.In.(*os.File); isFile {
		app.fd = int(f.Fd())
		app.tty = isTerminal(app.fd)
	}

	if cfg.NoColor {
		app.ok.DisableColor()
		app.fail.DisableColor()
		app.heading.DisableColor()
	}

	return app
}

// Run shows the menu until the user exits, input ends or ctx is done.
func (a *App) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		var err error
		if a.session == nil {
			err = a.loggedOutMenu(ctx)
		} else {
			err = a.loggedInMenu(ctx)
		}

		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(a.out, "Goodbye!")
	return nil
}

func (a *App) loggedOutMenu(ctx context.Context) error {
	fmt.Fprintln(a.out)
	a.heading.Fprintln(a.out, bankTitle)
	fmt.Fprintln(a.out, "1) Create account")
	fmt.Fprintln(a.out, "2) Login")
	fmt.Fprintln(a.out, "3) Exit")

	choice, err := prompt(a.reader, a.out, "Choose: ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return a.createAccount(ctx)
	case "2":
		return a.login(ctx)
	case "3":
		return errQuit
	default:
		a.fail.Fprintln(a.out, "Unknown option.")
		return nil
	}
}

func (a *App) loggedInMenu(ctx context.Context) error {
	a.refresh(ctx)

	fmt.Fprintln(a.out)
	a.heading.Fprintf(a.out, "Logged in: %s (%s) - Balance: %s\n",
		a.session.Username, a.session.FullName, formatMoney(a.session.Balance))
	fmt.Fprintln(a.out, "1) Deposit")
	fmt.Fprintln(a.out, "2) Withdraw")
	fmt.Fprintln(a.out, "3) Check balance")
	fmt.Fprintln(a.out, "4) Display account details")
	fmt.Fprintln(a.out, "5) Transaction history")
	fmt.Fprintln(a.out, "6) Logout")

	choice, err := prompt(a.reader, a.out, "Choose: ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return a.deposit(ctx)
	case "2":
		return a.withdraw(ctx)
	case "3":
		fmt.Fprintf(a.out, "Current balance: %s\n", formatMoney(a.session.Balance))
	case "4":
		a.showDetails()
	case "5":
		a.showHistory()
	case "6":
		a.session = nil
	default:
		a.fail.Fprintln(a.out, "Unknown option.")
	}
	return nil
}

func (a *App) createAccount(ctx context.Context) error {
	fullName, err := prompt(a.reader, a.out, "Full name: ")
	if err != nil {
		return err
	}
	username, err := prompt(a.reader, a.out, "Username: ")
	if err != nil {
		return err
	}
	password, err := promptSecret(a.reader, a.out, "Password: ", a.fd, a.tty)
	if err != nil {
		return err
	}

	account, err := a.bank.CreateAccount(ctx, username, password, fullName)
	switch {
	case err == nil:
		a.ok.Fprintf(a.out, "Account created. Welcome, %s!\n", account.FullName)
	case errors.Is(err, domain.ErrInvalidUsername), errors.Is(err, domain.ErrInvalidPassword):
		a.fail.Fprintln(a.out, "Username and password cannot be empty.")
	case errors.Is(err, domain.ErrUsernameTaken):
		a.fail.Fprintln(a.out, "Username already exists.")
	case errors.Is(err, domain.ErrInvalidFullName):
		a.fail.Fprintf(a.out, "Full name cannot exceed %d characters.\n", domain.MaxFullNameLength)
	default:
		a.fail.Fprintln(a.out, "Could not create account.")
	}
	return nil
}

func (a *App) login(ctx context.Context) error {
	username, err := prompt(a.reader, a.out, "Username: ")
	if err != nil {
		return err
	}
	password, err := promptSecret(a.reader, a.out, "Password: ", a.fd, a.tty)
	if err != nil {
		return err
	}

	account, err := a.bank.Authenticate(ctx, username, password)
	if err != nil {
		a.fail.Fprintln(a.out, "Invalid credentials.")
		return nil
	}

	a.session = account
	return nil
}

func (a *App) deposit(ctx context.Context) error {
	amount, note, ok, err := a.readAmountAndNote("Amount to deposit: ")
	if err != nil || !ok {
		return err
	}

	account, err := a.bank.Deposit(ctx, a.session.ID, amount, note)
	if err != nil {
		a.fail.Fprintln(a.out, "Deposit failed.")
		return nil
	}

	a.session = account
	a.ok.Fprintln(a.out, "Deposit successful.")
	return nil
}

func (a *App) withdraw(ctx context.Context) error {
	amount, note, ok, err := a.readAmountAndNote("Amount to withdraw: ")
	if err != nil || !ok {
		return err
	}

	account, err := a.bank.Withdraw(ctx, a.session.ID, amount, note)
	if err != nil {
		a.fail.Fprintln(a.out, "Insufficient funds or invalid amount.")
		return nil
	}

	a.session = account
	a.ok.Fprintln(a.out, "Withdrawal successful.")
	return nil
}

// readAmountAndNote returns ok=false after reporting unparsable or
// out-of-range input.
func (a *App) readAmountAndNote(label string) (decimal.Decimal, string, bool, error) {
	raw, err := prompt(a.reader, a.out, label)
	if err != nil {
		return decimal.Zero, "", false, err
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil || domain.ValidateMagnitude(amount) != nil {
		a.fail.Fprintln(a.out, "Invalid amount.")
		return decimal.Zero, "", false, nil
	}

	note, err := prompt(a.reader, a.out, "Note (optional): ")
	if err != nil {
		return decimal.Zero, "", false, err
	}

	return amount, note, true, nil
}

func (a *App) showDetails() {
	acc := a.session
	a.heading.Fprintln(a.out, "--- Account Details ---")
	fmt.Fprintf(a.out, "ID: %s\n", acc.ID)
	fmt.Fprintf(a.out, "Username: %s\n", acc.Username)
	fmt.Fprintf(a.out, "Full name: %s\n", acc.FullName)
	fmt.Fprintf(a.out, "Created: %s\n", acc.CreatedAt.UTC().Format(dateLayout))
	fmt.Fprintf(a.out, "Balance: %s\n", formatMoney(acc.Balance))
}

func (a *App) showHistory() {
	a.heading.Fprintln(a.out, "--- Transactions ---")
	if len(a.session.Transactions) == 0 {
		fmt.Fprintln(a.out, "(none)")
		return
	}

	for _, t := range a.session.Transactions {
		line := fmt.Sprintf("%s | %s | %s", t.Date.UTC().Format(dateLayout), t.Type, formatMoney(t.Amount))
		if t.Note != "" {
			line += " | " + t.Note
		}
		fmt.Fprintln(a.out, line)
	}
}

// refresh reloads the session account so the header reflects the stored state.
func (a *App) refresh(ctx context.Context) {
	current, err := a.bank.GetByUsername(ctx, a.session.Username)
	if err != nil || current.ID != a.session.ID {
		return
	}
	a.session = current
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
