package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Kawsar6f/console-banking-system/internal/adapter/cli"
	"github.com/Kawsar6f/console-banking-system/internal/adapter/repository/jsonfile"
	"github.com/Kawsar6f/console-banking-system/internal/infrastructure/auth"
	"github.com/Kawsar6f/console-banking-system/internal/infrastructure/config"
	"github.com/Kawsar6f/console-banking-system/internal/infrastructure/logger"
	"github.com/Kawsar6f/console-banking-system/internal/infrastructure/metrics"
	"github.com/Kawsar6f/console-banking-system/internal/usecase"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataFile string

	rootCmd := &cobra.Command{
		Use:          "gobank",
		Short:        "Console banking",
		Long:         `An interactive console bank keeping its accounts in a local JSON file.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd, dataFile)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataFile, "data-file", "", "Path of the accounts file (overrides GOBANK_DATA_FILE)")

	rootCmd.AddCommand(reconcileCmd(&dataFile))
	rootCmd.AddCommand(hashPasswordCmd())

	return rootCmd
}

// deps is everything a command needs, built from the environment.
type deps struct {
	cfg     *config.Config
	logger  zerolog.Logger
	metrics *metrics.Metrics
	hasher  *auth.PasswordHasher
}

func bootstrap(stderr io.Writer, dataFile string) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if dataFile != "" {
		cfg.DataFile = dataFile
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, stderr)

	hasher, err := auth.NewPasswordHasher(cfg.PasswordScheme, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	return &deps{
		cfg:     cfg,
		logger:  log,
		metrics: metrics.New(),
		hasher:  hasher,
	}, nil
}

func (d *deps) newStore(readOnly bool) *jsonfile.AccountStore {
	return jsonfile.NewAccountStore(jsonfile.Config{
		Path:     d.cfg.DataFile,
		ReadOnly: readOnly,
		Retrier:  jsonfile.NewRetrier(d.cfg.SaveRetries, d.logger),
		Logger:   &d.logger,
	})
}

// flushMetrics writes the textfile export when one is configured.
func (d *deps) flushMetrics() {
	if d.cfg.MetricsFile == "" {
		return
	}
	if err := d.metrics.WriteToFile(d.cfg.MetricsFile); err != nil {
		d.logger.Warn().Err(err).Str("path", d.cfg.MetricsFile).Msg("failed to write metrics")
	}
}

func runInteractive(cmd *cobra.Command, dataFile string) error {
	d, err := bootstrap(cmd.ErrOrStderr(), dataFile)
	if err != nil {
		return err
	}
	defer d.flushMetrics()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	bank := usecase.NewBankUseCase(usecase.BankConfig{
		Store:   d.newStore(false),
		Hasher:  d.hasher,
		IDGen:   jsonfile.NewULIDGenerator(),
		Metrics: d.metrics,
		Logger:  &d.logger,
	})
	bank.Load(ctx)

	d.logger.Info().Str("data_file", d.cfg.DataFile).Msg("session started")

	app := cli.NewApp(cli.Config{
		Bank:    bank,
		In:      cmd.InOrStdin(),
		Out:     cmd.OutOrStdout(),
		NoColor: color.NoColor,
	})
	return app.Run(ctx)
}
