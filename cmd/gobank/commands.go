package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Kawsar6f/console-banking-system/internal/usecase"
)

var errDiscrepancies = errors.New("balances disagree with transaction history")

func reconcileCmd(dataFile *string) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Compare stored balances with transaction history",
		Long: `Recomputes every balance from its transactions and reports accounts whose
stored balance differs. The data file is never modified. Exits non-zero when
any account disagrees.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := bootstrap(cmd.ErrOrStderr(), *dataFile)
			if err != nil {
				return err
			}
			defer d.flushMetrics()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			store := d.newStore(true)
			if err := store.Load(ctx); err != nil {
				return err
			}

			uc := usecase.NewReconciliationUseCase(store)
			out := cmd.OutOrStdout()

			if username != "" {
				result, err := uc.ReconcileAccount(ctx, username)
				if err != nil {
					return fmt.Errorf("%s: %w", username, err)
				}
				printResult(out, result)
				if !result.IsReconciled {
					return errDiscrepancies
				}
				return nil
			}

			report, err := uc.GenerateReport(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Checked %d account(s) in %s: %d reconciled, %d discrepancies\n",
				report.TotalAccounts, store.Path(), report.ReconciledAccounts, len(report.Discrepancies))
			for _, result := range report.Discrepancies {
				printResult(out, result)
			}

			if !report.Consistent() {
				return errDiscrepancies
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Reconcile a single account")

	return cmd
}

func printResult(w io.Writer, r *usecase.ReconciliationResult) {
	status := "OK"
	if !r.IsReconciled {
		status = "MISMATCH"
	}
	fmt.Fprintf(w, "%-8s %s (%s): recorded %s, history %s, difference %s, %d transaction(s)\n",
		status, r.Username, r.AccountID,
		r.RecordedBalance.StringFixed(2), r.CalculatedBalance.StringFixed(2), r.Difference.StringFixed(2),
		r.TransactionCount)
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a password hash for a hand-edited accounts file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := bootstrap(cmd.ErrOrStderr(), "")
			if err != nil {
				return err
			}

			hash, err := d.hasher.Hash(args[0])
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
