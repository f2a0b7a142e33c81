package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/designemotion/transcript/internal/ledger"
)

func newAccountCommand() *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Inspect and manage credit accounts",
	}

	var credits int
	var amount string
	grantCmd := &cobra.Command{
		Use:   "grant <email>",
		Short: "Add purchased credits to an account",
		Args:  cobra.ExactArgs(1),
		RunE: withLedger(func(ctx context.Context, w io.Writer, l *ledger.Ledger, args []string) error {
			paid, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid --amount %q: %w", amount, err)
			}
			return grantCredits(ctx, w, l, args[0], paid, credits)
		}),
	}
	grantCmd.Flags().IntVar(&credits, "credits", 0, "number of credits to add")
	grantCmd.Flags().StringVar(&amount, "amount", "0", "amount paid for the credits")
	_ = grantCmd.MarkFlagRequired("credits")

	var clientType string
	authorizeCmd := &cobra.Command{
		Use:   "authorize <email> <key>",
		Short: "Bind a client key to an account",
		Args:  cobra.ExactArgs(2),
		RunE: withLedger(func(ctx context.Context, w io.Writer, l *ledger.Ledger, args []string) error {
			return authorizeKey(ctx, w, l, args[0], args[1], clientType)
		}),
	}
	authorizeCmd.Flags().StringVar(&clientType, "client-type", "", "tool the key belongs to")

	accountCmd.AddCommand(
		&cobra.Command{
			Use:   "show <email>",
			Short: "Show the balance and keys of an account",
			Args:  cobra.ExactArgs(1),
			RunE: withLedger(func(ctx context.Context, w io.Writer, l *ledger.Ledger, args []string) error {
				return showAccount(ctx, w, l, args[0])
			}),
		},
		&cobra.Command{
			Use:   "history <email>",
			Short: "Show the usage and funding history of an account",
			Args:  cobra.ExactArgs(1),
			RunE: withLedger(func(ctx context.Context, w io.Writer, l *ledger.Ledger, args []string) error {
				return showHistory(ctx, w, l, args[0])
			}),
		},
		grantCmd,
		authorizeCmd,
		&cobra.Command{
			Use:   "revoke <email> <key>",
			Short: "Unbind a client key from an account",
			Args:  cobra.ExactArgs(2),
			RunE: withLedger(func(ctx context.Context, w io.Writer, l *ledger.Ledger, args []string) error {
				return revokeKey(ctx, w, l, args[0], args[1])
			}),
		},
	)
	return accountCmd
}

type ledgerAction func(ctx context.Context, w io.Writer, l *ledger.Ledger, args []string) error

func withLedger(action ledgerAction) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer func() {
			_ = db.Close()
		}()
		return action(cmd.Context(), cmd.OutOrStdout(), ledger.New(ledger.NewDBRepository(db), cfg.Ledger), args)
	}
}

func showAccount(ctx context.Context, w io.Writer, l *ledger.Ledger, accountID string) error {
	account, err := l.Account(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		_, _ = color.New(color.FgYellow).Fprintf(w, "account %s does not exist\n", accountID)
		return nil
	}
	keys, err := l.Keys(ctx, accountID)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	_, _ = bold.Fprintln(w, account.AccountID)
	_, _ = fmt.Fprintf(w, "  credits left:  %d\n", account.CreditsLeft)
	_, _ = fmt.Fprintf(w, "  credits used:  %d\n", account.CreditsUsed)
	_, _ = fmt.Fprintf(w, "  credits total: %d\n", account.CreditsTotal())
	_, _ = fmt.Fprintf(w, "  funding total: %s\n", account.FundingTotal.StringFixed(2))
	_, _ = fmt.Fprintf(w, "  keys (%d):\n", len(keys))
	for _, k := range keys {
		clientType := k.ClientType
		if clientType == "" {
			clientType = "-"
		}
		_, _ = fmt.Fprintf(w, "    %s  %s  %s\n", k.Key, clientType, k.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func showHistory(ctx context.Context, w io.Writer, l *ledger.Ledger, accountID string) error {
	funding, err := l.FundingHistory(ctx, accountID)
	if err != nil {
		return err
	}
	usage, err := l.UsageHistory(ctx, accountID)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	_, _ = bold.Fprintf(w, "funding (%d)\n", len(funding))
	for _, f := range funding {
		_, _ = fmt.Fprintf(w, "  %s  +%d credits  %s\n", f.FundedAt.Format("2006-01-02 15:04"), f.Credits, f.Amount.StringFixed(2))
	}
	_, _ = bold.Fprintf(w, "usage (%d)\n", len(usage))
	for _, u := range usage {
		_, _ = fmt.Fprintf(w, "  %s  -%d  %s\n", u.UsedAt.Format("2006-01-02 15:04"), u.Cost, u.Resource)
	}
	return nil
}

func grantCredits(ctx context.Context, w io.Writer, l *ledger.Ledger, accountID string, amount decimal.Decimal, credits int) error {
	account, err := l.Grant(ctx, accountID, amount, credits)
	if err != nil {
		return err
	}
	_, _ = color.New(color.FgGreen).Fprintf(w, "granted %d credits to %s, %d left\n", credits, accountID, account.CreditsLeft)
	return nil
}

func authorizeKey(ctx context.Context, w io.Writer, l *ledger.Ledger, accountID, key, clientType string) error {
	if err := l.Authorize(ctx, accountID, key, clientType); err != nil {
		return err
	}
	_, _ = color.New(color.FgGreen).Fprintf(w, "key %s authorized for %s\n", key, accountID)
	return nil
}

func revokeKey(ctx context.Context, w io.Writer, l *ledger.Ledger, accountID, key string) error {
	removed, err := l.RevokeKey(ctx, accountID, key)
	if err != nil {
		return err
	}
	if !removed {
		_, _ = color.New(color.FgYellow).Fprintf(w, "key %s was not bound to %s\n", key, accountID)
		return nil
	}
	_, _ = color.New(color.FgGreen).Fprintf(w, "key %s revoked for %s\n", key, accountID)
	return nil
}
