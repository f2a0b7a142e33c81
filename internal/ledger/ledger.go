package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"github.com/shopspring/decimal"

	"github.com/designemotion/transcript/internal/apperr"
	"github.com/designemotion/transcript/internal/config"
)

const conflictDelay = 10 * time.Millisecond

// Ledger enforces debit-before-use against the account store.
//
// Balance changes are conditional on the account version read just before,
// so concurrent debits on one account cannot overspend. A lost race is
// retried on a fresh read up to maxConflictRetries times.
type Ledger struct {
	repo               Repository
	signupCredits      int
	maxConflictRetries uint
	now                func() time.Time
}

type Option func(*Ledger)

// WithClock replaces time.Now for history timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func New(repo Repository, cfg config.LedgerConfig, opts ...Option) *Ledger {
	l := &Ledger{
		repo:               repo,
		signupCredits:      cfg.SignupCredits,
		maxConflictRetries: cfg.MaxConflictRetries,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IsAuthorized reports whether key is bound to the account.
func (l *Ledger) IsAuthorized(ctx context.Context, accountID, key string) (bool, error) {
	if accountID == "" || key == "" {
		return false, nil
	}
	ok, err := l.repo.HasKey(ctx, accountID, key)
	if err != nil {
		return false, apperr.StoreUnavailable("is authorized", err)
	}
	return ok, nil
}

// Authorize binds key to the account, creating the account with the signup
// credits when it does not exist. Binding an already bound key is a no-op.
func (l *Ledger) Authorize(ctx context.Context, accountID, key, clientType string) error {
	if err := validateAccount(accountID); err != nil {
		return err
	}
	if key == "" {
		return &apperr.InvalidRequestError{Field: "key", Reason: "must not be empty"}
	}

	created, err := l.repo.EnsureAccount(ctx, accountID, l.signupCredits)
	if err != nil {
		return apperr.StoreUnavailable("authorize", err)
	}
	if created {
		slog.Default().Info("account created",
			"account_id", accountID,
			"signup_credits", l.signupCredits,
		)
	}
	if err := l.repo.AddKey(ctx, AuthorizedKey{AccountID: accountID, Key: key, ClientType: clientType}); err != nil {
		return apperr.StoreUnavailable("authorize", err)
	}
	return nil
}

// RevokeKey unbinds key and reports whether it was bound.
func (l *Ledger) RevokeKey(ctx context.Context, accountID, key string) (bool, error) {
	removed, err := l.repo.RemoveKey(ctx, accountID, key)
	if err != nil {
		return false, apperr.StoreUnavailable("revoke key", err)
	}
	return removed, nil
}

// Keys lists the keys bound to the account.
func (l *Ledger) Keys(ctx context.Context, accountID string) ([]AuthorizedKey, error) {
	keys, err := l.repo.ListKeys(ctx, accountID)
	if err != nil {
		return nil, apperr.StoreUnavailable("keys", err)
	}
	return keys, nil
}

// Grant adds purchased credits, creating the account when it does not exist.
func (l *Ledger) Grant(ctx context.Context, accountID string, amount decimal.Decimal, credits int) (*Account, error) {
	if err := validateAccount(accountID); err != nil {
		return nil, err
	}
	if credits < 0 {
		return nil, &apperr.InvalidRequestError{Field: "credits", Reason: "must not be negative"}
	}
	if amount.IsNegative() {
		return nil, &apperr.InvalidRequestError{Field: "amount", Reason: "must not be negative"}
	}

	if _, err := l.repo.EnsureAccount(ctx, accountID, 0); err != nil {
		return nil, apperr.StoreUnavailable("grant", err)
	}
	return l.update(ctx, "grant", accountID, func(a *Account) error {
		if a == nil {
			return fmt.Errorf("account %s not found after creation", accountID)
		}
		return l.repo.ApplyFunding(ctx, a.Version, FundingRecord{
			AccountID: accountID,
			FundedAt:  l.now().UTC(),
			Amount:    amount,
			Credits:   credits,
		})
	})
}

// Debit charges cost credits for resource. It fails with an
// InsufficientCreditError and changes nothing when the balance is too low.
// An unknown account has a balance of zero.
func (l *Ledger) Debit(ctx context.Context, accountID string, cost int, resource string) (*Account, error) {
	if cost <= 0 {
		return nil, &apperr.InvalidRequestError{Field: "cost", Reason: "must be positive"}
	}
	return l.update(ctx, "debit", accountID, func(a *Account) error {
		if a == nil {
			return &apperr.InsufficientCreditError{Needed: cost, Left: 0}
		}
		if a.CreditsLeft < cost {
			return &apperr.InsufficientCreditError{Needed: cost, Left: a.CreditsLeft}
		}
		return l.repo.ApplyDebit(ctx, a.Version, UsageRecord{
			AccountID: accountID,
			UsedAt:    l.now().UTC(),
			Resource:  resource,
			Cost:      cost,
		})
	})
}

// update reads the account, applies change and returns the account as stored
// afterwards. Only ErrVersionConflict is retried.
func (l *Ledger) update(ctx context.Context, op, accountID string, change func(a *Account) error) (*Account, error) {
	err := retry.Do(
		func() error {
			a, err := l.repo.FindAccount(ctx, accountID)
			if err != nil {
				return retry.Unrecoverable(apperr.StoreUnavailable(op, err))
			}
			if err := change(a); err != nil {
				if errors.Is(err, ErrVersionConflict) {
					return err
				}
				if apperr.IsBusiness(err) {
					return retry.Unrecoverable(err)
				}
				return retry.Unrecoverable(apperr.StoreUnavailable(op, err))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(l.maxConflictRetries+1),
		retry.Delay(conflictDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Debug("account changed concurrently, retrying",
				"op", op,
				"account_id", accountID,
				"attempt", n+1,
			)
		}),
	)
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return nil, apperr.StoreUnavailable(op, fmt.Errorf("%s after %d attempts: %w", accountID, l.maxConflictRetries+1, err))
		}
		return nil, err
	}

	a, err := l.repo.FindAccount(ctx, accountID)
	if err != nil {
		return nil, apperr.StoreUnavailable(op, err)
	}
	return a, nil
}

// Account returns the account or nil when it does not exist. It never creates one.
func (l *Ledger) Account(ctx context.Context, accountID string) (*Account, error) {
	a, err := l.repo.FindAccount(ctx, accountID)
	if err != nil {
		return nil, apperr.StoreUnavailable("account", err)
	}
	return a, nil
}

func (l *Ledger) UsageHistory(ctx context.Context, accountID string) ([]UsageRecord, error) {
	records, err := l.repo.ListUsage(ctx, accountID)
	if err != nil {
		return nil, apperr.StoreUnavailable("usage history", err)
	}
	return records, nil
}

func (l *Ledger) FundingHistory(ctx context.Context, accountID string) ([]FundingRecord, error) {
	records, err := l.repo.ListFunding(ctx, accountID)
	if err != nil {
		return nil, apperr.StoreUnavailable("funding history", err)
	}
	return records, nil
}

// Balance is a read-only projection of an account. It is zero for unknown accounts.
type Balance struct {
	CreditsLeft  int
	CreditsUsed  int
	CreditsTotal int
	UsageTotal   int
	FundingTotal decimal.Decimal
}

func (l *Ledger) Balance(ctx context.Context, accountID string) (Balance, error) {
	a, err := l.Account(ctx, accountID)
	if err != nil {
		return Balance{}, err
	}
	if a == nil {
		return Balance{FundingTotal: decimal.Zero}, nil
	}
	return Balance{
		CreditsLeft:  a.CreditsLeft,
		CreditsUsed:  a.CreditsUsed,
		CreditsTotal: a.CreditsTotal(),
		UsageTotal:   a.UsageTotal,
		FundingTotal: a.FundingTotal,
	}, nil
}

func validateAccount(accountID string) error {
	if accountID == "" {
		return &apperr.InvalidRequestError{Field: "email", Reason: "must not be empty"}
	}
	return nil
}
