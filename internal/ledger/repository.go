package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/designemotion/transcript/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/ledger/mock_repository.go -package=mock_ledger

// ErrVersionConflict is returned when an account changed between read and update.
var ErrVersionConflict = errors.New("account version conflict")

// Repository defines the account store operations used by the Ledger.
type Repository interface {
	// FindAccount returns nil when the account does not exist.
	FindAccount(ctx context.Context, accountID string) (*Account, error)
	HasKey(ctx context.Context, accountID, key string) (bool, error)
	ListKeys(ctx context.Context, accountID string) ([]AuthorizedKey, error)
	// EnsureAccount creates the account with initialCredits unless it exists,
	// and reports whether it was created.
	EnsureAccount(ctx context.Context, accountID string, initialCredits int) (bool, error)
	AddKey(ctx context.Context, key AuthorizedKey) error
	RemoveKey(ctx context.Context, accountID, key string) (bool, error)
	// ApplyDebit subtracts rec.Cost and appends rec, provided the account is
	// still at version. It returns ErrVersionConflict otherwise.
	ApplyDebit(ctx context.Context, version int64, rec UsageRecord) error
	// ApplyFunding adds rec.Credits and rec.Amount and appends rec, provided
	// the account is still at version. It returns ErrVersionConflict otherwise.
	ApplyFunding(ctx context.Context, version int64, rec FundingRecord) error
	ListUsage(ctx context.Context, accountID string) ([]UsageRecord, error)
	ListFunding(ctx context.Context, accountID string) ([]FundingRecord, error)
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

func (r *DBRepository) FindAccount(ctx context.Context, accountID string) (*Account, error) {
	var a Account
	err := r.db.GetContext(ctx, &a,
		"SELECT account_id, credits_left, credits_used, usage_total, funding_total, version, created_at, updated_at FROM accounts WHERE account_id = ?",
		accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &a, nil
}

func (r *DBRepository) HasKey(ctx context.Context, accountID, key string) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n,
		"SELECT COUNT(*) FROM account_keys WHERE account_id = ? AND authorized_key = ?",
		accountID, key); err != nil {
		return false, fmt.Errorf("check authorized key: %w", err)
	}
	return n > 0, nil
}

func (r *DBRepository) ListKeys(ctx context.Context, accountID string) ([]AuthorizedKey, error) {
	var keys []AuthorizedKey
	if err := r.db.SelectContext(ctx, &keys,
		"SELECT account_id, authorized_key, client_type, created_at FROM account_keys WHERE account_id = ? ORDER BY created_at",
		accountID); err != nil {
		return nil, fmt.Errorf("list authorized keys: %w", err)
	}
	return keys, nil
}

func (r *DBRepository) EnsureAccount(ctx context.Context, accountID string, initialCredits int) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT IGNORE INTO accounts (account_id, credits_left) VALUES (?, ?)",
		accountID, initialCredits)
	if err != nil {
		return false, fmt.Errorf("ensure account: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ensure account rows affected: %w", err)
	}
	return n == 1, nil
}

func (r *DBRepository) AddKey(ctx context.Context, key AuthorizedKey) error {
	if _, err := r.db.NamedExecContext(ctx,
		"INSERT IGNORE INTO account_keys (account_id, authorized_key, client_type) VALUES (:account_id, :authorized_key, :client_type)",
		key); err != nil {
		return fmt.Errorf("add authorized key: %w", err)
	}
	return nil
}

func (r *DBRepository) RemoveKey(ctx context.Context, accountID, key string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM account_keys WHERE account_id = ? AND authorized_key = ?",
		accountID, key)
	if err != nil {
		return false, fmt.Errorf("remove authorized key: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove authorized key rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *DBRepository) ApplyDebit(ctx context.Context, version int64, rec UsageRecord) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		// credits_left >= cost keeps the balance non-negative even if the
		// caller's sufficiency check was made on a stale read.
		result, err := tx.ExecContext(ctx,
			"UPDATE accounts SET credits_left = credits_left - ?, credits_used = credits_used + ?, usage_total = usage_total + 1, version = version + 1 WHERE account_id = ? AND version = ? AND credits_left >= ?",
			rec.Cost, rec.Cost, rec.AccountID, version, rec.Cost)
		if err != nil {
			return fmt.Errorf("debit account: %w", err)
		}
		if err := expectOneRow(result); err != nil {
			return err
		}
		if _, err := tx.NamedExecContext(ctx,
			"INSERT INTO usage_history (account_id, used_at, resource, cost) VALUES (:account_id, :used_at, :resource, :cost)",
			rec); err != nil {
			return fmt.Errorf("insert usage history: %w", err)
		}
		return nil
	})
}

func (r *DBRepository) ApplyFunding(ctx context.Context, version int64, rec FundingRecord) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			"UPDATE accounts SET credits_left = credits_left + ?, funding_total = funding_total + ?, version = version + 1 WHERE account_id = ? AND version = ?",
			rec.Credits, rec.Amount, rec.AccountID, version)
		if err != nil {
			return fmt.Errorf("fund account: %w", err)
		}
		if err := expectOneRow(result); err != nil {
			return err
		}
		if _, err := tx.NamedExecContext(ctx,
			"INSERT INTO funding_history (account_id, funded_at, amount, credits) VALUES (:account_id, :funded_at, :amount, :credits)",
			rec); err != nil {
			return fmt.Errorf("insert funding history: %w", err)
		}
		return nil
	})
}

func (r *DBRepository) ListUsage(ctx context.Context, accountID string) ([]UsageRecord, error) {
	var records []UsageRecord
	if err := r.db.SelectContext(ctx, &records,
		"SELECT id, account_id, used_at, resource, cost FROM usage_history WHERE account_id = ? ORDER BY id",
		accountID); err != nil {
		return nil, fmt.Errorf("list usage history: %w", err)
	}
	return records, nil
}

func (r *DBRepository) ListFunding(ctx context.Context, accountID string) ([]FundingRecord, error) {
	var records []FundingRecord
	if err := r.db.SelectContext(ctx, &records,
		"SELECT id, account_id, funded_at, amount, credits FROM funding_history WHERE account_id = ? ORDER BY id",
		accountID); err != nil {
		return nil, fmt.Errorf("list funding history: %w", err)
	}
	return records, nil
}

func expectOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrVersionConflict
	}
	return nil
}
