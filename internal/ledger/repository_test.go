package ledger

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*DBRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewDBRepository(sqlx.NewDb(db, "mysql")), mock
}

var accountColumns = []string{
	"account_id", "credits_left", "credits_used", "usage_total", "funding_total", "version", "created_at", "updated_at",
}

func TestDBRepository_FindAccount(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      *Account
		wantErr   bool
	}{
		{
			name: "returns the account",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT account_id, credits_left, .* FROM accounts WHERE account_id = \\?").
					WithArgs("a@example.com").
					WillReturnRows(sqlmock.NewRows(accountColumns).
						AddRow("a@example.com", 4, 6, 6, "15.50", 12, now, now))
			},
			want: &Account{
				AccountID:    "a@example.com",
				CreditsLeft:  4,
				CreditsUsed:  6,
				UsageTotal:   6,
				FundingTotal: decimal.RequireFromString("15.50"),
				Version:      12,
				CreatedAt:    now,
				UpdatedAt:    now,
			},
		},
		{
			name: "missing account is nil",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT account_id, credits_left, .* FROM accounts").
					WithArgs("a@example.com").
					WillReturnRows(sqlmock.NewRows(accountColumns))
			},
			want: nil,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT account_id, credits_left, .* FROM accounts").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			got, err := repo.FindAccount(context.Background(), "a@example.com")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				if tt.want == nil {
					assert.Nil(t, got)
				} else {
					require.NotNil(t, got)
					assert.True(t, tt.want.FundingTotal.Equal(got.FundingTotal))
					got.FundingTotal = tt.want.FundingTotal
					assert.Equal(t, tt.want, got)
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_EnsureAccount(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "inserted", affected: 1, want: true},
		{name: "already present", affected: 0, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			mock.ExpectExec(regexp.QuoteMeta("INSERT IGNORE INTO accounts (account_id, credits_left) VALUES (?, ?)")).
				WithArgs("a@example.com", 2).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			got, err := repo.EnsureAccount(context.Background(), "a@example.com", 2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_Keys(t *testing.T) {
	repo, mock := newMockRepository(t)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("INSERT IGNORE INTO account_keys (account_id, authorized_key, client_type) VALUES (?, ?, ?)")).
		WithArgs("a@example.com", "k-1", "chrome").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM account_keys WHERE account_id = ? AND authorized_key = ?")).
		WithArgs("a@example.com", "k-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM account_keys WHERE account_id = ? AND authorized_key = ?")).
		WithArgs("a@example.com", "k-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM account_keys")).
		WithArgs("a@example.com", "k-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.AddKey(ctx, AuthorizedKey{AccountID: "a@example.com", Key: "k-1", ClientType: "chrome"}))

	ok, err := repo.HasKey(ctx, "a@example.com", "k-1")
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err := repo.RemoveKey(ctx, "a@example.com", "k-1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.RemoveKey(ctx, "a@example.com", "k-1")
	require.NoError(t, err)
	assert.False(t, removed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_ApplyDebit(t *testing.T) {
	usedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	rec := UsageRecord{AccountID: "a@example.com", UsedAt: usedAt, Resource: "https://example.com/", Cost: 1}

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
		errMsg    string
	}{
		{
			name: "updates and appends history",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE accounts SET credits_left = credits_left - \\?.* WHERE account_id = \\? AND version = \\? AND credits_left >= \\?").
					WithArgs(1, 1, "a@example.com", int64(7), 1).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO usage_history (account_id, used_at, resource, cost) VALUES (?, ?, ?, ?)")).
					WithArgs("a@example.com", usedAt, "https://example.com/", 1).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "stale version rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE accounts SET credits_left = credits_left - \\?").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			wantErr: ErrVersionConflict,
		},
		{
			name: "history insert failure rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE accounts SET credits_left = credits_left - \\?").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO usage_history").
					WillReturnError(fmt.Errorf("disk full"))
				mock.ExpectRollback()
			},
			errMsg: "insert usage history",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			err := repo.ApplyDebit(context.Background(), 7, rec)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_ApplyFunding(t *testing.T) {
	fundedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	amount := decimal.RequireFromString("12.5")
	rec := FundingRecord{AccountID: "a@example.com", FundedAt: fundedAt, Amount: amount, Credits: 25}

	repo, mock := newMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE accounts SET credits_left = credits_left \\+ \\?, funding_total = funding_total \\+ \\?").
		WithArgs(25, "12.5", "a@example.com", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO funding_history (account_id, funded_at, amount, credits) VALUES (?, ?, ?, ?)")).
		WithArgs("a@example.com", fundedAt, "12.5", 25).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ApplyFunding(context.Background(), 3, rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_History(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	repo, mock := newMockRepository(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT id, account_id, used_at, resource, cost FROM usage_history WHERE account_id = \\? ORDER BY id").
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "used_at", "resource", "cost"}).
			AddRow(1, "a@example.com", at, "https://a.example/", 1).
			AddRow(2, "a@example.com", at, "https://b.example/", 1))
	mock.ExpectQuery("SELECT id, account_id, funded_at, amount, credits FROM funding_history WHERE account_id = \\? ORDER BY id").
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "funded_at", "amount", "credits"}).
			AddRow(1, "a@example.com", at, "9.99", 20))

	usage, err := repo.ListUsage(ctx, "a@example.com")
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, "https://b.example/", usage[1].Resource)

	funding, err := repo.ListFunding(ctx, "a@example.com")
	require.NoError(t, err)
	require.Len(t, funding, 1)
	assert.Equal(t, "9.99", funding[0].Amount.String())
	assert.Equal(t, 20, funding[0].Credits)

	assert.NoError(t, mock.ExpectationsWereMet())
}
