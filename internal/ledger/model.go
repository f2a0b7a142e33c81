// Package ledger keeps the durable credit balance of each account.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the durable balance of one account, identified by e-mail.
// Version increases on every balance change and guards concurrent updates.
type Account struct {
	AccountID    string          `db:"account_id"`
	CreditsLeft  int             `db:"credits_left"`
	CreditsUsed  int             `db:"credits_used"`
	UsageTotal   int             `db:"usage_total"`
	FundingTotal decimal.Decimal `db:"funding_total"`
	Version      int64           `db:"version"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

// CreditsTotal is every credit the account has ever held.
func (a Account) CreditsTotal() int {
	return a.CreditsLeft + a.CreditsUsed
}

// AuthorizedKey binds a client key to an account.
type AuthorizedKey struct {
	AccountID  string    `db:"account_id"`
	Key        string    `db:"authorized_key"`
	ClientType string    `db:"client_type"`
	CreatedAt  time.Time `db:"created_at"`
}

type UsageRecord struct {
	ID        int64     `db:"id"`
	AccountID string    `db:"account_id"`
	UsedAt    time.Time `db:"used_at"`
	Resource  string    `db:"resource"`
	Cost      int       `db:"cost"`
}

type FundingRecord struct {
	ID        int64           `db:"id"`
	AccountID string          `db:"account_id"`
	FundedAt  time.Time       `db:"funded_at"`
	Amount    decimal.Decimal `db:"amount"`
	Credits   int             `db:"credits"`
}
