// Package ticket bridges the transcript request and the image submission that completes it.
package ticket

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/designemotion/transcript/internal/kvstore"
)

const keyPrefix = "urlinfo_cache:"

// Ticket holds the parameters of a pending transcription.
type Ticket struct {
	URL      string  `json:"url"`
	Language string  `json:"lang"`
	ETag     *string `json:"etag"`
}

// ETagValue returns the etag, or "" when the page had none.
func (t Ticket) ETagValue() string {
	if t.ETag == nil {
		return ""
	}
	return *t.ETag
}

// Store keeps single-use tickets with a short expiry.
type Store struct {
	store kvstore.Store
	ttl   time.Duration
}

func NewStore(store kvstore.Store, ttl time.Duration) *Store {
	return &Store{store: store, ttl: ttl}
}

// ID derives the ticket id from the normalized URL. Concurrent requests for
// the same page therefore share a ticket.
func ID(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Create writes the ticket for url and returns its id. An existing ticket for
// the same url is overwritten.
func (s *Store) Create(ctx context.Context, url, language, etag string) (string, error) {
	t := Ticket{URL: url, Language: language}
	if etag != "" {
		t.ETag = &etag
	}
	raw, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("json.Marshal > %w", err)
	}

	id := ID(url)
	if err := s.store.Set(ctx, keyPrefix+id, raw, s.ttl); err != nil {
		return "", fmt.Errorf("Create(%s) > %w", url, err)
	}
	return id, nil
}

// Consume atomically reads and deletes the ticket. It returns nil when the
// ticket expired or was already consumed.
func (s *Store) Consume(ctx context.Context, id string) (*Ticket, error) {
	raw, found, err := s.store.GetDel(ctx, keyPrefix+id)
	if err != nil {
		return nil, fmt.Errorf("Consume(%s) > %w", id, err)
	}
	if !found {
		return nil, nil
	}
	var t Ticket
	if err := json.Unmarshal(raw, &t); err != nil {
		slog.Default().Warn("discarding undecodable ticket", "ticket_id", id, "error", err)
		return nil, nil
	}
	return &t, nil
}
