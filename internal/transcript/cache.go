package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/designemotion/transcript/internal/kvstore"
)

const keyPrefix = "transcript_cache:"

// Cache stores one Entry per normalized URL.
//
// A lookup with an etag only matches an entry stored under that same etag. A
// store under a different etag replaces the whole entry, because the etag
// stands for the page version of every cached language.
type Cache struct {
	store kvstore.Store
	ttl   time.Duration
}

func NewCache(store kvstore.Store, ttl time.Duration) *Cache {
	return &Cache{store: store, ttl: ttl}
}

func cacheKey(url string) string {
	return keyPrefix + url
}

// Lookup returns the cached transcripts of url, or nil when there is no entry
// or its etag does not match. An empty etag matches any entry.
func (c *Cache) Lookup(ctx context.Context, url, etag string) (Transcripts, error) {
	entry, err := c.Match(ctx, url, etag)
	if err != nil || entry == nil {
		return nil, err
	}
	return entry.Transcripts, nil
}

// Match is Lookup returning the whole entry, so callers that write back can
// reuse the etag the entry was stored under.
func (c *Cache) Match(ctx context.Context, url, etag string) (*Entry, error) {
	entry, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("Lookup(%s) > %w", url, err)
	}
	if entry == nil {
		return nil, nil
	}
	if etag != "" && entry.ETagValue() != etag {
		return nil, nil
	}
	return entry, nil
}

// Store records text for language. The TTL restarts on every write.
func (c *Cache) Store(ctx context.Context, url, language, etag, text string) error {
	entry, err := c.get(ctx, url)
	if err != nil {
		return fmt.Errorf("Store(%s) > %w", url, err)
	}

	t := Transcript{Language: language, Text: text}
	if entry != nil && entry.ETagValue() == etag {
		entry.Transcripts = entry.Transcripts.Upsert(t)
	} else {
		entry = &Entry{ETag: optionalETag(etag), Transcripts: Transcripts{t}}
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("json.Marshal > %w", err)
	}
	if err := c.store.Set(ctx, cacheKey(url), raw, c.ttl); err != nil {
		return fmt.Errorf("Store(%s) > %w", url, err)
	}
	return nil
}

// Entry returns the raw entry for url without etag matching.
func (c *Cache) Entry(ctx context.Context, url string) (*Entry, error) {
	entry, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("Entry(%s) > %w", url, err)
	}
	return entry, nil
}

// URLs lists the pages currently cached.
func (c *Cache) URLs(ctx context.Context) ([]string, error) {
	keys, err := c.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("URLs() > %w", err)
	}
	urls := make([]string, 0, len(keys))
	for _, k := range keys {
		urls = append(urls, strings.TrimPrefix(k, keyPrefix))
	}
	return urls, nil
}

// Remove drops the entry of url.
func (c *Cache) Remove(ctx context.Context, url string) error {
	if err := c.store.Delete(ctx, cacheKey(url)); err != nil {
		return fmt.Errorf("Remove(%s) > %w", url, err)
	}
	return nil
}

// Clear drops every cached entry and returns how many were removed.
// Keys of other components sharing the store are left untouched.
func (c *Cache) Clear(ctx context.Context) (int, error) {
	urls, err := c.URLs(ctx)
	if err != nil {
		return 0, err
	}
	for _, url := range urls {
		if err := c.Remove(ctx, url); err != nil {
			return 0, err
		}
	}
	return len(urls), nil
}

// get returns nil for a missing entry. A payload that cannot be decoded is
// logged and treated as missing, so the next store overwrites it.
func (c *Cache) get(ctx context.Context, url string) (*Entry, error) {
	raw, found, err := c.store.Get(ctx, cacheKey(url))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		slog.Default().Warn("discarding undecodable transcript cache entry",
			"url", url,
			"error", err,
		)
		return nil, nil
	}
	return &entry, nil
}
