// Package transcript caches generated transcripts per page and language.
package transcript

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Transcript is the text generated for one language. It is serialized as a
// two-element array so that entries keep their insertion order.
type Transcript struct {
	Language string
	Text     string
}

func (t Transcript) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{t.Language, t.Text})
}

func (t *Transcript) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("transcript pair has %d elements", len(pair))
	}
	t.Language, t.Text = pair[0], pair[1]
	return nil
}

// Transcripts holds at most one transcript per language, in insertion order.
type Transcripts []Transcript

// Find returns the transcript written in language.
func (ts Transcripts) Find(language string) (Transcript, bool) {
	for _, t := range ts {
		if t.Language == language {
			return t, true
		}
	}
	return Transcript{}, false
}

// First returns the earliest inserted transcript, which is the source for
// translations into languages that are not cached yet.
func (ts Transcripts) First() (Transcript, bool) {
	if len(ts) == 0 {
		return Transcript{}, false
	}
	return ts[0], true
}

// Upsert replaces the transcript of the same language in place, or appends it.
func (ts Transcripts) Upsert(t Transcript) Transcripts {
	for i := range ts {
		if ts[i].Language == t.Language {
			ts[i].Text = t.Text
			return ts
		}
	}
	return append(ts, t)
}

func (ts Transcripts) Languages() []string {
	langs := make([]string, 0, len(ts))
	for _, t := range ts {
		langs = append(langs, t.Language)
	}
	return langs
}

// Entry is the cached record of one page. ETag is nil when the page was
// transcribed without a fingerprint.
type Entry struct {
	ETag        *string     `json:"etag"`
	Transcripts Transcripts `json:"transcripts"`
}

// ETagValue returns the etag, or "" when the entry has none.
func (e Entry) ETagValue() string {
	if e.ETag == nil {
		return ""
	}
	return *e.ETag
}

// NormalizeURL strips the query string, so every variant of a page shares one entry.
func NormalizeURL(url string) string {
	if i := strings.IndexByte(url, '?'); i >= 0 {
		return url[:i]
	}
	return url
}

func optionalETag(etag string) *string {
	if etag == "" {
		return nil
	}
	return &etag
}
