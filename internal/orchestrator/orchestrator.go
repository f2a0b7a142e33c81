// Package orchestrator decides, for each transcript request, whether to serve
// the cache, translate a cached transcript, or hand out a ticket for an image.
package orchestrator

import (
	"context"
	"errors"
	"log/slog"

	"github.com/designemotion/transcript/internal/apperr"
	"github.com/designemotion/transcript/internal/config"
	"github.com/designemotion/transcript/internal/inference"
	"github.com/designemotion/transcript/internal/ledger"
	"github.com/designemotion/transcript/internal/metrics"
	"github.com/designemotion/transcript/internal/ticket"
	"github.com/designemotion/transcript/internal/transcript"
)

//go:generate mockgen -source=orchestrator.go -destination=../mocks/orchestrator/mock_orchestrator.go -package=mock_orchestrator

const DefaultLanguage = "en"

type Ledger interface {
	IsAuthorized(ctx context.Context, accountID, key string) (bool, error)
	Debit(ctx context.Context, accountID string, cost int, resource string) (*ledger.Account, error)
}

type TranscriptCache interface {
	Match(ctx context.Context, url, etag string) (*transcript.Entry, error)
	Store(ctx context.Context, url, language, etag, text string) error
}

type TicketStore interface {
	Create(ctx context.Context, url, language, etag string) (string, error)
	Consume(ctx context.Context, id string) (*ticket.Ticket, error)
}

type TranscriptRequest struct {
	AccountID string
	Key       string
	URL       string
	ETag      string
	Language  string
}

// Decision is either a known transcript or the id of the ticket to complete
// with an image.
type Decision struct {
	Known      bool
	Transcript string
	TicketID   string
}

type ImageRequest struct {
	AccountID string
	Key       string
	TicketID  string
	Image     []byte
	// Language is informational. The transcript is written in the language
	// recorded on the ticket.
	Language string
}

type Service struct {
	ledger      Ledger
	cache       TranscriptCache
	tickets     TicketStore
	transcriber inference.Transcriber
	translator  inference.Translator
	debitCost   int
	metrics     *metrics.Metrics
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(
	l Ledger,
	cache TranscriptCache,
	tickets TicketStore,
	transcriber inference.Transcriber,
	translator inference.Translator,
	cfg config.LedgerConfig,
	opts ...Option,
) *Service {
	s := &Service{
		ledger:      l,
		cache:       cache,
		tickets:     tickets,
		transcriber: transcriber,
		translator:  translator,
		debitCost:   cfg.DebitCost,
		metrics:     metrics.New(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestTranscript charges the account and answers from the cache when it
// can. Every request is charged, cache hits included.
func (s *Service) RequestTranscript(ctx context.Context, req TranscriptRequest) (Decision, error) {
	if req.URL == "" {
		return Decision{}, &apperr.InvalidRequestError{Field: "url", Reason: "must not be empty"}
	}
	if req.Language == "" {
		req.Language = DefaultLanguage
	}
	if err := s.authorize(ctx, req.AccountID, req.Key); err != nil {
		return Decision{}, err
	}

	url := transcript.NormalizeURL(req.URL)
	if err := s.debit(ctx, req.AccountID, url); err != nil {
		return Decision{}, err
	}

	entry, err := s.cache.Match(ctx, url, req.ETag)
	if err != nil {
		return Decision{}, err
	}
	if entry != nil {
		if t, ok := entry.Transcripts.Find(req.Language); ok {
			s.metrics.CacheLookups.WithLabelValues(metrics.CacheHit).Inc()
			return Decision{Known: true, Transcript: t.Text}, nil
		}
		if source, ok := entry.Transcripts.First(); ok {
			text, err := s.translate(ctx, url, source, req.Language, entry.ETagValue())
			if err != nil {
				return Decision{}, err
			}
			s.metrics.CacheLookups.WithLabelValues(metrics.CacheTranslated).Inc()
			return Decision{Known: true, Transcript: text}, nil
		}
	}

	s.metrics.CacheLookups.WithLabelValues(metrics.CacheMiss).Inc()
	id, err := s.tickets.Create(ctx, url, req.Language, req.ETag)
	if err != nil {
		return Decision{}, err
	}
	s.metrics.TicketsCreated.Inc()
	return Decision{TicketID: id}, nil
}

// CompleteTranscriptWithImage transcribes the image of a ticketed page and
// caches the result. A model failure is returned as is; no other model is tried.
func (s *Service) CompleteTranscriptWithImage(ctx context.Context, req ImageRequest) (string, error) {
	if req.TicketID == "" {
		return "", &apperr.InvalidRequestError{Field: "ticket_id", Reason: "must not be empty"}
	}
	if len(req.Image) == 0 {
		return "", &apperr.InvalidRequestError{Field: "image", Reason: "must not be empty"}
	}
	if err := s.authorize(ctx, req.AccountID, req.Key); err != nil {
		return "", err
	}

	t, err := s.tickets.Consume(ctx, req.TicketID)
	if err != nil {
		return "", err
	}
	if t == nil {
		s.metrics.TicketsConsumed.WithLabelValues("missing").Inc()
		return "", &apperr.TicketNotFoundError{TicketID: req.TicketID}
	}
	s.metrics.TicketsConsumed.WithLabelValues("consumed").Inc()

	text, err := s.transcriber.Transcribe(ctx, req.Image, t.Language)
	s.metrics.ModelCalls.WithLabelValues("transcript", metrics.Outcome(err)).Inc()
	if err != nil {
		return "", apperr.ModelError("transcribe "+t.URL, err)
	}

	if err := s.cache.Store(ctx, t.URL, t.Language, t.ETagValue(), text); err != nil {
		return "", err
	}
	slog.Default().Info("transcript generated",
		"url", t.URL,
		"lang", t.Language,
		"ticket_id", req.TicketID,
	)
	return text, nil
}

func (s *Service) authorize(ctx context.Context, accountID, key string) error {
	ok, err := s.ledger.IsAuthorized(ctx, accountID, key)
	if err != nil {
		return err
	}
	if !ok {
		return &apperr.InvalidAuthorizationError{AccountID: accountID}
	}
	return nil
}

func (s *Service) debit(ctx context.Context, accountID, url string) error {
	_, err := s.ledger.Debit(ctx, accountID, s.debitCost, url)
	if err != nil {
		var insufficient *apperr.InsufficientCreditError
		if errors.As(err, &insufficient) {
			s.metrics.Debits.WithLabelValues("insufficient").Inc()
		} else {
			s.metrics.Debits.WithLabelValues("error").Inc()
		}
		return err
	}
	s.metrics.Debits.WithLabelValues("charged").Inc()
	return nil
}

// translate renders source in language and caches it under etag. The cache
// is not touched when the model fails.
//
// Callers pass the etag of the entry the source came from, not the request
// etag. A request without an etag matches any entry, and storing under an
// empty etag would replace that entry and drop its other languages.
func (s *Service) translate(ctx context.Context, url string, source transcript.Transcript, language, etag string) (string, error) {
	text, err := s.translator.Translate(ctx, source.Text, source.Language, language)
	s.metrics.ModelCalls.WithLabelValues("translate", metrics.Outcome(err)).Inc()
	if err != nil {
		return "", apperr.ModelError("translate "+url, err)
	}
	if err := s.cache.Store(ctx, url, language, etag, text); err != nil {
		return "", err
	}
	return text, nil
}
