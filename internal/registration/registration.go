// Package registration binds client keys to accounts after the owner of the
// e-mail address confirms it.
package registration

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/designemotion/transcript/internal/apperr"
	"github.com/designemotion/transcript/internal/kvstore"
)

//go:generate mockgen -source=registration.go -destination=../mocks/registration/mock_registration.go -package=mock_registration

const keyPrefix = "email_validation_key:"

// Notifier delivers the validation link.
type Notifier interface {
	SendValidation(ctx context.Context, email, tool, validationKey string) error
}

// Authorizer binds a key to an account.
type Authorizer interface {
	Authorize(ctx context.Context, accountID, key, clientType string) error
}

// Validation is a pending e-mail confirmation.
type Validation struct {
	Email string `json:"email"`
	Key   string `json:"key"`
	Tool  string `json:"tool"`
}

type Service struct {
	store      kvstore.Store
	ttl        time.Duration
	notifier   Notifier
	authorizer Authorizer
	newKey     func() string
}

type Option func(*Service)

// WithKeyGenerator replaces the random validation key generator.
func WithKeyGenerator(newKey func() string) Option {
	return func(s *Service) { s.newKey = newKey }
}

func NewService(store kvstore.Store, ttl time.Duration, notifier Notifier, authorizer Authorizer, opts ...Option) *Service {
	s := &Service{
		store:      store,
		ttl:        ttl,
		notifier:   notifier,
		authorizer: authorizer,
		newKey:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue records a validation for (email, key, tool) and mails its link.
// Delivery is best effort: a failure is logged and the validation stays usable.
func (s *Service) Issue(ctx context.Context, email, key, tool string) (string, error) {
	if email == "" {
		return "", &apperr.InvalidRequestError{Field: "email", Reason: "must not be empty"}
	}
	if key == "" {
		return "", &apperr.InvalidRequestError{Field: "key", Reason: "must not be empty"}
	}

	raw, err := json.Marshal(Validation{Email: email, Key: key, Tool: tool})
	if err != nil {
		return "", fmt.Errorf("json.Marshal > %w", err)
	}
	validationKey := s.newKey()
	if err := s.store.Set(ctx, keyPrefix+validationKey, raw, s.ttl); err != nil {
		return "", err
	}

	if err := s.notifier.SendValidation(ctx, email, tool, validationKey); err != nil {
		slog.Default().Error("failed to send validation mail",
			"email", email,
			"error", err,
		)
	}
	return validationKey, nil
}

// Redeem authorizes the key recorded under validationKey. The validation is
// kept until it expires, so following the link twice is harmless.
func (s *Service) Redeem(ctx context.Context, validationKey string) (*Validation, error) {
	if validationKey == "" {
		return nil, &apperr.InvalidValidationTicketError{ValidationKey: validationKey}
	}

	raw, ok, err := s.store.Get(ctx, keyPrefix+validationKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &apperr.InvalidValidationTicketError{ValidationKey: validationKey}
	}

	var v Validation
	if err := json.Unmarshal(raw, &v); err != nil || v.Email == "" || v.Key == "" {
		slog.Default().Warn("discarding unreadable validation",
			"validation_key", validationKey,
			"error", err,
		)
		return nil, &apperr.InvalidValidationTicketError{ValidationKey: validationKey}
	}

	if err := s.authorizer.Authorize(ctx, v.Email, v.Key, v.Tool); err != nil {
		return nil, err
	}
	slog.Default().Info("key registered", "email", v.Email, "tool", v.Tool)
	return &v, nil
}
