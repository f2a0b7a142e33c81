package i18n

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/designemotion/transcript/internal/apperr"
)

func TestLocalizer_Message(t *testing.T) {
	l, err := New()
	require.NoError(t, err)

	tests := []struct {
		name     string
		err      error
		language string
		want     string
	}{
		{
			name:     "insufficient credit in english",
			err:      &apperr.InsufficientCreditError{Needed: 1, Left: 0},
			language: "en",
			want:     "Not enough credits: 1 needed but 0 left.",
		},
		{
			name:     "insufficient credit in french",
			err:      &apperr.InsufficientCreditError{Needed: 1, Left: 0},
			language: "fr",
			want:     "Crédits insuffisants : 1 nécessaire(s) mais 0 restant(s).",
		},
		{
			name:     "region subtag is ignored",
			err:      &apperr.InvalidAuthorizationError{AccountID: "a@example.com"},
			language: "es-MX",
			want:     "Tu correo a@example.com no ha sido confirmado ni asociado a la herramienta que utilizas.",
		},
		{
			name:     "wrapped business error",
			err:      fmt.Errorf("request transcript: %w", &apperr.TicketNotFoundError{TicketID: "abc"}),
			language: "de",
			want:     "Deine Anfrage ist abgelaufen. Bitte versuche es erneut.",
		},
		{
			name:     "unsupported language falls back to english",
			err:      &apperr.RateLimitedError{Identifier: "203.0.113.9"},
			language: "ja",
			want:     "Too many requests. Please wait before sending another image.",
		},
		{
			name:     "message missing from a catalog falls back to english",
			err:      &apperr.InvalidRequestError{Field: "url", Reason: "must not be empty"},
			language: "de",
			want:     "Invalid url: must not be empty.",
		},
		{
			name:     "infrastructure detail is not exposed",
			err:      apperr.StoreUnavailable("debit", errors.New("dial tcp 10.0.0.3:3306: connection refused")),
			language: "en",
			want:     "The service is temporarily unavailable. Please try again later.",
		},
		{
			name:     "model error",
			err:      apperr.ModelError("transcribe", errors.New("response error 500")),
			language: "fr",
			want:     "La transcription n'a pas pu être générée. Veuillez réessayer plus tard.",
		},
		{
			name:     "unclassified error",
			err:      errors.New("boom"),
			language: "",
			want:     "An internal error occurred. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Message(tt.err, tt.language))
		})
	}
}

func TestLocalizer_Text(t *testing.T) {
	l, err := New()
	require.NoError(t, err)

	assert.Equal(t, "Email a@example.com has been registered.", l.Text(MsgKeyRegistered, "en", "a@example.com"))
	assert.Equal(t, "Un email de validation a été envoyé à a@example.com.", l.Text(MsgValidationMailSent, "FR", "a@example.com"))
	assert.Equal(t, "Email  has been registered.", l.Text(MsgKeyRegistered, "en"))
	assert.Equal(t, "no_such_message", l.Text("no_such_message", "fr"))
}

func TestLocalizer_Languages(t *testing.T) {
	l, err := New()
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "en", "es", "fr"}, l.Languages())
}

func TestCatalogsCoverEveryTag(t *testing.T) {
	l, err := New()
	require.NoError(t, err)

	tags := []apperr.Tag{
		apperr.TagInsufficientCredit,
		apperr.TagInvalidAuthorization,
		apperr.TagRateLimited,
		apperr.TagInvalidValidationTicket,
		apperr.TagTicketNotFound,
		apperr.TagInvalidRequest,
		apperr.TagStoreUnavailable,
		apperr.TagModelError,
		apperr.TagRenderError,
		apperr.TagInternal,
	}
	for _, tag := range tags {
		_, ok := l.arity[DefaultLanguage][string(tag)]
		assert.True(t, ok, "english catalog lacks %s", tag)
	}
}
