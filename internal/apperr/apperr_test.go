package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Tag
	}{
		{
			name: "insufficient credit",
			err:  &InsufficientCreditError{Needed: 1, Left: 0},
			want: TagInsufficientCredit,
		},
		{
			name: "wrapped business error",
			err:  fmt.Errorf("debit: %w", &InvalidAuthorizationError{AccountID: "a@example.com"}),
			want: TagInvalidAuthorization,
		},
		{
			name: "store unavailable",
			err:  StoreUnavailable("get transcript_cache:x", errors.New("dial tcp: connection refused")),
			want: TagStoreUnavailable,
		},
		{
			name: "wrapped model error",
			err:  fmt.Errorf("complete: %w", ModelError("transcribe", errors.New("response error 500"))),
			want: TagModelError,
		},
		{
			name: "unclassified",
			err:  errors.New("boom"),
			want: TagInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TagOf(tt.err))
		})
	}
}

func TestInsufficientCreditError(t *testing.T) {
	err := &InsufficientCreditError{Needed: 5, Left: 2}

	assert.Equal(t, "not enough credits: 5 needed but 2 left", err.Error())
	assert.Equal(t, []string{"5", "2"}, err.Args())
	assert.Equal(t, 3, err.Shortfall())
	assert.True(t, IsBusiness(err))
}

func TestInfraError_Unwrap(t *testing.T) {
	cause := errors.New("i/o timeout")
	err := StoreUnavailable("set iplog:1.2.3.4", cause)

	assert.ErrorIs(t, err, cause)
	assert.False(t, IsBusiness(err))
	assert.Contains(t, err.Error(), "store_unavailable")
}
