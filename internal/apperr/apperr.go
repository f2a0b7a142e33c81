// Package apperr defines the error taxonomy shared by the transcript service.
//
// Business errors are recoverable by the client (buy credits, validate an
// e-mail, wait) and are rendered as localized messages. Infrastructure errors
// are not recoverable within a request and are reported generically.
package apperr

import (
	"errors"
	"fmt"
	"strconv"
)

// Tag is the stable machine-readable identifier of an error variant.
type Tag string

const (
	TagInsufficientCredit      Tag = "insufficient_credit"
	TagInvalidAuthorization    Tag = "invalid_authorization"
	TagRateLimited             Tag = "rate_limited"
	TagInvalidValidationTicket Tag = "invalid_validation_ticket"
	TagTicketNotFound          Tag = "ticket_not_found"
	TagInvalidRequest          Tag = "invalid_request"

	TagStoreUnavailable Tag = "store_unavailable"
	TagModelError       Tag = "model_error"
	TagRenderError      Tag = "render_error"
	TagInternal         Tag = "internal_error"
)

// BusinessError is implemented by every client-recoverable error.
// Args returns the values substituted into the localized message, in order.
type BusinessError interface {
	error
	Tag() Tag
	Args() []string
}

// InsufficientCreditError is returned when a debit exceeds the balance.
type InsufficientCreditError struct {
	Needed int
	Left   int
}

func (e *InsufficientCreditError) Error() string {
	return fmt.Sprintf("not enough credits: %d needed but %d left", e.Needed, e.Left)
}

func (e *InsufficientCreditError) Tag() Tag { return TagInsufficientCredit }

func (e *InsufficientCreditError) Args() []string {
	return []string{strconv.Itoa(e.Needed), strconv.Itoa(e.Left)}
}

// Shortfall is the number of credits missing to cover the debit.
func (e *InsufficientCreditError) Shortfall() int {
	return e.Needed - e.Left
}

// InvalidAuthorizationError is returned when a key is not bound to the account.
type InvalidAuthorizationError struct {
	AccountID string
}

func (e *InvalidAuthorizationError) Error() string {
	return fmt.Sprintf("key is not authorized for account %q", e.AccountID)
}

func (e *InvalidAuthorizationError) Tag() Tag { return TagInvalidAuthorization }

func (e *InvalidAuthorizationError) Args() []string { return []string{e.AccountID} }

// RateLimitedError is returned when a client identifier is throttled.
type RateLimitedError struct {
	Identifier string
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("too many requests from %s", e.Identifier)
}

func (e *RateLimitedError) Tag() Tag { return TagRateLimited }

func (e *RateLimitedError) Args() []string { return nil }

// InvalidValidationTicketError is returned when an e-mail validation key is unknown or expired.
type InvalidValidationTicketError struct {
	ValidationKey string
}

func (e *InvalidValidationTicketError) Error() string {
	return fmt.Sprintf("validation key %q is invalid or expired", e.ValidationKey)
}

func (e *InvalidValidationTicketError) Tag() Tag { return TagInvalidValidationTicket }

func (e *InvalidValidationTicketError) Args() []string { return nil }

// TicketNotFoundError is returned when an image is submitted for a ticket
// that expired or was already consumed. The client should request a new ticket.
type TicketNotFoundError struct {
	TicketID string
}

func (e *TicketNotFoundError) Error() string {
	return fmt.Sprintf("ticket %q not found", e.TicketID)
}

func (e *TicketNotFoundError) Tag() Tag { return TagTicketNotFound }

func (e *TicketNotFoundError) Args() []string { return nil }

// InvalidRequestError is returned for malformed client input.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidRequestError) Tag() Tag { return TagInvalidRequest }

func (e *InvalidRequestError) Args() []string { return []string{e.Field, e.Reason} }

// InfraError wraps a failure of a shared service or external collaborator.
type InfraError struct {
	Kind Tag
	Op   string
	Err  error
}

func (e *InfraError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *InfraError) Unwrap() error { return e.Err }

// StoreUnavailable wraps a KV or account store failure.
func StoreUnavailable(op string, err error) error {
	return &InfraError{Kind: TagStoreUnavailable, Op: op, Err: err}
}

// ModelError wraps a transcription or translation model failure.
func ModelError(op string, err error) error {
	return &InfraError{Kind: TagModelError, Op: op, Err: err}
}

// AsBusiness reports whether err carries a business error and returns it.
func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// IsBusiness reports whether err carries a business error.
func IsBusiness(err error) bool {
	_, ok := AsBusiness(err)
	return ok
}

// TagOf returns the tag of err, or TagInternal when err is unclassified.
func TagOf(err error) Tag {
	if be, ok := AsBusiness(err); ok {
		return be.Tag()
	}
	var ie *InfraError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return TagInternal
}
