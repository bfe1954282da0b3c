// Package errors defines the domain error taxonomy shared by all ledger
// operations. Every failure carries a stable machine-readable code so
// callers can branch on the reason without parsing message text.
package errors

import "fmt"

// Kind groups domain errors into the four failure classes of the ledger.
type Kind string

const (
	KindValidation Kind = "validation"
	KindAuth       Kind = "auth"
	KindState      Kind = "state"
	KindExternal   Kind = "external"
)

// DomainError is the error type returned by every ledger operation.
type DomainError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on kind and code, so wrapped instances compare equal to the
// package sentinels under errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Code == e.Code
}

// Wrap returns a copy of the sentinel carrying an underlying cause.
func Wrap(sentinel *DomainError, err error) *DomainError {
	return &DomainError{
		Kind:    sentinel.Kind,
		Code:    sentinel.Code,
		Message: sentinel.Message,
		Err:     err,
	}
}
