package apierr

import (
	"fmt"
	"net/http"
)

const (
	CodeNotFound           = "not_found"
	CodeInvalidReference   = "invalid_reference"
	CodeIdentifierConflict = "identifier_conflict"
	CodeDuplicateKey       = "duplicate_key"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// NotFound marks a lookup whose id (or related-entity id) resolved to nothing.
func NotFound(err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, err)
}

// InvalidReference marks a write whose nested reference id does not resolve.
func InvalidReference(err error) *Error {
	return New(http.StatusBadRequest, CodeInvalidReference, err)
}

// IdentifierConflict marks a create payload that carried a pre-set identifier.
func IdentifierConflict(err error) *Error {
	return New(http.StatusBadRequest, CodeIdentifierConflict, err)
}

// DuplicateKey marks a natural-key collision (company name, product code).
func DuplicateKey(err error) *Error {
	return New(http.StatusConflict, CodeDuplicateKey, err)
}
