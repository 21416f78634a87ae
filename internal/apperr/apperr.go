// Package apperr holds the request-level errors produced by the validation
// chains. Every rejection carries the HTTP status it maps to and a single
// human readable message naming the rule that failed.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindBadRequest
)

var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
)

const defaultMessage = "Something went wrong!"

type Error struct {
	Kind    Kind
	Rule    string
	Message string
}

// NotFound reports that no record of the given resource has the id.
func NotFound(resource, id string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Rule:    "exists",
		Message: fmt.Sprintf("%s id not found: %s", resource, id),
	}
}

// BadRequest reports a failed validation rule. Rule is usually the field
// name or the gate that rejected the request.
func BadRequest(rule, message string) *Error {
	return &Error{Kind: KindBadRequest, Rule: rule, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindNotFound:
		return ErrNotFound
	case KindBadRequest:
		return ErrBadRequest
	default:
		return nil
	}
}

func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// StatusOf returns the HTTP status for err, 500 when err is not an *Error.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status()
	}
	return http.StatusInternalServerError
}

// MessageOf returns the user facing message for err. Errors that did not
// originate in a chain are not exposed.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return defaultMessage
}
