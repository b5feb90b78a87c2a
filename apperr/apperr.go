// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a failure so callers can tell them apart without string matching.
type Kind string

const (
	NotFound     Kind = "not_found"
	InvalidState Kind = "invalid_state"
	Forbidden    Kind = "forbidden"
	Conflict     Kind = "conflict"
	Validation   Kind = "validation"
	NoData       Kind = "no_data"
	Internal     Kind = "internal"
)

// Error is the typed failure returned by the business-logic packages.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil && e.Kind == Internal {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so errors.Is(err, apperr.New(apperr.NotFound, ""))
// works regardless of message.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func NotFoundf(message string) *Error     { return New(NotFound, message) }
func InvalidStatef(message string) *Error { return New(InvalidState, message) }
func Forbiddenf(message string) *Error    { return New(Forbidden, message) }
func Conflictf(message string) *Error     { return New(Conflict, message) }
func Validationf(message string) *Error   { return New(Validation, message) }
func NoDataf(message string) *Error       { return New(NoData, message) }

// Internalf wraps a persistence or other unexpected failure.
func Internalf(message string, cause error) *Error { return Wrap(Internal, message, cause) }

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps a kind to the status code the HTTP boundary responds with.
func HTTPStatus(kind Kind) int {
	switch kind {
	case NotFound:
		return http.StatusNotFound
	case InvalidState, Validation:
		return http.StatusBadRequest
	case Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	case NoData:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
