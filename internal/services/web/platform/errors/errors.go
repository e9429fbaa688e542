// Package errors defines the typed failures a visitor can see.
//
// Every Error carries a catalog key; the message is for logs and tests.
package errors

import (
	stderrors "errors"
	"strings"
)

// Kind classifies a failure.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindInvalidInput Kind = "invalid_input"
	KindForbidden    Kind = "forbidden"
	KindUnavailable  Kind = "unavailable"
)

// Error is a typed failure with a localization key.
type Error struct {
	Kind    Kind
	Key     string
	Message string
	Err     error
}

// Error returns the message without the cause, so wrapping a collaborator
// failure never changes the text.
func (e Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e Error) Unwrap() error {
	return e.Err
}

// EK builds an Error with a localization key.
func EK(kind Kind, key string, message string) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message}
}

// Wrap builds an Error around a cause. The cause stays reachable through
// errors.Is and errors.As.
func Wrap(kind Kind, key string, message string, cause error) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message, Err: cause}
}

// KindOf returns the error's Kind, or KindUnknown for untyped errors.
func KindOf(err error) Kind {
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return KindUnknown
	}
	return appErr.Kind
}

// Is reports whether err is typed with kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// LocalizationKey returns the catalog key, or "" for untyped errors.
func LocalizationKey(err error) string {
	var appErr Error
	if err == nil || !stderrors.As(err, &appErr) {
		return ""
	}
	return appErr.Key
}
