package domain

import (
	"errors"
	"fmt"
)

// Kind is the coarse category of a domain failure.
// The HTTP layer maps it to a status code; nothing inspects messages.
type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
)

// Error carries a Kind through every layer up to the transport boundary.
type Error struct {
	Op   string // operation that detected the failure, e.g. "usecase.create_bookmark"
	Kind Kind
	Msg  string // client-facing message
	Err  error  // optional cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Validation reports bad input shape (blank title, malformed URL, bad id).
func Validation(op, msg string) *Error {
	return &Error{Op: op, Kind: KindValidation, Msg: msg}
}

// Conflict reports a uniqueness violation.
func Conflict(op, msg string) *Error {
	return &Error{Op: op, Kind: KindConflict, Msg: msg}
}

// NotFound reports an unknown identity.
func NotFound(op, msg string) *Error {
	return &Error{Op: op, Kind: KindNotFound, Msg: msg}
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind Kind) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

// KindOf returns the kind of the first *Error in the chain, or "" if none.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// Messages shared by several layers.
const (
	MsgURLAlreadyRegistered = "URL already registered"
	MsgBookmarkNotFound     = "bookmark not found"
	MsgTitleRequired        = "title is required"
	MsgURLRequired          = "url is required"
)
