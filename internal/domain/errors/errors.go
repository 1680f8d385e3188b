package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a failure for transport mapping: NotFound becomes
// 404, Storage becomes 500, everything else becomes 400.
type Kind string

const (
	KindNotFound     Kind = "NOT_FOUND"
	KindValidation   Kind = "VALIDATION"
	KindExternal     Kind = "EXTERNAL_API"
	KindCardDeclined Kind = "CARD_DECLINED"
	KindStorage      Kind = "STORAGE"
)

// Error is the domain error carried across orchestration boundaries.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func External(message string, err error) *Error {
	return &Error{Kind: KindExternal, Message: message, Err: err}
}

func CardDeclined(message string, err error) *Error {
	return &Error{Kind: KindCardDeclined, Message: message, Err: err}
}

func Storage(message string, err error) *Error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

// KindOf returns the classification of err, defaulting to KindStorage
// for errors that never passed through the domain taxonomy.
func KindOf(err error) Kind {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindStorage
}
