// Package apperr holds the error kinds shared by every domain package.
// Domains declare their own sentinel values with New; transport code only
// needs KindOf to pick a status code.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindInvalidFormat
	KindReference
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidFormat:
		return "invalid_format"
	case KindReference:
		return "reference"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Field   string
	Value   any
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s=%v)", e.Code, e.Message, e.Field, e.Value)
	}
	return e.Code + ": " + e.Message
}

// ErrorCode is the stable code reported to API clients and attached to logs.
func (e *Error) ErrorCode() string {
	return e.Code
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Validation reports a missing, out-of-range or malformed input field.
func Validation(field string, value any, message string) *Error {
	return &Error{Kind: KindValidation, Code: "invalid_request", Message: message, Field: field, Value: value}
}

func InvalidFormat(field string, value any) *Error {
	return &Error{Kind: KindInvalidFormat, Code: "invalid_id_format", Message: "invalid " + field + " format", Field: field, Value: value}
}

func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}
