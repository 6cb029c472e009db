package errorx

import (
	"errors"
	"fmt"
)

// CodeError is an error carrying a business status code.
// It supports %w wrapping and is recognized by errors.Is/errors.As.
type CodeError struct {
	Code  int
	Msg   string
	cause error
}

// Error implements the error interface. When a cause is present the
// format is "msg: cause", otherwise just the message.
func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *CodeError) Unwrap() error {
	return e.cause
}

// New creates a CodeError with the given code and message.
func New(code int, msg string) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  msg,
	}
}

// Newf creates a CodeError with a formatted message.
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap attaches a business code and message to an underlying error.
// Usage: errorx.Wrap(err, CodeNotFound, "group not found")
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   msg,
		cause: err,
	}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// GetCode extracts the business code from an error chain.
// Non-CodeError errors map to CodeServerBusy.
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy
}

// Business status codes.
const (
	CodeSuccess       = 1000 // ok
	CodeInvalidParam  = 1001 // request validation failed, nothing was sent to the backend
	CodeUserExist     = 1002 // email already registered
	CodeUserNotExist  = 1003 // no such identity
	CodeWrongPassword = 1004 // password mismatch
	CodeServerBusy    = 1005 // generic backend failure, prior state unchanged
	CodeUnauthorized  = 1006 // missing/invalid credentials
	CodeForbidden     = 1007 // resolved roles do not allow the operation
	CodeNotFound      = 1008 // resource does not exist
	CodeAlreadyMember = 1009 // membership uniqueness conflict, downgraded to a notice
	CodeDBError       = 1010 // database error
	CodeCacheError    = 1011 // cache error
)

// Predefined instances, usable directly or with errors.Is.
var (
	ErrInvalidParam = New(CodeInvalidParam, "invalid request parameters")
	ErrServerBusy   = New(CodeServerBusy, "service temporarily unavailable")
	ErrUnauthorized = New(CodeUnauthorized, "authentication required")
	ErrForbidden    = New(CodeForbidden, "operation not allowed for this account")
)

// IsNotFound reports whether err is a not-found error
// (including gorm.ErrRecordNotFound wrapped by the repository layer).
func IsNotFound(err error) bool {
	var codeErr *CodeError
	if errors.As(err, &codeErr) && codeErr.Code == CodeNotFound {
		return true
	}
	return err != nil && err.Error() == "record not found"
}
