// Package apperror defines the errors that are allowed to reach API clients.
package apperror

import (
	"errors"
)

type Kind string

const (
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindValidation      Kind = "BAD_USER_INPUT"
	KindStorage         Kind = "INTERNAL_SERVER_ERROR"
)

const (
	MsgUnauthenticated    = "action allowed only for authenticated users"
	MsgNotAuthor          = "action allowed only for the blog's author"
	MsgInvalidCredentials = "invalid email or password"
	MsgLoginFailed        = "login failed"
	MsgInternal           = "internal server error"
)

// Error carries a client-safe message. Err holds the cause for logs and is
// never rendered to the client.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Extensions is picked up by the GraphQL engine and rendered under
// "extensions" in the response error entry.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": string(e.Kind),
	}
}

func Unauthenticated() *Error {
	return &Error{Kind: KindUnauthenticated, Message: MsgUnauthenticated}
}

func NotAuthor() *Error {
	return &Error{Kind: KindUnauthenticated, Message: MsgNotAuthor}
}

func InvalidCredentials() *Error {
	return &Error{Kind: KindUnauthenticated, Message: MsgInvalidCredentials}
}

func Validation(message string, err error) *Error {
	return &Error{Kind: KindValidation, Message: message, Err: err}
}

func Storage(message string, err error) *Error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

// From returns err as an *Error, replacing anything unknown with a generic
// internal error so raw driver text never leaks.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	return Storage(MsgInternal, err)
}

func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
