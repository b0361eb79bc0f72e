// Package apperr defines the client-visible error kinds returned by the
// service layer. Each kind carries a stable code for API consumers.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindAuthentication
	KindAuthorization
	KindValidation
	KindNotFound
	KindConflict
)

func (k Kind) Code() string {
	switch k {
	case KindAuthentication:
		return "UNAUTHENTICATED"
	case KindAuthorization:
		return "FORBIDDEN"
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

func (k Kind) Status() int {
	switch k {
	case KindAuthentication:
		return 401
	case KindAuthorization:
		return 403
	case KindValidation:
		return 422
	case KindNotFound:
		return 404
	case KindConflict:
		return 409
	default:
		return 500
	}
}

func (k Kind) String() string { return k.Code() }

type Error struct {
	Kind    Kind
	Message string
	Details map[string]string

	cause error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the cause to errors.Is/As. The cause never reaches clients.
func (e *Error) Unwrap() error { return e.cause }

// Extensions is picked up by the GraphQL layer and attached to the error.
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{
		"code":   e.Kind.Code(),
		"status": e.Kind.Status(),
	}
	if len(e.Details) > 0 {
		ext["details"] = e.Details
	}
	return ext
}

func Authentication(message string) *Error {
	if message == "" {
		message = "Authentication required"
	}
	return &Error{Kind: KindAuthentication, Message: message}
}

func Authorization(message string) *Error {
	if message == "" {
		message = "Not authorized"
	}
	return &Error{Kind: KindAuthorization, Message: message}
}

func Validation(message string, details map[string]string) *Error {
	if message == "" {
		message = "Validation failed"
	}
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func NotFound(resource string) *Error {
	if resource == "" {
		resource = "Resource"
	}
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func Conflict(message string) *Error {
	if message == "" {
		message = "Resource already exists"
	}
	return &Error{Kind: KindConflict, Message: message}
}

// Internal hides cause behind a generic message.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", cause: cause}
}

// KindOf reports the kind of err. Errors that are not *Error are internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
