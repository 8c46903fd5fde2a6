package domain

import "errors"

// Kind is a stable error category callers can branch on.
type Kind uint8

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) error   { return &Error{Kind: KindValidation, Msg: msg} }
func Unauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &Error{Kind: KindForbidden, Msg: msg} }
func NotFound(msg string) error     { return &Error{Kind: KindNotFound, Msg: msg} }
func Conflict(msg string) error     { return &Error{Kind: KindConflict, Msg: msg} }
func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

var (
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Msg: "invalid credentials"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Msg: "user not found"}
	ErrCategoryNotFound   = &Error{Kind: KindNotFound, Msg: "category not found"}
	ErrTagNotFound        = &Error{Kind: KindNotFound, Msg: "tag not found"}
	ErrPostNotFound       = &Error{Kind: KindNotFound, Msg: "post not found"}
	ErrEmailTaken         = &Error{Kind: KindConflict, Msg: "user with this email already exists"}
	ErrUsernameTaken      = &Error{Kind: KindConflict, Msg: "user with this username already exists"}
	ErrInvalidEmail       = &Error{Kind: KindValidation, Msg: "invalid email"}
)

// KindOf reports the category of err; anything that is not a *Error is internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, k Kind) bool { return err != nil && KindOf(err) == k }
