package postmark

import (
	"errors"
	"fmt"
)

// ErrorKind tells which step of [Execute] failed.
type ErrorKind int

const (
	// ErrorKindEncode means we could not serialize the request body. This
	// is always a programming or data error and retrying does not help.
	ErrorKindEncode = ErrorKind(iota + 1)

	// ErrorKindTransport means the [Transport] failed (DNS, connect, TLS,
	// I/O, or the transport's own failure domain).
	ErrorKindTransport

	// ErrorKindDecode means the response body did not decode into the
	// endpoint's response type.
	ErrorKindDecode
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindEncode:
		return "encode"
	case ErrorKindTransport:
		return "transport"
	case ErrorKindDecode:
		return "decode"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

var (
	// ErrEncode matches, using errors.Is, any [*Error] of kind [ErrorKindEncode].
	ErrEncode = errors.New("postmark: cannot encode request body")

	// ErrTransport matches, using errors.Is, any [*Error] of kind [ErrorKindTransport].
	ErrTransport = errors.New("postmark: transport failure")

	// ErrDecode matches, using errors.Is, any [*Error] of kind [ErrorKindDecode].
	ErrDecode = errors.New("postmark: cannot decode response body")
)

// Error is the error returned by [Execute].
type Error struct {
	// Kind is the kind of failure.
	Kind ErrorKind

	// Method is the method of the failed call.
	Method string

	// Path is the endpoint path of the failed call.
	Path string

	// StatusCode is the HTTP status code for [ErrorKindDecode]
	// failures and zero otherwise.
	StatusCode int

	// Err is the underlying error.
	Err error
}

func newError(kind ErrorKind, method, path string, err error) *Error {
	return &Error{
		Kind:       kind,
		Method:     method,
		Path:       path,
		StatusCode: 0,
		Err:        err,
	}
}

// Error implements error.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("postmark: %s %s: %s (status %d): %s", e.Method, e.Path, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("postmark: %s %s: %s: %s", e.Method, e.Path, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is allows matching the error kind using [ErrEncode], [ErrTransport], and [ErrDecode].
func (e *Error) Is(target error) bool {
	switch target {
	case ErrEncode:
		return e.Kind == ErrorKindEncode
	case ErrTransport:
		return e.Kind == ErrorKindTransport
	case ErrDecode:
		return e.Kind == ErrorKindDecode
	default:
		return false
	}
}

// AsTransportError returns the error of type E produced by the [Transport],
// if err is a transport failure wrapping such an error.
func AsTransportError[E error](err error) (E, bool) {
	var (
		perr   *Error
		target E
	)
	if errors.As(err, &perr) && perr.Kind == ErrorKindTransport && errors.As(perr.Err, &target) {
		return target, true
	}
	return target, false
}
