// Package orgerr defines the closed error taxonomy shared by every layer of
// the org knowledge engine. Core operations never return a bare error; they
// return (or wrap) an *orgerr.Error so callers can switch on Kind without
// string matching.
package orgerr

import (
	"errors"
	"fmt"
)

// Kind is a closed set of error categories. Adding a new Kind means adding a
// new case everywhere Kind is switched on (Kind.String below, the MCP
// surface's protocol-code mapping).
type Kind int

const (
	InvalidDirectory Kind = iota
	InvalidHeadingPath
	InvalidElementID
	InvalidAgendaViewType
	WalkError
	IoError
	ShellExpansionError
	ConfigError
)

func (k Kind) String() string {
	switch k {
	case InvalidDirectory:
		return "invalid directory"
	case InvalidHeadingPath:
		return "invalid heading path"
	case InvalidElementID:
		return "invalid element id"
	case InvalidAgendaViewType:
		return "invalid agenda view type"
	case WalkError:
		return "walk error"
	case IoError:
		return "io error"
	case ShellExpansionError:
		return "shell expansion error"
	case ConfigError:
		return "config error"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type returned by every core package. Detail is
// the human-readable payload (a path, an id, a malformed agenda spec); Cause
// is an optional wrapped error for errors.Unwrap/errors.Is/errors.As.
type Error struct {
	Kind   Kind
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is allows errors.Is(err, orgerr.InvalidDirectory) style checks by
// comparing Kind, ignoring Detail/Cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func Wrap(kind Kind, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, Cause: cause}
}

func NewInvalidDirectory(path string) *Error {
	return New(InvalidDirectory, path)
}

func NewInvalidHeadingPath(path string) *Error {
	return New(InvalidHeadingPath, path)
}

func NewInvalidElementID(id string) *Error {
	return New(InvalidElementID, id)
}

func NewInvalidAgendaViewType(detail string) *Error {
	return New(InvalidAgendaViewType, detail)
}

func NewWalkError(path string, cause error) *Error {
	return Wrap(WalkError, path, cause)
}

func NewIoError(path string, cause error) *Error {
	return Wrap(IoError, path, cause)
}

func NewShellExpansionError(path string) *Error {
	return New(ShellExpansionError, path)
}

func NewConfigError(detail string) *Error {
	return New(ConfigError, detail)
}

// KindOf extracts the Kind of err if it is (or wraps) an *Error, reporting
// ok=false for errors outside the closed taxonomy (e.g. unexpected stdlib
// errors bubbling up from a code path that forgot to wrap them).
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
