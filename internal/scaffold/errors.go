package scaffold

import (
	"errors"
	"fmt"
)

// Kind classifies a scaffolding failure.
type Kind string

// Error kinds. Each is terminal for the invocation.
const (
	InvalidName         Kind = "InvalidName"
	TemplateUnavailable Kind = "TemplateUnavailable"
	DestinationExists   Kind = "DestinationExists"
	WriteFailed         Kind = "WriteFailed"
)

// Sentinels for errors.Is checks against an *Error's kind.
var (
	ErrInvalidName         = errors.New("invalid project name")
	ErrTemplateUnavailable = errors.New("template unavailable")
	ErrDestinationExists   = errors.New("destination exists")
	ErrWriteFailed         = errors.New("write failed")
)

func (k Kind) sentinel() error {
	switch k {
	case InvalidName:
		return ErrInvalidName
	case TemplateUnavailable:
		return ErrTemplateUnavailable
	case DestinationExists:
		return ErrDestinationExists
	case WriteFailed:
		return ErrWriteFailed
	default:
		return nil
	}
}

// Error is the only error type returned by Scaffolder.Create.
type Error struct {
	Kind Kind
	Path string // destination or file path involved, if any
	Err  error
}

// Error formats as "<Kind>: <detail>", e.g. "DestinationExists: blog is not empty".
func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func newError(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

func errorf(kind Kind, path, format string, args ...any) *Error {
	return newError(kind, path, fmt.Errorf(format, args...))
}

// KindOf returns the Kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
