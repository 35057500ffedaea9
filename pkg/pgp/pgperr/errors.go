// Package pgperr classifies the failure modes a packet decoder can report:
// a structural violation in the packet itself, a failure reading from the
// underlying stream, a failure writing to a copy sink, or a recognized but
// undecoded packet type. Kept as its own package (mirrors the separation
// between example.com/pgpcore/pkg/pgp and the teacher's pkg/util/* helpers)
// so callers outside pkg/pgp can type-switch on a failure kind without
// importing the whole parser.
package pgperr

import (
	"errors"
	"fmt"
)

// Kind distinguishes why a parse operation failed.
type Kind int

const (
	// InvalidPacket means the packet's own bytes violate the wire format:
	// a bad CTB, a short body, a disallowed version, a bad S2K mode.
	InvalidPacket Kind = iota
	// ReadError means the underlying ByteSource failed mid-body.
	ReadError
	// WriteError means a copy sink write failed.
	WriteError
	// UnknownPacket marks a packet type the decoder recognizes as a valid
	// code but has no decoder for — distinct from an unrecognized/reserved
	// type, which the dispatcher silently skips.
	UnknownPacket
)

func (k Kind) String() string {
	switch k {
	case InvalidPacket:
		return "invalid_packet"
	case ReadError:
		return "read_error"
	case WriteError:
		return "write_error"
	case UnknownPacket:
		return "unknown_packet"
	default:
		return "unknown_kind"
	}
}

// Error wraps a Kind with context and an optional underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error with no underlying cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf builds an *Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error around an underlying cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Is reports whether err is a *Error of the given Kind, unwrapping through
// any number of fmt.Errorf("%w", ...) wrappers to find it.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
