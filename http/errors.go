package http

import (
	"errors"
	"fmt"
)

type ErrorKind uint8

const (
	KindResolution ErrorKind = iota + 1
	KindConnect
	KindRead
	KindWrite
	KindMalformedStatusLine
	KindMalformedHeader
	KindUnsupportedFraming
	KindMalformedChunkSize
	KindMalformedChunk
	KindBodyTooLarge
	KindUnsupportedMethod
)

func (k ErrorKind) String() string {
	switch k {
	case KindResolution:
		return "resolution"
	case KindConnect:
		return "connect"
	case KindRead:
		return "read"
	case KindWrite:
		return "write"
	case KindMalformedStatusLine:
		return "malformed status line"
	case KindMalformedHeader:
		return "malformed header"
	case KindUnsupportedFraming:
		return "unsupported framing"
	case KindMalformedChunkSize:
		return "malformed chunk size"
	case KindMalformedChunk:
		return "malformed chunk"
	case KindBodyTooLarge:
		return "body too large"
	case KindUnsupportedMethod:
		return "unsupported method"
	}

	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Error is the only error type produced by the client. Every error is terminal for the request
// it occurred in. Errors of the same kind match each other via errors.Is, so the sentinel values
// below can be used to classify whatever came back.
type Error struct {
	Kind   ErrorKind
	Reason string
	Cause  error
}

func NewError(kind ErrorKind, reason string) *Error {
	return &Error{
		Kind:   kind,
		Reason: reason,
	}
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Reason
	}

	return e.Reason + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}

	return e.Kind == other.Kind
}

// Wrap returns a copy of the error with the cause attached.
func (e *Error) Wrap(cause error) *Error {
	return &Error{
		Kind:   e.Kind,
		Reason: e.Reason,
		Cause:  cause,
	}
}

// Withf returns a copy of the error with a more specific reason.
func (e *Error) Withf(format string, args ...any) *Error {
	return &Error{
		Kind:   e.Kind,
		Reason: fmt.Sprintf(format, args...),
		Cause:  e.Cause,
	}
}

var (
	ErrResolution          = NewError(KindResolution, "cannot resolve hostname")
	ErrConnect             = NewError(KindConnect, "cannot connect to any resolved address")
	ErrRead                = NewError(KindRead, "reading from connection failed")
	ErrWrite               = NewError(KindWrite, "writing to connection failed")
	ErrMalformedStatusLine = NewError(KindMalformedStatusLine, "malformed status line")
	ErrMalformedHeader     = NewError(KindMalformedHeader, "malformed header")
	ErrUnsupportedFraming  = NewError(KindUnsupportedFraming, "response body framing is not supported")
	ErrMalformedChunkSize  = NewError(KindMalformedChunkSize, "malformed chunk size")
	ErrMalformedChunk      = NewError(KindMalformedChunk, "chunk is not terminated by CRLF")
	ErrBodyTooLarge        = NewError(KindBodyTooLarge, "response body is too large")
	ErrUnsupportedMethod   = NewError(KindUnsupportedMethod, "request method is not supported")
)
