// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. Each kind maps to a distinct process exit code.
type Kind int

const (
	Unknown Kind = iota
	Argument
	Auth
	NotFound
	AlreadyExists
	Conflict
	Transport
	IO
)

var kindNames = map[Kind]string{
	Unknown:       "error",
	Argument:      "argument",
	Auth:          "authentication",
	NotFound:      "not found",
	AlreadyExists: "already exists",
	Conflict:      "conflict",
	Transport:     "transport",
	IO:            "io",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "error"
}

// ExitCode is the process exit code for the kind.
func (k Kind) ExitCode() int {
	switch k {
	case Argument:
		return 2
	case Auth:
		return 3
	case NotFound:
		return 4
	case AlreadyExists:
		return 5
	case Conflict:
		return 6
	case Transport:
		return 7
	case IO:
		return 8
	default:
		return 1
	}
}

// Error is the single error type returned by the façades. Resource names the
// bucket, key or file involved, if any.
type Error struct {
	Kind     Kind
	Resource string
	Msg      string
	Err      error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so callers can test
// errors.Is(err, apperr.ErrNotFound).
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Resource == "" && t.Msg == "" && t.Err == nil && t.Kind == e.Kind
	}
	return false
}

// Sentinels for errors.Is comparisons.
var (
	ErrArgument      = &Error{Kind: Argument}
	ErrAuth          = &Error{Kind: Auth}
	ErrNotFound      = &Error{Kind: NotFound}
	ErrAlreadyExists = &Error{Kind: AlreadyExists}
	ErrConflict      = &Error{Kind: Conflict}
	ErrTransport     = &Error{Kind: Transport}
	ErrIO            = &Error{Kind: IO}
)

// New builds an *Error with a formatted message.
func New(kind Kind, resource string, format string, args ...any) *Error {
	return &Error{Kind: kind, Resource: resource, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error around cause.
func Wrap(kind Kind, resource string, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Resource: resource, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// BucketNotFound reports a missing bucket.
func BucketNotFound(bucket string) *Error {
	return New(NotFound, bucket, "bucket %s does not exist", bucket)
}

// KeyNotFound reports a key missing from bucket.
func KeyNotFound(bucket, key string) *Error {
	return New(NotFound, key, "key %s does not exist in bucket %s", key, bucket)
}

// BucketExists reports a bucket that is already present.
func BucketExists(bucket string) *Error {
	return New(AlreadyExists, bucket, "bucket %s already exists", bucket)
}

// BucketNotEmpty reports a delete refused because objects remain.
func BucketNotEmpty(bucket string) *Error {
	return New(Conflict, bucket, "bucket %s is not empty, cannot delete", bucket)
}

// MissingArgument reports a required flag supplied with an empty value.
func MissingArgument(flag string) *Error {
	return New(Argument, flag, "--%s must not be empty", flag)
}

// KindOf returns the Kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// ExitCode maps err to a process exit code. nil is 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return KindOf(err).ExitCode()
}
