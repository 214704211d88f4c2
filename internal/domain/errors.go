package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so the transport layer can pick an outcome.
type ErrorKind string

const (
	KindInvalidField    ErrorKind = "InvalidField"
	KindUnreadableFile  ErrorKind = "UnreadableFile"
	KindDuplicateRow    ErrorKind = "DuplicateRow"
	KindUnableToPersist ErrorKind = "UnableToPersist"
)

var (
	ErrInvalidField    = &Error{Kind: KindInvalidField}
	ErrUnreadableFile  = &Error{Kind: KindUnreadableFile}
	ErrDuplicateRow    = &Error{Kind: KindDuplicateRow}
	ErrUnableToPersist = &Error{Kind: KindUnableToPersist}

	// ErrConflict is returned by repositories when a uniqueness constraint rejects a write.
	ErrConflict = errors.New("unique constraint violation")
)

// Error is a classified failure carrying a human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error of the same kind, so errors.Is(err, ErrInvalidField) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func InvalidFieldf(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidField, Message: fmt.Sprintf(format, args...)}
}

func UnreadableFilef(format string, args ...interface{}) error {
	return &Error{Kind: KindUnreadableFile, Message: fmt.Sprintf(format, args...)}
}

func DuplicateRowf(format string, args ...interface{}) error {
	return &Error{Kind: KindDuplicateRow, Message: fmt.Sprintf(format, args...)}
}

// UnableToPersist wraps a storage failure for the given employee.
func UnableToPersist(e Employee, cause error) error {
	return &Error{
		Kind:    KindUnableToPersist,
		Message: fmt.Sprintf("Unable to save employee %s", e),
		cause:   cause,
	}
}

// UnableToPersistf reports a storage failure that is not tied to one employee,
// such as a rejected commit.
func UnableToPersistf(cause error, format string, args ...interface{}) error {
	return &Error{Kind: KindUnableToPersist, Message: fmt.Sprintf(format, args...), cause: cause}
}

// KindOf returns the kind of a classified error, or "" for anything else.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
