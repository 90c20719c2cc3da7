// internal/migrate/errors.go
//
// Typed failure reporting for the whole update pipeline. Every failure a user
// can hit is tagged with one of a fixed set of kinds and carries the file it
// concerns, so the CLI can print "file: kind: cause" without string matching.

package migrate

import (
	"errors"
	"fmt"
)

// FailureKind classifies what went wrong during an update.
type FailureKind string

const (
	// KindInputNotFound: the input path does not exist or cannot be read.
	KindInputNotFound FailureKind = "input not found"
	// KindUnparseableDocument: the input exists but is not valid TOML/CSV.
	KindUnparseableDocument FailureKind = "unparseable document"
	// KindUnrecognizedShape: no known schema generation matches the input.
	KindUnrecognizedShape FailureKind = "unrecognized shape"
	// KindStepApplicationFailure: a matched migration step could not
	// complete, e.g. required legacy data was missing or ambiguous.
	KindStepApplicationFailure FailureKind = "step application failure"
	// KindOutputWriteFailure: the updated document could not be written.
	KindOutputWriteFailure FailureKind = "output write failure"
)

// Error is the failure type surfaced by the migration pipeline.
type Error struct {
	Kind FailureKind
	Path string // offending file, if known
	Step string // migration step name, for step application failures
	Err  error  // underlying cause, may be nil
}

// Error renders "path: kind: step: cause" with empty parts omitted.
func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Step != "" {
		msg += ": step " + e.Step
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// NewError builds a tagged failure.
func NewError(kind FailureKind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// StepError builds a step application failure for the named step.
func StepError(step, path string, format string, args ...any) *Error {
	return &Error{
		Kind: KindStepApplicationFailure,
		Path: path,
		Step: step,
		Err:  fmt.Errorf(format, args...),
	}
}

// KindOf extracts the failure kind from an error chain. The second return is
// false when the error is not a migration failure.
func KindOf(err error) (FailureKind, bool) {
	var me *Error
	if errors.As(err, &me) {
		return me.Kind, true
	}
	return "", false
}
