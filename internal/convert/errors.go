package convert

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies a conversion failure
type Kind int

const (
	KindUnexpected   Kind = iota // Any fault not covered below
	KindNotFound                 // Input path does not exist
	KindWrongFormat              // Input extension is not .wav
	KindCodecFailure             // Decode, encode or tag write failed
	KindInterrupted              // The user aborted the run
)

// Sentinels matched by errors.Is against an *Error of the same kind
var (
	ErrUnexpected   = errors.New("unexpected error")
	ErrNotFound     = errors.New("file does not exist")
	ErrWrongFormat  = errors.New("file is not a WAV file")
	ErrCodecFailure = errors.New("conversion failed")
	ErrInterrupted  = errors.New("process interrupted by user")
)

var kindSentinels = map[Kind]error{
	KindUnexpected:   ErrUnexpected,
	KindNotFound:     ErrNotFound,
	KindWrongFormat:  ErrWrongFormat,
	KindCodecFailure: ErrCodecFailure,
	KindInterrupted:  ErrInterrupted,
}

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindWrongFormat:
		return "wrong format"
	case KindCodecFailure:
		return "codec failure"
	case KindInterrupted:
		return "interrupted"
	default:
		return "unexpected"
	}
}

// Error is returned by Convert for every failure
type Error struct {
	Kind Kind
	Path string // Input path the failure relates to, if known
	Err  error  // Underlying cause, if any
}

func (e *Error) Error() string {
	sentinel := kindSentinels[e.Kind]
	switch {
	case e.Kind == KindInterrupted:
		return sentinel.Error()
	case e.Kind == KindNotFound || e.Kind == KindWrongFormat:
		return fmt.Sprintf("%s: %s", sentinel, e.Path)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", sentinel, e.Err)
	default:
		return sentinel.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind
func (e *Error) Is(target error) bool {
	return target == kindSentinels[e.Kind]
}

func newError(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// KindOf classifies any error. Context cancellation counts as an
// interruption; anything unrecognised is unexpected.
func KindOf(err error) Kind {
	var convErr *Error
	if errors.As(err, &convErr) {
		return convErr.Kind
	}
	if errors.Is(err, context.Canceled) {
		return KindInterrupted
	}
	return KindUnexpected
}

// ExitCode maps an error to the process exit status.
// Interruption is a deliberate stop, not a fault.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if KindOf(err) == KindInterrupted {
		return 0
	}
	return 1
}
