// Package vennerr defines the error taxonomy returned by the top-level
// operations, mirroring the tagged-status style of detour.DtStatus: a
// small set of kinds, each with a human-readable message.
package vennerr

import "fmt"

// Kind tags the category of a Error.
type Kind int

// Error kinds.
const (
	InvalidInput Kind = iota
	SceneErrorKind
	TrainingDiverged
	Cancelled
	Internal
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case SceneErrorKind:
		return "scene error"
	case TrainingDiverged:
		return "training diverged"
	case Cancelled:
		return "cancelled"
	case Internal:
		return "internal error"
	default:
		return fmt.Sprintf("unknown error kind %d", int(k))
	}
}

// SceneKind further classifies a SceneErrorKind.
type SceneKind int

// Scene failure kinds.
const (
	MissingContainerRegion SceneKind = iota
	InconsistentDepth
	MalformedBoundary
	NumericalInstability
)

func (k SceneKind) String() string {
	switch k {
	case MissingContainerRegion:
		return "missing container region"
	case InconsistentDepth:
		return "inconsistent depth"
	case MalformedBoundary:
		return "malformed boundary"
	case NumericalInstability:
		return "numerical instability"
	default:
		return fmt.Sprintf("unknown scene error kind %d", int(k))
	}
}

// Error is the error type returned by every fallible top-level operation.
type Error struct {
	Kind      Kind
	SceneKind SceneKind // meaningful only when Kind == SceneErrorKind
	Msg       string
	Err       error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Kind == SceneErrorKind {
		if e.Err != nil {
			return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.SceneKind, e.Msg, e.Err)
		}
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.SceneKind, e.Msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs a plain Error of the given kind.
func New(kind Kind, msg string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(msg, args...)}
}

// Wrap constructs an Error of the given kind, wrapping a cause.
func Wrap(kind Kind, err error, msg string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(msg, args...), Err: err}
}

// Scene constructs a SceneErrorKind error.
func Scene(kind SceneKind, msg string, args ...interface{}) *Error {
	return &Error{Kind: SceneErrorKind, SceneKind: kind, Msg: fmt.Sprintf(msg, args...)}
}
