package mixer

// This file contains the error kinds surfaced by the mixing engine. All of
// them are recoverable input validation failures that are handed back to the
// caller, typically the presentation layer, which can then reject the edit and
// carry on rendering with the previous values

import (
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
)

const (
	msgInvalidDuration = "cycle duration must be greater than zero"
	msgMalformedColor  = "malformed color text, expected #rrggbb"
	msgInvalidLength   = "segment length must not be negative"
	msgIndexRange      = "segment index out of range"
	msgNotRunning      = "player is not running"
	msgFrameDropped    = "frame dropped"
)

// kindError carries the kind of failure alongside the annotated error so that
// classification never depends on the key/value text, which can hold user
// input
type kindError struct {
	err  errors.Error
	kind string
}

func (ke *kindError) Error() string {
	return ke.err.Error()
}

func (ke *kindError) With(key string, value interface{}) errors.Error {
	return &kindError{
		err:  ke.err.With(key, value),
		kind: ke.kind,
	}
}

func (ke *kindError) Unwrap() error {
	return ke.err
}

func kindErr(kind string) errors.Error {
	return &kindError{
		err:  errors.New(kind).With("stack", stack.Trace().TrimRuntime()),
		kind: kind,
	}
}

func hasKind(err error, kind string) bool {
	ke, isKind := err.(*kindError)
	if !isKind || ke == nil {
		return false
	}
	return ke.kind == kind
}

// IsInvalidDuration reports whether err was caused by a zero cycle duration
func IsInvalidDuration(err error) bool {
	return hasKind(err, msgInvalidDuration)
}

// IsMalformedColor reports whether err was caused by unparsable color text
func IsMalformedColor(err error) bool {
	return hasKind(err, msgMalformedColor)
}

// IsIndexRange reports whether err was caused by addressing a segment that
// does not exist
func IsIndexRange(err error) bool {
	return hasKind(err, msgIndexRange)
}

// IsNotRunning reports whether err was caused by editing a stopped player
func IsNotRunning(err error) bool {
	return hasKind(err, msgNotRunning)
}

// IsFrameDropped reports whether err was caused by a frame that could not be
// handed on before the next one was due
func IsFrameDropped(err error) bool {
	return hasKind(err, msgFrameDropped)
}
