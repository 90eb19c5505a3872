// Package rpgerr provides structured error handling for the combat
// resolver. It lets a caller tell *why* an intent didn't land (unknown
// ability, on cooldown, insufficient resources, stunned, missed, immune)
// without parsing log strings.
package rpgerr

import (
	"errors"
	"fmt"
)

// Code categorizes why a resolver operation did not proceed.
type Code string

// Recognized error codes, one per gating and miss reason.
const (
	CodeUnknown            Code = "unknown"
	CodeInternal           Code = "internal"
	CodeInvalidArgument    Code = "invalid_argument"
	CodeUnknownAbility     Code = "unknown_ability"
	CodeClassGated         Code = "class_gated"
	CodeCooldownActive     Code = "cooldown_active"
	CodeFormRequired       Code = "form_required"
	CodeEffectRequired     Code = "effect_required"
	CodeWeaponRequired     Code = "weapon_required"
	CodeThresholdNotMet    Code = "threshold_not_met"
	CodeCircleRequired     Code = "circle_required"
	CodeStackabilityViolated Code = "stackability_violated"
	CodeResourceExhausted  Code = "resource_exhausted"
	CodeStunned            Code = "stunned"
	CodeMissed             Code = "missed"
	CodeImmune             Code = "immune"
)

// Error is the resolver's structured error type: a code, a message, an
// optional wrapped cause, and free-form metadata for diagnostics.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "rpgerr: nil error"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Option configures an *Error at construction time.
type Option func(*Error)

// WithMeta attaches a diagnostic key/value to the error.
func WithMeta(key string, value any) Option {
	return func(e *Error) {
		if e.Meta == nil {
			e.Meta = make(map[string]any)
		}
		e.Meta[key] = value
	}
}

// New creates an error with the given code and message.
func New(code Code, message string, opts ...Option) *Error {
	e := &Error{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Newf creates an error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps err, preserving its code if it is already an *Error.
func Wrap(err error, message string, opts ...Option) *Error {
	if err == nil {
		return New(CodeInternal, fmt.Sprintf("rpgerr.Wrap called with nil: %s", message))
	}
	var inner *Error
	code := CodeUnknown
	if errors.As(err, &inner) {
		code = inner.Code
	}
	wrapped := &Error{Code: code, Message: message, Cause: err}
	for _, opt := range opts {
		opt(wrapped)
	}
	return wrapped
}

// GetCode extracts the Code from any error, defaulting to CodeUnknown.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Code
	}
	return CodeUnknown
}

// Is reports whether err is an *Error with the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}
