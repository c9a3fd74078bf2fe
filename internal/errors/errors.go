// Package errors provides sentinel errors and error types for the rules engine.
// It defines the rejection conditions callers can recover from and structured
// error types that preserve context while allowing inspection with errors.Is()
// and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrIllegalMove indicates a move that violates chess rules. It is the
	// only condition the engine itself raises for a move request.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidPromotion indicates a promotion choice outside Q, R, B, N or
	// a promotion supplied for a move that does not promote.
	ErrInvalidPromotion = errors.New("invalid promotion")

	// ErrInvalidSquare indicates a malformed square label.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidSnapshot indicates a serialized snapshot that fails validation.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoHistory indicates an undo with no move to take back.
	ErrNoHistory = errors.New("no move to undo")
)

// MoveError wraps a rejected move with its context. The wrapped error is
// always ErrIllegalMove, possibly joined with a more specific cause.
type MoveError struct {
	Err  error  // The underlying error
	Ply  int    // 1-based ply the move would have been (0 if unknown)
	From string // Source square label
	To   string // Destination square label
	Text string // The move text as supplied by the caller (if any)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}

	switch {
	case e.Text != "":
		parts = append(parts, fmt.Sprintf("move %q", e.Text))
	case e.From != "" || e.To != "":
		parts = append(parts, fmt.Sprintf("move %s-%s", e.From, e.To))
	}

	context := strings.Join(parts, ", ")
	if context == "" {
		if e.Err != nil {
			return e.Err.Error()
		}
		return ErrIllegalMove.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// FENError reports which FEN field failed to parse.
type FENError struct {
	Err   error  // The underlying error (wraps ErrInvalidFEN)
	Field string // Field name, e.g. "placement", "castling"
	Value string // Offending text
}

// Error returns a formatted error message with the field context.
func (e *FENError) Error() string {
	msg := "FEN"
	if e.Field != "" {
		msg += " " + e.Field
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *FENError) Unwrap() error {
	return e.Err
}

// Illegal builds a MoveError for a rejected move. cause, when non-nil, is
// joined with ErrIllegalMove so both can be matched with errors.Is().
func Illegal(from, to fmt.Stringer, cause error) *MoveError {
	err := ErrIllegalMove
	if cause != nil && !errors.Is(cause, ErrIllegalMove) {
		err = fmt.Errorf("%w: %w", ErrIllegalMove, cause)
	} else if cause != nil {
		err = cause
	}
	return &MoveError{Err: err, From: from.String(), To: to.String()}
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
