// Package errors provides sentinel errors and error types for the puzzle
// compiler. It defines common failure conditions and a structured error type
// that preserves puzzle context while allowing inspection with errors.Is()
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
	// ErrMalformedBoard indicates a board string that violates the codec
	// invariants (unknown symbol or wrong square count).
	ErrMalformedBoard = errors.New("malformed board")

	// ErrInvalidSquare indicates a square outside the a1-h8 range.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidMove indicates a move token that cannot be parsed.
	ErrInvalidMove = errors.New("invalid move")

	// ErrMalformedInput indicates an unparseable puzzle row.
	ErrMalformedInput = errors.New("malformed input row")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrRecordTooLarge indicates a page record that exceeds the ROM row size.
	ErrRecordTooLarge = errors.New("record too large")

	// ErrCapacityExceeded indicates an image that would exceed flash capacity.
	ErrCapacityExceeded = errors.New("flash capacity exceeded")
)

// PuzzleError wraps errors with puzzle context: the puzzle id and, when the
// failure happened during replay, the move number and move token. It
// implements the error interface and supports unwrapping via errors.Is()
// and errors.As().
type PuzzleError struct {
	Err      error  // The underlying error
	PuzzleID string // Id of the puzzle being processed
	MoveNum  int    // 1-based move number (0 if not applicable)
	MoveText string // The move token that caused the error (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *PuzzleError) Error() string {
	var parts []string

	if e.PuzzleID != "" {
		parts = append(parts, fmt.Sprintf("puzzle %s", e.PuzzleID))
	}
	if e.MoveNum > 0 {
		parts = append(parts, fmt.Sprintf("move %d", e.MoveNum))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("token %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the PuzzleError wrapper.
func (e *PuzzleError) Unwrap() error {
	return e.Err
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
