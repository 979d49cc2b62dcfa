package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors verifies that sentinel errors are properly defined
// and can be checked with errors.Is()
func TestSentinelErrors_Are(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"ErrMalformedBoard", ErrMalformedBoard, ErrMalformedBoard},
		{"ErrInvalidSquare", ErrInvalidSquare, ErrInvalidSquare},
		{"ErrInvalidMove", ErrInvalidMove, ErrInvalidMove},
		{"ErrMalformedInput", ErrMalformedInput, ErrMalformedInput},
		{"ErrInvalidConfig", ErrInvalidConfig, ErrInvalidConfig},
		{"ErrRecordTooLarge", ErrRecordTooLarge, ErrRecordTooLarge},
		{"ErrCapacityExceeded", ErrCapacityExceeded, ErrCapacityExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

// TestSentinelErrors_Wrapping verifies wrapped sentinel errors can still be detected
func TestSentinelErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("failed to expand board: %w", ErrMalformedBoard)

	if !errors.Is(wrapped, ErrMalformedBoard) {
		t.Errorf("errors.Is(wrapped, ErrMalformedBoard) = false, want true")
	}
}

// TestPuzzleError_Error verifies the error message format
func TestPuzzleError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *PuzzleError
		contains []string
	}{
		{
			name: "full context",
			err: &PuzzleError{
				Err:      ErrInvalidMove,
				PuzzleID: "00sHx",
				MoveNum:  3,
				MoveText: "e9e4",
			},
			contains: []string{"puzzle 00sHx", "move 3", "e9e4", "invalid move"},
		},
		{
			name: "minimal context",
			err: &PuzzleError{
				Err:      ErrMalformedInput,
				PuzzleID: "abc12",
			},
			contains: []string{"puzzle abc12", "malformed input"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("PuzzleError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

// TestPuzzleError_Unwrap verifies that PuzzleError properly implements Unwrap
func TestPuzzleError_Unwrap(t *testing.T) {
	puzzleErr := &PuzzleError{
		Err:      ErrMalformedBoard,
		PuzzleID: "00sHx",
	}

	// Unwrap should return the underlying error
	unwrapped := errors.Unwrap(puzzleErr)
	if !errors.Is(unwrapped, ErrMalformedBoard) {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrMalformedBoard)
	}

	// errors.Is should work through the wrapper
	if !errors.Is(puzzleErr, ErrMalformedBoard) {
		t.Error("errors.Is(puzzleErr, ErrMalformedBoard) = false, want true")
	}
}

// TestPuzzleError_As verifies that errors.As works with PuzzleError
func TestPuzzleError_As(t *testing.T) {
	puzzleErr := &PuzzleError{
		Err:      ErrInvalidMove,
		PuzzleID: "xYz99",
		MoveNum:  7,
		MoveText: "a0a1",
	}

	// Wrap it further
	wrapped := fmt.Errorf("replay failed: %w", puzzleErr)

	// Should be able to extract PuzzleError with errors.As
	var extractedErr *PuzzleError
	if !errors.As(wrapped, &extractedErr) {
		t.Fatal("errors.As() could not extract PuzzleError")
	}

	if extractedErr.PuzzleID != "xYz99" {
		t.Errorf("extractedErr.PuzzleID = %q, want %q", extractedErr.PuzzleID, "xYz99")
	}
	if extractedErr.MoveText != "a0a1" {
		t.Errorf("extractedErr.MoveText = %q, want %q", extractedErr.MoveText, "a0a1")
	}
}

// TestWrap verifies the Wrap helper function
func TestWrap(t *testing.T) {
	original := ErrMalformedBoard
	wrapped := Wrap(original, "expanding board string")

	if !errors.Is(wrapped, ErrMalformedBoard) {
		t.Error("Wrap should preserve the underlying error")
	}

	msg := wrapped.Error()
	if !strings.Contains(msg, "expanding board string") {
		t.Errorf("Wrap should include context, got %q", msg)
	}
}

// TestWrapf verifies the Wrapf helper function
func TestWrapf(t *testing.T) {
	original := ErrInvalidSquare
	wrapped := Wrapf(original, "move %d of puzzle %s", 15, "00sHx")

	if !errors.Is(wrapped, ErrInvalidSquare) {
		t.Error("Wrapf should preserve the underlying error")
	}

	msg := wrapped.Error()
	if !strings.Contains(msg, "move 15") {
		t.Errorf("Wrapf should include formatted context, got %q", msg)
	}
}

// TestWrap_Nil verifies Wrap and Wrapf pass nil through.
func TestWrap_Nil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
}
