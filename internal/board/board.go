// Package board converts between compact (slash-separated, run-length
// encoded) and expanded (one symbol per square) chess board representations.
package board

import (
	"fmt"
	"strings"

	"github.com/lightnote/puzzlerom/internal/errors"
)

// Board dimensions and the empty square symbol.
const (
	// Size is the number of squares on the board.
	Size = 64

	// RankWidth is the number of squares per rank.
	RankWidth = 8

	// Empty is the symbol used for an unoccupied square.
	Empty = '1'

	// RankSeparator delimits ranks in the compact representation.
	RankSeparator = '/'
)

// Board is an expanded board: exactly 64 symbols, indexed 0..63 in row-major
// order from a8 to h1. Uppercase letters are white pieces, lowercase letters
// black pieces, '1' an empty square. The zero value is not a valid board;
// construct one with New or Expand.
type Board struct {
	squares string
}

// validSymbol reports whether c is a legal expanded-board symbol.
func validSymbol(c byte) bool {
	switch c {
	case 'p', 'n', 'b', 'r', 'q', 'k', 'P', 'N', 'B', 'R', 'Q', 'K', Empty:
		return true
	}
	return false
}

// New creates a board from an expanded 64-symbol string.
func New(expanded string) (Board, error) {
	if len(expanded) != Size {
		return Board{}, fmt.Errorf("expected %d squares, got %d: %w", Size, len(expanded), errors.ErrMalformedBoard)
	}
	for i := 0; i < len(expanded); i++ {
		if !validSymbol(expanded[i]) {
			return Board{}, fmt.Errorf("invalid symbol %q at square %d: %w", expanded[i], i, errors.ErrMalformedBoard)
		}
	}
	return Board{squares: expanded}, nil
}

// Expand converts a compact board string into an expanded board. Digits 1-8
// expand to that many empty squares and rank separators are dropped; the
// separators may be absent entirely. The result must cover exactly 64
// squares.
func Expand(compact string) (Board, error) {
	var sb strings.Builder
	sb.Grow(Size)

	for i := 0; i < len(compact); i++ {
		c := compact[i]
		switch {
		case c == RankSeparator:
			continue
		case c >= '1' && c <= '8':
			for n := byte(0); n < c-'0'; n++ {
				sb.WriteByte(Empty)
			}
		case validSymbol(c):
			sb.WriteByte(c)
		default:
			return Board{}, fmt.Errorf("invalid symbol %q at offset %d: %w", c, i, errors.ErrMalformedBoard)
		}
	}

	if sb.Len() != Size {
		return Board{}, fmt.Errorf("expanded to %d squares, want %d: %w", sb.Len(), Size, errors.ErrMalformedBoard)
	}
	return Board{squares: sb.String()}, nil
}

// Compact returns the run-length encoded representation: ranks joined by
// '/' with runs of consecutive empty squares collapsed to a digit. It is
// the exact inverse of Expand.
func (b Board) Compact() string {
	var sb strings.Builder

	for rank := 0; rank < Size; rank += RankWidth {
		if rank > 0 {
			sb.WriteByte(RankSeparator)
		}
		run := 0
		for i := rank; i < rank+RankWidth; i++ {
			if b.squares[i] == Empty {
				run++
				continue
			}
			if run > 0 {
				sb.WriteByte(byte('0' + run))
				run = 0
			}
			sb.WriteByte(b.squares[i])
		}
		if run > 0 {
			sb.WriteByte(byte('0' + run))
		}
	}

	return sb.String()
}

// Rotate180 returns the board as seen from the opposite side: each rank's
// symbol order reversed and the rank order reversed. For a row-major 64
// symbol string that is a full reversal.
func (b Board) Rotate180() Board {
	rev := make([]byte, Size)
	for i := 0; i < Size; i++ {
		rev[i] = b.squares[Size-1-i]
	}
	return Board{squares: string(rev)}
}

// At returns the symbol at the given linear index.
func (b Board) At(idx int) byte {
	return b.squares[idx]
}

// Put returns a copy of the board with the symbol at idx replaced.
func (b Board) Put(idx int, symbol byte) Board {
	sq := []byte(b.squares)
	sq[idx] = symbol
	return Board{squares: string(sq)}
}

// String returns the expanded 64-symbol representation.
func (b Board) String() string {
	return b.squares
}
