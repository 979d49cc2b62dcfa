// Package engine applies puzzle moves to an expanded board and converts
// algebraic squares to linear indices. Moves are trusted pseudo-legal input
// from the puzzle database; no legality checking is performed.
package engine

import (
	"fmt"
	"unicode"

	"github.com/lightnote/puzzlerom/internal/board"
	"github.com/lightnote/puzzlerom/internal/errors"
)

// Move is a parsed move token: source and destination as linear square
// indices (0..63, unrotated) plus an optional promotion piece letter.
type Move struct {
	From      int
	To        int
	Promotion byte // 0 if the move is not a promotion
	Text      string
}

// SquareIndex computes the linear index of a square given its file letter
// ('a'..'h') and rank digit ('1'..'8'). When rotated is true the index is
// point-reflected about the board center, matching Board.Rotate180.
func SquareIndex(file, rank byte, rotated bool) (int, error) {
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, fmt.Errorf("square %c%c: %w", file, rank, errors.ErrInvalidSquare)
	}
	idx := int(file-'a') + (8-int(rank-'0'))*board.RankWidth
	if rotated {
		idx = board.Size - 1 - idx
	}
	return idx, nil
}

// ParseMove parses a 4- or 5-character move token (e.g. "e2e4", "a7a8q")
// into a Move with unrotated linear indices.
func ParseMove(token string) (Move, error) {
	if len(token) < 4 {
		return Move{}, fmt.Errorf("token %q too short: %w", token, errors.ErrInvalidMove)
	}

	from, err := SquareIndex(token[0], token[1], false)
	if err != nil {
		return Move{}, err
	}
	to, err := SquareIndex(token[2], token[3], false)
	if err != nil {
		return Move{}, err
	}

	m := Move{From: from, To: to, Text: token}
	if len(token) > 4 {
		p := token[4]
		if !unicode.IsLetter(rune(p)) {
			return Move{}, fmt.Errorf("promotion %q: %w", p, errors.ErrInvalidMove)
		}
		m.Promotion = p
	}
	return m, nil
}

// DisplayIndices returns the source and destination indices for the output
// record, point-reflected when the board was orientation-flipped.
func (m Move) DisplayIndices(rotated bool) (from, to int) {
	if rotated {
		return board.Size - 1 - m.From, board.Size - 1 - m.To
	}
	return m.From, m.To
}

// ApplyMove applies a move to an expanded board and returns the updated
// board together with the symbol of the piece that moved. The source square
// becomes empty and the destination receives the moved piece, or the
// promotion letter cased to the mover's side. Captures, castling and
// en passant need no special handling because only the source and
// destination squares change.
func ApplyMove(b board.Board, m Move) (board.Board, byte, error) {
	if m.From < 0 || m.From >= board.Size || m.To < 0 || m.To >= board.Size {
		return board.Board{}, 0, fmt.Errorf("move %s: %w", m.Text, errors.ErrInvalidMove)
	}

	moved := b.At(m.From)

	dest := moved
	if m.Promotion != 0 {
		if moved >= 'A' && moved <= 'Z' {
			dest = byte(unicode.ToUpper(rune(m.Promotion)))
		} else {
			dest = byte(unicode.ToLower(rune(m.Promotion)))
		}
	}

	return b.Put(m.From, board.Empty).Put(m.To, dest), moved, nil
}
