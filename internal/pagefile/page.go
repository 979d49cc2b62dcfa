// Package pagefile serializes board snapshots into fixed-size page records
// and manages the individually named output units they are written to.
package pagefile

import (
	"fmt"

	"github.com/lightnote/puzzlerom/internal/board"
	"github.com/lightnote/puzzlerom/internal/errors"
)

// MaxRecordLen is the maximum length of a serialized page record line,
// excluding the trailing newline. It equals the ROM row size: a record that
// fits a row always fits the image.
const MaxRecordLen = 96

// Page is one output record: the board state after applying one puzzle
// move, with the move's display indices and position in the sequence.
// Rating and Theme are carried for unit naming only; they are not part of
// the serialized record.
type Page struct {
	PuzzleID   string
	Board      board.Board
	From       int
	To         int
	MoveNumber int // 1-based
	TotalMoves int
	Rating     int
	Theme      string
}

// Line serializes the page as a single delimited record:
// id,expandedBoard,fromIndex,toIndex,moveNumber,totalMoves. The index pair
// is zero-padded to two digits.
func (p Page) Line() (string, error) {
	line := fmt.Sprintf("%s,%s,%02d,%02d,%d,%d",
		p.PuzzleID, p.Board.String(), p.From, p.To, p.MoveNumber, p.TotalMoves)
	if len(line) > MaxRecordLen {
		return "", fmt.Errorf("%d bytes, budget %d: %w", len(line), MaxRecordLen, errors.ErrRecordTooLarge)
	}
	return line, nil
}

// UnitName returns the record's unit name. Lexicographic ordering of unit
// names reproduces puzzle and move order, and the first move of a puzzle is
// identifiable by its fixed "-01" move-number suffix.
func (p Page) UnitName() string {
	return fmt.Sprintf("puzzle-%s-%d-%s-%02d.txt", p.PuzzleID, p.Rating, p.Theme, p.MoveNumber)
}

// FirstMove reports whether this page is the first move of its puzzle.
func (p Page) FirstMove() bool {
	return p.MoveNumber == 1
}

// Less is the explicit sort key for page records: puzzle id, then move
// number. MemStore orders its units by it; unit-name ordering is the
// equivalent contract for the on-disk interchange format used by DirStore.
func Less(a, b Page) bool {
	if a.PuzzleID != b.PuzzleID {
		return a.PuzzleID < b.PuzzleID
	}
	return a.MoveNumber < b.MoveNumber
}

// firstMoveSuffix identifies the first unit of a puzzle by name.
const firstMoveSuffix = "-01.txt"

// Unit is one named page record as stored on disk.
type Unit struct {
	Name string
	Data []byte
}

// IsFirstMove reports whether the unit name marks the first move of a
// puzzle.
func (u Unit) IsFirstMove() bool {
	return len(u.Name) >= len(firstMoveSuffix) &&
		u.Name[len(u.Name)-len(firstMoveSuffix):] == firstMoveSuffix
}

// PuzzleKey returns the part of the unit name shared by all records of the
// same puzzle: everything before the final hyphen.
func (u Unit) PuzzleKey() string {
	for i := len(u.Name) - 1; i >= 0; i-- {
		if u.Name[i] == '-' {
			return u.Name[:i]
		}
	}
	return u.Name
}
