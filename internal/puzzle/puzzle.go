// Package puzzle provides the puzzle record type and a streaming reader for
// the puzzle database CSV format.
package puzzle

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lightnote/puzzlerom/internal/errors"
)

// Field positions in a puzzle database row. The row carries more fields
// (rating deviation, popularity, play count, game URL); only these are
// consumed.
const (
	fieldID     = 0
	fieldFEN    = 1
	fieldMoves  = 2
	fieldRating = 3
	fieldThemes = 7

	// minFields is the minimum number of columns a row must have.
	minFields = 8
)

// Puzzle is one puzzle record: starting position, winning move sequence and
// metadata. Records are immutable once parsed.
type Puzzle struct {
	ID        string
	FEN       string   // compact board only, side/castling fields stripped
	FirstMove byte     // side to move first: 'w' or 'b'
	Moves     []string // ordered move tokens
	Rating    int
	Themes    []string // lowercased theme tags
}

// HasTheme reports whether the puzzle carries the given theme tag
// (exact match, case-insensitive).
func (p *Puzzle) HasTheme(tag string) bool {
	tag = strings.ToLower(tag)
	for _, t := range p.Themes {
		if t == tag {
			return true
		}
	}
	return false
}

// FromRecord builds a Puzzle from one CSV row.
func FromRecord(fields []string) (*Puzzle, error) {
	if len(fields) < minFields {
		return nil, fmt.Errorf("got %d fields, want at least %d: %w", len(fields), minFields, errors.ErrMalformedInput)
	}

	fenFields := strings.Fields(fields[fieldFEN])
	if len(fenFields) == 0 {
		return nil, fmt.Errorf("empty position field: %w", errors.ErrMalformedInput)
	}

	firstMove := byte('w')
	if len(fenFields) > 1 && len(fenFields[1]) > 0 {
		firstMove = fenFields[1][0]
	}

	rating, err := strconv.Atoi(strings.TrimSpace(fields[fieldRating]))
	if err != nil {
		return nil, fmt.Errorf("rating %q: %w", fields[fieldRating], errors.ErrMalformedInput)
	}

	var themes []string
	for _, tag := range strings.Split(fields[fieldThemes], ",") {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			themes = append(themes, tag)
		}
	}

	return &Puzzle{
		ID:        fields[fieldID],
		FEN:       fenFields[0],
		FirstMove: firstMove,
		Moves:     strings.Fields(fields[fieldMoves]),
		Rating:    rating,
		Themes:    themes,
	}, nil
}

// Reader streams puzzle records from a CSV source. The header row is
// skipped.
type Reader struct {
	csv    *csv.Reader
	header bool
	row    int
}

// NewReader creates a streaming puzzle reader.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return &Reader{csv: cr}
}

// Next returns the next puzzle record. It returns io.EOF when the input is
// exhausted. A structurally invalid row is returned as an error wrapping
// ErrMalformedInput; the caller decides whether that aborts the run.
func (r *Reader) Next() (*Puzzle, error) {
	if !r.header {
		r.header = true
		if _, err := r.csv.Read(); err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, errors.Wrap(err, "reading header")
		}
		r.row++
	}

	fields, err := r.csv.Read()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, errors.Wrapf(errors.ErrMalformedInput, "row %d: %v", r.row+1, err)
	}
	r.row++

	p, err := FromRecord(fields)
	if err != nil {
		return nil, errors.Wrapf(err, "row %d", r.row)
	}
	return p, nil
}

// Row returns the number of rows consumed so far, including the header.
func (r *Reader) Row() int {
	return r.row
}
