// Package replay drives the move engine across each puzzle's move list,
// applying filters and producing one page record per move. A puzzle passes
// through the states Pending, Filtering, Replaying and ends Accepted or
// Rejected; rejections are routine, replay failures are fatal.
package replay

import (
	"fmt"

	"github.com/lightnote/puzzlerom/internal/board"
	"github.com/lightnote/puzzlerom/internal/config"
	"github.com/lightnote/puzzlerom/internal/engine"
	"github.com/lightnote/puzzlerom/internal/errors"
	"github.com/lightnote/puzzlerom/internal/pagefile"
	"github.com/lightnote/puzzlerom/internal/puzzle"
)

// Result is the outcome of replaying one puzzle. Exactly one of the
// following holds: Err is set (fatal), Reason is not ReasonNone (rejected,
// Pages empty), or the puzzle was accepted and Pages holds one record per
// move in order.
type Result struct {
	Puzzle *puzzle.Puzzle
	Pages  []pagefile.Page
	Reason RejectReason
	Detail string
	Err    error
}

// Accepted reports whether the puzzle passed all filters and replayed
// cleanly.
func (r Result) Accepted() bool {
	return r.Err == nil && r.Reason == ReasonNone
}

// Runner replays puzzles under a fixed configuration. Replay is a pure
// function of the puzzle and configuration, so a Runner is safe for
// concurrent use.
type Runner struct {
	cfg *config.Config
}

// NewRunner creates a Runner for the given configuration.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg}
}

// Replay applies the pre-replay filters, replays the move list and applies
// the last-moved-piece filter. The running board always advances through
// the non-rotated post-move state; orientation normalization applies only
// to the emitted page's board and index pair.
func (r *Runner) Replay(p *puzzle.Puzzle) Result {
	if reason, detail := PreFilter(p, r.cfg); reason != ReasonNone {
		return Result{Puzzle: p, Reason: reason, Detail: detail}
	}

	b, err := board.Expand(p.FEN)
	if err != nil {
		return Result{Puzzle: p, Err: &errors.PuzzleError{Err: err, PuzzleID: p.ID}}
	}

	// Puzzles whose first move belongs to white are shown from black's
	// side, keeping the display orientation consistent across puzzles.
	rotated := p.FirstMove == 'w'

	pages := make([]pagefile.Page, 0, len(p.Moves))
	var moved byte

	for i, token := range p.Moves {
		move, err := engine.ParseMove(token)
		if err != nil {
			return Result{Puzzle: p, Err: &errors.PuzzleError{Err: err, PuzzleID: p.ID, MoveNum: i + 1, MoveText: token}}
		}

		b, moved, err = engine.ApplyMove(b, move)
		if err != nil {
			return Result{Puzzle: p, Err: &errors.PuzzleError{Err: err, PuzzleID: p.ID, MoveNum: i + 1, MoveText: token}}
		}

		shown := b
		if rotated {
			shown = b.Rotate180()
		}
		from, to := move.DisplayIndices(rotated)

		pages = append(pages, pagefile.Page{
			PuzzleID:   p.ID,
			Board:      shown,
			From:       from,
			To:         to,
			MoveNumber: i + 1,
			TotalMoves: len(p.Moves),
			Rating:     p.Rating,
			Theme:      r.cfg.ThemeTag,
		})
	}

	if !allowedLastMove(moved, r.cfg) {
		return Result{
			Puzzle: p,
			Reason: ReasonLastMovePiece,
			Detail: fmt.Sprintf("last moved piece %q not in %q", moved, r.cfg.LastMovePieces),
		}
	}

	return Result{Puzzle: p, Pages: pages}
}
