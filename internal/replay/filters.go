package replay

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lightnote/puzzlerom/internal/config"
	"github.com/lightnote/puzzlerom/internal/puzzle"
)

// RejectReason identifies which filter rejected a puzzle. Rejections are
// routine control flow, not errors.
type RejectReason int

const (
	ReasonNone RejectReason = iota
	ReasonExcludedPiece
	ReasonRatingTooHigh
	ReasonRatingTooLow
	ReasonTooManyMoves
	ReasonTooFewMoves
	ReasonThemeMissing
	ReasonIDBeforeRange
	ReasonIDAfterRange
	ReasonLastMovePiece
)

// String returns a short label for the reason.
func (r RejectReason) String() string {
	switch r {
	case ReasonNone:
		return "accepted"
	case ReasonExcludedPiece:
		return "excluded piece"
	case ReasonRatingTooHigh:
		return "rating too high"
	case ReasonRatingTooLow:
		return "rating too low"
	case ReasonTooManyMoves:
		return "too many moves"
	case ReasonTooFewMoves:
		return "too few moves"
	case ReasonThemeMissing:
		return "missing theme"
	case ReasonIDBeforeRange:
		return "id before range"
	case ReasonIDAfterRange:
		return "id after range"
	case ReasonLastMovePiece:
		return "last moved piece not allowed"
	}
	return "unknown"
}

// PreFilter evaluates the pre-replay filters in their fixed order: piece
// blacklist, rating upper bound, rating lower bound, move-count upper
// bound, move-count lower bound, theme tag, puzzle-id range. It returns
// ReasonNone when the puzzle passes, otherwise the first failing filter
// and a human-readable detail for verbose reporting.
func PreFilter(p *puzzle.Puzzle, cfg *config.Config) (RejectReason, string) {
	lowerFEN := strings.ToLower(p.FEN)
	for _, piece := range cfg.ExcludePieces {
		if strings.ContainsRune(lowerFEN, piece) {
			return ReasonExcludedPiece, fmt.Sprintf("contains excluded piece %q", piece)
		}
	}

	if p.Rating > cfg.MaxRating {
		return ReasonRatingTooHigh, fmt.Sprintf("rating %d > max %d", p.Rating, cfg.MaxRating)
	}
	if p.Rating < cfg.MinRating {
		return ReasonRatingTooLow, fmt.Sprintf("rating %d < min %d", p.Rating, cfg.MinRating)
	}

	if len(p.Moves) > cfg.MaxMoves {
		return ReasonTooManyMoves, fmt.Sprintf("move count %d > max %d", len(p.Moves), cfg.MaxMoves)
	}
	if len(p.Moves) < cfg.MinMoves {
		return ReasonTooFewMoves, fmt.Sprintf("move count %d < min %d", len(p.Moves), cfg.MinMoves)
	}

	if cfg.ThemeTag != config.NoThemeTag && !p.HasTheme(cfg.ThemeTag) {
		return ReasonThemeMissing, fmt.Sprintf("missing theme %q (has: %s)", cfg.ThemeTag, strings.Join(p.Themes, ", "))
	}

	if cfg.FromPuzzleID != "" && p.ID < cfg.FromPuzzleID {
		return ReasonIDBeforeRange, fmt.Sprintf("id %s < from id %s", p.ID, cfg.FromPuzzleID)
	}
	if cfg.ToPuzzleID != "" && p.ID > cfg.ToPuzzleID {
		return ReasonIDAfterRange, fmt.Sprintf("id %s > to id %s", p.ID, cfg.ToPuzzleID)
	}

	return ReasonNone, ""
}

// allowedLastMove reports whether the symbol of the piece moved on the
// final move belongs to the whitelist (case-insensitive).
func allowedLastMove(moved byte, cfg *config.Config) bool {
	return strings.ContainsRune(cfg.LastMovePieces, unicode.ToLower(rune(moved)))
}
