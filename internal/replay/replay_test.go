package replay

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lightnote/puzzlerom/internal/board"
	"github.com/lightnote/puzzlerom/internal/config"
	pzerrors "github.com/lightnote/puzzlerom/internal/errors"
	"github.com/lightnote/puzzlerom/internal/pagefile"
	"github.com/lightnote/puzzlerom/internal/puzzle"
)

func TestReplay_CastlingNotationAsKingMove(t *testing.T) {
	// A white-to-move puzzle: the display board is rotated and the index
	// pair reflected.
	p := &puzzle.Puzzle{
		ID:        "1",
		FEN:       "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R",
		FirstMove: 'w',
		Moves:     []string{"e1g1"},
		Rating:    1500,
		Themes:    []string{"mate"},
	}

	cfg := config.NewConfig()
	res := NewRunner(cfg).Replay(p)
	if !res.Accepted() {
		t.Fatalf("Replay() not accepted: reason=%v err=%v", res.Reason, res.Err)
	}
	if len(res.Pages) != 1 {
		t.Fatalf("Replay() produced %d pages, want 1", len(res.Pages))
	}

	page := res.Pages[0]
	// e1 is index 60, g1 index 62; reflected through the board center.
	if page.From != 3 || page.To != 1 {
		t.Errorf("indices = %d,%d, want 3,1", page.From, page.To)
	}
	// e1's former square is empty, g1 holds the king.
	if got := page.Board.At(3); got != board.Empty {
		t.Errorf("source square symbol = %c, want empty", got)
	}
	if got := page.Board.At(1); got != 'K' {
		t.Errorf("destination square symbol = %c, want K", got)
	}
	if page.Board.Compact() != "RKB1QBNR/PPP1PPPP/2N5/3P4/3p4/5n2/ppp1pppp/rnbkqb1r" {
		t.Errorf("rotated board = %q", page.Board.Compact())
	}
	if page.MoveNumber != 1 || page.TotalMoves != 1 {
		t.Errorf("move counters = %d/%d, want 1/1", page.MoveNumber, page.TotalMoves)
	}
}

func TestReplay_BlackToMoveKeepsOrientation(t *testing.T) {
	p := &puzzle.Puzzle{
		ID:        "2",
		FEN:       "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		FirstMove: 'b',
		Moves:     []string{"e7e5"},
		Rating:    1500,
	}

	res := NewRunner(config.NewConfig()).Replay(p)
	if !res.Accepted() {
		t.Fatalf("Replay() not accepted: reason=%v err=%v", res.Reason, res.Err)
	}

	page := res.Pages[0]
	// e7 index 12, e5 index 28, unreflected.
	if page.From != 12 || page.To != 28 {
		t.Errorf("indices = %d,%d, want 12,28", page.From, page.To)
	}
	if page.Board.Compact() != "rnbqkbnr/pppp1ppp/8/4p3/8/8/PPPPPPPP/RNBQKBNR" {
		t.Errorf("board = %q", page.Board.Compact())
	}
}

func TestReplay_RunningBoardIsNeverRotated(t *testing.T) {
	// Two moves on a white-first puzzle: the second move must apply to
	// the unrotated board even though pages are emitted rotated.
	p := &puzzle.Puzzle{
		ID:        "3",
		FEN:       "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		FirstMove: 'w',
		Moves:     []string{"e2e4", "e7e5"},
		Rating:    1500,
	}

	res := NewRunner(config.NewConfig()).Replay(p)
	if !res.Accepted() {
		t.Fatalf("Replay() not accepted: reason=%v err=%v", res.Reason, res.Err)
	}
	if len(res.Pages) != 2 {
		t.Fatalf("Replay() produced %d pages, want 2", len(res.Pages))
	}

	// Rotated view of the position after 1.e4 e5.
	want := "RNBKQBNR/PPPP1PPP/8/4P3/4p3/8/pppp1ppp/rnbkqbnr"
	if got := res.Pages[1].Board.Compact(); got != want {
		t.Errorf("second page board = %q, want %q", got, want)
	}
}

func TestReplay_Promotion(t *testing.T) {
	p := &puzzle.Puzzle{
		ID:        "4",
		FEN:       "8/8/8/8/8/8/7p/8",
		FirstMove: 'b',
		Moves:     []string{"h2h1q"},
		Rating:    1500,
	}

	cfg := config.NewConfig()
	res := NewRunner(cfg).Replay(p)
	if !res.Accepted() {
		t.Fatalf("Replay() not accepted: reason=%v err=%v", res.Reason, res.Err)
	}
	if got := res.Pages[0].Board.Compact(); got != "8/8/8/8/8/8/8/7q" {
		t.Errorf("board after promotion = %q", got)
	}
}

func TestReplay_PreFilterRejection(t *testing.T) {
	p := &puzzle.Puzzle{
		ID:        "5",
		FEN:       "8/8/8/8/8/8/7p/8",
		FirstMove: 'b',
		Moves:     []string{"h2h1q"},
		Rating:    9999,
	}

	res := NewRunner(config.NewConfig()).Replay(p)
	if res.Accepted() {
		t.Fatal("Replay() accepted an over-rated puzzle")
	}
	if res.Reason != ReasonRatingTooHigh {
		t.Errorf("Reason = %v, want ReasonRatingTooHigh", res.Reason)
	}
	if len(res.Pages) != 0 {
		t.Errorf("rejected puzzle produced %d pages, want 0", len(res.Pages))
	}
}

func TestReplay_LastMovePieceRejection(t *testing.T) {
	p := &puzzle.Puzzle{
		ID:        "6",
		FEN:       "8/8/8/8/8/8/7p/8",
		FirstMove: 'b',
		Moves:     []string{"h2h1q"},
		Rating:    1500,
	}

	cfg := config.NewConfig()
	cfg.LastMovePieces = "n"

	res := NewRunner(cfg).Replay(p)
	if res.Accepted() {
		t.Fatal("Replay() accepted despite last-move filter")
	}
	if res.Reason != ReasonLastMovePiece {
		t.Errorf("Reason = %v, want ReasonLastMovePiece", res.Reason)
	}
	if len(res.Pages) != 0 {
		t.Errorf("rejected puzzle kept %d pages, want 0", len(res.Pages))
	}
}

func TestReplay_InvalidMoveIsFatal(t *testing.T) {
	p := &puzzle.Puzzle{
		ID:        "7",
		FEN:       "8/8/8/8/8/8/7p/8",
		FirstMove: 'b',
		Moves:     []string{"h2x9"},
		Rating:    1500,
	}

	res := NewRunner(config.NewConfig()).Replay(p)
	if res.Err == nil {
		t.Fatal("Replay() error = nil for invalid move")
	}
	var perr *pzerrors.PuzzleError
	if !errors.As(res.Err, &perr) {
		t.Fatalf("error %v is not a PuzzleError", res.Err)
	}
	if perr.PuzzleID != "7" || perr.MoveNum != 1 || perr.MoveText != "h2x9" {
		t.Errorf("PuzzleError context = %+v", perr)
	}
}

func TestReplay_MalformedBoardIsFatal(t *testing.T) {
	p := &puzzle.Puzzle{
		ID:        "8",
		FEN:       "8/8/8",
		FirstMove: 'b',
		Moves:     []string{"e2e4"},
		Rating:    1500,
	}

	res := NewRunner(config.NewConfig()).Replay(p)
	if !errors.Is(res.Err, pzerrors.ErrMalformedBoard) {
		t.Errorf("Replay() error = %v, want ErrMalformedBoard", res.Err)
	}
}

func TestReplay_Idempotent(t *testing.T) {
	p := &puzzle.Puzzle{
		ID:        "00sHx",
		FEN:       "q3k1nr/1pp1nQpp/3p4/1P2p3/4P3/B2P4/P1P3PP/5RK1",
		FirstMove: 'b',
		Moves:     []string{"e8d7", "a2e6", "d7d8", "f7f8"},
		Rating:    1760,
		Themes:    []string{"mate", "matein2"},
	}

	runner := NewRunner(config.NewConfig())
	first := runner.Replay(p)
	second := runner.Replay(p)

	if diff := cmp.Diff(first.Pages, second.Pages, cmp.Comparer(func(a, b board.Board) bool {
		return a.String() == b.String()
	})); diff != "" {
		t.Errorf("repeated replay differs (-first +second):\n%s", diff)
	}
}

func TestSink(t *testing.T) {
	store := pagefile.NewMemStore()
	sink := NewSink(store)

	runner := NewRunner(config.NewConfig())

	accepted := &puzzle.Puzzle{
		ID: "aaa", FEN: "8/8/8/8/8/8/7p/8", FirstMove: 'b',
		Moves: []string{"h2h1q"}, Rating: 1500,
	}
	rejected := &puzzle.Puzzle{
		ID: "bbb", FEN: "8/8/8/8/8/8/7p/8", FirstMove: 'b',
		Moves: []string{"h2h1q"}, Rating: 9999,
	}

	if err := sink.Consume(runner.Replay(accepted)); err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	if err := sink.Consume(runner.Replay(rejected)); err != nil {
		t.Fatalf("Consume() error = %v", err)
	}

	totals := sink.Totals()
	if totals.Processed != 2 || totals.Accepted != 1 || totals.Rejected != 1 {
		t.Errorf("totals = %+v", totals)
	}
	if totals.Pages != 1 {
		t.Errorf("Pages = %d, want 1", totals.Pages)
	}
	if totals.Reasons[ReasonRatingTooHigh] != 1 {
		t.Errorf("Reasons = %v", totals.Reasons)
	}
	if store.Len() != totals.Pages {
		t.Errorf("store holds %d units, totals count %d pages", store.Len(), totals.Pages)
	}
}

func TestSink_RejectedPuzzleLeavesNoUnits(t *testing.T) {
	store := pagefile.NewMemStore()
	sink := NewSink(store)

	cfg := config.NewConfig()
	cfg.LastMovePieces = "n"
	runner := NewRunner(cfg)

	p := &puzzle.Puzzle{
		ID: "ccc", FEN: "8/8/8/8/8/8/7p/8", FirstMove: 'b',
		Moves: []string{"h2h1q"}, Rating: 1500,
	}
	if err := sink.Consume(runner.Replay(p)); err != nil {
		t.Fatalf("Consume() error = %v", err)
	}

	if store.Len() != 0 {
		t.Errorf("store holds %d units after rejection, want 0", store.Len())
	}
	totals := sink.Totals()
	if totals.Accepted != 0 || totals.Pages != 0 {
		t.Errorf("totals = %+v, want no accepted pages", totals)
	}
}
