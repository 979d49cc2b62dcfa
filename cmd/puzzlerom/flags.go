// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lightnote/puzzlerom/internal/config"
)

var (
	// Output options
	outputDir = flag.String("outdir", "fenpuzzles", "Directory for page record files")
	romFile   = flag.String("o", "lightnote.rom", "ROM image output file")
	noROM     = flag.Bool("norom", false, "Skip ROM image generation")
	dryRun    = flag.Bool("dry-run", false, "Replay and count puzzles without writing output")

	// Filtering options
	maxMoves       = flag.Int("max-moves", 10, "Maximum number of moves per puzzle")
	minMoves       = flag.Int("min-moves", 1, "Minimum number of moves per puzzle")
	maxRating      = flag.Int("max-rating", 3000, "Maximum puzzle rating")
	minRating      = flag.Int("min-rating", 500, "Minimum puzzle rating")
	themeTag       = flag.String("theme-tag", config.NoThemeTag, "Required theme tag ('none' disables the filter)")
	excludePieces  = flag.String("exclude-pieces", "", "Piece letters that must not appear in the starting position")
	lastMovePieces = flag.String("last-move-pieces", "prnbkq", "Piece letters allowed to make a puzzle's final move")
	fromPuzzleID   = flag.String("from-puzzle-id", "", "Skip puzzles with ids lexicographically before this")
	toPuzzleID     = flag.String("to-puzzle-id", "", "Skip puzzles with ids lexicographically after this")

	// Run options
	workers = flag.Int("workers", 1, "Number of parallel replay workers")
	verbose = flag.Bool("v", false, "Verbose output")
	quiet   = flag.Bool("q", false, "Only report errors")
	help    = flag.Bool("h", false, "Show usage information")
	version = flag.Bool("version", false, "Show version and exit")
)

// applyFlags copies the parsed flag values into the configuration.
func applyFlags(cfg *config.Config) {
	cfg.Verbose = *verbose
	cfg.Quiet = *quiet
	cfg.DryRun = *dryRun
	cfg.MaxMoves = *maxMoves
	cfg.MinMoves = *minMoves
	cfg.MaxRating = *maxRating
	cfg.MinRating = *minRating
	cfg.ThemeTag = *themeTag
	cfg.ExcludePieces = *excludePieces
	cfg.LastMovePieces = *lastMovePieces
	cfg.FromPuzzleID = *fromPuzzleID
	cfg.ToPuzzleID = *toPuzzleID
	cfg.OutputDir = *outputDir
	cfg.ROMFile = *romFile
	cfg.GenerateROM = !*noROM
	cfg.Workers = *workers
}
