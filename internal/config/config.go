// Package config provides configuration for the puzzle compiler.
package config

import (
	"fmt"
	"strings"

	"github.com/lightnote/puzzlerom/internal/errors"
)

// NoThemeTag is the sentinel theme tag that bypasses theme filtering.
const NoThemeTag = "none"

// Config holds the filter settings and run options for one compile run.
type Config struct {
	// Reporting
	Verbose bool
	Quiet   bool

	// DryRun counts puzzles and pages without writing any output.
	DryRun bool

	// Move-count bounds (inclusive).
	MaxMoves int
	MinMoves int

	// Rating bounds (inclusive).
	MaxRating int
	MinRating int

	// ThemeTag must be present in a puzzle's theme set; NoThemeTag
	// disables the filter. Also embedded in output unit names.
	ThemeTag string

	// ExcludePieces lists piece letters (lowercase) that must not appear
	// anywhere in the starting position.
	ExcludePieces string

	// LastMovePieces lists piece letters (lowercase) allowed as the piece
	// moved on a puzzle's final move.
	LastMovePieces string

	// Puzzle id range (lexicographic, inclusive); empty means unbounded.
	FromPuzzleID string
	ToPuzzleID   string

	// Output locations.
	OutputDir string
	ROMFile   string

	// GenerateROM controls whether the ROM image is assembled after
	// replay.
	GenerateROM bool

	// Workers is the number of parallel replay workers; 1 keeps the
	// strictly sequential reference order.
	Workers int
}

// NewConfig creates a Config with the default filter settings.
func NewConfig() *Config {
	return &Config{
		MaxMoves:       10,
		MinMoves:       1,
		MaxRating:      3000,
		MinRating:      500,
		ThemeTag:       NoThemeTag,
		LastMovePieces: "prnbkq",
		OutputDir:      "fenpuzzles",
		ROMFile:        "lightnote.rom",
		GenerateROM:    true,
		Workers:        1,
	}
}

// Normalize lowercases the piece lists and the theme tag.
func (c *Config) Normalize() {
	c.ExcludePieces = strings.ToLower(c.ExcludePieces)
	c.LastMovePieces = strings.ToLower(c.LastMovePieces)
	c.ThemeTag = strings.ToLower(strings.TrimSpace(c.ThemeTag))
	if c.ThemeTag == "" {
		c.ThemeTag = NoThemeTag
	}
}

// Validate checks the configuration for inconsistent values.
func (c *Config) Validate() error {
	if c.MinMoves < 1 {
		return fmt.Errorf("min moves %d, must be at least 1: %w", c.MinMoves, errors.ErrInvalidConfig)
	}
	if c.MaxMoves < c.MinMoves {
		return fmt.Errorf("max moves %d below min moves %d: %w", c.MaxMoves, c.MinMoves, errors.ErrInvalidConfig)
	}
	if c.MaxRating < c.MinRating {
		return fmt.Errorf("max rating %d below min rating %d: %w", c.MaxRating, c.MinRating, errors.ErrInvalidConfig)
	}
	if c.LastMovePieces == "" {
		return fmt.Errorf("last move piece list is empty: %w", errors.ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers %d, must be at least 1: %w", c.Workers, errors.ErrInvalidConfig)
	}
	for _, list := range []string{c.ExcludePieces, c.LastMovePieces} {
		for _, p := range list {
			if !strings.ContainsRune("prnbqk", p) {
				return fmt.Errorf("unknown piece letter %q: %w", p, errors.ErrInvalidConfig)
			}
		}
	}
	return nil
}
