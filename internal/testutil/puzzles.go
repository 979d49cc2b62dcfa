package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// CSVHeader is the column header of the Lichess puzzle export format.
const CSVHeader = "PuzzleId,FEN,Moves,Rating,RatingDeviation,Popularity,NbPlays,Themes,GameUrl,OpeningTags"

// PuzzleRow builds one CSV row in the export format from the fields
// the compiler reads, padding the remaining columns.
func PuzzleRow(id, fenWithSide, moves string, rating int, themes string) string {
	return strings.Join([]string{
		id,
		fenWithSide,
		moves,
		strconv.Itoa(rating),
		"75", "90", "1000",
		themes,
		"https://example.org/game", "",
	}, ",")
}

// WriteCSV writes a puzzle CSV file with header and rows into a temp
// directory and returns its path.
func WriteCSV(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "puzzles.csv")
	content := CSVHeader + "\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture csv: %v", err)
	}
	return path
}
