// puzzlerom compiles Lichess puzzle CSV exports into page record files and a
// flash ROM image for the lightnote reader device.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"

	"github.com/lightnote/puzzlerom/internal/config"
	"github.com/lightnote/puzzlerom/internal/pagefile"
	"github.com/lightnote/puzzlerom/internal/puzzle"
	"github.com/lightnote/puzzlerom/internal/replay"
	"github.com/lightnote/puzzlerom/internal/rom"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("puzzlerom version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	cfg.Normalize()

	logger := config.CreateLogger(cfg.Verbose, cfg.Quiet)
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.Err(err))
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Compiling puzzles failed", log.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *log.Logger) error {
	input, name, err := openInput()
	if err != nil {
		return err
	}
	defer input.Close()

	store, err := createStore(cfg)
	if err != nil {
		return err
	}

	layout := rom.DefaultLayout()
	layout.MaxMoves = cfg.MaxMoves
	if err := layout.Validate(); err != nil {
		return err
	}

	logger.Info("Compiling puzzles",
		log.String("input", name),
		log.Int("workers", cfg.Workers))
	if cfg.DryRun {
		logger.Info("Dry run, no output will be written")
	}

	reader := puzzle.NewReader(input)
	totals, err := NewProcessor(cfg, logger, store, layout).Run(reader)
	if err != nil {
		return err
	}
	reportTotals(logger, totals, layout)

	if cfg.DryRun || !cfg.GenerateROM {
		return nil
	}
	return writeROM(cfg, logger, store, layout)
}

// openInput opens the CSV source: the first positional argument, or
// stdin when none is given.
func openInput() (io.ReadCloser, string, error) {
	if flag.NArg() == 0 {
		return io.NopCloser(os.Stdin), "stdin", nil
	}
	name := flag.Arg(0)
	file, err := os.Open(name)
	if err != nil {
		return nil, "", fmt.Errorf("opening input %s: %w", name, err)
	}
	return file, name, nil
}

// createStore picks the page store for this run. Dry runs validate
// records without writing anything.
func createStore(cfg *config.Config) (pagefile.Store, error) {
	if cfg.DryRun {
		return pagefile.NopStore{}, nil
	}
	return pagefile.NewDirStore(cfg.OutputDir)
}

func reportTotals(logger *log.Logger, totals replay.Totals, layout rom.Layout) {
	logger.Info("Replay complete",
		log.Int("processed", totals.Processed),
		log.Int("generated", totals.Accepted),
		log.Int("skipped", totals.Rejected),
		log.Int("pages", totals.Pages),
		log.Int("payload_kb", totals.PayloadBytes(layout.RowSize)/1024))

	for reason, count := range totals.Reasons {
		logger.Debug("skip reason",
			log.String("reason", reason.String()),
			log.Int("count", count))
	}
}

func writeROM(cfg *config.Config, logger *log.Logger, store pagefile.Store, layout rom.Layout) error {
	units, err := store.Units()
	if err != nil {
		return err
	}

	image, stats, err := rom.Assemble(units, layout)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.ROMFile, image, 0o644); err != nil {
		return fmt.Errorf("writing ROM image %s: %w", cfg.ROMFile, err)
	}

	logger.Info("ROM image written",
		log.String("file", cfg.ROMFile),
		log.String("contents", stats.Describe()))
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: puzzlerom [options] [puzzle-csv]\n\n")
	fmt.Fprintf(os.Stderr, "Compiles chess puzzles into page records and a flash ROM image.\n")
	fmt.Fprintf(os.Stderr, "Reads the Lichess puzzle CSV export from the given file or stdin.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
