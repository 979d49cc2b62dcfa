// processor.go - Replay pipeline orchestration
package main

import (
	"errors"
	"io"

	"github.com/retroenv/retrogolib/log"

	"github.com/lightnote/puzzlerom/internal/config"
	"github.com/lightnote/puzzlerom/internal/pagefile"
	"github.com/lightnote/puzzlerom/internal/puzzle"
	"github.com/lightnote/puzzlerom/internal/replay"
	"github.com/lightnote/puzzlerom/internal/rom"
	"github.com/lightnote/puzzlerom/internal/worker"
)

// Processor drives puzzles from a reader through replay into a page
// store, stopping when the ROM layout cannot admit another puzzle.
type Processor struct {
	cfg    *config.Config
	logger *log.Logger
	store  pagefile.Store
	layout rom.Layout
}

// NewProcessor creates a processor writing pages to store.
func NewProcessor(cfg *config.Config, logger *log.Logger, store pagefile.Store, layout rom.Layout) *Processor {
	return &Processor{
		cfg:    cfg,
		logger: logger,
		store:  store,
		layout: layout,
	}
}

// Run consumes all puzzles from r and returns the run totals.
func (p *Processor) Run(r *puzzle.Reader) (replay.Totals, error) {
	if p.cfg.Workers > 1 {
		return p.runParallel(r)
	}
	return p.runSequential(r)
}

func (p *Processor) runSequential(r *puzzle.Reader) (replay.Totals, error) {
	runner := replay.NewRunner(p.cfg)
	sink := replay.NewSink(p.store)

	for {
		if !p.layout.CanFitPuzzle(sink.Totals().Pages) {
			p.logger.Info("ROM capacity reached", log.Int("pages", sink.Totals().Pages))
			break
		}

		pz, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sink.Totals(), err
		}

		res := runner.Replay(pz)
		p.logResult(res)
		if err := sink.Consume(res); err != nil {
			return sink.Totals(), err
		}
	}

	return sink.Totals(), nil
}

// runParallel fans puzzles out to a worker pool. A single consumer
// applies results to the sink so page counts stay exact; once
// capacity is reached the pool is stopped and remaining results are
// drained without being admitted.
func (p *Processor) runParallel(r *puzzle.Reader) (replay.Totals, error) {
	runner := replay.NewRunner(p.cfg)
	sink := replay.NewSink(p.store)

	pool := worker.NewReplayPool(runner,
		worker.WithWorkers(p.cfg.Workers),
		worker.WithBufferSize(p.cfg.Workers*4))
	pool.Start()

	readErr := make(chan error, 1)
	go func() {
		defer pool.Close()
		index := 0
		for {
			pz, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				readErr <- err
				return
			}
			if pool.IsStopped() {
				return
			}
			pool.Submit(worker.WorkItem{Puzzle: pz, Index: index})
			index++
		}
	}()

	var consumeErr error
	for res := range pool.Results() {
		if consumeErr != nil || pool.IsStopped() {
			continue // Drain remaining results
		}
		p.logResult(res.Result)
		if err := sink.Consume(res.Result); err != nil {
			consumeErr = err
			pool.Stop()
			continue
		}
		if !p.layout.CanFitPuzzle(sink.Totals().Pages) {
			p.logger.Info("ROM capacity reached", log.Int("pages", sink.Totals().Pages))
			pool.Stop()
		}
	}

	if consumeErr != nil {
		return sink.Totals(), consumeErr
	}
	select {
	case err := <-readErr:
		return sink.Totals(), err
	default:
	}
	return sink.Totals(), nil
}

func (p *Processor) logResult(res replay.Result) {
	if res.Err != nil || !p.cfg.Verbose {
		return
	}
	if res.Accepted() {
		p.logger.Debug("puzzle accepted",
			log.String("id", res.Puzzle.ID),
			log.Int("pages", len(res.Pages)))
		return
	}
	p.logger.Debug("puzzle skipped",
		log.String("id", res.Puzzle.ID),
		log.String("reason", res.Reason.String()),
		log.String("detail", res.Detail))
}
