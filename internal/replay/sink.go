package replay

import (
	"github.com/lightnote/puzzlerom/internal/pagefile"
)

// Totals are the run-level counters folded from per-puzzle results.
type Totals struct {
	Processed int
	Accepted  int
	Rejected  int
	Pages     int
	Reasons   map[RejectReason]int
}

// PayloadBytes returns the ROM payload size of the emitted pages for the
// given row size.
func (t Totals) PayloadBytes(rowSize int) int {
	return t.Pages * rowSize
}

// Sink is the single aggregating stage that persists accepted pages and
// folds results into run totals. All results must flow through one Sink
// from one goroutine so that the page counters always equal the number of
// retained units, even when replay itself runs in parallel.
type Sink struct {
	store  pagefile.Store
	totals Totals
}

// NewSink creates a Sink writing to the given store.
func NewSink(store pagefile.Store) *Sink {
	return &Sink{
		store:  store,
		totals: Totals{Reasons: make(map[RejectReason]int)},
	}
}

// Consume folds one result into the totals, persisting its pages when the
// puzzle was accepted. A replay error or a store failure is returned as a
// fatal error; before reporting a store failure the puzzle's already
// written units are removed so no partially persisted puzzle remains.
func (s *Sink) Consume(res Result) error {
	s.totals.Processed++

	if res.Err != nil {
		return res.Err
	}
	if !res.Accepted() {
		s.totals.Rejected++
		s.totals.Reasons[res.Reason]++
		return nil
	}

	for i, page := range res.Pages {
		if err := s.store.Write(page); err != nil {
			for _, written := range res.Pages[:i] {
				_ = s.store.Remove(written) // best effort, error already pending
			}
			return err
		}
	}

	s.totals.Accepted++
	s.totals.Pages += len(res.Pages)
	return nil
}

// Totals returns a copy of the folded counters.
func (s *Sink) Totals() Totals {
	return s.totals
}
