// Package rom assembles replayed puzzle pages into a flash image for
// the reader device.
package rom

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/lightnote/puzzlerom/internal/errors"
	"github.com/lightnote/puzzlerom/internal/pagefile"
)

// Magic identifies a puzzle flash image. Stored little-endian at the
// start of the config sector.
const Magic uint32 = 0x11131719

// PageTypeChessPuzzle is the record type the device firmware expects
// in the config sector's type table.
const PageTypeChessPuzzle = 4

// Layout describes the geometry of the target flash chip.
type Layout struct {
	RowSize          int
	FlashSize        int
	ConfigSectorSize int
	MaxMoves         int // Upper bound on pages per puzzle, used for admission
	FontSize         uint8
}

// DefaultLayout matches the 16 MiB reference device.
func DefaultLayout() Layout {
	return Layout{
		RowSize:          96,
		FlashSize:        16 * 1024 * 1024,
		ConfigSectorSize: 0x1000,
		MaxMoves:         10,
		FontSize:         1,
	}
}

// Validate reports whether the layout is internally consistent.
func (l Layout) Validate() error {
	if l.RowSize <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "row size %d", l.RowSize)
	}
	if l.ConfigSectorSize <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "config sector size %d", l.ConfigSectorSize)
	}
	if l.FlashSize <= l.ConfigSectorSize {
		return errors.Wrapf(errors.ErrInvalidConfig,
			"flash size %d not larger than config sector %d", l.FlashSize, l.ConfigSectorSize)
	}
	if l.MaxMoves < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "max moves %d", l.MaxMoves)
	}
	return nil
}

// DataSize returns the bytes available for page rows.
func (l Layout) DataSize() int {
	return l.FlashSize - l.ConfigSectorSize
}

// MaxPages returns the number of rows the data region can hold.
func (l Layout) MaxPages() int {
	return l.DataSize() / l.RowSize
}

// CanFitPuzzle reports whether another whole puzzle could still fit
// after pages rows have been committed. Admission is all-or-nothing
// per puzzle so a truncated move sequence never reaches the device.
func (l Layout) CanFitPuzzle(pages int) bool {
	return pages+l.MaxMoves <= l.MaxPages()
}

// Stats summarizes an assembled image.
type Stats struct {
	Puzzles      int
	Pages        int
	PayloadBytes int
	FreeBytes    int
}

// Assemble packs page units into a flash image of exactly
// layout.FlashSize bytes. Units must already be in byte order; they are
// grouped by puzzle key and each group is admitted by its actual size,
// whole or not at all, stopping at the first group that no longer fits.
// A group with more rows than the layout's per-puzzle budget fails with
// ErrCapacityExceeded: such units cannot come from the current run and
// would break the capacity accounting. The config sector is appended
// after the zero-padded data region.
func Assemble(units []pagefile.Unit, layout Layout) ([]byte, Stats, error) {
	if err := layout.Validate(); err != nil {
		return nil, Stats{}, err
	}

	var stats Stats
	data := bytes.NewBuffer(make([]byte, 0, layout.DataSize()))
	budget := layout.RowSize * layout.MaxMoves

	for _, group := range groupByPuzzle(units) {
		need := len(group) * layout.RowSize
		if need > budget {
			return nil, Stats{}, errors.Wrapf(errors.ErrCapacityExceeded,
				"puzzle %s has %d rows, layout admits %d per puzzle",
				group[0].PuzzleKey(), len(group), layout.MaxMoves)
		}
		if data.Len()+need > layout.DataSize() {
			break
		}
		for _, unit := range group {
			row := bytes.TrimRight(unit.Data, "\n")
			if len(row) > layout.RowSize {
				return nil, Stats{}, errors.Wrapf(errors.ErrRecordTooLarge,
					"unit %s is %d bytes", unit.Name, len(row))
			}
			data.Write(row)
			data.Write(make([]byte, layout.RowSize-len(row)))
			stats.Pages++
		}
		stats.Puzzles++
	}

	stats.PayloadBytes = stats.Pages * layout.RowSize
	stats.FreeBytes = layout.DataSize() - stats.PayloadBytes

	image := make([]byte, layout.FlashSize)
	copy(image, data.Bytes())
	writeConfigSector(image[layout.DataSize():], layout, stats.Pages)
	return image, stats, nil
}

// writeConfigSector fills sector with the device configuration header.
// All multi-byte fields are little-endian.
func writeConfigSector(sector []byte, layout Layout, pages int) {
	binary.LittleEndian.PutUint32(sector[0:], Magic)
	binary.LittleEndian.PutUint32(sector[4:], uint32(pages))
	binary.LittleEndian.PutUint32(sector[8:], uint32(pages*layout.RowSize))
	sector[12] = 1 // num_types
	sector[13] = layout.FontSize
	// sector[14:16] reserved
	sector[16] = PageTypeChessPuzzle
	// type1..3 stay zero
	binary.LittleEndian.PutUint32(sector[20:], uint32(layout.RowSize)) // size0
	// size1..3 and the remainder of the sector stay zero
}

// groupByPuzzle splits an ordered unit list into runs sharing a puzzle
// key. Order within and across groups is preserved.
func groupByPuzzle(units []pagefile.Unit) [][]pagefile.Unit {
	var groups [][]pagefile.Unit
	var current []pagefile.Unit
	currentKey := ""
	for _, unit := range units {
		key := unit.PuzzleKey()
		if key != currentKey {
			if len(current) > 0 {
				groups = append(groups, current)
			}
			current = nil
			currentKey = key
		}
		current = append(current, unit)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// Describe returns a short human-readable summary of an image's stats.
func (s Stats) Describe() string {
	return fmt.Sprintf("%d puzzles, %d pages, %d bytes used (%d free)",
		s.Puzzles, s.Pages, s.PayloadBytes, s.FreeBytes)
}
