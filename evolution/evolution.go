/*package evolution reads the time evolution table that accompanies a
snapshot: one row per output time, whitespace separated, with columns
for time, stellar mass, accretion rate, and any number of luminosity
bands. Rows pass through untouched. No sorting, smoothing, resampling,
or unit conversion happens here, downstream consumers see exactly what
the file contains.
*/
package evolution

import (
	"fmt"

	"github.com/phil-mansfield/table"
)

// Columns maps the table's quantities to zero-based column indices.
type Columns struct {
	Time, Mass, Accretion int
	Luminosity            []int
}

// DefaultColumns returns the standard layout: time, mass, and accretion
// rate in columns 0 to 2, a single luminosity band in column 3.
func DefaultColumns() Columns {
	return Columns{Time: 0, Mass: 1, Accretion: 2, Luminosity: []int{3}}
}

// History holds the tabulated evolution of the system. Index i of every
// sequence corresponds to row i of the file. Luminosity is indexed as
// [band][row].
type History struct {
	Time, Mass, Accretion []float64
	Luminosity            [][]float64
}

// Len returns the number of rows.
func (h *History) Len() int { return len(h.Time) }

// Bands returns the number of luminosity bands.
func (h *History) Bands() int { return len(h.Luminosity) }

// ReadHistory reads the table at path with the given column layout.
// Lines starting with '#' are comments. A table with no data rows is an
// error, there is nothing to analyze in it.
func ReadHistory(path string, cols Columns) (*History, error) {
	colIdxs := []int{cols.Time, cols.Mass, cols.Accretion}
	colIdxs = append(colIdxs, cols.Luminosity...)

	read, err := table.ReadTable(path, colIdxs, nil)
	if err != nil { return nil, err }

	h := &History{
		Time:       read[0],
		Mass:       read[1],
		Accretion:  read[2],
		Luminosity: read[3:],
	}
	if h.Len() == 0 {
		return nil, fmt.Errorf("evolution table %s contains no rows", path)
	}
	return h, nil
}
