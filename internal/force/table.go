package force

import (
	"fmt"
	"math"

	"github.com/san-kum/plife/internal/particle"
)

// Table holds one force parameter per ordered type pair. Row is the type
// being acted on, column the type acting on it, so At(a, b) need not equal
// At(b, a).
type Table [particle.NumTypes][particle.NumTypes]float64

// NewTable validates a row-major matrix. Every row must have exactly
// NumTypes finite entries.
func NewTable(rows [][]float64) (Table, error) {
	var t Table
	if len(rows) != particle.NumTypes {
		return t, fmt.Errorf("%w: got %d rows, want %d", ErrMissingEntry, len(rows), particle.NumTypes)
	}
	for i, row := range rows {
		if len(row) != particle.NumTypes {
			return t, fmt.Errorf("%w: row %s has %d entries, want %d",
				ErrMissingEntry, particle.Type(i), len(row), particle.NumTypes)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return t, fmt.Errorf("%w: %s->%s is %v", ErrMissingEntry, particle.Type(i), particle.Type(j), v)
			}
			t[i][j] = v
		}
	}
	return t, nil
}

// Uniform returns a table with every pair set to v.
func Uniform(v float64) Table {
	var t Table
	for i := range t {
		for j := range t[i] {
			t[i][j] = v
		}
	}
	return t
}

func (t *Table) At(a, b particle.Type) float64 {
	return t[a.Index()][b.Index()]
}

func (t *Table) Set(a, b particle.Type, v float64) {
	t[a.Index()][b.Index()] = v
}

// Rows returns the table as a row-major slice, the inverse of NewTable.
func (t *Table) Rows() [][]float64 {
	rows := make([][]float64, particle.NumTypes)
	for i := range t {
		rows[i] = append([]float64(nil), t[i][:]...)
	}
	return rows
}

// Symmetric reports whether At(a, b) == At(b, a) for every pair.
func (t *Table) Symmetric() bool {
	for i := range t {
		for j := i + 1; j < len(t); j++ {
			if t[i][j] != t[j][i] {
				return false
			}
		}
	}
	return true
}
