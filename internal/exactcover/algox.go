package exactcover

import (
	"context"
	"fmt"

	"github.com/piwi3910/rectpack/internal/grid"
	"github.com/piwi3910/rectpack/progress"
)

// ErrInvariantViolation signals that a cover/uncover round trip did not
// restore the matrix bit-identically — spec.md's testable property §8.5.
// Seeing this indicates a bug in this package, not an infeasible instance.
var ErrInvariantViolation = fmt.Errorf("exactcover: internal invariant violation")

// colSnapshot is the undo record produced by cover: the former membership
// of one column, to be restored verbatim by uncover.
type colSnapshot struct {
	col  int
	rows map[int]bool
}

// cover removes column-row membership per spec.md §4.3: for each column in
// rowID's row, every other row sharing that column is removed from every
// other column it touches, and the column itself is removed from play.
func (m *Matrix) cover(rowID int) []colSnapshot {
	undo := make([]colSnapshot, 0, len(m.rows[rowID]))
	for _, col := range m.rows[rowID] {
		snap := make(map[int]bool, len(m.cols[col]))
		for r := range m.cols[col] {
			snap[r] = true
		}

		for otherRow := range m.cols[col] {
			if otherRow == rowID {
				continue
			}
			for _, otherCol := range m.rows[otherRow] {
				if otherCol == col {
					continue
				}
				delete(m.cols[otherCol], otherRow)
			}
		}

		delete(m.activeCols, col)
		delete(m.cols, col)
		undo = append(undo, colSnapshot{col: col, rows: snap})
	}
	return undo
}

// uncover inverts cover in reverse column order, per spec.md §4.3.
func (m *Matrix) uncover(undo []colSnapshot) {
	for i := len(undo) - 1; i >= 0; i-- {
		snap := undo[i]
		m.cols[snap.col] = snap.rows
		m.activeCols[snap.col] = true

		for otherRow := range snap.rows {
			for _, otherCol := range m.rows[otherRow] {
				if otherCol == snap.col {
					continue
				}
				if m.cols[otherCol] == nil {
					m.cols[otherCol] = make(map[int]bool)
				}
				m.cols[otherCol][otherRow] = true
			}
		}
	}
}

// chooseColumn picks the active column with the fewest remaining rows,
// ties broken by smallest column index, per spec.md's MRV heuristic.
func (m *Matrix) chooseColumn() (col int, ok bool) {
	best := -1
	bestCount := -1
	for c := 0; c < m.TotalCols(); c++ {
		if !m.activeCols[c] {
			continue
		}
		count := len(m.cols[c])
		if best < 0 || count < bestCount {
			best, bestCount = c, count
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// Solve runs Algorithm X to completion and, if a solution exists, paints
// the witness grid with 1-based input-order piece indices (no remapping is
// needed: a placement's Piece field already carries the caller's input
// index). sink, if non-nil, is ticked once per row covered; removing it
// changes nothing about the search's outcome.
func Solve(ctx context.Context, m *Matrix, sink progress.Sink) (feasible bool, g *grid.Grid, err error) {
	var solution []int
	step := 0
	ok, err := search(ctx, m, &solution, sink, &step)
	if err != nil {
		return false, nil, err
	}
	if !ok {
		return false, nil, nil
	}

	out := grid.New(m.H, m.W)
	for _, row := range solution {
		pl := m.lookup[row]
		out.Paint(pl.Row, pl.Col, pl.H, pl.W, pl.Piece+1)
	}
	return true, out, nil
}

func search(ctx context.Context, m *Matrix, solution *[]int, sink progress.Sink, step *int) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	col, ok := m.chooseColumn()
	if !ok {
		return true, nil // every column covered: success
	}

	// cover deletes rows from col's live set and uncover installs a fresh
	// copy, so iterate over a snapshot of the candidates taken up front.
	candidates := make([]int, 0, len(m.cols[col]))
	for row := range m.cols[col] {
		candidates = append(candidates, row)
	}
	for _, row := range candidates {
		*solution = append(*solution, row)
		undo := m.cover(row)
		*step++
		if sink != nil {
			sink.Tick(*step)
		}

		done, err := search(ctx, m, solution, sink, step)
		if err != nil {
			m.uncover(undo)
			*solution = (*solution)[:len(*solution)-1]
			return false, err
		}
		if done {
			return true, nil
		}

		m.uncover(undo)
		*solution = (*solution)[:len(*solution)-1]
	}
	return false, nil
}

// AssertRoundTrip applies cover(row) then uncover to m, and reports
// whether cols/activeCols end up bit-identical to their pre-cover state — spec.md's testable property
// §8.5. It mutates and restores m in place; on a mismatch it returns
// ErrInvariantViolation describing which row failed.
func AssertRoundTrip(m *Matrix, row int) error {
	beforeCols := snapshotCols(m)
	beforeActive := snapshotActive(m)

	undo := m.cover(row)
	m.uncover(undo)

	afterCols := snapshotCols(m)
	afterActive := snapshotActive(m)

	if !colsEqual(beforeCols, afterCols) || !activeEqual(beforeActive, afterActive) {
		return fmt.Errorf("%w: row %d did not round-trip", ErrInvariantViolation, row)
	}
	return nil
}

func snapshotCols(m *Matrix) map[int]map[int]bool {
	out := make(map[int]map[int]bool, len(m.cols))
	for col, rows := range m.cols {
		rc := make(map[int]bool, len(rows))
		for r := range rows {
			rc[r] = true
		}
		out[col] = rc
	}
	return out
}

func snapshotActive(m *Matrix) map[int]bool {
	out := make(map[int]bool, len(m.activeCols))
	for c := range m.activeCols {
		out[c] = true
	}
	return out
}

func colsEqual(a, b map[int]map[int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for col, rows := range a {
		other, ok := b[col]
		if !ok || len(other) != len(rows) {
			return false
		}
		for r := range rows {
			if !other[r] {
				return false
			}
		}
	}
	return true
}

func activeEqual(a, b map[int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for c := range a {
		if !b[c] {
			return false
		}
	}
	return true
}
