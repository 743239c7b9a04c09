package ilp

import (
	"context"
	"fmt"

	"github.com/piwi3910/rectpack/internal/geom"
	"github.com/piwi3910/rectpack/internal/grid"
	"github.com/piwi3910/rectpack/progress"
)

// ErrSolverUnavailable wraps a Backend failure that is not itself a
// statement about feasibility (solver missing, numerical failure, timeout
// distinct from context cancellation), per spec.md §6.
var ErrSolverUnavailable = fmt.Errorf("ilp: solver backend unavailable")

// Solve builds the model against backend, runs its feasibility search, and
// paints the witness grid with 1-based input-order piece indices when a
// solution exists. sink, if non-nil, is ticked once for the search; the
// Backend interface doesn't expose individual branch-and-bound nodes, so
// this is the coarsest progress signal the ILP engine can offer without
// widening that contract. A context that is already done when Solve is
// called returns ctx.Err() before the model is built.
func Solve(ctx context.Context, backend Backend, h, w int, pieces []geom.Piece, allowRotation bool, sink progress.Sink) (feasible bool, g *grid.Grid, err error) {
	select {
	case <-ctx.Done():
		return false, nil, ctx.Err()
	default:
	}

	m := Build(backend, h, w, pieces, allowRotation)

	if sink != nil {
		sink.Tick(0)
	}
	ok, err := backend.Solve(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false, nil, ctx.Err()
		}
		return false, nil, fmt.Errorf("%w: %v", ErrSolverUnavailable, err)
	}
	if !ok {
		return false, nil, nil
	}

	out := grid.New(h, w)
	for i, p := range pieces {
		row := backend.Value(m.py[i])
		col := backend.Value(m.px[i])
		ph, pw := m.PlacedExtents(i, p)
		out.Paint(row, col, ph, pw, i+1)
	}
	return true, out, nil
}
