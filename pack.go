package rectpack

import (
	"context"
	"errors"
	"fmt"

	"github.com/piwi3910/rectpack/internal/backtrack"
	"github.com/piwi3910/rectpack/internal/exactcover"
	"github.com/piwi3910/rectpack/internal/geom"
	"github.com/piwi3910/rectpack/internal/ilp"
	"github.com/piwi3910/rectpack/internal/ilp/gonumsolver"
)

// Pack decides whether pieces exactly tile an H x W box and, if so,
// returns one witness tiling. algorithm selects which of the three
// exhaustive engines runs; they never call each other.
//
// Pre-checks (total area, per-piece fit) are performed before dispatch;
// either failure returns a Result{Feasible:false, Diagnostic:"..."} with a
// nil error, never a panic. A non-nil error means the engine could not
// decide (a solver failure or an internal invariant violation), not that
// no packing exists — use errors.Is against ErrSolverUnavailable or
// ErrInvariantViolation to distinguish the two. A cancelled or expired ctx
// returns ctx.Err() unwrapped, and an Algorithm outside the three
// constants returns an error matching neither sentinel.
func Pack(ctx context.Context, h, w int, pieces []Piece, allowRotation bool, algorithm Algorithm, opts ...Option) (Result, error) {
	o := newOptions(opts)
	gp := toGeomPieces(pieces)

	if !geom.AreaMatches(h, w, gp) {
		diag := fmt.Sprintf("area mismatch: pieces sum to %d, box is %d", geom.TotalArea(gp), h*w)
		o.logger.Debug("rectpack: pre-check failed", "reason", diag)
		return Result{Algorithm: algorithm, Diagnostic: diag}, nil
	}
	if !geom.AllFit(h, w, gp, allowRotation) {
		diag := "one or more pieces cannot fit in the box under the given rotation mode"
		o.logger.Debug("rectpack: pre-check failed", "reason", diag)
		return Result{Algorithm: algorithm, Diagnostic: diag}, nil
	}

	o.logger.Debug("rectpack: dispatching", "algorithm", algorithm.String(), "pieces", len(pieces))

	switch algorithm {
	case Backtracking:
		return dispatchBacktrack(ctx, h, w, gp, allowRotation, algorithm, o)
	case DancingLinks:
		return dispatchExactCover(ctx, h, w, gp, allowRotation, algorithm, o)
	case IntegerProgramming:
		return dispatchILP(ctx, h, w, gp, allowRotation, algorithm, o)
	default:
		return Result{}, fmt.Errorf("rectpack: %w: %d", errInvalidAlgorithm, int(algorithm))
	}
}

func toGeomPieces(pieces []Piece) []geom.Piece {
	gp := make([]geom.Piece, len(pieces))
	for i, p := range pieces {
		gp[i] = geom.Piece{H: p.H, W: p.W}
	}
	return gp
}

func dispatchBacktrack(ctx context.Context, h, w int, gp []geom.Piece, allowRotation bool, algorithm Algorithm, o options) (Result, error) {
	var res backtrack.Result
	var err error
	if allowRotation {
		res, err = backtrack.SolveWithRotation(ctx, h, w, gp, o.sink)
	} else {
		res, err = backtrack.Solve(ctx, h, w, gp, o.sink)
	}
	if err != nil {
		return Result{}, wrapEngineErr(err)
	}
	return Result{Feasible: res.Feasible, Grid: res.Grid, Algorithm: algorithm}, nil
}

func dispatchExactCover(ctx context.Context, h, w int, gp []geom.Piece, allowRotation bool, algorithm Algorithm, o options) (Result, error) {
	m := exactcover.Build(h, w, gp, allowRotation)
	feasible, g, err := exactcover.Solve(ctx, m, o.sink)
	if err != nil {
		return Result{}, wrapEngineErr(err)
	}
	return Result{Feasible: feasible, Grid: g, Algorithm: algorithm}, nil
}

func dispatchILP(ctx context.Context, h, w int, gp []geom.Piece, allowRotation bool, algorithm Algorithm, o options) (Result, error) {
	backend := gonumsolver.New()
	feasible, g, err := ilp.Solve(ctx, backend, h, w, gp, allowRotation, o.sink)
	if err != nil {
		return Result{}, wrapEngineErr(err)
	}
	return Result{Feasible: feasible, Grid: g, Algorithm: algorithm}, nil
}

// wrapEngineErr translates an internal engine error into the façade's own
// sentinel vocabulary while preserving errors.Is against both the
// façade-level and engine-level sentinels.
func wrapEngineErr(err error) error {
	switch {
	case errors.Is(err, ilp.ErrSolverUnavailable):
		return fmt.Errorf("%w: %w", ErrSolverUnavailable, err)
	case errors.Is(err, exactcover.ErrInvariantViolation), errors.Is(err, backtrack.ErrInvariantViolation):
		return fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	default:
		return err // context.Canceled / context.DeadlineExceeded pass through unwrapped
	}
}
