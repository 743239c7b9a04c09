// Package backtrack implements the top-left first-fit backtracking engine,
// covering both the no-rotation and the rotation (with symmetry breaking)
// variants described in spec.md §4.2 with one shared routine.
package backtrack

import (
	"context"
	"fmt"

	"github.com/piwi3910/rectpack/internal/geom"
	"github.com/piwi3910/rectpack/internal/grid"
	"github.com/piwi3910/rectpack/progress"
)

// ErrInvariantViolation is returned if every grid cell is covered before
// all required pieces have been placed. With a caller that has run the area
// pre-check this cannot happen; the area and fit pre-checks are the
// caller's job, not this engine's. An empty undo stack with no candidate
// left is not an error: it means the instance is infeasible.
var ErrInvariantViolation = fmt.Errorf("backtrack: internal invariant violation")

// Result is the outcome of one backtracking search.
type Result struct {
	Feasible bool
	// Grid holds 1-based input-order piece indices (0 = empty), already
	// remapped from the engine's internal piece numbering. Nil when
	// Feasible is false.
	Grid *grid.Grid
}

// placement is one entry of the undo stack (spec.md's PlacementRecord).
type placement struct {
	row, col int
	k        int // 1-based engine-local piece index
	h, w     int
}

// layout is the engine-local piece list plus the bookkeeping needed to
// translate it back to input-order indices and to apply the rotation
// variant's symmetry-breaking rule.
type layout struct {
	pieces    []geom.Piece // P, 1-indexed conceptually but stored 0-indexed
	origIndex []int        // P[i] came from input piece origIndex[i] (0-based)
	r         int          // count of true-rectangle pairs; 0 for no-rotation
}

func (l layout) n() int { return len(l.pieces) }

// partner returns the 1-based partner index of k, or 0 if k has none.
// partner(k) = N-k+1 when k is a true rectangle (k<=R) or its rotated copy
// (k>N-R); squares (R<k<=N-R) have no partner. With R==0 this is always 0,
// which is exactly the no-rotation behavior.
func (l layout) partner(k int) int {
	n := l.n()
	if k <= l.r || k > n-l.r {
		return n - k + 1
	}
	return 0
}

// firstPlacementMax returns the admissible scan bound: spec.md's
// symmetry-breaking rule restricts the very first placement to k<=N-R;
// every subsequent placement may use the full range 1..N.
func (l layout) firstPlacementMax(count int) int {
	if count == 0 {
		return l.n() - l.r
	}
	return l.n()
}

// Solve runs the no-rotation backtracking engine. sink may be nil.
func Solve(ctx context.Context, h, w int, pieces []geom.Piece, sink progress.Sink) (Result, error) {
	sorted := grid.SortByDescendingWidth(pieces)
	lay := layout{pieces: sorted.Pieces, origIndex: sorted.OrigIndex, r: 0}
	return run(ctx, h, w, lay, len(pieces), sink)
}

// SolveWithRotation runs the rotation variant: pieces are partitioned into
// true rectangles and squares, laid out as
// [originals sorted desc-width ; squares ; reverse(rotated originals)],
// and the symmetry-breaking rule is applied to the first placement. sink
// may be nil.
func SolveWithRotation(ctx context.Context, h, w int, pieces []geom.Piece, sink progress.Sink) (Result, error) {
	var origIdx, sqIdx []int
	for i, p := range pieces {
		if p.H == p.W {
			sqIdx = append(sqIdx, i)
		} else {
			origIdx = append(origIdx, i)
		}
	}

	origPieces := make([]geom.Piece, len(origIdx))
	for i, idx := range origIdx {
		origPieces[i] = pieces[idx]
	}
	sortedOrig := grid.SortByDescendingWidth(origPieces)
	// sortedOrig.OrigIndex is relative to origPieces; translate back to the
	// caller's input indices.
	for i, rel := range sortedOrig.OrigIndex {
		sortedOrig.OrigIndex[i] = origIdx[rel]
	}

	sqPieces := make([]geom.Piece, len(sqIdx))
	for i, idx := range sqIdx {
		sqPieces[i] = pieces[idx]
	}
	sortedSq := grid.SortByDescendingWidth(sqPieces)
	for i, rel := range sortedSq.OrigIndex {
		sortedSq.OrigIndex[i] = sqIdx[rel]
	}

	r := len(sortedOrig.Pieces)
	n := 2*r + len(sortedSq.Pieces)

	lay := layout{
		pieces:    make([]geom.Piece, 0, n),
		origIndex: make([]int, 0, n),
		r:         r,
	}
	lay.pieces = append(lay.pieces, sortedOrig.Pieces...)
	lay.origIndex = append(lay.origIndex, sortedOrig.OrigIndex...)
	lay.pieces = append(lay.pieces, sortedSq.Pieces...)
	lay.origIndex = append(lay.origIndex, sortedSq.OrigIndex...)
	for i := r - 1; i >= 0; i-- {
		lay.pieces = append(lay.pieces, sortedOrig.Pieces[i].Rotated())
		lay.origIndex = append(lay.origIndex, sortedOrig.OrigIndex[i])
	}

	return run(ctx, h, w, lay, r+len(sortedSq.Pieces), sink)
}

// run is the shared top-left first-fit search over lay, succeeding once
// requiredCount distinct physical pieces have been placed. sink, if
// non-nil, is ticked once per piece placed; removing it changes
// nothing about the search's outcome.
func run(ctx context.Context, h, w int, lay layout, requiredCount int, sink progress.Sink) (Result, error) {
	n := lay.n()
	g := grid.New(h, w)
	used := make([]int, n+1) // 1-indexed; 0 unused, >0 placement order, -1 forbidden
	var stack []placement
	count := 0
	kStart := 1
	step := 0

	for {
		if count == requiredCount {
			translate := make([]int, n)
			for i, orig := range lay.origIndex {
				translate[i] = orig + 1
			}
			return Result{Feasible: true, Grid: g.Remap(translate)}, nil
		}

		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		row, col, ok := g.FirstEmpty()
		if !ok {
			// Every cell covered but requiredCount not reached: the area
			// pre-check guarantees this cannot happen for a correct caller.
			return Result{}, fmt.Errorf("%w: grid fully covered before all pieces placed", ErrInvariantViolation)
		}

		placed := false
		kMax := lay.firstPlacementMax(count)
		for k := kStart; k <= kMax; k++ {
			if used[k] != 0 {
				continue
			}
			piece := lay.pieces[k-1]
			ph, pw := piece.H, piece.W
			if row+ph > h || col+pw > w {
				continue
			}
			if !perimeterEmpty(g, row, col, ph, pw) {
				continue
			}

			step++
			if sink != nil {
				sink.Tick(step)
			}

			stack = append(stack, placement{row: row, col: col, k: k, h: ph, w: pw})
			g.Paint(row, col, ph, pw, k)
			count++
			used[k] = count
			if p := lay.partner(k); p != 0 {
				used[p] = -1
			}
			kStart = 1
			placed = true
			break
		}

		if placed {
			continue
		}

		if len(stack) == 0 {
			return Result{Feasible: false}, nil
		}
		last := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		g.Erase(last.row, last.col, last.h, last.w)
		used[last.k] = 0
		if p := lay.partner(last.k); p != 0 {
			used[p] = 0
		}
		count--
		kStart = last.k + 1
	}
}

// perimeterEmpty checks the border cells of the h x w rectangle anchored at
// (row, col). The top-left heuristic guarantees any interior cell is empty
// iff the cells bordering it are, since no previously placed piece can
// intrude into the interior without its own border also falling inside.
func perimeterEmpty(g *grid.Grid, row, col, h, w int) bool {
	for c := col; c < col+w; c++ {
		if g.At(row, c) != 0 || g.At(row+h-1, c) != 0 {
			return false
		}
	}
	for r := row; r < row+h; r++ {
		if g.At(r, col) != 0 || g.At(r, col+w-1) != 0 {
			return false
		}
	}
	return true
}
