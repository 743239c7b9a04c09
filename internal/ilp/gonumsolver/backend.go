// Package gonumsolver adapts gonum's branch-and-bound mixed-integer solver
// (gonum.org/v1/gonum/optimize/convex/lp) to the ilp.Backend interface, the
// one concrete solver this module ships.
package gonumsolver

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/piwi3910/rectpack/internal/ilp"
)

// tol is the feasibility/integrality tolerance handed to lp.BNB; spec.md
// only asks for a feasibility witness, not an optimality bound, so a loose
// tolerance is adequate for rounding values back to whole cells.
const tol = 1e-6

// Backend collects variable declarations and linear constraints, then
// translates them into the dense (c, A, b, G, h, whole) standard form that
// lp.BNB expects on Solve.
type Backend struct {
	lo, hi []float64
	whole  []bool

	eqRows [][]float64
	eqRHS  []float64
	leRows [][]float64
	leRHS  []float64

	values []float64
}

// New returns an empty Backend ready to accept variable and constraint
// declarations.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) newVar(lo, hi int) ilp.Var {
	b.lo = append(b.lo, float64(lo))
	b.hi = append(b.hi, float64(hi))
	b.whole = append(b.whole, true)
	return ilp.Var(len(b.lo) - 1)
}

// NewIntVar declares an integer variable bounded to [lo, hi].
func (b *Backend) NewIntVar(name string, lo, hi int) ilp.Var {
	return b.newVar(lo, hi)
}

// NewBinaryVar declares a {0,1}-bounded integer variable.
func (b *Backend) NewBinaryVar(name string) ilp.Var {
	return b.newVar(0, 1)
}

func (b *Backend) row(lhs ilp.LinExpr) []float64 {
	row := make([]float64, len(b.lo))
	for v, coeff := range lhs {
		row[v] = coeff
	}
	return row
}

// AddLE adds lhs <= rhs.
func (b *Backend) AddLE(lhs ilp.LinExpr, rhs float64) {
	b.leRows = append(b.leRows, b.row(lhs))
	b.leRHS = append(b.leRHS, rhs)
}

// AddEQ adds lhs == rhs.
func (b *Backend) AddEQ(lhs ilp.LinExpr, rhs float64) {
	b.eqRows = append(b.eqRows, b.row(lhs))
	b.eqRHS = append(b.eqRHS, rhs)
}

// AddGE adds lhs >= rhs as its negated <= form.
func (b *Backend) AddGE(lhs ilp.LinExpr, rhs float64) {
	neg := make(ilp.LinExpr, len(lhs))
	for v, coeff := range lhs {
		neg[v] = -coeff
	}
	b.AddLE(neg, -rhs)
}

// Solve runs lp.BNB against a zero objective: spec.md's ILP engine only
// needs a feasibility witness, not an optimal one, so any vertex the
// branch-and-bound search accepts is a solution.
func (b *Backend) Solve(ctx context.Context) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	n := len(b.lo)
	c := make([]float64, n)

	gRows := make([][]float64, 0, len(b.leRows)+2*n)
	hVals := make([]float64, 0, len(b.leRows)+2*n)
	gRows = append(gRows, b.leRows...)
	hVals = append(hVals, b.leRHS...)

	for i := 0; i < n; i++ {
		upper := make([]float64, n)
		upper[i] = 1
		gRows = append(gRows, upper)
		hVals = append(hVals, b.hi[i])

		if b.lo[i] > 0 {
			lower := make([]float64, n)
			lower[i] = -1
			gRows = append(gRows, lower)
			hVals = append(hVals, -b.lo[i])
		}
	}

	G := denseFromRows(gRows, n)
	var A mat.Matrix
	var bVec []float64
	if len(b.eqRows) > 0 {
		A = denseFromRows(b.eqRows, n)
		bVec = b.eqRHS
	}

	_, x, err := lp.BNB(c, A, bVec, G, hVals, b.whole, tol)
	if err != nil {
		if err == lp.ErrInfeasible {
			return false, nil
		}
		return false, fmt.Errorf("gonumsolver: branch and bound: %w", err)
	}

	b.values = x
	return true, nil
}

// Value reads back variable v's value, rounded to the nearest integer.
func (b *Backend) Value(v ilp.Var) int {
	return int(b.values[v] + 0.5)
}

func denseFromRows(rows [][]float64, cols int) *mat.Dense {
	m := mat.NewDense(len(rows), cols, nil)
	for i, row := range rows {
		m.SetRow(i, row)
	}
	return m
}
