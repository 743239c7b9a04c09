// Package ilp builds the feasibility-only integer-programming formulation
// of Perfect Rectangle Packing described in spec.md §4.4 against a narrow,
// backend-agnostic solver interface. The model builder here never talks to
// a concrete solver directly; internal/ilp/gonumsolver supplies the one
// shipped adapter.
package ilp

import "context"

// Var is an opaque handle to a declared decision variable.
type Var int

// LinExpr is a linear expression: the sum of coeff*variable over its
// entries. A bare constant term, where needed, is folded into the
// constraint's right-hand side instead of represented here.
type LinExpr map[Var]float64

// Backend is the only thing the ILP engine consumes from outside the core
// (spec.md §6): declare integer and binary variables, add linear
// constraints, run a feasibility optimize, and read back rounded integer
// values. Any backend implementing this is substitutable.
type Backend interface {
	// NewIntVar declares an integer variable bounded to [lo, hi].
	NewIntVar(name string, lo, hi int) Var
	// NewBinaryVar declares a variable constrained to {0, 1}.
	NewBinaryVar(name string) Var

	AddLE(lhs LinExpr, rhs float64)
	AddEQ(lhs LinExpr, rhs float64)
	AddGE(lhs LinExpr, rhs float64)

	// Solve runs a feasibility search and reports whether a primal
	// solution exists. A non-nil error means the backend itself failed
	// (spec.md's SolverUnavailable), not that the model is infeasible.
	Solve(ctx context.Context) (bool, error)

	// Value reads v's value after a successful Solve, rounded to the
	// nearest integer per spec.md §9's rounding note.
	Value(v Var) int
}
