package rectpack

import "errors"

// ErrSolverUnavailable is returned, wrapped with context via %w, when the
// IntegerProgramming engine's backend cannot produce a feasibility answer
// (solver failure, not "no packing exists"). Ordinary infeasibility is
// never reported this way: it comes back as Result{Feasible:false}, nil.
var ErrSolverUnavailable = errors.New("rectpack: solver unavailable")

// ErrInvariantViolation is returned, wrapped with context via %w, if an
// engine detects its own internal bookkeeping broke an invariant (the
// backtracking engine finding the grid fully covered before every piece is
// placed). It signals a bug in this module, not a property of the input
// instance. The exact-cover round-trip check is not run during Pack.
var ErrInvariantViolation = errors.New("rectpack: internal invariant violation")

// errInvalidAlgorithm is returned for an Algorithm value outside the three
// declared constants; this is a programmer error, distinct from either
// sentinel above.
var errInvalidAlgorithm = errors.New("rectpack: unknown algorithm")
