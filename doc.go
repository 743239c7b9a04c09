// Package rectpack decides the Perfect Rectangle Packing problem: given an
// H x W box and a multiset of axis-aligned integer-sided rectangles,
// whether the rectangles tile the box exactly, and if so a witness tiling.
//
// Three independent, exhaustive engines share one contract: Backtracking
// (top-left first-fit with symmetry-breaking under rotation),
// IntegerProgramming (a feasibility-only disjunctive big-M model solved
// through a pluggable Backend), and DancingLinks (exact-cover reduction
// solved by Algorithm X under a minimum-remaining-values heuristic). Pack
// dispatches to exactly one of them per call; none call each other.
package rectpack
