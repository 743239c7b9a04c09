// Package grid implements the occupancy grid shared by every engine and the
// descending-width piece sort used by the backtracking engine.
package grid

import (
	"sort"

	"github.com/piwi3910/rectpack/internal/geom"
)

// Grid is an H x W matrix of engine-local piece indices. A value of 0 means
// the cell is empty; a positive value k means the cell is occupied by the
// k-th piece in whatever numbering the owning engine uses.
type Grid struct {
	H, W  int
	cells []int // row-major, length H*W
}

// New allocates an empty H x W grid.
func New(h, w int) *Grid {
	return &Grid{H: h, W: w, cells: make([]int, h*w)}
}

func (g *Grid) idx(row, col int) int {
	return row*g.W + col
}

// At returns the value at (row, col), both 0-based.
func (g *Grid) At(row, col int) int {
	return g.cells[g.idx(row, col)]
}

// Set stores value at (row, col), both 0-based.
func (g *Grid) Set(row, col, value int) {
	g.cells[g.idx(row, col)] = value
}

// Paint fills the h x w rectangle anchored at (row, col) (0-based, top-left)
// with value. Caller must ensure the rectangle lies within the grid.
func (g *Grid) Paint(row, col, h, w, value int) {
	for r := row; r < row+h; r++ {
		base := r * g.W
		for c := col; c < col+w; c++ {
			g.cells[base+c] = value
		}
	}
}

// Erase is Paint with value 0, provided for readability at call sites that
// undo a placement.
func (g *Grid) Erase(row, col, h, w int) {
	g.Paint(row, col, h, w, 0)
}

// FirstEmpty scans row-major from (0,0) and returns the first empty cell,
// i.e. the top-left pivot of spec.md's top-left heuristic. ok is false if
// the grid is fully covered.
func (g *Grid) FirstEmpty() (row, col int, ok bool) {
	for i, v := range g.cells {
		if v == 0 {
			return i / g.W, i % g.W, true
		}
	}
	return 0, 0, false
}

// ToMatrix returns the grid as a [][]int of length H, each of length W, for
// callers that want a plain matrix instead of row-major storage.
func (g *Grid) ToMatrix() [][]int {
	m := make([][]int, g.H)
	for r := 0; r < g.H; r++ {
		row := make([]int, g.W)
		copy(row, g.cells[r*g.W:(r+1)*g.W])
		m[r] = row
	}
	return m
}

// Remap returns a copy of the grid with every non-zero cell value v replaced
// by translate[v-1]. It is used at the façade boundary to turn engine-local
// piece numbering back into input-order piece indices.
func (g *Grid) Remap(translate []int) *Grid {
	out := New(g.H, g.W)
	for i, v := range g.cells {
		if v == 0 {
			out.cells[i] = 0
			continue
		}
		out.cells[i] = translate[v-1]
	}
	return out
}

// SortedPieceSet is a PieceSet ordered by descending width, ties broken by
// original input order (a stable sort), as required by the backtracking
// engine. OrigIndex maps a sorted position back to the 0-based index in the
// caller's original slice.
type SortedPieceSet struct {
	Pieces    []geom.Piece
	OrigIndex []int
}

// SortByDescendingWidth builds a SortedPieceSet from pieces, preserving
// input order among ties.
func SortByDescendingWidth(pieces []geom.Piece) SortedPieceSet {
	idx := make([]int, len(pieces))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return pieces[idx[i]].W > pieces[idx[j]].W
	})
	sorted := make([]geom.Piece, len(pieces))
	for i, orig := range idx {
		sorted[i] = pieces[orig]
	}
	return SortedPieceSet{Pieces: sorted, OrigIndex: idx}
}
