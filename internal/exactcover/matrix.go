// Package exactcover reduces Perfect Rectangle Packing to an exact-cover
// instance (one column per grid cell, one column per piece) and solves it
// with Algorithm X under the minimum-remaining-values heuristic, per
// spec.md §4.3.
package exactcover

import "github.com/piwi3910/rectpack/internal/geom"

// Placement describes what row rowID represents: piece at a 0-based anchor
// with its placed (possibly rotated) extents.
type Placement struct {
	Piece   int // 0-based input piece index
	Row     int // 0-based anchor row
	Col     int // 0-based anchor column
	H, W    int // placed extents
	Rotated bool
}

// Matrix is the bipartite row/column relation described in spec.md §3:
// cols[col] -> set of rows, rows[row] -> ordered list of cols, plus a
// lookup from row to the placement it represents.
type Matrix struct {
	H, W      int
	numPieces int

	cols       map[int]map[int]bool
	rows       map[int][]int
	activeCols map[int]bool
	lookup     map[int]Placement

	nextRow int
}

// cellCol returns the column index for grid cell (row, col), both 0-based.
func (m *Matrix) cellCol(row, col int) int {
	return row*m.W + col
}

// pieceCol returns the column index for piece i (0-based).
func (m *Matrix) pieceCol(i int) int {
	return m.H*m.W + i
}

// TotalCols is H*W + numPieces.
func (m *Matrix) TotalCols() int {
	return m.H*m.W + m.numPieces
}

// Lookup returns the placement a solved row represents.
func (m *Matrix) Lookup(row int) Placement {
	return m.lookup[row]
}

// Build constructs the exact-cover matrix for an H x W box and a set of
// pieces. When allowRotation is true, a second orientation row is emitted
// for every non-square piece (a square's rotation duplicates itself and is
// skipped, per spec.md §4.3).
func Build(h, w int, pieces []geom.Piece, allowRotation bool) *Matrix {
	m := &Matrix{
		H:          h,
		W:          w,
		numPieces:  len(pieces),
		cols:       make(map[int]map[int]bool),
		rows:       make(map[int][]int),
		activeCols: make(map[int]bool),
		lookup:     make(map[int]Placement),
	}
	for c := 0; c < m.TotalCols(); c++ {
		m.activeCols[c] = true
	}

	for i, p := range pieces {
		orientations := []geom.Piece{p}
		rotatedFlags := []bool{false}
		if allowRotation && p.H != p.W {
			orientations = append(orientations, p.Rotated())
			rotatedFlags = append(rotatedFlags, true)
		}
		for oi, shape := range orientations {
			m.addPieceRows(i, shape, rotatedFlags[oi])
		}
	}
	return m
}

func (m *Matrix) addPieceRows(piece int, shape geom.Piece, rotated bool) {
	for r := 0; r+shape.H <= m.H; r++ {
		for c := 0; c+shape.W <= m.W; c++ {
			rowID := m.nextRow
			m.nextRow++

			cols := make([]int, 0, shape.H*shape.W+1)
			for dr := 0; dr < shape.H; dr++ {
				for dc := 0; dc < shape.W; dc++ {
					cols = append(cols, m.cellCol(r+dr, c+dc))
				}
			}
			cols = append(cols, m.pieceCol(piece))

			m.rows[rowID] = cols
			for _, col := range cols {
				if m.cols[col] == nil {
					m.cols[col] = make(map[int]bool)
				}
				m.cols[col][rowID] = true
			}
			m.lookup[rowID] = Placement{Piece: piece, Row: r, Col: c, H: shape.H, W: shape.W, Rotated: rotated}
		}
	}
}
