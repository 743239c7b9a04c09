// Package geom holds the geometry primitives and input-validation checks
// shared by every packing engine: a piece's size, the area pre-check, and
// the per-piece fit pre-check.
package geom

// Piece is an axis-aligned rectangle of positive integer sides. It is
// identified only by its position in the caller's input slice; Piece itself
// carries no identity.
type Piece struct {
	H int
	W int
}

// Area returns h*w.
func (p Piece) Area() int {
	return p.H * p.W
}

// Rotated returns the piece with its sides swapped.
func (p Piece) Rotated() Piece {
	return Piece{H: p.W, W: p.H}
}

// TotalArea sums the area of every piece.
func TotalArea(pieces []Piece) int {
	total := 0
	for _, p := range pieces {
		total += p.Area()
	}
	return total
}

// AreaMatches reports whether the pieces' combined area equals exactly H*W.
// This is a necessary, not sufficient, condition for a perfect packing.
func AreaMatches(h, w int, pieces []Piece) bool {
	return TotalArea(pieces) == h*w
}

// Fits reports whether a single piece can be placed inside an H×W box at
// all, honoring whether rotation is allowed.
//
// Without rotation the piece's own orientation must fit directly. With
// rotation allowed, the piece fits if its larger side fits the box's larger
// dimension and its smaller side fits the box's smaller dimension — the
// favorable orientation, per spec.md's fit pre-check.
func Fits(h, w int, p Piece, allowRotation bool) bool {
	if !allowRotation {
		return p.H <= h && p.W <= w
	}
	pMax, pMin := maxMin(p.H, p.W)
	boxMax, boxMin := maxMin(h, w)
	return pMax <= boxMax && pMin <= boxMin
}

// AllFit reports whether every piece individually fits the box, per
// spec.md's per-piece fit pre-check. It does not check for mutual
// non-overlap; that is the engines' job.
func AllFit(h, w int, pieces []Piece, allowRotation bool) bool {
	for _, p := range pieces {
		if !Fits(h, w, p, allowRotation) {
			return false
		}
	}
	return true
}

func maxMin(a, b int) (max, min int) {
	if a >= b {
		return a, b
	}
	return b, a
}
