package ilp

import (
	"strconv"

	"github.com/piwi3910/rectpack/internal/geom"
)

// Model wires spec.md §4.4's big-M disjunctive feasibility formulation onto
// a Backend. It holds the declared variable handles so a caller can read
// back anchor coordinates once Backend.Solve reports feasible.
type Model struct {
	backend Backend

	n  int
	px []Var
	py []Var

	// sx, sy, o are non-nil only when the model was built with rotation
	// allowed; they carry the placed extents and the orientation bit.
	sx []Var
	sy []Var
	o  []Var
}

// PX returns the anchor-column variable for piece i.
func (m *Model) PX(i int) Var { return m.px[i] }

// PY returns the anchor-row variable for piece i.
func (m *Model) PY(i int) Var { return m.py[i] }

// Rotation returns piece i's orientation variable. Value 1 places the piece
// as given (w_i columns wide, h_i rows tall); value 0 places it turned
// (h_i columns wide, w_i rows tall). Valid only when the model was built
// with rotation.
func (m *Model) Rotation(i int) Var { return m.o[i] }

// AllowsRotation reports whether this model carries orientation variables.
func (m *Model) AllowsRotation() bool { return m.o != nil }

// PlacedExtents returns piece i's extents as actually placed, reading sx/sy
// back from the backend when rotation was modeled, or the piece's own
// dimensions otherwise.
func (m *Model) PlacedExtents(i int, original geom.Piece) (h, w int) {
	if m.sx == nil {
		return original.H, original.W
	}
	return m.backend.Value(m.sy[i]), m.backend.Value(m.sx[i])
}

// Build declares every variable and constraint of spec.md §4.4's
// formulation against backend and returns the Model used to read results
// back out after a successful Solve.
//
// Without rotation: px[i]+w_i<=W, py[i]+h_i<=H, and for every pair i<j at
// least one of four big-M disjunctive "separated" inequalities holds
// (piece i left of j, right of j, below j, or above j).
//
// With rotation: an orientation bit o[i] and two extent variables sx[i],
// sy[i] are introduced per piece with defining equalities tying them to
// o[i], h_i, w_i; the bounding and disjunctive inequalities are restated in
// terms of sx/sy instead of the original constants.
func Build(backend Backend, h, w int, pieces []geom.Piece, allowRotation bool) *Model {
	n := len(pieces)
	m := &Model{backend: backend, n: n}
	m.px = make([]Var, n)
	m.py = make([]Var, n)

	for i, p := range pieces {
		pxHi, pyHi := w-p.W, h-p.H
		if allowRotation {
			pxHi, pyHi = w-minInt(p.W, p.H), h-minInt(p.H, p.W)
		}
		m.px[i] = backend.NewIntVar(varName("px", i), 0, pxHi)
		m.py[i] = backend.NewIntVar(varName("py", i), 0, pyHi)
	}

	if allowRotation {
		m.buildRotated(backend, h, w, pieces)
	} else {
		m.buildFixed(backend, h, w, pieces)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m.addDisjunction(backend, h, w, i, j, pieces[i], pieces[j])
		}
	}

	return m
}

func (m *Model) buildFixed(backend Backend, h, w int, pieces []geom.Piece) {
	for i, p := range pieces {
		backend.AddLE(LinExpr{m.px[i]: 1}, float64(w-p.W))
		backend.AddLE(LinExpr{m.py[i]: 1}, float64(h-p.H))
	}
}

func (m *Model) buildRotated(backend Backend, h, w int, pieces []geom.Piece) {
	n := m.n
	m.sx = make([]Var, n)
	m.sy = make([]Var, n)
	m.o = make([]Var, n)

	for i, p := range pieces {
		lo, hi := minInt(p.H, p.W), maxInt(p.H, p.W)
		m.sx[i] = backend.NewIntVar(varName("sx", i), lo, hi)
		m.sy[i] = backend.NewIntVar(varName("sy", i), lo, hi)

		if p.H == p.W {
			// A square never changes shape under rotation; pin o[i]=0 and
			// the defining equalities collapse to sx=sy=h.
			m.o[i] = backend.NewBinaryVar(varName("o", i))
			backend.AddEQ(LinExpr{m.o[i]: 1}, 0)
		} else {
			m.o[i] = backend.NewBinaryVar(varName("o", i))
		}

		// sx[i] - (w_i - h_i)*o[i] = h_i
		backend.AddEQ(LinExpr{m.sx[i]: 1, m.o[i]: -float64(p.W - p.H)}, float64(p.H))
		// sy[i] - (h_i - w_i)*o[i] = w_i
		backend.AddEQ(LinExpr{m.sy[i]: 1, m.o[i]: -float64(p.H - p.W)}, float64(p.W))

		backend.AddLE(LinExpr{m.px[i]: 1, m.sx[i]: 1}, float64(w))
		backend.AddLE(LinExpr{m.py[i]: 1, m.sy[i]: 1}, float64(h))
	}
}

// addDisjunction adds the four big-M separation inequalities and the
// "at least one holds" constraint for the pair (i, j), per spec.md §4.4.
// Each inequality is of the form lhsVars + M*indicator <= rhsConst, where
// a piece's extent is either a constant (no rotation) or an sx/sy
// variable folded into lhsVars (rotation modeled).
func (m *Model) addDisjunction(backend Backend, h, w, i, j int, pi, pj geom.Piece) {
	left := backend.NewBinaryVar(pairName("L", i, j))
	right := backend.NewBinaryVar(pairName("R", i, j))
	below := backend.NewBinaryVar(pairName("B", i, j))
	above := backend.NewBinaryVar(pairName("A", i, j))

	wiVars, wiConst := m.extentTerm(true, i, pi)
	wjVars, wjConst := m.extentTerm(true, j, pj)
	hiVars, hiConst := m.extentTerm(false, i, pi)
	hjVars, hjConst := m.extentTerm(false, j, pj)

	// px[i] - px[j] + w_i + M*left <= W  (i strictly left of j when left=1)
	backend.AddLE(sumExpr(LinExpr{m.px[i]: 1, m.px[j]: -1, left: float64(w)}, wiVars), float64(w)-wiConst)
	backend.AddLE(sumExpr(LinExpr{m.px[j]: 1, m.px[i]: -1, right: float64(w)}, wjVars), float64(w)-wjConst)
	backend.AddLE(sumExpr(LinExpr{m.py[i]: 1, m.py[j]: -1, below: float64(h)}, hiVars), float64(h)-hiConst)
	backend.AddLE(sumExpr(LinExpr{m.py[j]: 1, m.py[i]: -1, above: float64(h)}, hjVars), float64(h)-hjConst)

	backend.AddGE(LinExpr{left: 1, right: 1, below: 1, above: 1}, 1)
}

// extentTerm returns piece i's horizontal (wantW true) or vertical extent
// split into a variable part (empty when rotation isn't modeled) and a
// constant part (zero when rotation is modeled, since sx/sy carries it).
func (m *Model) extentTerm(wantW bool, i int, p geom.Piece) (vars LinExpr, constant float64) {
	if m.sx == nil {
		if wantW {
			return LinExpr{}, float64(p.W)
		}
		return LinExpr{}, float64(p.H)
	}
	if wantW {
		return LinExpr{m.sx[i]: 1}, 0
	}
	return LinExpr{m.sy[i]: 1}, 0
}

func sumExpr(exprs ...LinExpr) LinExpr {
	out := LinExpr{}
	for _, e := range exprs {
		for v, c := range e {
			out[v] += c
		}
	}
	return out
}

func varName(prefix string, i int) string {
	return prefix + "_" + strconv.Itoa(i)
}

func pairName(prefix string, i, j int) string {
	return prefix + "_" + strconv.Itoa(i) + "_" + strconv.Itoa(j)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
