package rectpack

import "github.com/piwi3910/rectpack/internal/grid"

// Piece is one rectangle to place, identified by its 1-based position in
// the input slice. Both sides must be positive.
type Piece struct {
	H int `json:"h"`
	W int `json:"w"`
}

// Algorithm selects which of the three decision engines Pack dispatches to.
type Algorithm int

const (
	// Backtracking runs the top-left first-fit search with symmetry
	// breaking under rotation.
	Backtracking Algorithm = iota
	// DancingLinks reduces the instance to exact cover and runs
	// Algorithm X under a minimum-remaining-values column choice.
	DancingLinks
	// IntegerProgramming builds the feasibility-only disjunctive big-M
	// model and solves it through a Backend.
	IntegerProgramming
)

// String names an Algorithm for logging and diagnostics.
func (a Algorithm) String() string {
	switch a {
	case Backtracking:
		return "backtracking"
	case DancingLinks:
		return "dancing-links"
	case IntegerProgramming:
		return "integer-programming"
	default:
		return "unknown"
	}
}

// Instance is the full, persistable description of one packing problem,
// mirroring how the teacher bundles a part list and stock sheet into one
// saved project unit.
type Instance struct {
	// ID identifies a saved instance independent of its file path. Left
	// blank by callers that build an Instance purely to call Pack;
	// instanceio.SaveJSON fills it in when empty.
	ID            string    `json:"id,omitempty"`
	H             int       `json:"h"`
	W             int       `json:"w"`
	Pieces        []Piece   `json:"pieces"`
	AllowRotation bool      `json:"allow_rotation"`
	Algorithm     Algorithm `json:"algorithm"`
}

// Result is Pack's return value, reified as a struct rather than a bare
// tuple so it can be logged, persisted, or rendered.
type Result struct {
	Feasible bool
	// Grid holds 1-based input-order piece indices (0 = empty). Nil when
	// Feasible is false.
	Grid *grid.Grid
	// Algorithm records which engine produced this Result.
	Algorithm Algorithm
	// Diagnostic explains, in prose, why a pre-check rejected the
	// instance. It is empty whenever an engine ran, including when the
	// engine found no packing.
	Diagnostic string
}

// Stats summarizes a solved Result, computed post-hoc.
type Stats struct {
	CellsCovered int
	CellsTotal   int
	// PieceCounts maps a 1-based input piece index to the number of grid
	// cells it occupies.
	PieceCounts map[int]int
}

// ComputeStats derives Stats from a feasible Result. It returns a zero
// Stats if r is not feasible.
func ComputeStats(r Result) Stats {
	if !r.Feasible || r.Grid == nil {
		return Stats{}
	}
	matrix := r.Grid.ToMatrix()
	stats := Stats{
		CellsTotal:  r.Grid.H * r.Grid.W,
		PieceCounts: make(map[int]int),
	}
	for _, row := range matrix {
		for _, v := range row {
			if v != 0 {
				stats.CellsCovered++
				stats.PieceCounts[v]++
			}
		}
	}
	return stats
}
