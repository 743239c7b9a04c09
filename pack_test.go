package rectpack

import (
	"context"
	"testing"
)

func piece(h, w int) Piece { return Piece{H: h, W: w} }

func cellCounts(matrix [][]int) map[int]int {
	counts := map[int]int{}
	for _, row := range matrix {
		for _, v := range row {
			if v != 0 {
				counts[v]++
			}
		}
	}
	return counts
}

// assertPerfectTiling checks testable properties §8.1 and §8.2: every cell
// is in [1..len(pieces)] and each index's cell count equals its area.
func assertPerfectTiling(t *testing.T, res Result, pieces []Piece) {
	t.Helper()
	if !res.Feasible {
		t.Fatalf("expected feasible result")
	}
	matrix := res.Grid.ToMatrix()
	counts := cellCounts(matrix)
	if len(counts) != len(pieces) {
		t.Fatalf("expected %d distinct placed pieces, got %d", len(pieces), len(counts))
	}
	for i, p := range pieces {
		idx := i + 1
		if counts[idx] != p.H*p.W {
			t.Errorf("piece %d: expected %d cells, got %d", idx, p.H*p.W, counts[idx])
		}
	}
}

func TestPack_SpecScenario1_Backtracking(t *testing.T) {
	pieces := []Piece{piece(1, 6), piece(1, 3), piece(5, 1), piece(2, 2), piece(3, 2), piece(4, 2), piece(4, 1)}
	res, err := Pack(context.Background(), 6, 6, pieces, false, Backtracking)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPerfectTiling(t, res, pieces)
}

func TestPack_SpecScenario2_BacktrackingRotation(t *testing.T) {
	pieces := []Piece{piece(5, 1), piece(1, 3), piece(5, 1), piece(2, 2), piece(3, 2), piece(3, 3), piece(4, 1)}
	res, err := Pack(context.Background(), 6, 6, pieces, true, Backtracking)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPerfectTiling(t, res, pieces)
}

func TestPack_SpecScenario3_IntegerProgramming(t *testing.T) {
	pieces := []Piece{piece(1, 4), piece(6, 1), piece(2, 2), piece(4, 2), piece(2, 3), piece(5, 1), piece(3, 3)}
	res, err := Pack(context.Background(), 6, 7, pieces, false, IntegerProgramming)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPerfectTiling(t, res, pieces)
}

func TestPack_SpecScenario4_IntegerProgrammingRotation(t *testing.T) {
	pieces := []Piece{piece(1, 4), piece(1, 6), piece(2, 2), piece(2, 4), piece(3, 2), piece(5, 1), piece(3, 3)}
	res, err := Pack(context.Background(), 6, 7, pieces, true, IntegerProgramming)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPerfectTiling(t, res, pieces)
}

func TestPack_SpecScenario5_DancingLinks(t *testing.T) {
	pieces := []Piece{piece(4, 3), piece(1, 7), piece(3, 7), piece(6, 2), piece(6, 5), piece(6, 3)}
	res, err := Pack(context.Background(), 10, 10, pieces, false, DancingLinks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPerfectTiling(t, res, pieces)
}

func TestPack_SpecScenario6_DancingLinksRotation(t *testing.T) {
	pieces := []Piece{piece(4, 3), piece(7, 1), piece(7, 3), piece(6, 2), piece(5, 6), piece(6, 3)}
	res, err := Pack(context.Background(), 10, 10, pieces, true, DancingLinks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPerfectTiling(t, res, pieces)
}

func TestPack_Negative_AreaMismatch(t *testing.T) {
	pieces := []Piece{piece(1, 1), piece(1, 1), piece(1, 1)}
	for _, algo := range []Algorithm{Backtracking, DancingLinks, IntegerProgramming} {
		res, err := Pack(context.Background(), 2, 2, pieces, false, algo)
		if err != nil {
			t.Fatalf("algo %v: unexpected error: %v", algo, err)
		}
		if res.Feasible || res.Grid != nil {
			t.Fatalf("algo %v: expected infeasible, nil grid", algo)
		}
		if res.Diagnostic == "" {
			t.Errorf("algo %v: expected a diagnostic message", algo)
		}
	}
}

func TestPack_Negative_FitCheck(t *testing.T) {
	pieces := []Piece{piece(3, 1), piece(3, 1)}
	for _, algo := range []Algorithm{Backtracking, DancingLinks, IntegerProgramming} {
		res, err := Pack(context.Background(), 2, 3, pieces, false, algo)
		if err != nil {
			t.Fatalf("algo %v: unexpected error: %v", algo, err)
		}
		if res.Feasible || res.Grid != nil {
			t.Fatalf("algo %v: expected infeasible, nil grid", algo)
		}
	}
}

// TestPack_CrossEngineAgreement exercises testable property §8.4 directly
// against the façade (compare.Run covers it as a reusable harness too).
func TestPack_CrossEngineAgreement(t *testing.T) {
	pieces := []Piece{piece(4, 3), piece(1, 7), piece(3, 7), piece(6, 2), piece(6, 5), piece(6, 3)}
	var feasible []bool
	for _, algo := range []Algorithm{Backtracking, DancingLinks, IntegerProgramming} {
		res, err := Pack(context.Background(), 10, 10, pieces, false, algo)
		if err != nil {
			t.Fatalf("algo %v: unexpected error: %v", algo, err)
		}
		feasible = append(feasible, res.Feasible)
	}
	for i := 1; i < len(feasible); i++ {
		if feasible[i] != feasible[0] {
			t.Fatalf("engines disagree on feasibility: %v", feasible)
		}
	}
}

func TestPack_InvalidAlgorithm(t *testing.T) {
	pieces := []Piece{piece(1, 1)}
	_, err := Pack(context.Background(), 1, 1, pieces, false, Algorithm(99))
	if err == nil {
		t.Fatalf("expected an error for an invalid algorithm")
	}
}

func TestPack_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pieces := []Piece{piece(1, 6), piece(1, 3), piece(5, 1), piece(2, 2), piece(3, 2), piece(4, 2), piece(4, 1)}
	_, err := Pack(ctx, 6, 6, pieces, false, Backtracking)
	if err == nil {
		t.Fatalf("expected context cancellation error")
	}
}

func TestComputeStats(t *testing.T) {
	pieces := []Piece{piece(1, 6), piece(1, 3), piece(5, 1), piece(2, 2), piece(3, 2), piece(4, 2), piece(4, 1)}
	res, err := Pack(context.Background(), 6, 6, pieces, false, Backtracking)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stats := ComputeStats(res)
	if stats.CellsTotal != 36 {
		t.Fatalf("expected 36 total cells, got %d", stats.CellsTotal)
	}
	if stats.CellsCovered != 36 {
		t.Fatalf("expected 36 covered cells for a perfect tiling, got %d", stats.CellsCovered)
	}
	if len(stats.PieceCounts) != len(pieces) {
		t.Fatalf("expected %d piece counts, got %d", len(pieces), len(stats.PieceCounts))
	}
}
