package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/rectpack"
)

func testPieces() []rectpack.Piece {
	return []rectpack.Piece{
		{H: 1, W: 6}, {H: 1, W: 3}, {H: 5, W: 1}, {H: 2, W: 2}, {H: 3, W: 2}, {H: 4, W: 2}, {H: 4, W: 1},
	}
}

func solvedResult(t *testing.T) rectpack.Result {
	t.Helper()
	res, err := rectpack.Pack(context.Background(), 6, 6, testPieces(), false, rectpack.Backtracking)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Feasible {
		t.Fatalf("expected feasible result")
	}
	return res
}

func testInstance() rectpack.Instance {
	return rectpack.Instance{H: 6, W: 6, Pieces: testPieces(), Algorithm: rectpack.Backtracking}
}

func TestRenderPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.pdf")
	if err := RenderPDF(path, solvedResult(t)); err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected non-empty PDF")
	}
}

func TestRenderPDF_RejectsInfeasible(t *testing.T) {
	if err := RenderPDF(filepath.Join(t.TempDir(), "x.pdf"), rectpack.Result{}); err == nil {
		t.Fatalf("expected an error for an infeasible result")
	}
}

func TestRenderLabels_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.pdf")
	if err := RenderLabels(path, testInstance(), solvedResult(t)); err != nil {
		t.Fatalf("RenderLabels: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected non-empty PDF")
	}
}

func TestRenderLabels_RejectsInfeasible(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	if err := RenderLabels(path, testInstance(), rectpack.Result{}); err == nil {
		t.Fatalf("expected an error for an infeasible result")
	}
}

func TestRotatedPlacement(t *testing.T) {
	inst := rectpack.Instance{Pieces: []rectpack.Piece{{H: 2, W: 5}, {H: 3, W: 3}}}

	notRotated := placement{index: 1, h: 2, w: 5}
	if rotatedPlacement(inst, notRotated) {
		t.Errorf("expected an un-rotated placement to report Rotated=false")
	}

	rotated := placement{index: 1, h: 5, w: 2}
	if !rotatedPlacement(inst, rotated) {
		t.Errorf("expected a 90-degree placement to report Rotated=true")
	}

	square := placement{index: 2, h: 3, w: 3}
	if rotatedPlacement(inst, square) {
		t.Errorf("expected a square piece never to report Rotated=true")
	}
}

func TestWriteGridXLSX_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.xlsx")
	if err := WriteGridXLSX(path, solvedResult(t)); err != nil {
		t.Fatalf("WriteGridXLSX: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected non-empty XLSX")
	}
}

func TestWriteGridDXF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.dxf")
	if err := WriteGridDXF(path, solvedResult(t)); err != nil {
		t.Fatalf("WriteGridDXF: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected non-empty DXF")
	}
}

func TestPlacementsFromResult_CountAndArea(t *testing.T) {
	res := solvedResult(t)
	placements := placementsFromResult(res)
	if len(placements) != 7 {
		t.Fatalf("expected 7 placements, got %d", len(placements))
	}
	pieces := testPieces()
	for _, p := range placements {
		if p.h <= 0 || p.w <= 0 {
			t.Errorf("piece %d: non-positive extents h=%d w=%d", p.index, p.h, p.w)
		}
		want := pieces[p.index-1].H * pieces[p.index-1].W
		if p.h*p.w != want {
			t.Errorf("piece %d: expected area %d, got %d", p.index, want, p.h*p.w)
		}
	}
}
