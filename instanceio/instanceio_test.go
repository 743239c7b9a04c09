package instanceio

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/rectpack"
)

func solvedTestResult(t *testing.T) rectpack.Result {
	t.Helper()
	pieces := []rectpack.Piece{{H: 1, W: 6}, {H: 2, W: 3}, {H: 2, W: 3}}
	res, err := rectpack.Pack(context.Background(), 3, 6, pieces, false, rectpack.Backtracking)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Feasible {
		t.Fatalf("expected feasible result")
	}
	return res
}

func TestSaveJSON_LoadJSON_RoundTrip(t *testing.T) {
	inst := rectpack.Instance{
		H: 6, W: 6,
		Pieces:        []rectpack.Piece{{H: 1, W: 6}, {H: 2, W: 2}},
		AllowRotation: true,
		Algorithm:     rectpack.DancingLinks,
	}

	path := filepath.Join(t.TempDir(), "sub", "instance.json")
	if err := SaveJSON(path, inst); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}

	got, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if got.H != inst.H || got.W != inst.W || got.AllowRotation != inst.AllowRotation || got.Algorithm != inst.Algorithm {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", got, inst)
	}
	if len(got.Pieces) != len(inst.Pieces) {
		t.Fatalf("expected %d pieces, got %d", len(inst.Pieces), len(got.Pieces))
	}
}

func TestSaveJSON_GeneratesIDWhenEmpty(t *testing.T) {
	inst := rectpack.Instance{H: 3, W: 3, Pieces: []rectpack.Piece{{H: 1, W: 3}}}
	path := filepath.Join(t.TempDir(), "instance.json")
	if err := SaveJSON(path, inst); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}

	got, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("expected SaveJSON to fill in a non-empty ID")
	}
}

func TestLoadJSON_MissingFile(t *testing.T) {
	if _, err := LoadJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestSaveResultJSON_FeasibleIncludesGrid(t *testing.T) {
	res := solvedTestResult(t)

	path := filepath.Join(t.TempDir(), "result.json")
	if err := SaveResultJSON(path, res); err != nil {
		t.Fatalf("SaveResultJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read result: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty result JSON")
	}
	if !strings.Contains(string(data), `"grid"`) {
		t.Fatalf("expected a grid in the feasible result JSON, got %s", data)
	}
}

func TestSaveResultJSON_InfeasibleOmitsGrid(t *testing.T) {
	res := rectpack.Result{Feasible: false, Algorithm: rectpack.IntegerProgramming, Diagnostic: "area mismatch"}
	path := filepath.Join(t.TempDir(), "result.json")
	if err := SaveResultJSON(path, res); err != nil {
		t.Fatalf("SaveResultJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read result: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty result JSON")
	}
	if strings.Contains(string(data), `"grid"`) {
		t.Fatalf("expected no grid in the infeasible result JSON, got %s", data)
	}
}

func TestLoadPiecesCSV_HeaderRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pieces.csv")
	content := "Height,Width\n1,6\n2,2\n4,1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write CSV fixture: %v", err)
	}

	pieces, err := LoadPiecesCSV(path)
	if err != nil {
		t.Fatalf("LoadPiecesCSV: %v", err)
	}
	want := []rectpack.Piece{{H: 1, W: 6}, {H: 2, W: 2}, {H: 4, W: 1}}
	if len(pieces) != len(want) {
		t.Fatalf("expected %d pieces, got %d", len(want), len(pieces))
	}
	for i, p := range pieces {
		if p != want[i] {
			t.Errorf("piece %d: got %+v, want %+v", i, p, want[i])
		}
	}
}

func TestLoadPiecesCSV_PositionalNoHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pieces.csv")
	content := "1,6\n2,2\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write CSV fixture: %v", err)
	}

	pieces, err := LoadPiecesCSV(path)
	if err != nil {
		t.Fatalf("LoadPiecesCSV: %v", err)
	}
	if len(pieces) != 2 {
		t.Fatalf("expected 2 pieces, got %d", len(pieces))
	}
	if pieces[0] != (rectpack.Piece{H: 1, W: 6}) {
		t.Errorf("unexpected first piece: %+v", pieces[0])
	}
}

func TestLoadPiecesCSV_SemicolonDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pieces.csv")
	content := "Height;Width\n3;2\n4;2\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write CSV fixture: %v", err)
	}

	pieces, err := LoadPiecesCSV(path)
	if err != nil {
		t.Fatalf("LoadPiecesCSV: %v", err)
	}
	if len(pieces) != 2 {
		t.Fatalf("expected 2 pieces, got %d", len(pieces))
	}
}

func TestLoadPiecesCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatalf("write CSV fixture: %v", err)
	}
	if _, err := LoadPiecesCSV(path); err == nil {
		t.Fatalf("expected an error for an empty CSV file")
	}
}

func TestLoadPiecesCSV_InvalidHeight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pieces.csv")
	content := "Height,Width\nabc,6\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write CSV fixture: %v", err)
	}
	if _, err := LoadPiecesCSV(path); err == nil {
		t.Fatalf("expected an error for a non-numeric height")
	}
}

func TestLoadPiecesXLSX_HeaderRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pieces.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]string{{"Height", "Width"}, {"1", "6"}, {"2", "2"}, {"4", "1"}}
	for r, row := range rows {
		for c, v := range row {
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell coordinates: %v", err)
			}
			if err := f.SetCellStr(sheet, axis, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}

	pieces, err := LoadPiecesXLSX(path)
	if err != nil {
		t.Fatalf("LoadPiecesXLSX: %v", err)
	}
	want := []rectpack.Piece{{H: 1, W: 6}, {H: 2, W: 2}, {H: 4, W: 1}}
	if len(pieces) != len(want) {
		t.Fatalf("expected %d pieces, got %d", len(want), len(pieces))
	}
	for i, p := range pieces {
		if p != want[i] {
			t.Errorf("piece %d: got %+v, want %+v", i, p, want[i])
		}
	}
}

func TestLoadPiecesXLSX_MissingFile(t *testing.T) {
	if _, err := LoadPiecesXLSX(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
