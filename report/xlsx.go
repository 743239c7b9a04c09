package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/rectpack"
)

// WriteGridXLSX writes res's grid as a plain cell matrix (row r, col c ->
// the occupying piece's 1-based index, blank if empty) to an XLSX sheet,
// one row of cells per grid row, grounded on the teacher's excelize usage
// in internal/importer (there used to read, here to write).
func WriteGridXLSX(path string, res rectpack.Result) error {
	if !res.Feasible || res.Grid == nil {
		return fmt.Errorf("report: cannot write grid for an infeasible result")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Grid"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("report: create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("report: delete default sheet: %w", err)
	}

	matrix := res.Grid.ToMatrix()
	for r, row := range matrix {
		for c, v := range row {
			if v == 0 {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("report: cell coordinates (%d,%d): %w", r, c, err)
			}
			if err := f.SetCellInt(sheet, axis, v); err != nil {
				return fmt.Errorf("report: set cell %s: %w", axis, err)
			}
		}
	}

	return f.SaveAs(path)
}
