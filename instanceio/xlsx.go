package instanceio

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/rectpack"
)

// LoadPiecesXLSX reads a two-column (height, width) piece list from the
// first sheet of an Excel workbook, auto-detecting an optional header row,
// grounded on the teacher's internal/importer.ImportExcel.
func LoadPiecesXLSX(path string) ([]rectpack.Piece, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("instanceio: open XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("instanceio: XLSX file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("instanceio: read XLSX rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("instanceio: sheet %q is empty", sheets[0])
	}

	return piecesFromRows(rows, "row")
}
