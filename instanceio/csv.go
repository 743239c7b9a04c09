package instanceio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/rectpack"
)

// csvHeaderAliases maps the two recognized columns to their accepted header
// spellings, mirroring the teacher's importer.headerAliases.
var csvHeaderAliases = map[string][]string{
	"height": {"height", "h", "depth", "d", "y"},
	"width":  {"width", "w", "length", "len", "x"},
}

// detectCSVDelimiter tries comma, semicolon, tab, and pipe and picks the one
// that parses cleanest for a two-column (height, width) schema: a delimiter
// producing exactly two columns on the first row always beats one that
// doesn't, and ties break on how many rows share that column count,
// grounded on the teacher's importer.DetectCSVDelimiter (there scored an
// open-ended column count against a 5-column schema; here the expected
// width is fixed at 2).
func detectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	best := ','
	bestConsistency := -1
	bestIsTwoCol := false

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 || len(records[0]) < 2 {
			continue
		}

		firstCols := len(records[0])
		consistency := 0
		for _, row := range records {
			if len(row) == firstCols {
				consistency++
			}
		}
		isTwoCol := firstCols == 2

		better := false
		switch {
		case isTwoCol && !bestIsTwoCol:
			better = true
		case isTwoCol == bestIsTwoCol && consistency > bestConsistency:
			better = true
		}
		if better {
			bestConsistency, bestIsTwoCol = consistency, isTwoCol
			best = delim
		}
	}
	return best
}

// detectCSVColumns examines a header row and returns (heightCol, widthCol,
// true) for the column indices, or (0, 1, false) if no header was found and
// positional mapping (height, width) should be used instead.
func detectCSVColumns(row []string) (heightCol, widthCol int, hasHeader bool) {
	heightCol, widthCol = -1, -1
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for _, alias := range csvHeaderAliases["height"] {
			if normalized == alias {
				hasHeader = true
				if heightCol == -1 {
					heightCol = i
				}
			}
		}
		for _, alias := range csvHeaderAliases["width"] {
			if normalized == alias {
				hasHeader = true
				if widthCol == -1 {
					widthCol = i
				}
			}
		}
	}
	if !hasHeader {
		return 0, 1, false
	}
	return heightCol, widthCol, true
}

func isEmptyCSVRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// LoadPiecesCSV reads a two-column (height, width) piece list from a CSV
// file, auto-detecting the delimiter and an optional header row, grounded on
// the teacher's internal/importer.ImportCSV.
func LoadPiecesCSV(path string) ([]rectpack.Piece, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("instanceio: read CSV: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("instanceio: CSV file is empty")
	}

	delimiter := detectCSVDelimiter(data)
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("instanceio: parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("instanceio: CSV file has no rows")
	}

	return piecesFromRows(rows, "line")
}

// piecesFromRows is the shared row-to-Piece logic for both CSV and XLSX
// sources, grounded on the teacher's importer.importFromRows.
func piecesFromRows(rows [][]string, rowNoun string) ([]rectpack.Piece, error) {
	heightCol, widthCol, hasHeader := detectCSVColumns(rows[0])
	start := 0
	if hasHeader {
		start = 1
	}

	var pieces []rectpack.Piece
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isEmptyCSVRow(row) {
			continue
		}
		lineNum := i + 1

		h, err := parseCellInt(row, heightCol)
		if err != nil {
			return nil, fmt.Errorf("instanceio: %s %d: invalid height: %w", rowNoun, lineNum, err)
		}
		w, err := parseCellInt(row, widthCol)
		if err != nil {
			return nil, fmt.Errorf("instanceio: %s %d: invalid width: %w", rowNoun, lineNum, err)
		}
		if h <= 0 || w <= 0 {
			return nil, fmt.Errorf("instanceio: %s %d: height and width must be positive", rowNoun, lineNum)
		}
		pieces = append(pieces, rectpack.Piece{H: h, W: w})
	}

	if len(pieces) == 0 {
		return nil, fmt.Errorf("instanceio: no pieces found")
	}
	return pieces, nil
}

func parseCellInt(row []string, idx int) (int, error) {
	if idx < 0 || idx >= len(row) {
		return 0, fmt.Errorf("missing column")
	}
	cell := strings.TrimSpace(row[idx])
	v, err := strconv.Atoi(cell)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", cell, err)
	}
	return v, nil
}
