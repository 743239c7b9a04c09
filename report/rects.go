// Package report renders a solved rectpack.Result as a diagnostic
// artifact: a PDF witness drawing, a sheet of QR-coded piece labels, an
// XLSX dump of the grid, or a DXF outline of every placed rectangle. None
// of this is on any engine's call path; it exists only for callers that
// want a rendered artifact out of a Result they already have.
package report

import (
	"sort"

	"github.com/piwi3910/rectpack"
)

// placement is one piece's axis-aligned bounding box recovered from a
// solved grid, 0-based.
type placement struct {
	index    int // 1-based input piece index
	row, col int
	h, w     int
}

// placementsFromResult recovers each piece's placement rectangle by
// scanning the grid for every distinct index's bounding box. This is safe
// because a Feasible Result's grid invariant (spec.md §8.1) guarantees
// each index occupies exactly one contiguous axis-aligned rectangle.
func placementsFromResult(res rectpack.Result) []placement {
	if !res.Feasible || res.Grid == nil {
		return nil
	}
	matrix := res.Grid.ToMatrix()
	bounds := make(map[int][4]int) // minRow, minCol, maxRow, maxCol
	seen := make(map[int]bool)
	for r, row := range matrix {
		for c, v := range row {
			if v == 0 {
				continue
			}
			b, ok := bounds[v]
			if !ok {
				bounds[v] = [4]int{r, c, r, c}
				seen[v] = true
				continue
			}
			if r < b[0] {
				b[0] = r
			}
			if c < b[1] {
				b[1] = c
			}
			if r > b[2] {
				b[2] = r
			}
			if c > b[3] {
				b[3] = c
			}
			bounds[v] = b
		}
	}

	out := make([]placement, 0, len(bounds))
	for idx, b := range bounds {
		out = append(out, placement{
			index: idx,
			row:   b[0],
			col:   b[1],
			h:     b[2] - b[0] + 1,
			w:     b[3] - b[1] + 1,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].index < out[j].index })
	return out
}
