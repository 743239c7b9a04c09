package report

import (
	"fmt"

	"github.com/yofu/dxf"

	"github.com/piwi3910/rectpack"
)

// WriteGridDXF writes the border of every placed piece as four DXF LINE
// entities, grounded on the teacher's internal/importer/dxf.go (there used
// to read LINE/LWPOLYLINE entities, here to emit them).
func WriteGridDXF(path string, res rectpack.Result) error {
	if !res.Feasible || res.Grid == nil {
		return fmt.Errorf("report: cannot write a DXF for an infeasible result")
	}

	d := dxf.NewDrawing()
	for _, p := range placementsFromResult(res) {
		x0, y0 := float64(p.col), float64(res.Grid.H-p.row)
		x1, y1 := float64(p.col+p.w), float64(res.Grid.H-(p.row+p.h))

		d.Line(x0, y0, 0, x1, y0, 0)
		d.Line(x1, y0, 0, x1, y1, 0)
		d.Line(x1, y1, 0, x0, y1, 0)
		d.Line(x0, y1, 0, x0, y0, 0)
	}

	return d.SaveAs(path)
}
