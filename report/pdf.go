package report

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/rectpack"
)

// pieceColors mirrors the teacher's placed-part color palette.
var pieceColors = []struct{ R, G, B int }{
	{R: 76, G: 175, B: 80},
	{R: 33, G: 150, B: 243},
	{R: 255, G: 152, B: 0},
	{R: 156, G: 39, B: 176},
	{R: 0, G: 188, B: 212},
	{R: 244, G: 67, B: 54},
	{R: 255, G: 235, B: 59},
	{R: 121, G: 85, B: 72},
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
)

// RenderPDF draws res's grid as a single-page scaled diagram: the box
// outline, then every placed piece filled with a palette color and
// labeled with its 1-based input index. It returns an error if res is not
// feasible.
func RenderPDF(path string, res rectpack.Result) error {
	if !res.Feasible || res.Grid == nil {
		return fmt.Errorf("report: cannot render an infeasible result")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s packing: %d x %d", res.Algorithm, res.Grid.H, res.Grid.W)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - marginTop - headerHeight - marginBottom

	scaleX := drawWidth / float64(res.Grid.W)
	scaleY := drawHeight / float64(res.Grid.H)
	scale := math.Min(scaleX, scaleY)

	offsetX := marginLeft
	offsetY := marginTop + headerHeight + 5

	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.3)
	pdf.Rect(offsetX, offsetY, float64(res.Grid.W)*scale, float64(res.Grid.H)*scale, "D")

	for _, p := range placementsFromResult(res) {
		col := pieceColors[(p.index-1)%len(pieceColors)]
		x := offsetX + float64(p.col)*scale
		y := offsetY + float64(p.row)*scale
		w := float64(p.w) * scale
		h := float64(p.h) * scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(60, 60, 60)
		pdf.Rect(x, y, w, h, "FD")

		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(x, y+h/2-2)
		pdf.CellFormat(w, 4, fmt.Sprintf("%d", p.index), "", 0, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)

	return pdf.OutputFileAndClose(path)
}
