package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/rectpack"
)

// LabelInfo is the data encoded into each placed piece's QR code.
type LabelInfo struct {
	PieceIndex int  `json:"piece"`
	H          int  `json:"h"`
	W          int  `json:"w"`
	Row        int  `json:"row"`
	Col        int  `json:"col"`
	Rotated    bool `json:"rotated"`
}

// Label sheet layout constants for Avery 5160-compatible labels (3
// columns, 10 rows per US Letter page) — the physical dimensions of the
// label stock itself, not a rendering choice.
const (
	labelPageWidth  = 215.9
	labelPageHeight = 279.4
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
)

// RenderLabels generates a PDF of QR-coded labels, one per placed piece, on
// a standard Avery 5160 label sheet layout. inst supplies each piece's
// original (pre-placement) extents so a label can report whether the
// engine rotated it to reach its placed orientation.
func RenderLabels(path string, inst rectpack.Instance, res rectpack.Result) error {
	if !res.Feasible || res.Grid == nil {
		return fmt.Errorf("report: cannot render labels for an infeasible result")
	}
	placements := placementsFromResult(res)
	if len(placements) == 0 {
		return fmt.Errorf("report: no placed pieces to label")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, p := range placements {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}
		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		info := LabelInfo{
			PieceIndex: p.index,
			H:          p.h,
			W:          p.w,
			Row:        p.row,
			Col:        p.col,
			Rotated:    rotatedPlacement(inst, p),
		}
		if err := renderLabel(pdf, x, y, info); err != nil {
			return fmt.Errorf("report: render label for piece %d: %w", p.index, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// rotatedPlacement reports whether p's placed bounding box is a 90-degree
// turn of its piece's original extents in inst. rectpack.Result carries
// only a bare index grid (no engine threads an orientation flag through
// it), so rotation is recovered here from the one signal a Result does
// carry: the recovered placement's own h/w versus the instance's h/w.
func rotatedPlacement(inst rectpack.Instance, p placement) bool {
	if p.index < 1 || p.index > len(inst.Pieces) {
		return false
	}
	orig := inst.Pieces[p.index-1]
	return orig.H != orig.W && p.h == orig.W && p.w == orig.H
}

// renderLabel draws one label as a title bar (piece index and rotation
// flag) over a body split into a QR code and a detail block. The QR code is
// always square; its side length is derived from the piece's own aspect
// ratio rather than a fixed constant, so a near-square piece gets a larger
// code and a long thin piece a smaller one.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	titleHeight := labelHeight * 0.32
	pdf.SetFillColor(232, 232, 232)
	pdf.Rect(x, y, labelWidth, titleHeight, "F")

	title := fmt.Sprintf("Piece %d", info.PieceIndex)
	if info.Rotated {
		title += " ↻"
	}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetXY(x, y)
	pdf.CellFormat(labelWidth, titleHeight, title, "", 0, "CM", false, 0, "")

	bodyTop := y + titleHeight
	bodyHeight := labelHeight - titleHeight

	aspect := float64(info.W) / float64(info.H)
	if aspect < 1 {
		aspect = 1 / aspect
	}
	qrSize := bodyHeight * 0.88
	if capped := labelWidth * 0.42 / aspect; capped < qrSize {
		qrSize = capped
	}

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_piece_%d", info.PieceIndex)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	margin := labelWidth * 0.06
	qrX := x + margin
	qrY := bodyTop + (bodyHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	detailX := qrX + qrSize + margin
	detailW := (x + labelWidth) - margin - detailX
	detail := fmt.Sprintf("%d x %d\nanchor (%d, %d)", info.H, info.W, info.Row, info.Col)

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(60, 60, 60)
	pdf.SetXY(detailX, bodyTop+(bodyHeight-7)/2)
	pdf.MultiCell(detailW, 3.5, detail, "", "L", false)

	pdf.SetTextColor(0, 0, 0)
	return nil
}
