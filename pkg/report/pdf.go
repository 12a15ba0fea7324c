package report

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

func renderPDF(w io.Writer, d Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Soil analysis report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(128, 128, 128)
	sub := "Generated: " + d.GeneratedAt.Format("2006-01-02 15:04 MST")
	if d.Field != "" {
		sub += "  |  Field: " + d.Field
	}
	pdf.CellFormat(0, 6, tr(sub), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	widths := []float64{40, 35, 105}
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(16, 185, 129)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range tableHeader {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for i, r := range rows(d) {
		if i%2 == 1 {
			pdf.SetFillColor(242, 242, 242)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		// long suggestions wrap in the last column; keep the row height in step
		lines := pdf.SplitLines([]byte(tr(r.Value)), widths[2]-2)
		h := 7 * float64(max(1, len(lines)))
		if _, pageH := pdf.GetPageSize(); pdf.GetY()+h > pageH-20 {
			pdf.AddPage()
		}
		x, y := pdf.GetXY()
		pdf.CellFormat(widths[0], h, tr(r.Section), "1", 0, "L", true, 0, "")
		pdf.CellFormat(widths[1], h, tr(r.Item), "1", 0, "L", true, 0, "")
		pdf.MultiCell(widths[2], 7, tr(r.Value), "1", "L", true)
		pdf.SetXY(x, y+h)
	}

	if d.Narrative != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 6, tr(d.Narrative), "", "L", false)
	}
	return pdf.Output(w)
}
