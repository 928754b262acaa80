package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/worldometer/core"
)

// wideTable is the column count from which pages switch to landscape.
const wideTable = 7

// PDFRenderer lays a document out as PDF tables using gofpdf.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(doc core.Document) ([]byte, error) {
	orientation := "P"
	for _, t := range doc.Tables {
		if len(t.Columns) >= wideTable {
			orientation = "L"
		}
	}

	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, tr(title(doc)), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	if doc.URL != "" {
		pdf.MultiCell(0, 5, tr("Source: "+doc.URL), "", "L", false)
	}
	if !doc.FetchedAt.IsZero() {
		pdf.MultiCell(0, 5, "Fetched: "+doc.FetchedAt.UTC().Format(time.RFC3339), "", "L", false)
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	for _, t := range doc.Tables {
		renderTable(pdf, tr, t)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderTable writes the table name, a shaded header row and the data rows.
// Columns share the printable width evenly.
func renderTable(pdf *gofpdf.Fpdf, tr func(string) string, t core.Table) {
	if len(t.Columns) == 0 {
		return
	}
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(t.Columns))

	if t.Name != "" {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, tr(t.Name), "", "L", false)
		pdf.Ln(1)
	}

	header := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for _, col := range t.Columns {
			pdf.CellFormat(colW, 6, tr(col), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}
	header()

	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range t.Rows {
		if pdf.GetY()+5 > pageH-bottom-15 {
			pdf.AddPage()
			header()
		}
		for i := range t.Columns {
			var v any
			if i < len(row) {
				v = row[i]
			}
			align := "L"
			switch v.(type) {
			case int, int64, float64:
				align = "R"
			}
			pdf.CellFormat(colW, 5, tr(FormatCell(v)), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}
