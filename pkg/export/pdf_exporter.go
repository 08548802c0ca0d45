package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a landscape tabular PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and table body. Highlighted
// rows are shaded.
func (e *PDFExporter) Render(data Dataset) ([]byte, error) {
	if err := data.validate(); err != nil {
		return nil, err
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if data.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(data.Title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(data.Headers))

	writeHeader := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(220, 220, 220)
		for _, header := range data.Headers {
			pdf.CellFormat(colWidth, 8, tr(header), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	writeHeader()

	pdf.SetFont("Arial", "", 8)
	pdf.SetFillColor(253, 226, 226)
	_, pageHeight := pdf.GetPageSize()
	for i, row := range data.Rows {
		if pdf.GetY()+7 > pageHeight-12 {
			pdf.AddPage()
			writeHeader()
			pdf.SetFont("Arial", "", 8)
			pdf.SetFillColor(253, 226, 226)
		}
		fill := data.Highlight[i]
		for _, value := range row {
			pdf.CellFormat(colWidth, 7, tr(value), "1", 0, "", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
