// Package export renders tabular timetable data into downloadable documents.
package export

import "fmt"

// Format names a supported export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a user-supplied format, defaulting to CSV.
func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv"
	}
}

// Dataset defines tabular export content. Rows are positional and match Headers.
// Highlight marks rows the renderers should emphasise, such as conflicting events.
type Dataset struct {
	Title     string
	Headers   []string
	Rows      [][]string
	Highlight map[int]bool
}

func (d Dataset) validate() error {
	if len(d.Headers) == 0 {
		return fmt.Errorf("dataset requires at least one header")
	}
	for i, row := range d.Rows {
		if len(row) != len(d.Headers) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(d.Headers))
		}
	}
	return nil
}

// Renderer encodes a dataset.
type Renderer interface {
	Render(Dataset) ([]byte, error)
}

// NewRenderer returns the renderer for format.
func NewRenderer(format Format) Renderer {
	switch format {
	case FormatPDF:
		return NewPDFExporter()
	case FormatXLSX:
		return NewXLSXExporter()
	default:
		return NewCSVExporter()
	}
}
