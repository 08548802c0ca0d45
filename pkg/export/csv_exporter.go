package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter renders Dataset records into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the dataset. The title is not emitted.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if err := data.validate(); err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	if err := writer.WriteAll(data.Rows); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}
