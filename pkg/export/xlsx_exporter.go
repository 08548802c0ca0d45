package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Schedule"

// XLSXExporter renders datasets into a single-sheet workbook.
type XLSXExporter struct{}

// NewXLSXExporter constructs an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Render writes the header row in bold, freezes it, and fills highlighted rows.
func (e *XLSXExporter) Render(data Dataset) ([]byte, error) {
	if err := data.validate(); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	highlightStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FDE2E2"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("highlight style: %w", err)
	}

	if err := writeRow(f, 1, data.Headers); err != nil {
		return nil, err
	}
	if err := styleRow(f, 1, len(data.Headers), headerStyle); err != nil {
		return nil, err
	}
	for i, row := range data.Rows {
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
		if data.Highlight[i] {
			if err := styleRow(f, i+2, len(row), highlightStyle); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetPanes(xlsxSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
		return fmt.Errorf("write xlsx row %d: %w", rowNum, err)
	}
	return nil
}

func styleRow(f *excelize.File, rowNum, width, style int) error {
	first, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(width, rowNum)
	if err != nil {
		return err
	}
	return f.SetCellStyle(xlsxSheet, first, last, style)
}
