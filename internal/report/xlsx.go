package report

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx"
)

// WriteXLSX writes t as a single-sheet workbook.
func WriteXLSX(w io.Writer, t Table) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(t.Name)
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range t.Headers {
		header.AddCell().SetString(h)
	}

	for _, r := range t.Rows {
		row := sheet.AddRow()
		for _, v := range r {
			cell := row.AddCell()
			switch x := v.(type) {
			case int64:
				cell.SetInt64(x)
			case int:
				cell.SetInt(x)
			default:
				cell.SetString(cellString(v))
			}
		}
	}

	return file.Write(w)
}

// Write dispatches on format.
func Write(w io.Writer, t Table, format string) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
