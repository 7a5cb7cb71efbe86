package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is one named worksheet of a workbook export.
type Sheet struct {
	Name   string
	Report Report
}

// EncodeXLSX writes each sheet's report into a workbook. Numbers stay numeric
// (floats shown with one decimal); booleans become Yes/No; nil becomes the placeholder.
func EncodeXLSX(sheets ...Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	oneDecimal := "0.0"
	floatStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &oneDecimal})
	if err != nil {
		return nil, fmt.Errorf("create number style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.Name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", sh.Name, err)
		}

		if err := writeSheet(f, sh, floatStyle, headerStyle); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sh Sheet, floatStyle, headerStyle int) error {
	headers := make([]any, len(sh.Report.Headers))
	for i, h := range sh.Report.Headers {
		headers[i] = h
	}
	if err := f.SetSheetRow(sh.Name, "A1", &headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if len(headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		if err := f.SetCellStyle(sh.Name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}

	for r, row := range sh.Report.Rows {
		cells := make([]any, len(row))
		for c, v := range row {
			switch x := v.(type) {
			case int, int64, string:
				cells[c] = x
			case float64:
				cells[c] = x
				cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
				if err := f.SetCellStyle(sh.Name, cell, cell, floatStyle); err != nil {
					return fmt.Errorf("style cell %s: %w", cell, err)
				}
			default:
				cells[c] = FormatCell(v)
			}
		}
		start, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sh.Name, start, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", r+2, err)
		}
	}
	return nil
}
