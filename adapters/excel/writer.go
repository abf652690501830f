package excel

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"oncosense/domain/screening"
	"oncosense/internal/errors"
)

// WriteSheet writes sheet into the workbook, replacing a sheet of the same
// name. The header row is frozen, data cells are centered and column
// widths fit their content. Empty sheets are not written.
func (w *Workbook) WriteSheet(ctx context.Context, sheet *screening.Sheet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(sheet.Rows) == 0 {
		w.logger.Info("The sheet '%s' was not created because the table is empty", sheet.Name)
		return nil
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return errors.ExportFailed(sheet.Name, err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet.Name); err == nil && idx != -1 {
		if err := f.DeleteSheet(sheet.Name); err != nil {
			return errors.ExportFailed(sheet.Name, fmt.Errorf("removing existing sheet: %w", err))
		}
	}
	if _, err := f.NewSheet(sheet.Name); err != nil {
		return errors.ExportFailed(sheet.Name, err)
	}

	if err := writeRows(f, sheet); err != nil {
		return errors.ExportFailed(sheet.Name, err)
	}
	if err := format(f, sheet); err != nil {
		return errors.ExportFailed(sheet.Name, err)
	}
	if err := f.Save(); err != nil {
		return errors.ExportFailed(sheet.Name, err)
	}

	w.logger.Info("The sheet '%s' created successfully", sheet.Name)
	return nil
}

func writeRows(f *excelize.File, sheet *screening.Sheet) error {
	header := make([]interface{}, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return err
	}

	for i, row := range sheet.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = cellValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet.Name, cell, &cells); err != nil {
			return err
		}
	}
	return nil
}

func format(f *excelize.File, sheet *screening.Sheet) error {
	if err := f.SetPanes(sheet.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{Horizontal: "center"}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(sheet.Width(), len(sheet.Rows)+1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet.Name, "A2", last, style); err != nil {
		return err
	}

	for j, width := range columnWidths(sheet) {
		col, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet.Name, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

// columnWidths sizes each column to its longest cell, header included
func columnWidths(sheet *screening.Sheet) []float64 {
	widths := make([]float64, sheet.Width())
	for j := range widths {
		longest := utf8.RuneCountInString(sheet.Header[j])
		for _, row := range sheet.Rows {
			if j < len(row) {
				if n := utf8.RuneCountInString(row[j]); n > longest {
					longest = n
				}
			}
		}
		widths[j] = float64(longest+1) * 1.1
	}
	return widths
}

// cellValue writes canonical numeric strings as numbers. Anything that
// would not round-trip (leading zeros, NaN, Inf) stays text.
func cellValue(s string) interface{} {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || strconv.FormatFloat(v, 'g', -1, 64) != s {
		return s
	}
	return v
}
