package testkit

import (
	"github.com/xuri/excelize/v2"

	"oncosense/domain/screening"
)

// WriteRawWorkbook writes each sheet's rows starting at A1. Rows hold typed
// cell values so tests can place numbers, strings and blanks (nil) exactly.
func WriteRawWorkbook(path string, sheets map[string][][]interface{}, order []string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}
		for r, row := range sheets[name] {
			for c, v := range row {
				if v == nil {
					continue
				}
				cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
				if err := f.SetCellValue(name, cell, v); err != nil {
					return err
				}
			}
		}
	}
	return f.SaveAs(path)
}

// WriteWorkbook writes L, G and ErrorLimitLambda sheets for the given tables
func WriteWorkbook(path string, l *screening.MeasurementTable, g *screening.EffectTable, lambda float64) error {
	sheets := map[string][][]interface{}{
		"L":                measurementRows(l),
		"G":                effectRows(g),
		"ErrorLimitLambda": {{lambda}},
	}
	return WriteRawWorkbook(path, sheets, []string{"L", "G", "ErrorLimitLambda"})
}

func measurementRows(t *screening.MeasurementTable) [][]interface{} {
	header := make([]interface{}, 0, len(screening.MeasurementHeader)+len(t.Processes))
	for _, h := range t.Header() {
		header = append(header, h)
	}
	rows := [][]interface{}{header}
	for _, m := range t.Rows {
		row := []interface{}{m.Barcode, m.CellLine, m.Compound, m.Form, m.Dosage, m.Time}
		for _, p := range t.Processes {
			row = append(row, m.Values[p])
		}
		rows = append(rows, row)
	}
	return rows
}

func effectRows(t *screening.EffectTable) [][]interface{} {
	header := []interface{}{screening.ColUID}
	for _, p := range t.Processes {
		header = append(header, p)
	}
	rows := [][]interface{}{header}
	for i, uid := range t.UIDs {
		row := []interface{}{uid}
		for _, p := range t.Processes {
			row = append(row, t.Values[p][i])
		}
		rows = append(rows, row)
	}
	return rows
}
