package excel

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"oncosense/domain/core"
	"oncosense/domain/screening"
	"oncosense/internal"
)

// Workbook reads the L, G and ErrorLimitLambda sheets of a screening
// workbook and writes derived sheets back into it.
type Workbook struct {
	path   string
	sheets SheetNames
	logger *internal.Logger
}

// Open checks that path is an existing file and returns a workbook over it
func Open(path string, logger *internal.Logger) (*Workbook, error) {
	if err := screening.ValidatePath(path, false); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Workbook{path: path, sheets: DefaultSheetNames(), logger: logger.With("excel")}, nil
}

// Path returns the workbook location
func (w *Workbook) Path() string {
	return w.path
}

// ReadSheet reads one worksheet with raw cell values. Trailing empty rows
// are dropped and short rows are padded to the header width.
func (w *Workbook) ReadSheet(ctx context.Context, name string) (*RawSheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, core.NewDataSetError("cannot read sheet '%s': %v", name, err)
	}
	if len(rows) == 0 {
		return nil, core.NewDataSetError("sheet '%s' is empty", name)
	}

	sheet := &RawSheet{Header: trimAll(rows[0])}
	for _, row := range rows[1:] {
		cells := trimAll(row)
		for len(cells) < len(sheet.Header) {
			cells = append(cells, "")
		}
		sheet.Rows = append(sheet.Rows, cells)
	}
	for len(sheet.Rows) > 0 && isBlank(sheet.Rows[len(sheet.Rows)-1]) {
		sheet.Rows = sheet.Rows[:len(sheet.Rows)-1]
	}

	w.logger.Debug("sheet '%s' read in %.2fms (%d rows)", name,
		float64(time.Since(start).Nanoseconds())/1e6, len(sheet.Rows))
	return sheet, nil
}

// ReadMeasurements loads the L sheet. Missing or zero condition cells get
// their sentinels, empty process cells read as 0.
func (w *Workbook) ReadMeasurements(ctx context.Context) (*screening.MeasurementTable, error) {
	sheet, err := w.ReadSheet(ctx, w.sheets.Measurements)
	if err != nil {
		return nil, err
	}
	if err := screening.ValidateMeasurementHeader(sheet.Header); err != nil {
		return nil, err
	}

	fixed := len(screening.MeasurementHeader)
	table := &screening.MeasurementTable{Processes: append([]string(nil), sheet.Header[fixed:]...)}
	for i, cells := range sheet.Rows {
		if isBlank(cells) {
			continue
		}
		cellLine := cells[1]
		if isMissing(cellLine) {
			return nil, core.Wrapf(core.ErrInvalidCellLine, "cell line name has missing values (row %d)", i+2)
		}
		row := screening.Measurement{
			Barcode:  cells[0],
			CellLine: cellLine,
			Compound: orSentinel(cells[2], screening.SentinelCompound),
			Form:     orSentinel(cells[3], screening.SentinelForm),
			Dosage:   orSentinel(cells[4], screening.SentinelDosage),
			Time:     orSentinel(cells[5], screening.SentinelTime),
			Values:   make(map[string]float64, len(table.Processes)),
		}
		for j, process := range table.Processes {
			v, err := parseNumber(cells[fixed+j])
			if err != nil {
				return nil, core.NewDataSetError("row %d, process '%s': %v", i+2, process, err)
			}
			row.Values[process] = v
		}
		table.Rows = append(table.Rows, row)
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	w.logger.Info("loaded %d measurements over %d processes", len(table.Rows), len(table.Processes))
	return table, nil
}

// ReadEffects loads the G sheet. Empty score cells read as 0.
func (w *Workbook) ReadEffects(ctx context.Context) (*screening.EffectTable, error) {
	sheet, err := w.ReadSheet(ctx, w.sheets.Effects)
	if err != nil {
		return nil, err
	}
	if err := screening.ValidateEffectHeader(sheet.Header); err != nil {
		return nil, err
	}

	table := &screening.EffectTable{
		Processes: append([]string(nil), sheet.Header[1:]...),
		Values:    make(map[string][]float64, len(sheet.Header)-1),
	}
	for i, cells := range sheet.Rows {
		if isBlank(cells) {
			continue
		}
		if isMissing(cells[0]) {
			return nil, core.Wrapf(core.ErrInvalidUID, "UID has missing values (row %d)", i+2)
		}
		table.UIDs = append(table.UIDs, cells[0])
		for j, process := range table.Processes {
			v, err := parseNumber(cells[j+1])
			if err != nil {
				return nil, core.NewDataSetError("row %d, process '%s': %v", i+2, process, err)
			}
			table.Values[process] = append(table.Values[process], v)
		}
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	w.logger.Info("loaded %d effect rows over %d processes", len(table.UIDs), len(table.Processes))
	return table, nil
}

// ReadErrorLimit returns the lambda stored in A1 of the ErrorLimitLambda sheet
func (w *Workbook) ReadErrorLimit(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return 0, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	raw, err := f.GetCellValue(w.sheets.ErrorLimit, "A1", excelize.Options{RawCellValue: true})
	if err != nil {
		return 0, core.NewDataSetError("cannot read sheet '%s': %v", w.sheets.ErrorLimit, err)
	}
	lambda, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, core.NewParseError("error limit lambda", raw)
	}
	return lambda, nil
}

func trimAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

// isMissing matches the cells a zero-fill leaves behind
func isMissing(s string) bool {
	return s == "" || s == "0"
}

func orSentinel(s, sentinel string) string {
	if isMissing(s) {
		return sentinel
	}
	return s
}

func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}
