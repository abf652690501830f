package analysis

import (
	"math"

	"oncosense/domain/core"
	"oncosense/domain/screening"
)

// ImportantColumns keeps the process columns where at least threshold rows
// exceed errLimit in absolute value. The fixed columns and all rows are kept.
func ImportantColumns(table *screening.MeasurementTable, errLimit float64, threshold int) (*screening.MeasurementTable, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if threshold < 0 {
		return nil, core.NewNegativeNumberError("threshold", float64(threshold))
	}

	kept := make([]string, 0, len(table.Processes))
	for _, process := range table.Processes {
		count := 0
		for _, v := range table.Column(process) {
			if math.Abs(v) > errLimit {
				count++
			}
		}
		if count >= threshold {
			kept = append(kept, process)
		}
	}
	return table.WithProcesses(kept), nil
}

// FilterByColumn keeps the rows whose value in column is one of values.
// Only the six fixed columns can be filtered on.
func FilterByColumn(table *screening.MeasurementTable, column string, values []string) (*screening.MeasurementTable, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if _, ok := (screening.Measurement{}).Value(column); !ok {
		return nil, core.NewColumnsError("cannot filter by '%s'", column)
	}

	allowed := make(map[string]bool, len(values))
	for _, v := range values {
		allowed[v] = true
	}

	out := &screening.MeasurementTable{Processes: table.Processes}
	for _, row := range table.Rows {
		if v, _ := row.Value(column); allowed[v] {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}
