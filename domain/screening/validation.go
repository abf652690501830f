package screening

import (
	"os"
	"strconv"
	"strings"

	"oncosense/domain/core"
)

// ValidateMeasurementHeader checks the six leading L columns by name and order
func ValidateMeasurementHeader(header []string) error {
	for i, want := range MeasurementHeader {
		if i >= len(header) || strings.TrimSpace(header[i]) != want {
			return core.NewDataSetError("column %d should be '%s'", i, want)
		}
	}
	seen := make(map[string]bool)
	for _, name := range header[len(MeasurementHeader):] {
		name = strings.TrimSpace(name)
		if name == "" {
			return core.NewColumnsError("process column without a name")
		}
		if seen[name] {
			return core.NewColumnsError("duplicate process column '%s'", name)
		}
		seen[name] = true
	}
	return nil
}

// ValidateEffectHeader checks that the G sheet starts with the UID column
func ValidateEffectHeader(header []string) error {
	if len(header) == 0 || strings.TrimSpace(header[0]) != ColUID {
		return core.NewDataSetError("column 0 should be '%s'", ColUID)
	}
	return nil
}

// IsBareNumber reports whether a condition cell lacks a unit of measurement
func IsBareNumber(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

// Validate checks the row-level invariants of an L table
func (t *MeasurementTable) Validate() error {
	if t == nil {
		return core.NewDataSetError("measurement table is nil")
	}
	for i, row := range t.Rows {
		if row.CellLine == "" {
			return core.Wrapf(core.ErrInvalidCellLine, "row %d has no cell line name", i)
		}
		if IsBareNumber(row.Dosage) {
			return core.NewDataSetError("dosage values are invalid, need to add unit of measurement (row %d: %q)", i, row.Dosage)
		}
		if IsBareNumber(row.Time) {
			return core.NewDataSetError("time values are invalid, need to add unit of measurement (row %d: %q)", i, row.Time)
		}
		// both axes are decoded when groups are sorted, so reject here before any export
		if _, err := ParseTime(row.Time); err != nil {
			return core.NewDataSetError("time value cannot be decoded (row %d): %v", i, err)
		}
		if _, err := ParseConcentration(row.Dosage); err != nil {
			return core.NewDataSetError("dosage value cannot be decoded (row %d): %v", i, err)
		}
	}
	return nil
}

// Validate checks the G table invariants
func (t *EffectTable) Validate() error {
	if t == nil {
		return core.NewDataSetError("effect table is nil")
	}
	for i, uid := range t.UIDs {
		if strings.TrimSpace(uid) == "" {
			return core.Wrapf(core.ErrInvalidUID, "UID has missing values (row %d)", i)
		}
	}
	for _, p := range t.Processes {
		if len(t.Values[p]) != len(t.UIDs) {
			return core.NewColumnsError("process '%s' has %d values for %d UIDs", p, len(t.Values[p]), len(t.UIDs))
		}
	}
	return nil
}

// ValidatePath checks that path exists and, when directory is set, that it is a directory
func ValidatePath(path string, directory bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return core.NewPathError(path)
	}
	if directory && !info.IsDir() {
		return core.NewDirectoryPathError(path)
	}
	return nil
}
