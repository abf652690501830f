package screening

import (
	"fmt"
	"sort"
)

// Fixed header of the L sheet, in order.
const (
	ColBarcode  = "barcode"
	ColCellLine = "cell_line_name"
	ColCompound = "compound_name"
	ColForm     = "2D_3D"
	ColDosage   = "dosage"
	ColTime     = "time"

	// ColUID is the first column of the G sheet
	ColUID = "UID"
)

// MeasurementHeader lists the six leading L columns
var MeasurementHeader = []string{ColBarcode, ColCellLine, ColCompound, ColForm, ColDosage, ColTime}

// Sentinels substituted for missing L values
const (
	SentinelCompound = "CONTROL"
	SentinelForm     = "-0-"
	SentinelDosage   = "-0-"
	SentinelTime     = "0hr"
)

// ControlVocabulary holds compound names treated as controls by default
var ControlVocabulary = []string{"CONTROL", "DMSO", "PBS"}

// IsVocabularyControl reports whether name is a built-in control compound
func IsVocabularyControl(name string) bool {
	for _, c := range ControlVocabulary {
		if c == name {
			return true
		}
	}
	return false
}

// Measurement is one row of the L sheet
type Measurement struct {
	Barcode  string
	CellLine string
	Compound string
	Form     string
	Dosage   string
	Time     string
	Values   map[string]float64
}

// Condition returns the value of the given axis for this row
func (m Measurement) Condition(col FixedColumn) string {
	if col == FixedDosage {
		return m.Dosage
	}
	return m.Time
}

// MeasurementTable is the parsed L sheet
type MeasurementTable struct {
	Processes []string
	Rows      []Measurement
}

// Header returns the full column header of the table
func (t *MeasurementTable) Header() []string {
	header := make([]string, 0, len(MeasurementHeader)+len(t.Processes))
	header = append(header, MeasurementHeader...)
	return append(header, t.Processes...)
}

// CellLines returns distinct cell line names in encounter order
func (t *MeasurementTable) CellLines() []string {
	return distinct(t.Rows, func(m Measurement) string { return m.CellLine })
}

// Compounds returns distinct compound names in encounter order
func (t *MeasurementTable) Compounds() []string {
	return distinct(t.Rows, func(m Measurement) string { return m.Compound })
}

// ForCellLine returns a table restricted to one cell line. Rows are shared, not copied.
func (t *MeasurementTable) ForCellLine(cellLine string) *MeasurementTable {
	out := &MeasurementTable{Processes: t.Processes}
	for _, row := range t.Rows {
		if row.CellLine == cellLine {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Column returns the values of a process column in row order
func (t *MeasurementTable) Column(process string) []float64 {
	values := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row.Values[process]
	}
	return values
}

// WithProcesses returns a table exposing only the given process columns
func (t *MeasurementTable) WithProcesses(processes []string) *MeasurementTable {
	return &MeasurementTable{Processes: processes, Rows: t.Rows}
}

// Value returns the string cell for a fixed column name
func (m Measurement) Value(column string) (string, bool) {
	switch column {
	case ColBarcode:
		return m.Barcode, true
	case ColCellLine:
		return m.CellLine, true
	case ColCompound:
		return m.Compound, true
	case ColForm:
		return m.Form, true
	case ColDosage:
		return m.Dosage, true
	case ColTime:
		return m.Time, true
	}
	return "", false
}

// EffectTable is the parsed G sheet: one score column per process, keyed by UID
type EffectTable struct {
	UIDs      []string
	Processes []string
	Values    map[string][]float64
}

// HasProcess reports whether the table carries a column for process
func (t *EffectTable) HasProcess(process string) bool {
	_, ok := t.Values[process]
	return ok
}

// FixedColumn is the condition axis held constant inside a comparison group
type FixedColumn string

const (
	FixedTime   FixedColumn = ColTime
	FixedDosage FixedColumn = ColDosage
)

// ParseFixedColumn validates a fixed column name
func ParseFixedColumn(s string) (FixedColumn, error) {
	switch FixedColumn(s) {
	case FixedTime, FixedDosage:
		return FixedColumn(s), nil
	}
	return "", fmt.Errorf("fixed column must be %q or %q, got %q", FixedTime, FixedDosage, s)
}

// Other returns the axis that is not fixed
func (c FixedColumn) Other() FixedColumn {
	if c == FixedDosage {
		return FixedTime
	}
	return FixedDosage
}

func (c FixedColumn) String() string { return string(c) }

// CompoundPair is a (control, treatment) compound combination
type CompoundPair struct {
	Control   string
	Treatment string
}

func (p CompoundPair) String() string {
	return p.Control + ", " + p.Treatment
}

// HasVocabularyControl reports whether either compound of the pair is a
// vocabulary control
func (p CompoundPair) HasVocabularyControl() bool {
	return IsVocabularyControl(p.Control) || IsVocabularyControl(p.Treatment)
}

// ConditionKey identifies one group of replicate rows
type ConditionKey struct {
	CellLine  string
	Control   string
	Treatment string
	Other     string // value of the non-fixed axis
	Fixed     string // value of the fixed axis
}

// Pair returns the compound pair of the key
func (k ConditionKey) Pair() CompoundPair {
	return CompoundPair{Control: k.Control, Treatment: k.Treatment}
}

func (k ConditionKey) String() string {
	return fmt.Sprintf("(%s, %s, %s, %s, %s)", k.CellLine, k.Control, k.Treatment, k.Other, k.Fixed)
}

// Roles is a control/treatment partition of compound names
type Roles struct {
	Control   []string
	Treatment []string
}

// DefaultRoles splits names by the control vocabulary. Both lists are sorted.
func DefaultRoles(names []string) Roles {
	var roles Roles
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		if IsVocabularyControl(name) {
			roles.Control = append(roles.Control, name)
		} else {
			roles.Treatment = append(roles.Treatment, name)
		}
	}
	sort.Strings(roles.Control)
	sort.Strings(roles.Treatment)
	return roles
}

// IsEmpty reports whether neither list carries a name
func (r Roles) IsEmpty() bool {
	return len(r.Control) == 0 && len(r.Treatment) == 0
}

// SheetName builds "<cell>[_CT][_AVG]_by_<fixed>"
func SheetName(cellLine string, onlyAvg, controlTreatment bool, fixed FixedColumn) string {
	name := cellLine
	if controlTreatment {
		name += "_CT"
	}
	if onlyAvg {
		name += "_AVG"
	}
	return name + "_by_" + string(fixed)
}

func distinct(rows []Measurement, field func(Measurement) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range rows {
		v := field(row)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
