package screening

import "strconv"

// Reason is the qualitative verdict of one comparison
type Reason string

const (
	ReasonSignificantAbove    Reason = "significant & above error limit"
	ReasonSignificantBelow    Reason = "significant & below error limit"
	ReasonNotSignificantAbove Reason = "not significant & above error limit"
	ReasonNotSignificantBelow Reason = "not significant & below error limit"
)

// NewReason combines the significance outcome with the effect size check
func NewReason(significant, aboveErrorLimit bool) Reason {
	switch {
	case significant && aboveErrorLimit:
		return ReasonSignificantAbove
	case significant:
		return ReasonSignificantBelow
	case aboveErrorLimit:
		return ReasonNotSignificantAbove
	default:
		return ReasonNotSignificantBelow
	}
}

// Significant reports whether the reason records a significant test
func (r Reason) Significant() bool {
	return r == ReasonSignificantAbove || r == ReasonSignificantBelow
}

// AboveErrorLimit reports whether the mean difference exceeded the error limit
func (r Reason) AboveErrorLimit() bool {
	return r == ReasonSignificantAbove || r == ReasonNotSignificantAbove
}

// ComparisonResult holds one control vs treatment comparison for a process
type ComparisonResult struct {
	Process       string
	Control       []float64
	Treatment     []float64
	ControlMean   float64
	TreatmentMean float64
	Statistic     float64
	PValue        float64
	Significant   bool
	Reason        Reason
}

// MeanDifference returns treatment mean minus control mean
func (r ComparisonResult) MeanDifference() float64 {
	return r.TreatmentMean - r.ControlMean
}

// Sheet is a rendered table ready for export
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Width returns the number of header columns
func (s *Sheet) Width() int {
	return len(s.Header)
}

// Sheet renders the table under name, one row per measurement
func (t *MeasurementTable) Sheet(name string) *Sheet {
	sheet := &Sheet{Name: name, Header: t.Header()}
	for _, m := range t.Rows {
		row := []string{m.Barcode, m.CellLine, m.Compound, m.Form, m.Dosage, m.Time}
		for _, p := range t.Processes {
			row = append(row, strconv.FormatFloat(m.Values[p], 'g', -1, 64))
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}
