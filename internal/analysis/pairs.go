package analysis

import (
	"sort"

	"oncosense/domain/screening"
)

// Group is one comparable set of replicate rows: control and treatment
// measured under the same condition.
type Group struct {
	Key       screening.ConditionKey
	Control   []screening.Measurement
	Treatment []screening.Measurement
}

// Values returns the control and treatment values of a process
func (g *Group) Values(process string) (control, treatment []float64) {
	control = make([]float64, len(g.Control))
	for i, row := range g.Control {
		control[i] = row.Values[process]
	}
	treatment = make([]float64, len(g.Treatment))
	for i, row := range g.Treatment {
		treatment[i] = row.Values[process]
	}
	return control, treatment
}

// PairGroups holds the groups of one compound pair, ascending by the
// decoded fixed column value.
type PairGroups struct {
	Pair   screening.CompoundPair
	Groups []*Group
}

// FixedValues returns the distinct fixed column values in group order
func (p *PairGroups) FixedValues() []string {
	seen := make(map[string]bool)
	var out []string
	for _, g := range p.Groups {
		if !seen[g.Key.Fixed] {
			seen[g.Key.Fixed] = true
			out = append(out, g.Key.Fixed)
		}
	}
	return out
}

// PairSet is the output of BuildPairs for one cell line
type PairSet struct {
	CellLine string
	Fixed    screening.FixedColumn
	Pairs    []*PairGroups
}

// Groups returns every group of every pair in order
func (s *PairSet) Groups() []*Group {
	var out []*Group
	for _, p := range s.Pairs {
		out = append(out, p.Groups...)
	}
	return out
}

// Plottable returns the pairs observed at two or more fixed column values
func (s *PairSet) Plottable() []*PairGroups {
	var out []*PairGroups
	for _, p := range s.Pairs {
		if len(p.FixedValues()) > 1 {
			out = append(out, p)
		}
	}
	return out
}

type condition struct {
	other, fixed string
}

// BuildPairs partitions one cell line's rows into condition groups for
// every (control, treatment) compound pair of roles.
//
// For each distinct (other, fixed) condition present on the treatment
// rows, the treatment arm holds the rows matching both values. The control
// arm holds the control rows measured at the same time; when some of them
// also share the treatment dosage only those are used. Controls normally
// carry the no-dosage sentinel, so this pairs them on time in both axes.
//
// With controlTreatment set, only pairs with a vocabulary control compound
// on either side are built.
func BuildPairs(table *screening.MeasurementTable, cellLine string, roles screening.Roles,
	fixed screening.FixedColumn, controlTreatment bool) (*PairSet, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if _, err := screening.ParseFixedColumn(string(fixed)); err != nil {
		return nil, err
	}

	cell := table.ForCellLine(cellLine)
	byCompound := make(map[string][]screening.Measurement)
	for _, row := range cell.Rows {
		byCompound[row.Compound] = append(byCompound[row.Compound], row)
	}

	set := &PairSet{CellLine: cellLine, Fixed: fixed}
	for _, control := range roles.Control {
		for _, treatment := range roles.Treatment {
			if control == treatment {
				continue
			}
			pair := screening.CompoundPair{Control: control, Treatment: treatment}
			if controlTreatment && !pair.HasVocabularyControl() {
				continue
			}
			groups := buildGroups(cellLine, pair, byCompound[control], byCompound[treatment], fixed)
			if len(groups) == 0 {
				continue
			}
			if err := sortGroups(groups, fixed); err != nil {
				return nil, err
			}
			set.Pairs = append(set.Pairs, &PairGroups{Pair: pair, Groups: groups})
		}
	}
	return set, nil
}

func buildGroups(cellLine string, pair screening.CompoundPair, controlRows, treatmentRows []screening.Measurement,
	fixed screening.FixedColumn) []*Group {
	other := fixed.Other()

	var order []condition
	arms := make(map[condition][]screening.Measurement)
	for _, row := range treatmentRows {
		c := condition{other: row.Condition(other), fixed: row.Condition(fixed)}
		if _, ok := arms[c]; !ok {
			order = append(order, c)
		}
		arms[c] = append(arms[c], row)
	}

	var groups []*Group
	for _, c := range order {
		treatment := arms[c]
		control := matchControls(controlRows, treatment[0])
		if len(control) == 0 {
			continue
		}
		groups = append(groups, &Group{
			Key: screening.ConditionKey{
				CellLine:  cellLine,
				Control:   pair.Control,
				Treatment: pair.Treatment,
				Other:     c.other,
				Fixed:     c.fixed,
			},
			Control:   control,
			Treatment: treatment,
		})
	}
	return groups
}

// matchControls selects the control rows comparable with a treatment row
func matchControls(controlRows []screening.Measurement, ref screening.Measurement) []screening.Measurement {
	var sameTime, sameDosage []screening.Measurement
	for _, row := range controlRows {
		if row.Time != ref.Time {
			continue
		}
		sameTime = append(sameTime, row)
		if row.Dosage == ref.Dosage {
			sameDosage = append(sameDosage, row)
		}
	}
	if len(sameDosage) > 0 {
		return sameDosage
	}
	return sameTime
}

func sortGroups(groups []*Group, fixed screening.FixedColumn) error {
	magnitudes := make(map[*Group]float64, len(groups))
	for _, g := range groups {
		v, err := screening.Decode(fixed, g.Key.Fixed)
		if err != nil {
			return err
		}
		magnitudes[g] = v
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return magnitudes[groups[i]] < magnitudes[groups[j]]
	})
	return nil
}
