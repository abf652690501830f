package analysis

import (
	"fmt"

	"oncosense/domain/screening"
)

// timeCourse builds one cell line with CONTROL and DrugX measured in
// triplicate at 48hr, 2hr and 24hr (deliberately unsorted). Process "1"
// separates the arms, process "2" does not.
func timeCourse() *screening.MeasurementTable {
	table := &screening.MeasurementTable{Processes: []string{"2", "1"}}
	n := 0
	add := func(compound, dosage, time string, p1, p2 float64) {
		n++
		table.Rows = append(table.Rows, screening.Measurement{
			Barcode:  fmt.Sprintf("B%03d", n),
			CellLine: "A549",
			Compound: compound,
			Form:     "2D",
			Dosage:   dosage,
			Time:     time,
			Values:   map[string]float64{"1": p1, "2": p2},
		})
	}
	for _, time := range []string{"48hr", "2hr", "24hr"} {
		for i, jitter := range []float64{-0.1, 0, 0.1} {
			add("CONTROL", "-0-", time, 1+jitter, float64(i))
			add("DrugX", "40nM", time, 3+jitter, float64(i))
		}
	}
	// another cell line that must never leak into A549 groups
	table.Rows = append(table.Rows, screening.Measurement{
		Barcode: "H001", CellLine: "HeLa", Compound: "DrugX", Form: "2D",
		Dosage: "40nM", Time: "2hr", Values: map[string]float64{"1": 9, "2": 9},
	})
	return table
}

func defaultRoles(table *screening.MeasurementTable) screening.Roles {
	return screening.DefaultRoles(table.ForCellLine("A549").Compounds())
}
