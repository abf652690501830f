package analysis

import (
	"sort"
	"strconv"

	"oncosense/domain/screening"
)

// Result row labels of the all-data layout
const (
	RowMean   = "mean"
	RowTest   = "t / p"
	RowReason = "reason / significant"
)

// ColumnName names a per-compound process column
func ColumnName(process, compound string) string {
	return process + " " + compound
}

// AverageColumn is one mean value of the average layout
type AverageColumn struct {
	Name     string
	Process  string
	Compound string
	Mean     float64
}

// AverageTable is the average layout of one group: two columns per process
// with a result, named after the compounds.
type AverageTable struct {
	Key     screening.ConditionKey
	Columns []AverageColumn
}

// AverageLayout builds the average layout of a group
func AverageLayout(res *GroupResult) *AverageTable {
	key := res.Key()
	table := &AverageTable{Key: key}
	for _, r := range res.Results {
		table.Columns = append(table.Columns,
			AverageColumn{Name: ColumnName(r.Process, key.Control), Process: r.Process, Compound: key.Control, Mean: r.ControlMean},
			AverageColumn{Name: ColumnName(r.Process, key.Treatment), Process: r.Process, Compound: key.Treatment, Mean: r.TreatmentMean},
		)
	}
	return table
}

// AllDataRow is one row of the all-data layout
type AllDataRow struct {
	Label            string
	ControlBarcode   string
	TreatmentBarcode string
	Cells            map[string]string
}

// AllDataTable is the all-data layout of one group: every replicate of
// both arms per process, followed by the result rows.
type AllDataTable struct {
	Key     screening.ConditionKey
	Columns []string
	Rows    []AllDataRow
}

// AllDataLayout builds the all-data layout of a group
func AllDataLayout(res *GroupResult) *AllDataTable {
	key := res.Key()
	group := res.Group
	table := &AllDataTable{Key: key}

	n := len(group.Control)
	if len(group.Treatment) > n {
		n = len(group.Treatment)
	}
	for i := 0; i < n; i++ {
		row := AllDataRow{Label: "replicate " + strconv.Itoa(i+1), Cells: make(map[string]string)}
		if i < len(group.Control) {
			row.ControlBarcode = group.Control[i].Barcode
		}
		if i < len(group.Treatment) {
			row.TreatmentBarcode = group.Treatment[i].Barcode
		}
		table.Rows = append(table.Rows, row)
	}
	mean := AllDataRow{Label: RowMean, Cells: make(map[string]string)}
	test := AllDataRow{Label: RowTest, Cells: make(map[string]string)}
	reason := AllDataRow{Label: RowReason, Cells: make(map[string]string)}

	for _, r := range res.Results {
		ctrlCol := ColumnName(r.Process, key.Control)
		treatCol := ColumnName(r.Process, key.Treatment)
		table.Columns = append(table.Columns, ctrlCol, treatCol)

		for i, v := range r.Control {
			table.Rows[i].Cells[ctrlCol] = formatFloat(v)
		}
		for i, v := range r.Treatment {
			table.Rows[i].Cells[treatCol] = formatFloat(v)
		}
		mean.Cells[ctrlCol] = formatFloat(r.ControlMean)
		mean.Cells[treatCol] = formatFloat(r.TreatmentMean)
		test.Cells[ctrlCol] = formatFloat(r.Statistic)
		test.Cells[treatCol] = formatFloat(r.PValue)
		reason.Cells[ctrlCol] = string(r.Reason)
		reason.Cells[treatCol] = strconv.FormatBool(r.Significant)
	}
	table.Rows = append(table.Rows, mean, test, reason)
	return table
}

// FilterControlTreatment keeps the results of pairs with a vocabulary
// compound on either side
func FilterControlTreatment(results []*GroupResult) []*GroupResult {
	var out []*GroupResult
	for _, r := range results {
		if r.Key().Pair().HasVocabularyControl() {
			out = append(out, r)
		}
	}
	return out
}

// Assemble renders group results into one sheet in the layout selected by
// onlyAvg. With controlTreatment set only vocabulary-control groups are kept.
func Assemble(name string, fixed screening.FixedColumn, results []*GroupResult, onlyAvg, controlTreatment bool) *screening.Sheet {
	if controlTreatment {
		results = FilterControlTreatment(results)
	}
	if onlyAvg {
		return AssembleAverage(name, fixed, results)
	}
	return AssembleAllData(name, fixed, results)
}

// AssembleAverage renders one row per group with the two means per process
func AssembleAverage(name string, fixed screening.FixedColumn, results []*GroupResult) *screening.Sheet {
	tables := make([]*AverageTable, len(results))
	var names []string
	processOf := make(map[string]string)
	for i, res := range results {
		tables[i] = AverageLayout(res)
		for _, c := range tables[i].Columns {
			if _, ok := processOf[c.Name]; !ok {
				processOf[c.Name] = c.Process
				names = append(names, c.Name)
			}
		}
	}
	names = orderByProcess(names, processOf)

	sheet := &screening.Sheet{Name: name, Header: append(keyHeader(fixed), names...)}
	for _, table := range tables {
		cells := make(map[string]string, len(table.Columns))
		for _, c := range table.Columns {
			cells[c.Name] = formatFloat(c.Mean)
		}
		row := keyCells(table.Key)
		for _, n := range names {
			row = append(row, cells[n])
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

// AssembleAllData renders every group's replicate and result rows
func AssembleAllData(name string, fixed screening.FixedColumn, results []*GroupResult) *screening.Sheet {
	tables := make([]*AllDataTable, len(results))
	var names []string
	processOf := make(map[string]string)
	for i, res := range results {
		tables[i] = AllDataLayout(res)
		for j, col := range tables[i].Columns {
			if _, ok := processOf[col]; !ok {
				processOf[col] = res.Results[j/2].Process
				names = append(names, col)
			}
		}
	}
	names = orderByProcess(names, processOf)

	header := append(keyHeader(fixed), "row", "control barcode", "treatment barcode")
	sheet := &screening.Sheet{Name: name, Header: append(header, names...)}
	for _, table := range tables {
		for _, r := range table.Rows {
			row := append(keyCells(table.Key), r.Label, r.ControlBarcode, r.TreatmentBarcode)
			for _, n := range names {
				row = append(row, r.Cells[n])
			}
			sheet.Rows = append(sheet.Rows, row)
		}
	}
	return sheet
}

// orderByProcess sorts column names by process, keeping encounter order
// within a process
func orderByProcess(names []string, processOf map[string]string) []string {
	sort.SliceStable(names, func(i, j int) bool {
		return processOf[names[i]] < processOf[names[j]]
	})
	return names
}

func keyHeader(fixed screening.FixedColumn) []string {
	return []string{screening.ColCellLine, "control", "treatment", string(fixed.Other()), string(fixed)}
}

func keyCells(key screening.ConditionKey) []string {
	return []string{key.CellLine, key.Control, key.Treatment, key.Other, key.Fixed}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
