package analysis

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oncosense/domain/screening"
)

func timeCourseResults(t *testing.T) []*GroupResult {
	t.Helper()
	table := timeCourse()
	set, err := BuildPairs(table, "A549", defaultRoles(table), screening.FixedTime, false)
	require.NoError(t, err)
	return NewEngine(0.05, 0.5).ComparePairs(set, table.Processes)
}

func TestAverageLayout_TwoColumnsPerProcess(t *testing.T) {
	results := timeCourseResults(t)

	table := AverageLayout(results[0])
	require.Len(t, table.Columns, 2*len(results[0].Results))
	assert.Equal(t, "1 CONTROL", table.Columns[0].Name)
	assert.Equal(t, "1 DrugX", table.Columns[1].Name)
	assert.InDelta(t, 1.0, table.Columns[0].Mean, 1e-12)
	assert.InDelta(t, 3.0, table.Columns[1].Mean, 1e-12)
}

func TestAssembleAverage(t *testing.T) {
	results := timeCourseResults(t)

	sheet := Assemble("A549_AVG_by_time", screening.FixedTime, results, true, false)
	keyWidth := len(keyHeader(screening.FixedTime))

	assert.Equal(t, keyWidth+2*2, sheet.Width())
	assert.Equal(t, []string{"cell_line_name", "control", "treatment", "dosage", "time",
		"1 CONTROL", "1 DrugX", "2 CONTROL", "2 DrugX"}, sheet.Header)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "2hr", sheet.Rows[0][4])
	assert.Equal(t, "48hr", sheet.Rows[2][4])
	assertCellNear(t, 1.0, sheet.Rows[0][5])
	assertCellNear(t, 3.0, sheet.Rows[0][6])
}

func TestAssembleAllData(t *testing.T) {
	results := timeCourseResults(t)

	sheet := Assemble("A549_by_time", screening.FixedTime, results, false, false)
	require.Len(t, sheet.Header, 8+4)

	// three replicates and three result rows per group
	require.Len(t, sheet.Rows, 3*(3+3))
	first := sheet.Rows[0]
	assert.Equal(t, "replicate 1", first[5])
	assert.NotEmpty(t, first[6])
	assert.NotEmpty(t, first[7])

	reason := sheet.Rows[5]
	assert.Equal(t, RowReason, reason[5])
	assert.Equal(t, string(screening.ReasonSignificantAbove), reason[8])
	assert.Equal(t, "true", reason[9])
	for _, row := range sheet.Rows {
		assert.Len(t, row, len(sheet.Header))
	}
}

func TestAssemble_ControlTreatmentFilter(t *testing.T) {
	results := timeCourseResults(t)
	results[1].Group.Key.Control = "DrugZ"
	defer func() { results[1].Group.Key.Control = "CONTROL" }()

	sheet := Assemble("A549_CT_AVG_by_time", screening.FixedTime, results, true, true)
	assert.Len(t, sheet.Rows, 2)
}

func TestBuildSeries(t *testing.T) {
	results := timeCourseResults(t)

	series := BuildSeries(results)
	require.Len(t, series, 1)
	require.Len(t, series[0].Series, 2)

	s := series[0].Series[0]
	assert.Equal(t, "1", s.Process)
	assert.Equal(t, []string{"2hr", "24hr", "48hr"}, s.Labels)
	assert.Len(t, s.Control, 3)
	assert.Len(t, s.Treatment, 3)

	assert.Empty(t, BuildSeries(results[:1]))
}

func assertCellNear(t *testing.T, want float64, cell string) {
	t.Helper()
	got, err := strconv.ParseFloat(cell, 64)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-9)
}
