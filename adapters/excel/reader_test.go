package excel

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"oncosense/domain/core"
	"oncosense/domain/screening"
	"oncosense/internal"
	"oncosense/internal/testkit"
)

var lHeader = []interface{}{"barcode", "cell_line_name", "compound_name", "2D_3D", "dosage", "time", "1", "2"}

func writeWorkbook(t *testing.T, l, g [][]interface{}, lambda interface{}) *Workbook {
	t.Helper()
	path := filepath.Join(t.TempDir(), "screen.xlsx")
	sheets := map[string][][]interface{}{"L": l, "G": g, "ErrorLimitLambda": {{lambda}}}
	require.NoError(t, testkit.WriteRawWorkbook(path, sheets, []string{"L", "G", "ErrorLimitLambda"}))

	wb, err := Open(path, internal.NewLoggerTo(&bytes.Buffer{}, internal.LogLevelDebug))
	require.NoError(t, err)
	return wb
}

func TestReadMeasurements_SentinelSubstitution(t *testing.T) {
	wb := writeWorkbook(t, [][]interface{}{
		lHeader,
		{"B1", "A549", nil, nil, nil, nil, 0.5, nil},
		{"B2", "A549", "DrugX", "2D", "40nM", "24hr", 1.5, -2},
		{"B3", "A549", 0, 0, 0, 0, 0, 0},
	}, [][]interface{}{{"UID", "1"}}, 0.3)

	table, err := wb.ReadMeasurements(context.Background())
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"1", "2"}, table.Processes)

	first := table.Rows[0]
	assert.Equal(t, screening.SentinelCompound, first.Compound)
	assert.Equal(t, screening.SentinelForm, first.Form)
	assert.Equal(t, screening.SentinelDosage, first.Dosage)
	assert.Equal(t, screening.SentinelTime, first.Time)
	assert.Equal(t, 0.5, first.Values["1"])
	assert.Equal(t, 0.0, first.Values["2"])

	second := table.Rows[1]
	assert.Equal(t, "DrugX", second.Compound)
	assert.Equal(t, "40nM", second.Dosage)
	assert.Equal(t, -2.0, second.Values["2"])

	assert.Equal(t, screening.SentinelCompound, table.Rows[2].Compound)
	assert.Equal(t, screening.SentinelTime, table.Rows[2].Time)
}

func TestReadMeasurements_Errors(t *testing.T) {
	tests := []struct {
		name string
		l    [][]interface{}
		want error
	}{
		{
			name: "missing cell line",
			l:    [][]interface{}{lHeader, {"B1", nil, "DrugX", "2D", "40nM", "2hr", 1, 1}},
			want: core.ErrInvalidCellLine,
		},
		{
			name: "bare numeric dosage",
			l:    [][]interface{}{lHeader, {"B1", "A549", "DrugX", "2D", 40, "2hr", 1, 1}},
			want: core.ErrInvalidDataSet,
		},
		{
			name: "wrong header",
			l:    [][]interface{}{{"barcode", "cell", "compound_name", "2D_3D", "dosage", "time", "1"}},
			want: core.ErrInvalidDataSet,
		},
		{
			name: "duplicate process",
			l:    [][]interface{}{{"barcode", "cell_line_name", "compound_name", "2D_3D", "dosage", "time", "1", "1"}},
			want: core.ErrInvalidColumns,
		},
		{
			name: "text in process column",
			l:    [][]interface{}{lHeader, {"B1", "A549", "DrugX", "2D", "40nM", "2hr", "high", 1}},
			want: core.ErrInvalidDataSet,
		},
		{
			name: "NaN in process column",
			l:    [][]interface{}{lHeader, {"B1", "A549", "DrugX", "2D", "40nM", "2hr", "NaN", 1}},
			want: core.ErrInvalidDataSet,
		},
		{
			name: "infinite value in process column",
			l:    [][]interface{}{lHeader, {"B1", "A549", "DrugX", "2D", "40nM", "2hr", 1, "-Inf"}},
			want: core.ErrInvalidDataSet,
		},
		{
			name: "undecodable time",
			l:    [][]interface{}{lHeader, {"B1", "A549", "DrugX", "2D", "40nM", "overnight", 1, 1}},
			want: core.ErrInvalidDataSet,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			wb := writeWorkbook(t, test.l, [][]interface{}{{"UID", "1"}}, 0.3)
			_, err := wb.ReadMeasurements(context.Background())
			assert.ErrorIs(t, err, test.want)
		})
	}
}

func TestReadEffects(t *testing.T) {
	wb := writeWorkbook(t, [][]interface{}{lHeader}, [][]interface{}{
		{"UID", "1", "2"},
		{"P1", 0.1, nil},
		{"P2", -0.4, 2},
	}, 0.3)

	table, err := wb.ReadEffects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"P1", "P2"}, table.UIDs)
	assert.Equal(t, []float64{0.1, -0.4}, table.Values["1"])
	assert.Equal(t, []float64{0, 2}, table.Values["2"])
}

func TestReadEffects_MissingUID(t *testing.T) {
	wb := writeWorkbook(t, [][]interface{}{lHeader}, [][]interface{}{
		{"UID", "1"},
		{"P1", 0.1},
		{nil, 0.2},
	}, 0.3)

	_, err := wb.ReadEffects(context.Background())
	assert.ErrorIs(t, err, core.ErrInvalidUID)
}

func TestReadEffects_NonFiniteScore(t *testing.T) {
	wb := writeWorkbook(t, [][]interface{}{lHeader}, [][]interface{}{
		{"UID", "1"},
		{"P1", "Inf"},
	}, 0.3)

	_, err := wb.ReadEffects(context.Background())
	assert.ErrorIs(t, err, core.ErrInvalidDataSet)
}

func TestReadErrorLimit(t *testing.T) {
	wb := writeWorkbook(t, [][]interface{}{lHeader}, [][]interface{}{{"UID"}}, 0.35)
	lambda, err := wb.ReadErrorLimit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.35, lambda)

	wb = writeWorkbook(t, [][]interface{}{lHeader}, [][]interface{}{{"UID"}}, "lots")
	_, err = wb.ReadErrorLimit(context.Background())
	assert.ErrorIs(t, err, core.ErrParse)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.xlsx"), nil)
	assert.ErrorIs(t, err, core.ErrInvalidPath)
}

func TestRoundTrip_GeneratedWorkbook(t *testing.T) {
	kit, err := testkit.NewTestKit(t.TempDir(), testkit.DefaultScreeningConfig())
	require.NoError(t, err)

	wb, err := Open(kit.WorkbookPath, internal.NewLoggerTo(&bytes.Buffer{}, internal.LogLevelInfo))
	require.NoError(t, err)

	l, err := wb.ReadMeasurements(context.Background())
	require.NoError(t, err)
	require.Len(t, l.Rows, len(kit.Measurements.Rows))
	assert.Equal(t, kit.Measurements.Processes, l.Processes)
	for i := range l.Rows {
		assert.Equal(t, kit.Measurements.Rows[i].Barcode, l.Rows[i].Barcode)
		for _, p := range l.Processes {
			assert.InDelta(t, kit.Measurements.Rows[i].Values[p], l.Rows[i].Values[p], 1e-12)
		}
	}

	g, err := wb.ReadEffects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, kit.Effects.UIDs, g.UIDs)
}

func TestWriteSheet_ReplacesAndFormats(t *testing.T) {
	wb := writeWorkbook(t, [][]interface{}{lHeader}, [][]interface{}{{"UID"}}, 0.3)
	ctx := context.Background()

	first := &screening.Sheet{Name: "important_L", Header: []string{"barcode", "1"}, Rows: [][]string{{"B1", "0.5"}, {"B2", "x"}}}
	require.NoError(t, wb.WriteSheet(ctx, first))
	second := &screening.Sheet{Name: "important_L", Header: []string{"barcode", "2"}, Rows: [][]string{{"B9", "007"}}}
	require.NoError(t, wb.WriteSheet(ctx, second))

	f, err := excelize.OpenFile(wb.Path())
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("important_L")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"barcode", "2"}, {"B9", "007"}}, rows)

	panes, err := f.GetPanes("important_L")
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, "A2", panes.TopLeftCell)

	width, err := f.GetColWidth("important_L", "A")
	require.NoError(t, err)
	assert.InDelta(t, float64(len("barcode")+1)*1.1, width, 1e-9)

	// L is untouched
	lRows, err := f.GetRows("L")
	require.NoError(t, err)
	assert.Len(t, lRows, 1)
}

func TestWriteSheet_SkipsEmpty(t *testing.T) {
	wb := writeWorkbook(t, [][]interface{}{lHeader}, [][]interface{}{{"UID"}}, 0.3)
	require.NoError(t, wb.WriteSheet(context.Background(), &screening.Sheet{Name: "filter_by_col", Header: []string{"a"}}))

	f, err := excelize.OpenFile(wb.Path())
	require.NoError(t, err)
	defer f.Close()
	idx, err := f.GetSheetIndex("filter_by_col")
	require.NoError(t, err)
	assert.Equal(t, -1, idx)
}

func TestCellValue(t *testing.T) {
	assert.Equal(t, 0.5, cellValue("0.5"))
	assert.Equal(t, "007", cellValue("007"))
	assert.Equal(t, "NaN", cellValue("NaN"))
	assert.Equal(t, "40nM", cellValue("40nM"))
}
