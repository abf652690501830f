package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oncosense/domain/core"
	"oncosense/domain/screening"
)

func effectTable() *screening.EffectTable {
	return &screening.EffectTable{
		UIDs:      []string{"P1", "P2", "P3", "P4", "P5"},
		Processes: []string{"1", "2"},
		Values: map[string][]float64{
			"1": {0.3, -0.2, 0.3, 0.9, -1.1},
			"2": {1, 2, 3, 4, 5},
		},
	}
}

func TestSortEffects(t *testing.T) {
	res, err := SortEffects(effectTable(), []string{"1"}, 0.2)
	require.NoError(t, err)
	require.Len(t, res, 1)

	var uids []string
	for _, e := range res[0].Sorted {
		uids = append(uids, e.UID)
	}
	// P1 and P3 tie and keep their order
	assert.Equal(t, []string{"P5", "P2", "P1", "P3", "P4"}, uids)
	assert.Equal(t, []screening.Edge{{UID: "P5", Score: -1.1}}, res[0].Lower)
	assert.Equal(t, []screening.Edge{{UID: "P4", Score: 0.9}}, res[0].Upper)
	assert.Equal(t, []screening.Edge{{UID: "P5", Score: -1.1}, {UID: "P4", Score: 0.9}}, res[0].Edges())
}

func TestSortEffects_MissingProcess(t *testing.T) {
	_, err := SortEffects(effectTable(), []string{"1", "7"}, 0.2)
	assert.ErrorIs(t, err, core.ErrInvalidColumns)
}

func TestSortEffects_MissingUID(t *testing.T) {
	table := effectTable()
	table.UIDs[2] = ""
	_, err := SortEffects(table, []string{"1"}, 0.2)
	assert.ErrorIs(t, err, core.ErrInvalidUID)
}
