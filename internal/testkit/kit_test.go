package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreeningGenerator_Deterministic(t *testing.T) {
	a := NewScreeningGenerator(DefaultScreeningConfig()).Measurements()
	b := NewScreeningGenerator(DefaultScreeningConfig()).Measurements()
	assert.Equal(t, a, b)
}

func TestScreeningGenerator_Layout(t *testing.T) {
	config := DefaultScreeningConfig()
	gen := NewScreeningGenerator(config)
	table := gen.Measurements()

	// 2 cell lines x 3 times x (1 control + 1 treatment x 1 dosage) x 3 replicates
	assert.Len(t, table.Rows, 2*3*2*3)
	assert.Equal(t, []string{"1", "2", "3", "4"}, table.Processes)
	require.NoError(t, table.Validate())

	assert.True(t, gen.Responsive("1"))
	assert.False(t, gen.Responsive("2"))

	effects := gen.Effects()
	assert.Len(t, effects.UIDs, config.Proteins)
	require.NoError(t, effects.Validate())
}

func TestNewTestKit_WritesWorkbook(t *testing.T) {
	kit, err := NewTestKit(t.TempDir(), DefaultScreeningConfig())
	require.NoError(t, err)
	assert.FileExists(t, kit.WorkbookPath)
	assert.DirExists(t, kit.SaveRoot)
	assert.InDelta(t, 0.5, kit.Lambda, 1e-12)
}
