package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oncosense/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DATASET_PATH", "SAVE_ROOT", "FIXED_COLUMN", "P_VALUE", "EDGE_PERCENT",
		"IMPORTANCE_THRESHOLD", "CELL_LINES", "CONTROL_COMPOUNDS", "TREATMENT_COMPOUNDS", "INTERACTIVE",
		"ERROR_LIMIT_LAMBDA"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "time", cfg.Analysis.FixedColumn)
	assert.Equal(t, 0.05, cfg.Analysis.PValue)
	assert.Equal(t, 0.1, cfg.Analysis.EdgePercent)
	assert.Equal(t, 2, cfg.Analysis.ImportanceThreshold)
	assert.Equal(t, ".", cfg.Data.SaveRoot)
	assert.Nil(t, cfg.Analysis.ErrorLimitOverride)
	assert.False(t, cfg.Interaction.Interactive)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("FIXED_COLUMN", "dosage")
	t.Setenv("P_VALUE", "0.01")
	t.Setenv("CELL_LINES", "A549, HeLa,,")
	t.Setenv("CONTROL_COMPOUNDS", "DMSO")
	t.Setenv("ERROR_LIMIT_LAMBDA", "0.25")
	t.Setenv("SAVE_ROOT", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dosage", cfg.Analysis.FixedColumn)
	assert.Equal(t, 0.01, cfg.Analysis.PValue)
	assert.Equal(t, []string{"A549", "HeLa"}, cfg.Interaction.CellLines)
	assert.Equal(t, []string{"DMSO"}, cfg.Interaction.ControlCompounds)
	require.NotNil(t, cfg.Analysis.ErrorLimitOverride)
	assert.Equal(t, 0.25, *cfg.Analysis.ErrorLimitOverride)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad fixed column", func(c *Config) { c.Analysis.FixedColumn = "form" }},
		{"p-value too large", func(c *Config) { c.Analysis.PValue = 1 }},
		{"edge percent zero", func(c *Config) { c.Analysis.EdgePercent = 0 }},
		{"negative threshold", func(c *Config) { c.Analysis.ImportanceThreshold = -1 }},
		{"empty save root", func(c *Config) { c.Data.SaveRoot = "" }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}

	assert.NoError(t, Default().Validate())
}
