package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oncosense/adapters/prompt"
	"oncosense/app"
	"oncosense/internal/config"
	"oncosense/internal/errors"
)

func TestParseFilters(t *testing.T) {
	filters, err := parseFilters([]string{"time=2hr, 24hr", " cell_line_name =A549"})
	require.NoError(t, err)
	assert.Equal(t, []app.ColumnFilter{
		{Column: "time", Values: []string{"2hr", "24hr"}},
		{Column: "cell_line_name", Values: []string{"A549"}},
	}, filters)

	_, err = parseFilters([]string{"time"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestApplyFlags_OnlyChangedFlagsOverride(t *testing.T) {
	opts := &options{}
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&opts.fixed, "fixed", "", "")
	cmd.Flags().Float64Var(&opts.pValue, "p-value", 0, "")
	cmd.Flags().Float64Var(&opts.errorLimit, "error-limit", 0, "")
	cmd.Flags().StringVar(&opts.controls, "controls", "", "")
	require.NoError(t, cmd.Flags().Parse([]string{"--fixed", "dosage", "--error-limit", "0.3", "--controls", "DMSO, PBS"}))

	cfg := config.Default()
	applyFlags(cmd, opts, cfg)

	assert.Equal(t, "dosage", cfg.Analysis.FixedColumn)
	assert.Equal(t, 0.05, cfg.Analysis.PValue)
	require.NotNil(t, cfg.Analysis.ErrorLimitOverride)
	assert.Equal(t, 0.3, *cfg.Analysis.ErrorLimitOverride)
	assert.Equal(t, []string{"DMSO", "PBS"}, cfg.Interaction.ControlCompounds)
}

func TestNewConfirmer(t *testing.T) {
	cfg := config.Default()
	cfg.Interaction.CellLines = []string{"A549"}

	preset, ok := newConfirmer(cfg, nil).(*prompt.PresetConfirmer)
	require.True(t, ok)
	assert.Equal(t, []string{"A549"}, preset.CellLines)

	cfg.Interaction.Interactive = true
	_, ok = newConfirmer(cfg, nil).(*prompt.TerminalConfirmer)
	assert.True(t, ok)
}
