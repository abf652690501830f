package prompt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oncosense/domain/screening"
	"oncosense/internal"
)

func terminal(input string) (*TerminalConfirmer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	logger := internal.NewLoggerTo(&bytes.Buffer{}, internal.LogLevelError)
	return NewTerminalConfirmer(strings.NewReader(input), out, logger), out
}

func TestTerminalConfirmer_CellLines(t *testing.T) {
	ctx := context.Background()
	names := []string{"A549", "HeLa", "MCF7"}

	c, out := terminal("MCF7, A549, nope\n")
	chosen, err := c.ConfirmCellLines(ctx, names)
	require.NoError(t, err)
	assert.Equal(t, []string{"MCF7", "A549"}, chosen)
	assert.Contains(t, out.String(), "A549, HeLa, MCF7")

	c, _ = terminal("\n")
	chosen, err = c.ConfirmCellLines(ctx, names)
	require.NoError(t, err)
	assert.Equal(t, names, chosen)

	// end of input accepts the defaults
	c, _ = terminal("")
	chosen, err = c.ConfirmCellLines(ctx, names)
	require.NoError(t, err)
	assert.Equal(t, names, chosen)

	// only unknown names never yields an empty selection
	c, _ = terminal("nope\n")
	chosen, err = c.ConfirmCellLines(ctx, names)
	require.NoError(t, err)
	assert.Equal(t, names, chosen)
}

func TestTerminalConfirmer_CompoundRoles(t *testing.T) {
	ctx := context.Background()
	names := []string{"CONTROL", "DrugX", "DrugY"}

	c, _ := terminal("DrugX\n\n")
	roles, err := c.ConfirmCompoundRoles(ctx, names, "A549")
	require.NoError(t, err)
	assert.Equal(t, []string{"DrugX"}, roles.Control)
	assert.Equal(t, []string{"CONTROL", "DrugY"}, roles.Treatment)

	c, _ = terminal("")
	roles, err = c.ConfirmCompoundRoles(ctx, names, "A549")
	require.NoError(t, err)
	assert.Equal(t, screening.DefaultRoles(names), roles)
}

func TestTerminalConfirmer_CancelledReturnsDefaults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, out := terminal("DrugX\n")
	roles, err := c.ConfirmCompoundRoles(ctx, []string{"CONTROL", "DrugX"}, "A549")
	require.NoError(t, err)
	assert.Equal(t, screening.DefaultRoles([]string{"CONTROL", "DrugX"}), roles)
	assert.Empty(t, out.String())
}

func TestPresetConfirmer(t *testing.T) {
	ctx := context.Background()

	p := &PresetConfirmer{CellLines: []string{"HeLa", "Unknown"}}
	chosen, err := p.ConfirmCellLines(ctx, []string{"A549", "HeLa"})
	require.NoError(t, err)
	assert.Equal(t, []string{"HeLa"}, chosen)

	chosen, err = (&PresetConfirmer{}).ConfirmCellLines(ctx, []string{"A549"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A549"}, chosen)

	p = &PresetConfirmer{Controls: []string{"DrugX"}}
	roles, err := p.ConfirmCompoundRoles(ctx, []string{"CONTROL", "DrugX", "DrugY"}, "A549")
	require.NoError(t, err)
	assert.Equal(t, []string{"DrugX"}, roles.Control)
	assert.Equal(t, []string{"DrugY"}, roles.Treatment)

	roles, err = (&PresetConfirmer{}).ConfirmCompoundRoles(ctx, []string{"DMSO", "DrugY"}, "A549")
	require.NoError(t, err)
	assert.Equal(t, screening.Roles{Control: []string{"DMSO"}, Treatment: []string{"DrugY"}}, roles)
}
