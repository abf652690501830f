package prompt

import (
	"context"

	"oncosense/domain/screening"
	"oncosense/ports"
)

// PresetConfirmer answers from fixed lists, typically taken from
// configuration. Empty lists or lists that match nothing fall back to the
// defaults.
type PresetConfirmer struct {
	CellLines  []string
	Controls   []string
	Treatments []string
}

var _ ports.Confirmer = (*PresetConfirmer)(nil)

// ConfirmCellLines keeps the preset cell lines present in names
func (p *PresetConfirmer) ConfirmCellLines(ctx context.Context, names []string) ([]string, error) {
	chosen := intersect(p.CellLines, names)
	if len(chosen) == 0 {
		return names, nil
	}
	return chosen, nil
}

// ConfirmCompoundRoles applies the preset lists to the compounds of a cell
// line. A side left unset uses the default partition minus the compounds
// assigned to the other side.
func (p *PresetConfirmer) ConfirmCompoundRoles(ctx context.Context, names []string, cellLine string) (screening.Roles, error) {
	defaults := screening.DefaultRoles(names)

	control := intersect(p.Controls, names)
	treatment := intersect(p.Treatments, names)
	if len(control) == 0 {
		control = without(defaults.Control, treatment)
	}
	if len(treatment) == 0 {
		treatment = without(defaults.Treatment, control)
	}

	roles := screening.Roles{Control: control, Treatment: treatment}
	if roles.IsEmpty() {
		return defaults, nil
	}
	return roles, nil
}

// intersect keeps the wanted names present in names, in wanted order
func intersect(wanted, names []string) []string {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	var out []string
	for _, w := range wanted {
		if present[w] {
			out = append(out, w)
		}
	}
	return out
}
