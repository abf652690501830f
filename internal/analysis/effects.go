package analysis

import (
	"sort"

	"oncosense/domain/core"
	"oncosense/domain/screening"
)

// SortEffects sorts the G scores of every requested process and cuts the
// edges at fraction p. Ties keep their UID order. A process missing from
// the G table is an error.
func SortEffects(table *screening.EffectTable, processes []string, p float64) ([]screening.ProcessEffects, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	out := make([]screening.ProcessEffects, 0, len(processes))
	for _, process := range processes {
		if !table.HasProcess(process) {
			return nil, core.NewColumnsError("process '%s' is missing from G", process)
		}
		scores := table.Values[process]
		sorted := make([]screening.Edge, len(scores))
		for i, s := range scores {
			sorted[i] = screening.Edge{UID: table.UIDs[i], Score: s}
		}
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score < sorted[j].Score })

		uids := make([]string, len(sorted))
		values := make([]float64, len(sorted))
		for i, e := range sorted {
			uids[i] = e.UID
			values[i] = e.Score
		}
		lower, upper, err := FindEdges(uids, values, p)
		if err != nil {
			return nil, err
		}
		out = append(out, screening.ProcessEffects{Process: process, Sorted: sorted, Lower: lower, Upper: upper})
	}
	return out, nil
}
