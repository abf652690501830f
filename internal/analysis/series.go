package analysis

import "oncosense/domain/screening"

// BuildSeries turns group results into per-pair plot series. Only pairs
// observed at two or more fixed values are returned; points keep the
// ascending group order produced by BuildPairs. When a pair spans several
// values of the other axis, labels carry both values.
func BuildSeries(results []*GroupResult) []screening.PairSeries {
	var order []screening.CompoundPair
	byPair := make(map[screening.CompoundPair][]*GroupResult)
	for _, r := range results {
		pair := r.Key().Pair()
		if _, ok := byPair[pair]; !ok {
			order = append(order, pair)
		}
		byPair[pair] = append(byPair[pair], r)
	}

	var out []screening.PairSeries
	for _, pair := range order {
		group := byPair[pair]
		fixedValues := make(map[string]bool)
		otherValues := make(map[string]bool)
		for _, r := range group {
			fixedValues[r.Key().Fixed] = true
			otherValues[r.Key().Other] = true
		}
		if len(fixedValues) < 2 {
			continue
		}
		mixed := len(otherValues) > 1

		var processes []string
		series := make(map[string]*screening.ProcessSeries)
		for _, r := range group {
			for _, res := range r.Results {
				s, ok := series[res.Process]
				if !ok {
					s = &screening.ProcessSeries{Process: res.Process}
					series[res.Process] = s
					processes = append(processes, res.Process)
				}
				s.Labels = append(s.Labels, pointLabel(r.Key(), mixed))
				s.Control = append(s.Control, res.ControlMean)
				s.Treatment = append(s.Treatment, res.TreatmentMean)
			}
		}

		ps := screening.PairSeries{Pair: pair}
		for _, p := range processes {
			ps.Series = append(ps.Series, *series[p])
		}
		out = append(out, ps)
	}
	return out
}

func pointLabel(key screening.ConditionKey, mixed bool) string {
	if mixed {
		return key.Fixed + " (" + key.Other + ")"
	}
	return key.Fixed
}
