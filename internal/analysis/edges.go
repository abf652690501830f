package analysis

import (
	"math"

	"oncosense/domain/core"
	"oncosense/domain/screening"
)

// FindEdges returns the lowest and highest round(n*p) entries of an
// ascending score column. Inputs are not reordered; callers sort first.
// The halves never overlap: when 2*round(n*p) exceeds n each side is
// capped at n/2.
func FindEdges(uids []string, scores []float64, p float64) (lower, upper []screening.Edge, err error) {
	if len(uids) != len(scores) {
		return nil, nil, core.NewColumnsError("%d identifiers for %d scores", len(uids), len(scores))
	}
	if p <= 0 || p > 1 || math.IsNaN(p) {
		return nil, nil, core.Wrapf(core.ErrNegativeNumber, "edge fraction must be in (0, 1], got %v", p)
	}

	n := len(scores)
	k := int(math.RoundToEven(float64(n) * p))
	if k > n/2 {
		k = n / 2
	}
	if k == 0 {
		return []screening.Edge{}, []screening.Edge{}, nil
	}

	lower = make([]screening.Edge, k)
	upper = make([]screening.Edge, k)
	for i := 0; i < k; i++ {
		lower[i] = screening.Edge{UID: uids[i], Score: scores[i]}
		j := n - k + i
		upper[i] = screening.Edge{UID: uids[j], Score: scores[j]}
	}
	return lower, upper, nil
}
