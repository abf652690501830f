package analysis

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"oncosense/domain/screening"
)

// minArmSize is the smallest arm the t-test accepts
const minArmSize = 2

// Engine compares control and treatment arms with an independent two-sample
// t-test. It holds no state besides its thresholds.
type Engine struct {
	PValue     float64
	ErrorLimit float64
}

// NewEngine creates a comparison engine
func NewEngine(pValue, errorLimit float64) *Engine {
	return &Engine{PValue: pValue, ErrorLimit: errorLimit}
}

// GroupResult holds the per-process results of one group, sorted by process
type GroupResult struct {
	Group   *Group
	Results []screening.ComparisonResult
}

// Key returns the group's condition key
func (r *GroupResult) Key() screening.ConditionKey {
	return r.Group.Key
}

// Result returns the comparison for a process
func (r *GroupResult) Result(process string) (screening.ComparisonResult, bool) {
	for _, res := range r.Results {
		if res.Process == process {
			return res, true
		}
	}
	return screening.ComparisonResult{}, false
}

// Compare runs the test for one process of a group. It reports false when
// either arm has fewer than two values.
func (e *Engine) Compare(group *Group, process string) (screening.ComparisonResult, bool) {
	control, treatment := group.Values(process)
	if len(control) < minArmSize || len(treatment) < minArmSize {
		return screening.ComparisonResult{}, false
	}

	controlMean, err := stats.Mean(control)
	if err != nil {
		return screening.ComparisonResult{}, false
	}
	treatmentMean, err := stats.Mean(treatment)
	if err != nil {
		return screening.ComparisonResult{}, false
	}

	t, p := studentsT(control, treatment, controlMean, treatmentMean)
	res := screening.ComparisonResult{
		Process:       process,
		Control:       control,
		Treatment:     treatment,
		ControlMean:   controlMean,
		TreatmentMean: treatmentMean,
		Statistic:     t,
		PValue:        p,
		Significant:   p < e.PValue,
	}
	res.Reason = screening.NewReason(res.Significant, math.Abs(res.MeanDifference()) > e.ErrorLimit)
	return res, true
}

// CompareGroup compares every process of a group. It reports false when no
// process produced a result.
func (e *Engine) CompareGroup(group *Group, processes []string) (*GroupResult, bool) {
	sorted := append([]string(nil), processes...)
	sort.Strings(sorted)

	out := &GroupResult{Group: group}
	for _, process := range sorted {
		if res, ok := e.Compare(group, process); ok {
			out.Results = append(out.Results, res)
		}
	}
	return out, len(out.Results) > 0
}

// ComparePairs compares every group of a pair set, dropping groups without
// any result. Group order is preserved.
func (e *Engine) ComparePairs(set *PairSet, processes []string) []*GroupResult {
	var out []*GroupResult
	for _, group := range set.Groups() {
		if res, ok := e.CompareGroup(group, processes); ok {
			out = append(out, res)
		}
	}
	return out
}

// studentsT returns the pooled-variance t statistic of treatment minus
// control and its two-tailed p-value.
func studentsT(control, treatment []float64, controlMean, treatmentMean float64) (float64, float64) {
	n1 := float64(len(control))
	n2 := float64(len(treatment))
	df := n1 + n2 - 2

	pooled := ((n1-1)*stat.Variance(control, nil) + (n2-1)*stat.Variance(treatment, nil)) / df
	se := math.Sqrt(pooled * (1/n1 + 1/n2))
	diff := treatmentMean - controlMean

	if se == 0 || math.IsNaN(se) {
		if diff == 0 {
			return 0, 1
		}
		return math.Copysign(math.Inf(1), diff), 0
	}

	t := diff / se
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return t, 2 * (1 - tDist.CDF(math.Abs(t)))
}
