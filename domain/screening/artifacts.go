package screening

// Edge is one identifier/score pair at the extreme of a sorted G process column
type Edge struct {
	UID   string
	Score float64
}

// ProcessEffects is one G process column sorted ascending, with its edges
type ProcessEffects struct {
	Process string
	Sorted  []Edge
	Lower   []Edge
	Upper   []Edge
}

// Edges returns the lower edges followed by the upper edges
func (p ProcessEffects) Edges() []Edge {
	out := make([]Edge, 0, len(p.Lower)+len(p.Upper))
	out = append(out, p.Lower...)
	return append(out, p.Upper...)
}

// ProcessSeries is the mean of both arms of one process along the fixed axis
type ProcessSeries struct {
	Process   string
	Labels    []string
	Control   []float64
	Treatment []float64
}

// PairSeries collects the plottable series of one compound pair
type PairSeries struct {
	Pair   CompoundPair
	Series []ProcessSeries
}
