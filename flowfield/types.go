package flowfield

// Metric selects the primary key of the search.
type Metric int

const (
	// MetricHops is an unweighted BFS.
	MetricHops Metric = iota
	// MetricTravelTime minimises travel time, then steps.
	MetricTravelTime
	// MetricSteps minimises steps, then travel time.
	MetricSteps
)

// String returns the metric name.
func (m Metric) String() string {
	switch m {
	case MetricHops:
		return "hops"
	case MetricTravelTime:
		return "travelTime"
	case MetricSteps:
		return "steps"
	}
	return "unknown"
}

// Config controls Build.
type Config struct {
	// RequireOutsideConnection limits traversal to roads connected to the map edge.
	RequireOutsideConnection bool
	// ComputeOwner fills Field.Owner with the index into sources of the claiming source.
	ComputeOwner bool
	Metric       Metric
}

// Field is the result of Build. Unreached tiles hold -1 in every slice.
// Owner is nil unless Config.ComputeOwner is set.
type Field struct {
	W, H   int
	Dist   []int // steps to the source along the chosen route
	Cost   []int // travel time in milli-steps (street step = 1000)
	Parent []int // next tile towards the source; -1 at sources
	Owner  []int
}

// Empty reports whether f covers no tiles.
func (f *Field) Empty() bool { return f == nil || f.W <= 0 || f.H <= 0 }

// Reached reports whether tile idx has a route to a source.
func (f *Field) Reached(idx int) bool {
	return f != nil && idx >= 0 && idx < len(f.Dist) && f.Dist[idx] >= 0
}

// Trace returns the tile indices from idx to its source, inclusive.
// The walk is capped at len(Parent) steps.
func (f *Field) Trace(idx int) []int {
	if !f.Reached(idx) {
		return nil
	}
	var out []int
	for cur, guard := idx, 0; cur != -1 && guard <= len(f.Parent); guard++ {
		out = append(out, cur)
		cur = f.Parent[cur]
	}

	return out
}

type options struct {
	roadToEdge  []uint8
	extraCost   []int
	blocked     []uint8
	initialCost []int
}

// Option customises Build.
type Option func(*options)

// WithRoadToEdge supplies a precomputed outside-connection mask. It is only
// consulted when Config.RequireOutsideConnection is set.
func WithRoadToEdge(mask []uint8) Option {
	return func(o *options) { o.roadToEdge = mask }
}

// WithExtraCostMilli adds extra[idx] (clamped at zero) to the cost of entering idx.
func WithExtraCostMilli(extra []int) Option {
	return func(o *options) { o.extraCost = extra }
}

// WithBlockedTiles closes every road tile whose mask entry is non-zero.
func WithBlockedTiles(mask []uint8) Option {
	return func(o *options) { o.blocked = mask }
}

// WithSourceInitialCost starts source i at costs[i] (clamped at zero). Must
// have the same length as sources.
func WithSourceInitialCost(costs []int) Option {
	return func(o *options) { o.initialCost = costs }
}
