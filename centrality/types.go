package centrality

// Weight selects the edge weight used by the shortest path passes.
type Weight int

const (
	// WeightSteps uses the edge length in tiles.
	WeightSteps Weight = iota
	// WeightTravelTime uses the bridge-aware travel time of the edge tiles.
	WeightTravelTime
)

// String returns "steps" or "time".
func (w Weight) String() string {
	if w == WeightTravelTime {
		return "time"
	}
	return "steps"
}

// Config controls Compute.
type Config struct {
	Weight     Weight `json:"weight"`
	MaxSources int    `json:"maxSources"` // 0 = all nodes

	ScaleSampleToFull       bool `json:"scaleSampleToFull"`
	Undirected              bool `json:"undirected"`
	NormalizeBetweenness    bool `json:"normalizeBetweenness"`
	ClosenessComponentScale bool `json:"closenessComponentScale"`
}

// DefaultConfig runs every source over step weights on an undirected graph.
func DefaultConfig() Config {
	return Config{
		Weight:                  WeightSteps,
		ScaleSampleToFull:       true,
		Undirected:              true,
		NormalizeBetweenness:    true,
		ClosenessComponentScale: true,
	}
}

// Result holds per-node and per-edge scores indexed like the graph.
// Norm slices are nil unless NormalizeBetweenness is set; closeness slices
// are nil under sampling.
type Result struct {
	Nodes       int `json:"nodes"`
	Edges       int `json:"edges"`
	SourcesUsed int `json:"sourcesUsed"`

	NodeBetweenness     []float64 `json:"nodeBetweenness"`
	NodeBetweennessNorm []float64 `json:"nodeBetweennessNorm,omitempty"`
	EdgeBetweenness     []float64 `json:"edgeBetweenness"`
	EdgeBetweennessNorm []float64 `json:"edgeBetweennessNorm,omitempty"`

	NodeCloseness         []float64 `json:"nodeCloseness,omitempty"`
	NodeHarmonicCloseness []float64 `json:"nodeHarmonicCloseness,omitempty"`
}
