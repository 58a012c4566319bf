package export

import (
	"strconv"

	"github.com/katalvlaran/roadnet/centrality"
	"github.com/katalvlaran/roadnet/resilience"
	"github.com/katalvlaran/roadnet/roadgraph"
)

// Option adds per-node and per-edge analysis results to the graph writers.
// Results must be indexed like the graph being written; out-of-range
// entries are written as zero.
type Option func(*layers)

type layers struct {
	flow       *roadgraph.FlowStats
	centrality *centrality.Result
	resilience *resilience.Result
}

// WithFlow adds flow, capacity and utilisation from roadgraph.AggregateFlow.
func WithFlow(fs *roadgraph.FlowStats) Option {
	return func(l *layers) { l.flow = fs }
}

// WithCentrality adds betweenness and closeness scores.
func WithCentrality(r *centrality.Result) Option {
	return func(l *layers) { l.centrality = r }
}

// WithResilience adds articulation flags on nodes and bridge flags on edges.
func WithResilience(r *resilience.Result) Option {
	return func(l *layers) { l.resilience = r }
}

func collectLayers(opts []Option) layers {
	var l layers
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

func floatAt(s []float64, i int) float64 {
	if i >= 0 && i < len(s) {
		return s[i]
	}
	return 0
}

// optFloatAt is nil when s is absent, so JSON can omit it.
func optFloatAt(s []float64, i int) *float64 {
	if s == nil {
		return nil
	}
	v := floatAt(s, i)
	return &v
}

func boolAt(s []bool, i int) bool {
	return i >= 0 && i < len(s) && s[i]
}

func (l layers) nodeFlow(i int) roadgraph.NodeFlow {
	if l.flow != nil && i >= 0 && i < len(l.flow.Nodes) {
		return l.flow.Nodes[i]
	}
	return roadgraph.NodeFlow{}
}

func (l layers) edgeFlow(i int) roadgraph.EdgeFlow {
	if l.flow != nil && i >= 0 && i < len(l.flow.Edges) {
		return l.flow.Edges[i]
	}
	return roadgraph.EdgeFlow{}
}

type nodeFlowDoc struct {
	Flow            int     `json:"flow"`
	Capacity        int     `json:"capacity"`
	Util            float64 `json:"util"`
	IncidentSumFlow uint64  `json:"incidentSumFlow"`
	IncidentMaxUtil float64 `json:"incidentMaxUtil"`
}

type edgeFlowDoc struct {
	All      roadgraph.TileFlow `json:"all"`
	Interior roadgraph.TileFlow `json:"interior"`
}

type centralityDoc struct {
	Betweenness       float64  `json:"betweenness"`
	BetweennessNorm   *float64 `json:"betweennessNorm,omitempty"`
	Closeness         *float64 `json:"closeness,omitempty"`
	HarmonicCloseness *float64 `json:"harmonicCloseness,omitempty"`
}

func (l layers) annotateNode(d *nodeDoc, i int) {
	if l.flow != nil {
		nf := l.nodeFlow(i)
		d.Flow = &nodeFlowDoc{nf.Flow, nf.Capacity, nf.Util, nf.IncidentSumFlow, nf.IncidentMaxUtil}
	}
	if c := l.centrality; c != nil {
		d.Centrality = &centralityDoc{
			Betweenness:       floatAt(c.NodeBetweenness, i),
			BetweennessNorm:   optFloatAt(c.NodeBetweennessNorm, i),
			Closeness:         optFloatAt(c.NodeCloseness, i),
			HarmonicCloseness: optFloatAt(c.NodeHarmonicCloseness, i),
		}
	}
	if l.resilience != nil {
		v := boolAt(l.resilience.IsArticulationNode, i)
		d.Articulation = &v
	}
}

func (l layers) annotateEdge(d *edgeDoc, i int) {
	if l.flow != nil {
		ef := l.edgeFlow(i)
		d.Flow = &edgeFlowDoc{ef.All, ef.Interior}
	}
	if c := l.centrality; c != nil {
		d.Centrality = &centralityDoc{
			Betweenness:     floatAt(c.EdgeBetweenness, i),
			BetweennessNorm: optFloatAt(c.EdgeBetweennessNorm, i),
		}
	}
	if l.resilience != nil {
		v := boolAt(l.resilience.IsBridgeEdge, i)
		d.Bridge = &v
	}
}

// CSV columns, appended in this order when the layer is present.
var (
	nodeFlowColumns       = []string{"flow", "capacity", "util", "incidentSumFlow", "incidentMaxUtil"}
	nodeCentralityColumns = []string{"betweenness", "betweennessNorm", "closeness", "harmonicCloseness"}
	edgeFlowColumns       = []string{"flowSum", "flowMax", "capacityMin", "maxUtil", "congestedTiles", "excessFlow", "interiorExcessFlow"}
	edgeCentralityColumns = []string{"betweenness", "betweennessNorm"}
)

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// optColumn is empty when the score slice is absent.
func optColumn(s []float64, i int) string {
	if s == nil {
		return ""
	}
	return formatFloat(floatAt(s, i))
}

func flag01(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (l layers) nodeHeader(h []string) []string {
	if l.flow != nil {
		h = append(h, nodeFlowColumns...)
	}
	if l.centrality != nil {
		h = append(h, nodeCentralityColumns...)
	}
	if l.resilience != nil {
		h = append(h, "articulation")
	}
	return h
}

func (l layers) nodeRow(row []string, i int) []string {
	if l.flow != nil {
		nf := l.nodeFlow(i)
		row = append(row,
			strconv.Itoa(nf.Flow), strconv.Itoa(nf.Capacity), formatFloat(nf.Util),
			strconv.FormatUint(nf.IncidentSumFlow, 10), formatFloat(nf.IncidentMaxUtil))
	}
	if c := l.centrality; c != nil {
		row = append(row,
			formatFloat(floatAt(c.NodeBetweenness, i)), optColumn(c.NodeBetweennessNorm, i),
			optColumn(c.NodeCloseness, i), optColumn(c.NodeHarmonicCloseness, i))
	}
	if l.resilience != nil {
		row = append(row, flag01(boolAt(l.resilience.IsArticulationNode, i)))
	}
	return row
}

func (l layers) edgeHeader(h []string) []string {
	if l.flow != nil {
		h = append(h, edgeFlowColumns...)
	}
	if l.centrality != nil {
		h = append(h, edgeCentralityColumns...)
	}
	if l.resilience != nil {
		h = append(h, "bridge")
	}
	return h
}

func (l layers) edgeRow(row []string, i int) []string {
	if l.flow != nil {
		ef := l.edgeFlow(i)
		row = append(row,
			strconv.FormatUint(ef.All.SumFlow, 10), strconv.Itoa(ef.All.MaxFlow),
			strconv.Itoa(ef.All.MinCapacity), formatFloat(ef.All.MaxUtil),
			strconv.Itoa(ef.All.CongestedTiles), strconv.FormatUint(ef.All.ExcessFlow, 10),
			strconv.FormatUint(ef.Interior.ExcessFlow, 10))
	}
	if c := l.centrality; c != nil {
		row = append(row, formatFloat(floatAt(c.EdgeBetweenness, i)), optColumn(c.EdgeBetweennessNorm, i))
	}
	if l.resilience != nil {
		row = append(row, flag01(boolAt(l.resilience.IsBridgeEdge, i)))
	}
	return row
}

// properties returns GeoJSON properties for node i (edge == false) or edge i.
func (l layers) properties(i int, edge bool) map[string]interface{} {
	props := map[string]interface{}{}
	if l.flow != nil {
		if edge {
			ef := l.edgeFlow(i)
			props["flow_sum"] = ef.All.SumFlow
			props["flow_max"] = ef.All.MaxFlow
			props["max_util"] = ef.All.MaxUtil
			props["congested_tiles"] = ef.All.CongestedTiles
			props["excess_flow"] = ef.All.ExcessFlow
		} else {
			nf := l.nodeFlow(i)
			props["flow"] = nf.Flow
			props["capacity"] = nf.Capacity
			props["util"] = nf.Util
		}
	}
	if c := l.centrality; c != nil {
		if edge {
			props["betweenness"] = floatAt(c.EdgeBetweenness, i)
		} else {
			props["betweenness"] = floatAt(c.NodeBetweenness, i)
			if c.NodeCloseness != nil {
				props["closeness"] = floatAt(c.NodeCloseness, i)
				props["harmonic_closeness"] = floatAt(c.NodeHarmonicCloseness, i)
			}
		}
	}
	if r := l.resilience; r != nil {
		if edge {
			props["bridge"] = boolAt(r.IsBridgeEdge, i)
		} else {
			props["articulation"] = boolAt(r.IsArticulationNode, i)
		}
	}
	return props
}
