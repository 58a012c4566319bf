package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/roadnet/roadgraph"
)

// Config controls the graph writers.
type Config struct {
	// IncludeEdgeTiles adds every edge's tile polyline (large on big maps).
	IncludeEdgeTiles bool `json:"includeEdgeTiles" yaml:"includeEdgeTiles"`
	// ColorByComponent fills DOT nodes with a per-component colour.
	ColorByComponent bool `json:"colorByComponent" yaml:"colorByComponent"`
}

// DefaultConfig colours DOT output and omits edge tiles.
func DefaultConfig() Config {
	return Config{ColorByComponent: true}
}

var palette = []string{
	"lightcoral", "lightskyblue", "lightgreen", "khaki", "plum",
	"lightsalmon", "lightgray", "palegreen", "paleturquoise", "wheat",
}

type nodeDoc struct {
	ID        int `json:"id"`
	X         int `json:"x"`
	Y         int `json:"y"`
	Degree    int `json:"degree"`
	Component int `json:"component"`

	Flow         *nodeFlowDoc   `json:"flow,omitempty"`
	Centrality   *centralityDoc `json:"centrality,omitempty"`
	Articulation *bool          `json:"articulation,omitempty"`
}

type edgeDoc struct {
	ID        int      `json:"id"`
	A         int      `json:"a"`
	B         int      `json:"b"`
	Length    int      `json:"length"`
	Component int      `json:"component"`
	Tiles     [][2]int `json:"tiles,omitempty"`

	Flow       *edgeFlowDoc   `json:"flow,omitempty"`
	Centrality *centralityDoc `json:"centrality,omitempty"`
	Bridge     *bool          `json:"bridge,omitempty"`
}

type graphDoc struct {
	Metrics           roadgraph.Metrics `json:"metrics"`
	DiameterPathNodes []int             `json:"diameterPathNodes,omitempty"`
	Nodes             []nodeDoc         `json:"nodes"`
	Edges             []edgeDoc         `json:"edges"`
}

func componentOf(comp []int, i int) int {
	if i >= 0 && i < len(comp) {
		return comp[i]
	}
	return -1
}

// WriteGraphJSON writes g as indented JSON. Metrics are computed (with the
// diameter) when m is nil; the diameter path is included when d is set.
// opts attach analysis results to nodes and edges.
func WriteGraphJSON(w io.Writer, g *roadgraph.Graph, m *roadgraph.Metrics, d *roadgraph.Diameter, cfg Config, opts ...Option) error {
	l := collectLayers(opts)
	if g == nil {
		g = &roadgraph.Graph{}
	}
	doc := graphDoc{Nodes: []nodeDoc{}, Edges: []edgeDoc{}}
	if m != nil {
		doc.Metrics = *m
	} else {
		doc.Metrics = roadgraph.ComputeMetrics(g, true)
	}
	if d != nil && len(d.NodePath) > 0 {
		doc.DiameterPathNodes = d.NodePath
	}

	comp, _ := roadgraph.Components(g)
	for i, n := range g.Nodes {
		nd := nodeDoc{ID: i, X: n.Pos.X, Y: n.Pos.Y, Degree: len(n.Edges), Component: componentOf(comp, i)}
		l.annotateNode(&nd, i)
		doc.Nodes = append(doc.Nodes, nd)
	}
	for ei, e := range g.Edges {
		ed := edgeDoc{ID: ei, A: e.A, B: e.B, Length: e.Length, Component: componentOf(comp, e.A)}
		if cfg.IncludeEdgeTiles {
			ed.Tiles = make([][2]int, len(e.Tiles))
			for k, p := range e.Tiles {
				ed.Tiles[k] = [2]int{p.X, p.Y}
			}
		}
		l.annotateEdge(&ed, ei)
		doc.Edges = append(doc.Edges, ed)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "export: write graph JSON")
	}

	return nil
}

// WriteGraphDOT writes g as an undirected GraphViz graph. m, when set, adds
// a summary comment.
func WriteGraphDOT(w io.Writer, g *roadgraph.Graph, m *roadgraph.Metrics, cfg Config) error {
	if g == nil {
		g = &roadgraph.Graph{}
	}
	var comp []int
	if cfg.ColorByComponent {
		comp, _ = roadgraph.Components(g)
	}

	bw := bufio.NewWriter(w)
	bw.WriteString("graph RoadGraph {\n")
	bw.WriteString("  graph [overlap=false, splines=true];\n")
	bw.WriteString("  node [shape=circle, fontsize=10];\n")
	if m != nil {
		fmt.Fprintf(bw, "  // nodes=%d edges=%d components=%d approxDiameter=%d\n",
			m.Nodes, m.Edges, m.Components, m.ApproxDiameter)
	}
	for i, n := range g.Nodes {
		fmt.Fprintf(bw, "  %d [label=\"%d\\n(%d,%d)\"", i, i, n.Pos.X, n.Pos.Y)
		if cfg.ColorByComponent && i < len(comp) {
			fmt.Fprintf(bw, ", style=filled, fillcolor=%q", palette[max(0, comp[i])%len(palette)])
		}
		bw.WriteString("];\n")
	}
	for _, e := range g.Edges {
		fmt.Fprintf(bw, "  %d -- %d [label=\"%d\"", e.A, e.B, e.Length)
		if cfg.IncludeEdgeTiles && len(e.Tiles) > 0 {
			fmt.Fprintf(bw, ", tooltip=\"tiles=%d\"", len(e.Tiles))
		}
		bw.WriteString("];\n")
	}
	bw.WriteString("}\n")
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "export: write DOT")
	}

	return nil
}

// WriteNodesCSV writes id,x,y,degree,component rows followed by the
// columns of any layer given in opts.
func WriteNodesCSV(w io.Writer, g *roadgraph.Graph, opts ...Option) error {
	l := collectLayers(opts)
	cw := csv.NewWriter(w)
	cw.Write(l.nodeHeader([]string{"id", "x", "y", "degree", "component"}))
	if g != nil {
		comp, _ := roadgraph.Components(g)
		for i, n := range g.Nodes {
			cw.Write(l.nodeRow([]string{
				strconv.Itoa(i), strconv.Itoa(n.Pos.X), strconv.Itoa(n.Pos.Y),
				strconv.Itoa(len(n.Edges)), strconv.Itoa(componentOf(comp, i)),
			}, i))
		}
	}
	cw.Flush()

	return errors.Wrap(cw.Error(), "export: write nodes CSV")
}

// WriteEdgesCSV writes id,a,b,length,component rows, then the columns of
// any layer in opts, then a "x:y;x:y" tiles column when cfg.IncludeEdgeTiles
// is set.
func WriteEdgesCSV(w io.Writer, g *roadgraph.Graph, cfg Config, opts ...Option) error {
	l := collectLayers(opts)
	cw := csv.NewWriter(w)
	header := l.edgeHeader([]string{"id", "a", "b", "length", "component"})
	if cfg.IncludeEdgeTiles {
		header = append(header, "tiles")
	}
	cw.Write(header)
	if g != nil {
		comp, _ := roadgraph.Components(g)
		for ei, e := range g.Edges {
			row := l.edgeRow([]string{
				strconv.Itoa(ei), strconv.Itoa(e.A), strconv.Itoa(e.B),
				strconv.Itoa(e.Length), strconv.Itoa(componentOf(comp, e.A)),
			}, ei)
			if cfg.IncludeEdgeTiles {
				parts := make([]string, len(e.Tiles))
				for k, p := range e.Tiles {
					parts[k] = strconv.Itoa(p.X) + ":" + strconv.Itoa(p.Y)
				}
				row = append(row, strings.Join(parts, ";"))
			}
			cw.Write(row)
		}
	}
	cw.Flush()

	return errors.Wrap(cw.Error(), "export: write edges CSV")
}
