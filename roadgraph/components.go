package roadgraph

// Components labels every node with a connected-component id in discovery
// order (BFS seeded from the lowest unlabelled node) and returns the labels
// and the number of components. Isolated nodes are components of size one.
// Complexity: O(V + E).
func Components(g *Graph) ([]int, int) {
	if g.Empty() {
		return nil, 0
	}
	comp := make([]int, len(g.Nodes))
	for i := range comp {
		comp[i] = -1
	}
	count := 0
	queue := make([]int, 0, len(g.Nodes))
	for s := range g.Nodes {
		if comp[s] != -1 {
			continue
		}
		comp[s] = count
		queue = append(queue[:0], s)
		for head := 0; head < len(queue); head++ {
			u := queue[head]
			for _, ei := range g.Nodes[u].Edges {
				v := g.Edges[ei].Other(u)
				if v < 0 || v >= len(g.Nodes) || comp[v] != -1 {
					continue
				}
				comp[v] = count
				queue = append(queue, v)
			}
		}
		count++
	}

	return comp, count
}

// ComputeMetrics summarises g. The diameter fields are filled by
// ApproxDiameter only when withDiameter is set.
// Complexity: O(V + E), plus ApproxDiameter when requested.
func ComputeMetrics(g *Graph, withDiameter bool) Metrics {
	var m Metrics
	if g.Empty() {
		return m
	}
	m.Nodes = len(g.Nodes)
	m.Edges = len(g.Edges)
	for _, e := range g.Edges {
		if e.Length > 0 {
			m.TotalEdgeLength += uint64(e.Length)
		}
	}
	if m.Edges > 0 {
		m.AvgEdgeLength = float64(m.TotalEdgeLength) / float64(m.Edges)
	}
	m.AvgDegree = 2 * float64(m.Edges) / float64(m.Nodes)

	for _, n := range g.Nodes {
		if len(n.Edges) == 0 {
			m.IsolatedNodes++
		}
	}

	// 1) Per-component node and edge counts. Self-loops are listed once per
	//    node, other edges twice, so edge counts come from edge endpoints.
	comp, count := Components(g)
	m.Components = count
	nodes := make([]int, count)
	edges := make([]int, count)
	for _, c := range comp {
		nodes[c]++
	}
	for _, e := range g.Edges {
		edges[comp[e.A]]++
	}
	for c := 0; c < count; c++ {
		if nodes[c] > m.LargestComponentNodes {
			m.LargestComponentNodes = nodes[c]
			m.LargestComponentEdges = edges[c]
		}
	}

	// 2) Diameter on demand.
	if withDiameter {
		d := ApproxDiameter(g)
		m.ApproxDiameter = d.Distance
		m.DiameterA = d.A
		m.DiameterB = d.B
	}

	return m
}
