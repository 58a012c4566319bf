package centrality

import (
	"container/heap"
	"slices"
	"sort"

	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/roadgraph"
)

const inf = int(^uint(0)>>1) / 4

// sampleSalt spreads consecutive node ids before mixing.
const sampleSalt = 0xD1B54A32D192ED03

type adj struct {
	to, edge, w int
}

type pred struct {
	v, edge int
}

type item struct {
	d, v int
}

// itemPQ is a min-heap on (d, v).
type itemPQ []item

func (pq itemPQ) Len() int { return len(pq) }
func (pq itemPQ) Less(i, j int) bool {
	if pq[i].d != pq[j].d {
		return pq[i].d < pq[j].d
	}
	return pq[i].v < pq[j].v
}
func (pq itemPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *itemPQ) Push(x interface{}) { *pq = append(*pq, x.(item)) }
func (pq *itemPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}

// edgeWeights returns one positive weight per edge. Travel time falls back
// to 1000 per step without a world.
func edgeWeights(g *roadgraph.Graph, w *grid.World, mode Weight) []int {
	out := make([]int, len(g.Edges))
	var tw *roadgraph.Weights
	if mode == WeightTravelTime && w != nil {
		tw = roadgraph.BuildWeights(w, g)
	}
	for ei, e := range g.Edges {
		switch {
		case mode == WeightSteps:
			out[ei] = max(1, e.Length)
		case tw != nil && tw.Edge[ei].CostABMilli > 0:
			out[ei] = min(tw.Edge[ei].CostABMilli, inf-1)
		default:
			out[ei] = max(1, e.Length) * 1000
		}
	}

	return out
}

// pickSources returns every node, or the maxSources nodes with the lowest
// SplitMix64 hash, in ascending id order.
func pickSources(n, maxSources int) []int {
	if maxSources <= 0 || maxSources >= n {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	type key struct {
		h  uint64
		id int
	}
	keys := make([]key, n)
	for i := 0; i < n; i++ {
		st := uint64(i) * sampleSalt
		keys[i] = key{h: grid.SplitMix64(&st), id: i}
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].h != keys[b].h {
			return keys[a].h < keys[b].h
		}
		return keys[a].id < keys[b].id
	})
	out := make([]int, maxSources)
	for i := range out {
		out[i] = keys[i].id
	}
	slices.Sort(out)

	return out
}

// Compute scores g. w is only read for WeightTravelTime and may be nil.
// A graph without nodes or edges yields a Result with counts only.
func Compute(g *roadgraph.Graph, w *grid.World, cfg Config) Result {
	var out Result
	if g == nil {
		return out
	}
	n, m := len(g.Nodes), len(g.Edges)
	out.Nodes, out.Edges = n, m
	if n == 0 || m == 0 {
		return out
	}
	out.NodeBetweenness = make([]float64, n)
	out.EdgeBetweenness = make([]float64, m)
	closeness := cfg.MaxSources <= 0 || cfg.MaxSources >= n
	if closeness {
		out.NodeCloseness = make([]float64, n)
		out.NodeHarmonicCloseness = make([]float64, n)
	}

	// 1) Sorted adjacency.
	weights := edgeWeights(g, w, cfg.Weight)
	adjacency := make([][]adj, n)
	for u, node := range g.Nodes {
		a := make([]adj, 0, len(node.Edges))
		for _, ei := range node.Edges {
			if ei < 0 || ei >= m {
				continue
			}
			v := g.Edges[ei].Other(u)
			if v < 0 || v >= n {
				continue
			}
			a = append(a, adj{to: v, edge: ei, w: weights[ei]})
		}
		slices.SortFunc(a, func(x, y adj) int {
			if x.to != y.to {
				return x.to - y.to
			}
			if x.edge != y.edge {
				return x.edge - y.edge
			}
			return x.w - y.w
		})
		adjacency[u] = a
	}

	sources := pickSources(n, cfg.MaxSources)
	out.SourcesUsed = len(sources)

	// 2) One Brandes pass per source.
	dist := make([]int, n)
	sigma := make([]float64, n)
	delta := make([]float64, n)
	preds := make([][]pred, n)
	stack := make([]int, 0, n)
	for _, s := range sources {
		for i := 0; i < n; i++ {
			dist[i], sigma[i], delta[i] = inf, 0, 0
			preds[i] = preds[i][:0]
		}
		stack = stack[:0]
		dist[s], sigma[s] = 0, 1
		pq := itemPQ{{d: 0, v: s}}

		for pq.Len() > 0 {
			it := heap.Pop(&pq).(item)
			v := it.v
			if it.d != dist[v] {
				continue
			}
			stack = append(stack, v)
			for _, e := range adjacency[v] {
				nd := inf
				if it.d < inf-e.w {
					nd = it.d + e.w
				}
				switch {
				case nd < dist[e.to]:
					dist[e.to] = nd
					heap.Push(&pq, item{d: nd, v: e.to})
					sigma[e.to] = sigma[v]
					preds[e.to] = append(preds[e.to][:0], pred{v: v, edge: e.edge})
				case nd == dist[e.to]:
					sigma[e.to] += sigma[v]
					preds[e.to] = append(preds[e.to], pred{v: v, edge: e.edge})
				}
			}
		}

		if closeness {
			out.NodeCloseness[s], out.NodeHarmonicCloseness[s] = closenessOf(dist, s, n, cfg.ClosenessComponentScale)
		}

		// Dependencies in reverse settle order.
		for i := len(stack) - 1; i >= 0; i-- {
			x := stack[i]
			if sigma[x] <= 0 {
				continue
			}
			for _, p := range preds[x] {
				c := sigma[p.v] / sigma[x] * (1 + delta[x])
				delta[p.v] += c
				out.EdgeBetweenness[p.edge] += c
			}
			if x != s {
				out.NodeBetweenness[x] += delta[x]
			}
		}
	}

	// 3) Sampling scale and the undirected pair correction.
	factor := 1.0
	if cfg.ScaleSampleToFull && out.SourcesUsed > 0 && out.SourcesUsed < n {
		factor = float64(n) / float64(out.SourcesUsed)
	}
	if cfg.Undirected {
		factor *= 0.5
	}
	for i := range out.NodeBetweenness {
		out.NodeBetweenness[i] *= factor
	}
	for i := range out.EdgeBetweenness {
		out.EdgeBetweenness[i] *= factor
	}

	// 4) Normalised copies.
	if cfg.NormalizeBetweenness {
		pairs := 1.0
		if cfg.Undirected {
			pairs = 2.0
		}
		var nodeScale, edgeScale float64
		if n > 2 {
			nodeScale = pairs / (float64(n-1) * float64(n-2))
		}
		if n > 1 {
			edgeScale = pairs / (float64(n) * float64(n-1))
		}
		out.NodeBetweennessNorm = make([]float64, n)
		for i, v := range out.NodeBetweenness {
			out.NodeBetweennessNorm[i] = v * nodeScale
		}
		out.EdgeBetweennessNorm = make([]float64, m)
		for i, v := range out.EdgeBetweenness {
			out.EdgeBetweennessNorm[i] = v * edgeScale
		}
	}

	return out
}

// closenessOf returns (closeness, harmonic) of s from one distance vector.
func closenessOf(dist []int, s, n int, componentScale bool) (float64, float64) {
	var sumDist, sumInv float64
	reachable := 0
	for i, d := range dist {
		if d >= inf {
			continue
		}
		reachable++
		if i == s {
			continue
		}
		sumDist += float64(d)
		if d > 0 {
			sumInv += 1 / float64(d)
		}
	}
	if reachable <= 1 || sumDist <= 0 {
		return 0, sumInv
	}
	c := float64(reachable-1) / sumDist
	if componentScale && n > 1 {
		c *= float64(reachable-1) / float64(n-1)
	}

	return c, sumInv
}
