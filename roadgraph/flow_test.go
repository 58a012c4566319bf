package roadgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadnet/grid"
)

func TestAggregateFlow(t *testing.T) {
	w := grid.MustParseLayout([]string{"##2##"}, 1)
	g := Build(w)
	flow := []uint32{10, 40, 30, 20, 5}

	fs := AggregateFlow(w, g, flow, DefaultFlowConfig())
	require.Len(t, fs.Nodes, 2)
	require.Len(t, fs.Edges, 1)
	assert.Equal(t, 5, fs.W)

	e := fs.Edges[0]
	assert.Equal(t, 5, e.TileCount)
	assert.Equal(t, 3, e.InteriorTiles)
	assert.Equal(t, uint64(105), e.All.SumFlow)
	assert.Equal(t, 40, e.All.MaxFlow)
	assert.Equal(t, uint64(162), e.All.SumCapacity, "avenue tile holds 50")
	assert.Equal(t, 28, e.All.MinCapacity)
	assert.Equal(t, 50, e.All.MaxCapacity)
	assert.Equal(t, 1, e.All.CongestedTiles)
	assert.Equal(t, uint64(12), e.All.ExcessFlow)
	assert.InDelta(t, 40.0/28.0, e.All.MaxUtil, 1e-9)

	assert.Equal(t, uint64(90), e.Interior.SumFlow)
	assert.Equal(t, uint64(106), e.Interior.SumCapacity)
	assert.Equal(t, 1, e.Interior.CongestedTiles)

	n := fs.Nodes[0]
	assert.Equal(t, grid.Point{X: 0, Y: 0}, n.Pos)
	assert.Equal(t, 10, n.Flow)
	assert.Equal(t, 28, n.Capacity)
	assert.InDelta(t, 10.0/28.0, n.Util, 1e-9)
	assert.Equal(t, uint64(90), n.IncidentSumFlow)
	assert.InDelta(t, 40.0/28.0, n.IncidentMaxUtil, 1e-9)
	assert.Equal(t, uint64(90), fs.Nodes[1].IncidentSumFlow)
}

func TestAggregateFlow_FlatCapacity(t *testing.T) {
	w := grid.MustParseLayout([]string{"##2##"}, 1)
	fs := AggregateFlow(w, Build(w), []uint32{10, 40, 30, 20, 5}, FlowConfig{BaseTileCapacity: 28})

	e := fs.Edges[0]
	assert.Equal(t, 2, e.All.CongestedTiles)
	assert.Equal(t, uint64(14), e.All.ExcessFlow)
	assert.Equal(t, 28, e.All.MaxCapacity)
}

func TestAggregateFlow_MissingFlow(t *testing.T) {
	w := grid.MustParseLayout([]string{"#####"}, 1)
	fs := AggregateFlow(w, Build(w), []uint32{1, 2}, DefaultFlowConfig())

	assert.Zero(t, fs.Nodes[0].Flow)
	assert.Zero(t, fs.Nodes[0].Capacity)
	assert.Zero(t, fs.Edges[0].All.SumFlow)
	assert.Equal(t, uint64(140), fs.Edges[0].All.SumCapacity)

	assert.Empty(t, AggregateFlow(nil, nil, nil, DefaultFlowConfig()).Edges)
}
