// SPDX-License-Identifier: MIT

package core_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/routesolver/core"
)

func TestAddVertex(t *testing.T) {
	g := core.NewGraph()
	require.ErrorIs(t, g.AddVertex(""), core.ErrEmptyVertexID)
	require.NoError(t, g.AddVertex("B"))
	require.NoError(t, g.AddVertex("A"))
	require.NoError(t, g.AddVertex("A"))
	require.Equal(t, []string{"A", "B"}, g.Vertices())
	require.Equal(t, 2, g.VertexCount())
	require.True(t, g.HasVertex("A"))
	require.False(t, g.HasVertex(""))
	require.False(t, g.HasVertex("C"))
}

func TestAddEdge_Errors(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true))
	require.ErrorIs(t, g.AddEdge("", "B", 0), core.ErrEmptyVertexID)
	require.ErrorIs(t, g.AddEdge("A", "B", 5), core.ErrBadWeight)
	require.ErrorIs(t, g.AddEdge("A", "A", 0), core.ErrLoopNotAllowed)
	require.NoError(t, g.AddEdge("A", "B", 0))
	require.ErrorIs(t, g.AddEdge("A", "B", 0), core.ErrDuplicateEdge)
	require.NoError(t, g.AddEdge("B", "A", 0), "the reverse direction is a different edge")
	require.Equal(t, 2, g.EdgeCount())

	w := core.NewGraph(core.WithWeighted(), core.WithLoops())
	require.True(t, w.Weighted())
	require.True(t, w.Looped())
	require.NoError(t, w.AddEdge("A", "A", 7))
	require.Equal(t, []core.Edge{{From: "A", To: "A", Weight: 7}}, w.Edges())
}

func TestDirectedVersusUndirected(t *testing.T) {
	d := core.NewGraph(core.WithDirected(true))
	require.NoError(t, d.AddEdge("A", "B", 0))
	require.True(t, d.HasEdge("A", "B"))
	require.False(t, d.HasEdge("B", "A"))
	nb, err := d.NeighborIDs("B")
	require.NoError(t, err)
	require.Empty(t, nb)

	u := core.NewGraph()
	require.False(t, u.Directed())
	require.NoError(t, u.AddEdge("B", "A", 0))
	require.ErrorIs(t, u.AddEdge("A", "B", 0), core.ErrDuplicateEdge)
	require.True(t, u.HasEdge("A", "B"))
	require.Equal(t, 1, u.EdgeCount())
	require.Equal(t, []core.Edge{{From: "A", To: "B"}}, u.Edges())

	_, err = u.NeighborIDs("Z")
	require.ErrorIs(t, err, core.ErrVertexNotFound)
}

func TestNeighborIDs_Sorted(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true))
	for _, to := range []string{"D", "B", "C"} {
		require.NoError(t, g.AddEdge("A", to, 0))
	}
	nb, err := g.NeighborIDs("A")
	require.NoError(t, err)
	require.Equal(t, []string{"B", "C", "D"}, nb)
}

func TestTranspose(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true))
	require.NoError(t, g.AddVertex("X"))
	require.NoError(t, g.AddEdge("A", "B", 0))
	require.NoError(t, g.AddEdge("B", "C", 0))

	tr := g.Transpose()
	require.True(t, tr.Directed())
	require.Equal(t, g.Vertices(), tr.Vertices())
	require.Equal(t, []core.Edge{{From: "B", To: "A"}, {From: "C", To: "B"}}, tr.Edges())
	require.Equal(t, 2, tr.EdgeCount())
	require.True(t, g.HasEdge("A", "B"), "the source graph is unchanged")

	u := core.NewGraph()
	require.NoError(t, u.AddEdge("A", "B", 0))
	require.Equal(t, u.Edges(), u.Transpose().Edges())
}

func TestConcurrentAddEdge(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true))
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = g.AddEdge("hub", string(rune('a'+i)), 0)
		}(i)
	}
	wg.Wait()
	require.Equal(t, 16, g.EdgeCount())
	require.Equal(t, 17, g.VertexCount())
}
