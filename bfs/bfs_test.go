// SPDX-License-Identifier: MIT

package bfs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/routesolver/bfs"
	"github.com/katalvlaran/routesolver/core"
)

// chain builds the directed graph A->B->C->D plus A->C.
func chain(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph(core.WithDirected(true))
	for _, e := range [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}, {"A", "C"}} {
		require.NoError(t, g.AddEdge(e[0], e[1], 0))
	}

	return g
}

func TestBFS_Errors(t *testing.T) {
	_, err := bfs.BFS(nil, "A")
	require.ErrorIs(t, err, bfs.ErrGraphNil)

	_, err = bfs.BFS(core.NewGraph(), "missing")
	require.ErrorIs(t, err, bfs.ErrStartVertexNotFound)

	w := core.NewGraph(core.WithWeighted())
	require.NoError(t, w.AddVertex("A"))
	_, err = bfs.BFS(w, "A")
	require.ErrorIs(t, err, bfs.ErrWeightedGraph)

	g := core.NewGraph()
	require.NoError(t, g.AddVertex("A"))
	_, err = bfs.BFS(g, "A", bfs.WithMaxDepth(-1))
	require.ErrorIs(t, err, bfs.ErrOptionViolation)
}

func TestBFS_DepthsAndParents(t *testing.T) {
	res, err := bfs.BFS(chain(t), "A")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C", "D"}, res.Order)
	require.Equal(t, map[string]int{"A": 0, "B": 1, "C": 1, "D": 2}, res.Depth)
	require.Equal(t, "A", res.Parent["C"])

	path, err := res.PathTo("D")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "C", "D"}, path)
}

func TestBFS_DirectedReachability(t *testing.T) {
	g := chain(t)
	res, err := bfs.BFS(g, "C")
	require.NoError(t, err)
	require.True(t, res.Reached("D"))
	require.False(t, res.Reached("A"))
	_, err = res.PathTo("A")
	require.ErrorIs(t, err, bfs.ErrNotReached)

	back, err := bfs.BFS(g.Transpose(), "C")
	require.NoError(t, err)
	require.True(t, back.Reached("A"))
	require.False(t, back.Reached("D"))
}

func TestBFS_MaxDepthAndFilter(t *testing.T) {
	res, err := bfs.BFS(chain(t), "A", bfs.WithMaxDepth(1))
	require.NoError(t, err)
	require.False(t, res.Reached("D"))

	res, err = bfs.BFS(chain(t), "A", bfs.WithFilterNeighbor(func(curr, nbr string) bool {
		return !(curr == "A" && nbr == "C")
	}))
	require.NoError(t, err)
	require.Equal(t, 2, res.Depth["C"])
	require.Equal(t, 3, res.Depth["D"])
}

func TestBFS_VisitHookAndCancel(t *testing.T) {
	stop := errors.New("stop")
	res, err := bfs.BFS(chain(t), "A", bfs.WithOnVisit(func(id string, _ int) error {
		if id == "C" {
			return stop
		}
		return nil
	}))
	require.ErrorIs(t, err, stop)
	require.Equal(t, []string{"A", "B", "C"}, res.Order)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bfs.BFS(chain(t), "A", bfs.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}
