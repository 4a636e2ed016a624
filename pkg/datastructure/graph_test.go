package datastructure

import (
	"bytes"
	"path/filepath"
	"sync"
	"testing"

	"github.com/lintang-b-s/navigatorx-dijkstra/pkg"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestGraph(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph()
	a := g.AddNode(100, 45.0, 7.0)
	b := g.AddNode(200, 45.01, 7.0)
	c := g.AddNode(300, 45.02, 7.01)

	edges := []struct {
		from, to Index
		length   float64
		speed    RawMaxSpeed
	}{
		{a, b, 1000, NewMaxSpeed("50")},
		{b, c, 2000, NewMaxSpeedList("30", "walk")},
		{a, c, 4000, NoMaxSpeed()},
		{a, b, 900, NewMaxSpeed("20 mph")},
	}
	for _, e := range edges {
		_, err := g.AddEdge(e.from, e.to, e.length, e.speed, pkg.RESIDENTIAL,
			[]geo.Coordinate{geo.NewCoordinate(45.0, 7.0), geo.NewCoordinate(45.01, 7.0)})
		require.NoError(t, err)
	}
	return g
}

func TestGraphParallelEdgeKeys(t *testing.T) {
	g := buildTestGraph(t)

	assert.Equal(t, 3, g.NumberOfVertices())
	assert.Equal(t, 4, g.NumberOfEdges())

	parallel := g.GetParallelEdges(0, 1)
	require.Len(t, parallel, 2)
	assert.Equal(t, 0, g.GetEdge(parallel[0]).GetKey())
	assert.Equal(t, 1, g.GetEdge(parallel[1]).GetKey())

	e, ok := g.GetEdgeByKey(0, 1, 1)
	require.True(t, ok)
	assert.Equal(t, 900.0, e.GetLength())

	_, ok = g.GetEdgeByKey(1, 0, 0)
	assert.False(t, ok)

	assert.Equal(t, 3, g.GetOutDegree(0))
	assert.Equal(t, Index(0), g.AddNode(100, 0, 0), "same external id returns existing node")
}

func TestGraphAddEdgeInvalidVertex(t *testing.T) {
	g := NewGraph()
	g.AddNode(1, 0, 0)
	_, err := g.AddEdge(0, 5, 10, NoMaxSpeed(), pkg.UNKNOWN, nil)
	assert.ErrorIs(t, err, ErrVertexNotFound)
}

func TestUsageCounters(t *testing.T) {
	g := buildTestGraph(t)
	usage := g.Usage(pkg.DIJKSTRA)
	assert.Same(t, usage, g.Usage(pkg.DIJKSTRA))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			usage.Increment(1)
		}()
	}
	wg.Wait()
	usage.Increment(3)

	assert.Equal(t, uint64(50), usage.Get(1))
	assert.Equal(t, uint64(0), usage.Get(0))
	assert.Equal(t, uint64(51), usage.Total())
	assert.Equal(t, []EdgeUsage{{EdgeId: 1, Count: 50}, {EdgeId: 3, Count: 1}}, usage.TopK(5))
	assert.Len(t, usage.TopK(1), 1)

	other := g.Usage("astar")
	assert.Equal(t, uint64(0), other.Get(1))
	assert.ElementsMatch(t, []string{pkg.DIJKSTRA, "astar"}, g.UsageAlgorithms())

	// counters follow edges added later
	id, err := g.AddEdge(2, 0, 10, NoMaxSpeed(), pkg.UNKNOWN, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), usage.Increment(id))
	assert.Equal(t, uint64(50), usage.Get(1))

	g.ResetUsage()
	assert.Equal(t, uint64(0), usage.Total())
}

func TestRawMaxSpeedEncode(t *testing.T) {
	testCases := []struct {
		name string
		raw  RawMaxSpeed
	}{
		{name: "absent", raw: NoMaxSpeed()},
		{name: "single with unit", raw: NewMaxSpeed("50 mph")},
		{name: "list", raw: NewMaxSpeedList("30", "walk", "50")},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeRawMaxSpeed(tt.raw.Encode())
			assert.Equal(t, tt.raw.IsPresent(), got.IsPresent())
			assert.Equal(t, tt.raw.IsList(), got.IsList())
			assert.Equal(t, tt.raw.Values(), got.Values())
		})
	}
	assert.Equal(t, "", NewMaxSpeedList("1").Value())
	assert.Equal(t, "50", NewMaxSpeed("50").Value())
}

func TestGraphIO(t *testing.T) {
	g := buildTestGraph(t)

	var buf bytes.Buffer
	require.NoError(t, g.writeGraphText(&buf))
	got, err := readGraphText(&buf)
	require.NoError(t, err)
	assertSameGraph(t, g, got)

	filename := filepath.Join(t.TempDir(), "test.graph")
	require.NoError(t, g.WriteGraph(filename))
	got, err = ReadGraph(filename)
	require.NoError(t, err)
	assertSameGraph(t, g, got)
}

func assertSameGraph(t *testing.T, want, got *Graph) {
	t.Helper()
	require.Equal(t, want.NumberOfVertices(), got.NumberOfVertices())
	require.Equal(t, want.NumberOfEdges(), got.NumberOfEdges())
	for i := 0; i < want.NumberOfVertices(); i++ {
		assert.Equal(t, *want.GetNode(Index(i)), *got.GetNode(Index(i)))
	}
	for i := 0; i < want.NumberOfEdges(); i++ {
		we, ge := want.GetEdge(Index(i)), got.GetEdge(Index(i))
		assert.Equal(t, we.GetFrom(), ge.GetFrom())
		assert.Equal(t, we.GetTo(), ge.GetTo())
		assert.Equal(t, we.GetKey(), ge.GetKey())
		assert.Equal(t, we.GetLength(), ge.GetLength())
		assert.Equal(t, we.GetRawMaxSpeed().Values(), ge.GetRawMaxSpeed().Values())
		assert.Equal(t, we.GetHighwayType(), ge.GetHighwayType())
		assert.Len(t, ge.GetGeometry(), len(we.GetGeometry()))
	}
}
