package usecases

import (
	"testing"

	"github.com/lintang-b-s/navigatorx-dijkstra/pkg"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/engine"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/engine/visualizer"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/geo"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/spatialindex"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// A->B (1000m, 50), B->C (2000m, 100), A->C (4000m, 50)
func newTestService(t *testing.T, snapCacheSize int) *RoutingService {
	t.Helper()
	g := datastructure.NewGraph()
	a := g.AddNode(1, 45.00, 7.00)
	b := g.AddNode(2, 45.01, 7.00)
	c := g.AddNode(3, 45.01, 7.02)
	for _, e := range []struct {
		from, to datastructure.Index
		length   float64
		speed    string
	}{{a, b, 1000, "50"}, {b, c, 2000, "100"}, {a, c, 4000, "50"}} {
		_, err := g.AddEdge(e.from, e.to, e.length, datastructure.NewMaxSpeed(e.speed), pkg.SECONDARY, nil)
		require.NoError(t, err)
	}

	eng, err := engine.NewEngineFromGraph(g, routing.FirstParallelEdge, zap.NewNop())
	require.NoError(t, err)
	rs, err := NewRoutingService(zap.NewNop(), eng.GetRoutingEngine(), eng.GetSpatialIndex(), 1, snapCacheSize)
	require.NoError(t, err)
	return rs
}

func TestShortestPath(t *testing.T) {
	rs := newTestService(t, 16)

	rr, err := rs.ShortestPath(45.0001, 7.0001, 45.0101, 7.0199)
	require.NoError(t, err)
	assert.True(t, rr.Reachable)
	assert.Equal(t, datastructure.Index(0), rr.Origin)
	assert.Equal(t, datastructure.Index(2), rr.Destination)
	assert.InDelta(t, 40.0, rr.TravelTime, 1e-9)
	assert.InDelta(t, 3.0, rr.DistanceKm, 1e-9)
	assert.Equal(t, []float64{50, 100}, rr.MaxSpeeds)
	assert.Len(t, rr.Edges, 2)
	assert.Equal(t, 2, rr.Steps)

	coords, err := geo.CoordsFromPolyline(rr.Polyline)
	require.NoError(t, err)
	require.Len(t, coords, 3)
	assert.InDelta(t, 45.01, coords[1].Lat, 1e-5)

	assert.Equal(t, 2, rs.snapCache.len())
	_, err = rs.ShortestPath(45.0001, 7.0001, 45.0101, 7.0199)
	require.NoError(t, err)
	assert.Equal(t, 2, rs.snapCache.len())

	report := rs.EdgeUsage(10)
	assert.Equal(t, pkg.DIJKSTRA, report.Algorithm)
	assert.Equal(t, uint64(4), report.Total)
	require.Len(t, report.Edges, 2)
	// A->B, then B->C on the tie
	assert.Equal(t, UsedEdge{EdgeId: 0, From: 0, To: 1, Count: 2}, report.Edges[0])
	assert.Equal(t, UsedEdge{EdgeId: 1, From: 1, To: 2, Count: 2}, report.Edges[1])
}

func TestShortestPathErrors(t *testing.T) {
	rs := newTestService(t, 0)

	rr, err := rs.ShortestPath(45.0101, 7.0199, 45.0001, 7.0001)
	require.ErrorIs(t, err, routing.ErrDestinationUnreachable)
	assert.Equal(t, util.ErrNotFound, util.ErrorCode(err))
	require.NotNil(t, rr)
	assert.False(t, rr.Reachable)
	assert.Empty(t, rr.Edges)

	_, err = rs.ShortestPath(40.0, 10.0, 45.0001, 7.0001)
	assert.ErrorIs(t, err, spatialindex.ErrNoVertexNearby)
	assert.Equal(t, 0, rs.snapCache.len())
}

func TestVisualizeRoute(t *testing.T) {
	rs := newTestService(t, 16)

	fc, rr, err := rs.VisualizeRoute(45.0001, 7.0001, 45.0101, 7.0199, false)
	require.NoError(t, err)
	assert.True(t, rr.Reachable)
	// two path edges and the two endpoints
	assert.Len(t, fc.Features, 4)

	// C has no outgoing edge, only the endpoints are drawn
	fc, rr, err = rs.VisualizeRoute(45.0101, 7.0199, 45.0001, 7.0001, false)
	require.NoError(t, err)
	assert.False(t, rr.Reachable)
	assert.Len(t, fc.Features, 2)
}

func TestSearchEvents(t *testing.T) {
	rs := newTestService(t, 16)

	events := make([]visualizer.SearchEvent, 0)
	rr, err := rs.SearchEvents(45.0001, 7.0001, 45.0101, 7.0199, func(ev visualizer.SearchEvent) error {
		events = append(events, ev)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, rr.Reachable)
	require.NotEmpty(t, events)
	assert.Equal(t, visualizer.EVENT_SEARCH_START, events[0].Type)
	assert.Equal(t, visualizer.EVENT_PATH_EDGE, events[len(events)-1].Type)
}
