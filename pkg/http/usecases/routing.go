package usecases

import (
	"errors"

	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/engine/visualizer"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/geo"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

type RoutingService struct {
	log          *zap.Logger
	engine       RoutingEngine
	spatialIndex SpatialIndex
	searchRadius float64
	snapCache    *snapCache
}

// NewRoutingService. searchRadius (km) bounds how far a query point may be from its snapped vertex.
// snapCacheSize <= 0 disables snap caching.
func NewRoutingService(log *zap.Logger, engine RoutingEngine, spatialIndex SpatialIndex,
	searchRadius float64, snapCacheSize int) (*RoutingService, error) {
	cache, err := newSnapCache(snapCacheSize)
	if err != nil {
		return nil, err
	}
	return &RoutingService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialIndex,
		searchRadius: searchRadius,
		snapCache:    cache,
	}, nil
}

type RouteResult struct {
	Origin      datastructure.Index
	Destination datastructure.Index
	Reachable   bool
	TravelTime  float64
	DistanceKm  float64
	Polyline    string
	MaxSpeeds   []float64
	Edges       []datastructure.Index
	Steps       int
}

func newRouteResult(result *routing.SearchResult, path *routing.Path, g *datastructure.Graph) *RouteResult {
	rr := &RouteResult{
		Origin:      result.GetOrigin(),
		Destination: result.GetDestination(),
		Reachable:   result.IsReachable(),
		Steps:       result.GetSteps(),
		MaxSpeeds:   []float64{},
		Edges:       []datastructure.Index{},
	}
	if path == nil {
		return rr
	}
	rr.TravelTime = path.GetTravelTime()
	rr.DistanceKm = path.GetDistanceKm()
	rr.MaxSpeeds = path.GetMaxSpeeds()
	rr.Edges = path.GetEdges()
	rr.Polyline = geo.PolylineFromCoords(path.GetCoordinates(g))
	return rr
}

// ShortestPath. snap both points to their nearest vertices and route between them.
func (rs *RoutingService) ShortestPath(origLat, origLon, dstLat, dstLon float64) (*RouteResult, error) {
	return rs.route(origLat, origLon, dstLat, dstLon, nil)
}

// SearchEvents. like ShortestPath, every search event is passed to send while the query runs.
// a failing send stops the stream but not the query.
func (rs *RoutingService) SearchEvents(origLat, origLon, dstLat, dstLon float64,
	send func(visualizer.SearchEvent) error) (*RouteResult, error) {
	stream := visualizer.NewEventStream(send)
	rr, err := rs.route(origLat, origLon, dstLat, dstLon, stream)
	if stream.Err() != nil {
		rs.log.Info("search event stream closed early", zap.Error(stream.Err()), zap.Int("sent", stream.Sent()))
	}
	return rr, err
}

// VisualizeRoute. GeoJSON of the query: the path when one exists, otherwise the area the search explored.
func (rs *RoutingService) VisualizeRoute(origLat, origLon, dstLat, dstLon float64,
	includeUnvisited bool) (*geojson.FeatureCollection, *RouteResult, error) {
	g := rs.engine.GetGraph()
	annotator := visualizer.NewAnnotator(g)

	rr, err := rs.route(origLat, origLon, dstLat, dstLon, annotator)
	if err != nil && !errors.Is(err, routing.ErrDestinationUnreachable) {
		return nil, nil, err
	}

	fc := annotator.RenderGeoJSON(visualizer.RenderOptions{
		IncludeUnvisited: includeUnvisited,
		Usage:            g.Usage(rs.engine.GetAlgorithm()),
	})
	return fc, rr, nil
}

type UsedEdge struct {
	EdgeId datastructure.Index
	From   datastructure.Index
	To     datastructure.Index
	Count  uint64
}

type EdgeUsageReport struct {
	Algorithm string
	Total     uint64
	Edges     []UsedEdge
}

// EdgeUsage. k most used edges of the engine's algorithm and the total usage count.
func (rs *RoutingService) EdgeUsage(k int) *EdgeUsageReport {
	g := rs.engine.GetGraph()
	counters := g.Usage(rs.engine.GetAlgorithm())

	top := counters.TopK(k)
	report := &EdgeUsageReport{
		Algorithm: counters.GetName(),
		Total:     counters.Total(),
		Edges:     make([]UsedEdge, 0, len(top)),
	}
	for _, eu := range top {
		e := g.GetEdge(eu.EdgeId)
		report.Edges = append(report.Edges, UsedEdge{
			EdgeId: eu.EdgeId,
			From:   e.GetFrom(),
			To:     e.GetTo(),
			Count:  eu.Count,
		})
	}
	return report
}

func (rs *RoutingService) route(origLat, origLon, dstLat, dstLon float64,
	listener routing.SearchListener) (*RouteResult, error) {
	origin, destination, err := rs.snapOrigDest(origLat, origLon, dstLat, dstLon)
	if err != nil {
		return nil, err
	}

	g := rs.engine.GetGraph()
	result, path, err := rs.engine.Route(origin, destination, listener)
	if err != nil {
		if result != nil {
			return newRouteResult(result, nil, g), err
		}
		return nil, err
	}
	return newRouteResult(result, path, g), nil
}
