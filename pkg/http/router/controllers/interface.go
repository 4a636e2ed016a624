package controllers

import (
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/engine/visualizer"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/http/usecases"
	"github.com/paulmach/orb/geojson"
)

type RoutingService interface {
	ShortestPath(origLat, origLon, dstLat, dstLon float64) (*usecases.RouteResult, error)
	SearchEvents(origLat, origLon, dstLat, dstLon float64,
		send func(visualizer.SearchEvent) error) (*usecases.RouteResult, error)
	VisualizeRoute(origLat, origLon, dstLat, dstLon float64,
		includeUnvisited bool) (*geojson.FeatureCollection, *usecases.RouteResult, error)
	EdgeUsage(k int) *usecases.EdgeUsageReport
}
