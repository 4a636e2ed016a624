package usecases

import (
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/engine/routing"
)

type RoutingEngine interface {
	GetGraph() *datastructure.Graph
	GetAlgorithm() string
	Route(origin, destination datastructure.Index, listener routing.SearchListener) (*routing.SearchResult,
		*routing.Path, error)
}

type SpatialIndex interface {
	NearestVertex(graph *datastructure.Graph, qLat, qLon, maxRadius float64) (datastructure.Index, float64, error)
}
