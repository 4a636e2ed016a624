package spatialindex

import (
	"errors"
	"math"

	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/geo"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/util"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

const (
	initialSearchRadius = 0.05 // km
)

var (
	ErrNoVertexNearby = errors.New("no road network vertex near the query point")
)

type Rtree struct {
	tr *rtree.RTreeG[datastructure.Index]
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[datastructure.Index]
	return &Rtree{
		tr: &tr,
	}
}

// Build. index every graph vertex as a point
func (rt *Rtree) Build(graph *datastructure.Graph, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	for u := 0; u < graph.NumberOfVertices(); u++ {
		lat, lon := graph.GetVertexCoordinates(datastructure.Index(u))
		rt.tr.Insert([2]float64{lon, lat}, [2]float64{lon, lat}, datastructure.Index(u))
	}
	log.Info("R-tree spatial index built.", zap.Int("vertices", rt.tr.Len()))
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchWithinRadius search for vertices inside the bounding box of radius (in km) around the query point (qLat, qLon)
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []datastructure.Index {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	results := make([]datastructure.Index, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data datastructure.Index) bool {
			results = append(results, data)
			return true
		})
	return results
}

// NearestVertex. closest vertex to (qLat, qLon) no further than maxRadius km. returns the vertex and its distance in km.
// the search box grows until it holds a vertex that is provably the nearest one.
func (rt *Rtree) NearestVertex(graph *datastructure.Graph, qLat, qLon, maxRadius float64) (datastructure.Index, float64, error) {
	best, bestDist := datastructure.INVALID_VERTEX_ID, math.Inf(1)

	for radius := math.Min(initialSearchRadius, maxRadius); ; radius *= 2 {
		if radius > maxRadius {
			radius = maxRadius
		}
		for _, u := range rt.SearchWithinRadius(qLat, qLon, radius) {
			lat, lon := graph.GetVertexCoordinates(u)
			dist := geo.CalculateHaversineDistance(qLat, qLon, lat, lon)
			if dist < bestDist || (dist == bestDist && u < best) {
				best, bestDist = u, dist
			}
		}

		// the box corners are radius away, its sides only radius/sqrt(2)
		if best != datastructure.INVALID_VERTEX_ID && bestDist <= radius/math.Sqrt2 {
			return best, bestDist, nil
		}
		if radius >= maxRadius {
			break
		}
	}

	if best == datastructure.INVALID_VERTEX_ID || bestDist > maxRadius {
		return datastructure.INVALID_VERTEX_ID, 0, util.WrapErrorf(ErrNoVertexNearby, util.ErrNotFound,
			"no vertex within %.3f km of (%f, %f)", maxRadius, qLat, qLon)
	}
	return best, bestDist, nil
}
