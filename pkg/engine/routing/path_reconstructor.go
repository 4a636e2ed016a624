package routing

import (
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg"
	da "github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/geo"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/util"
)

type Path struct {
	origin      da.Index
	destination da.Index
	edges       []da.Index
	distanceKm  float64
	travelTime  float64
	maxSpeeds   []float64
}

// GetEdges. edge ids from origin to destination
func (p *Path) GetEdges() []da.Index {
	return p.edges
}

func (p *Path) GetDistanceKm() float64 {
	return p.distanceKm
}

// GetTravelTime. sum of edge weights, equal to the destination distance label of the search
func (p *Path) GetTravelTime() float64 {
	return p.travelTime
}

// GetMaxSpeeds. normalized max speed of every path edge, origin to destination
func (p *Path) GetMaxSpeeds() []float64 {
	return p.maxSpeeds
}

func (p *Path) GetOrigin() da.Index {
	return p.origin
}

func (p *Path) GetDestination() da.Index {
	return p.destination
}

// GetCoordinates. path geometry; edge shape points when the graph has them, node coordinates otherwise
func (p *Path) GetCoordinates(g *da.Graph) []geo.Coordinate {
	lat, lon := g.GetVertexCoordinates(p.origin)
	coords := []geo.Coordinate{geo.NewCoordinate(lat, lon)}
	for _, eId := range p.edges {
		e := g.GetEdge(eId)
		shape := e.GetGeometry()
		if len(shape) >= 2 {
			coords = append(coords, shape[1:]...)
			continue
		}
		lat, lon := g.GetVertexCoordinates(e.GetTo())
		coords = append(coords, geo.NewCoordinate(lat, lon))
	}
	return coords
}

// PathReconstructor. walks the predecessor labels of a search back from the destination and counts the
// path edges in the usage counters of algorithm.
type PathReconstructor struct {
	graph     *da.Graph
	algorithm string
	listener  SearchListener
}

func NewPathReconstructor(graph *da.Graph, algorithm string, listener SearchListener) *PathReconstructor {
	return &PathReconstructor{
		graph:     graph,
		algorithm: algorithm,
		listener:  listenerOrNoop(listener),
	}
}

// Reconstruct. path of a reachable search result. every path edge usage counter is incremented by one,
// nothing is counted when the predecessor chain is broken.
func (pr *PathReconstructor) Reconstruct(result *SearchResult) (*Path, error) {
	origin, destination := result.GetOrigin(), result.GetDestination()
	if !result.IsReachable() {
		return nil, util.WrapErrorf(ErrDestinationUnreachable, util.ErrNotFound,
			"no path from %d to %d", origin, destination)
	}
	qs := result.GetQueryState()
	if qs == nil || qs.size() != pr.graph.NumberOfVertices() {
		return nil, util.WrapErrorf(ErrBrokenPredecessorChain, util.ErrInternalServerError,
			"search labels of %d -> %d are not available", origin, destination)
	}

	pr.listener.OnReconstructionStart(origin, destination)

	reversedEdges := make([]da.Index, 0)
	curr := destination
	for curr != origin {
		prev, ok := qs.GetPrevious(curr)
		if !ok || len(reversedEdges) >= pr.graph.NumberOfVertices() {
			return nil, util.WrapErrorf(ErrBrokenPredecessorChain, util.ErrInternalServerError,
				"vertex %d has no predecessor on the way back to origin %d", curr, origin)
		}
		reversedEdges = append(reversedEdges, qs.GetPreviousEdge(curr))
		curr = prev
	}

	path := &Path{
		origin:      origin,
		destination: destination,
		edges:       util.ReverseG(reversedEdges),
		maxSpeeds:   make([]float64, 0, len(reversedEdges)),
	}

	usage := pr.graph.Usage(pr.algorithm)
	distance := 0.0
	for _, eId := range path.edges {
		e := pr.graph.GetEdge(eId)
		distance += e.GetLength()
		path.travelTime += e.GetWeight()
		path.maxSpeeds = append(path.maxSpeeds, e.GetMaxSpeed())
		usage.Increment(eId)
		pr.listener.OnPathEdge(e)
	}
	path.distanceKm = distance * pkg.METER_TO_KM

	return path, nil
}
