package routing

import (
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg"
	da "github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/util"
)

type SearchResult struct {
	origin       da.Index
	destination  da.Index
	steps        int
	pqPops       int
	relaxedEdges int
	reachable    bool
	distance     float64
	state        *QueryState
}

func (sr *SearchResult) GetOrigin() da.Index {
	return sr.origin
}

func (sr *SearchResult) GetDestination() da.Index {
	return sr.destination
}

// GetSteps. number of settled vertices before the destination was popped
func (sr *SearchResult) GetSteps() int {
	return sr.steps
}

func (sr *SearchResult) GetPqPops() int {
	return sr.pqPops
}

func (sr *SearchResult) GetRelaxedEdges() int {
	return sr.relaxedEdges
}

func (sr *SearchResult) IsReachable() bool {
	return sr.reachable
}

// GetDistance. shortest travel time label of the destination, pkg.INF_WEIGHT if unreachable
func (sr *SearchResult) GetDistance() float64 {
	return sr.distance
}

// GetQueryState. labels of the search, nil once the engine released them
func (sr *SearchResult) GetQueryState() *QueryState {
	return sr.state
}

// Dijkstra. label-setting search with a binary heap and lazy deletion: an improved label is pushed again and
// stale entries are dropped when popped for an already visited vertex.
type Dijkstra struct {
	graph    *da.Graph
	policy   ParallelEdgePolicy
	listener SearchListener

	pq    *da.MinHeap[da.Index]
	state *QueryState

	numSettledNodes int
	numPqPops       int
	numRelaxedEdges int
}

func NewDijkstra(graph *da.Graph, policy ParallelEdgePolicy, listener SearchListener) *Dijkstra {
	return &Dijkstra{
		graph:    graph,
		policy:   policy,
		listener: listenerOrNoop(listener),
		pq:       da.NewBinaryHeap[da.Index](),
	}
}

// WithQueryState. reuse qs as the label buffer of the next search
func (d *Dijkstra) WithQueryState(qs *QueryState) *Dijkstra {
	d.state = qs
	return d
}

// ShortestPath. run the search from origin until destination is popped or the queue is exhausted.
// an unreachable destination is not an error, check SearchResult.IsReachable.
func (d *Dijkstra) ShortestPath(origin, destination da.Index) (*SearchResult, error) {
	if !d.graph.IsValidVertex(origin) {
		return nil, util.WrapErrorf(ErrInvalidVertex, util.ErrBadParamInput, "origin %d", origin)
	}
	if !d.graph.IsValidVertex(destination) {
		return nil, util.WrapErrorf(ErrInvalidVertex, util.ErrBadParamInput, "destination %d", destination)
	}

	d.Preallocate()
	d.listener.OnSearchStart(origin, destination)

	d.state.setOrigin(origin)
	d.pq.Insert(da.NewPriorityQueueNode(0, origin))

	for !d.pq.IsEmpty() {
		node, _ := d.pq.ExtractMin()
		d.numPqPops++
		u := node.GetItem()

		if u == destination {
			return d.newResult(origin, destination, true), nil
		}

		if d.state.IsVisited(u) {
			// stale entry
			continue
		}

		d.settle(u)
		d.numSettledNodes++
	}

	return d.newResult(origin, destination, false), nil
}

func (d *Dijkstra) settle(u da.Index) {
	d.state.markVisited(u)
	d.listener.OnNodeSettled(u)

	uTravelTime := d.state.GetDistance(u)

	d.graph.ForOutEdgesOf(u, func(e *da.Edge) {
		if !d.isSearchedEdge(e) {
			return
		}
		d.listener.OnEdgeScanned(e)

		v := e.GetTo()
		newTravelTime := uTravelTime + e.GetWeight()
		if newTravelTime >= d.state.GetDistance(v) {
			return
		}

		util.AssertPanic(!d.state.IsVisited(v), "distance label of a visited vertex decreased")

		d.state.update(v, u, e.GetEdgeId(), newTravelTime)
		d.numRelaxedEdges++
		d.pq.Insert(da.NewPriorityQueueNode(newTravelTime, v))

		d.graph.ForOutEdgesOf(v, d.listener.OnEdgeActivated)
	})
}

// isSearchedEdge. whether e represents its (from, to) pair under the parallel edge policy
func (d *Dijkstra) isSearchedEdge(e *da.Edge) bool {
	switch d.policy {
	case MinWeightParallelEdge:
		parallel := d.graph.GetParallelEdges(e.GetFrom(), e.GetTo())
		if len(parallel) == 1 {
			return true
		}
		best := d.graph.GetEdge(parallel[0])
		for _, pId := range parallel[1:] {
			p := d.graph.GetEdge(pId)
			if p.GetWeight() < best.GetWeight() {
				best = p
			}
		}
		return best.GetEdgeId() == e.GetEdgeId()
	default:
		return e.GetKey() == 0
	}
}

func (d *Dijkstra) newResult(origin, destination da.Index, reachable bool) *SearchResult {
	distance := pkg.INF_WEIGHT
	if reachable {
		distance = d.state.GetDistance(destination)
	}
	return &SearchResult{
		origin:       origin,
		destination:  destination,
		steps:        d.numSettledNodes,
		pqPops:       d.numPqPops,
		relaxedEdges: d.numRelaxedEdges,
		reachable:    reachable,
		distance:     distance,
		state:        d.state,
	}
}

func (d *Dijkstra) Preallocate() {
	if d.state == nil {
		d.state = NewQueryState(d.graph.NumberOfVertices())
	} else {
		d.state.Preallocate(d.graph.NumberOfVertices())
	}
	d.pq.Clear()
	d.numSettledNodes = 0
	d.numPqPops = 0
	d.numRelaxedEdges = 0
}
