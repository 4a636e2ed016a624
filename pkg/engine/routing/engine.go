package routing

import (
	"sync"

	"github.com/lintang-b-s/navigatorx-dijkstra/pkg"
	da "github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/util"
	"go.uber.org/zap"
)

// RoutingEngine. shortest path queries over one weighted graph. the graph is read only for queries, so
// queries may run concurrently; each query takes its own labels from a pool.
type RoutingEngine struct {
	graph     *da.Graph
	policy    ParallelEdgePolicy
	algorithm string
	logger    *zap.Logger
	statePool sync.Pool
}

// NewRoutingEngine. graph weights must be assigned (see costfunction.AssignWeights)
func NewRoutingEngine(graph *da.Graph, policy ParallelEdgePolicy, logger *zap.Logger) (*RoutingEngine, error) {
	var err error
	graph.ForEdges(func(e *da.Edge) {
		if err == nil && !(e.GetWeight() > 0) {
			err = util.WrapErrorf(ErrNonPositiveWeight, util.ErrInternalServerError,
				"edge %d (%d -> %d) has weight %v", e.GetEdgeId(), e.GetFrom(), e.GetTo(), e.GetWeight())
		}
	})
	if err != nil {
		return nil, err
	}

	re := &RoutingEngine{
		graph:     graph,
		policy:    policy,
		algorithm: pkg.DIJKSTRA,
		logger:    logger,
	}
	re.statePool = sync.Pool{
		New: func() any {
			return NewQueryState(graph.NumberOfVertices())
		},
	}
	return re, nil
}

func (re *RoutingEngine) GetGraph() *da.Graph {
	return re.graph
}

func (re *RoutingEngine) GetPolicy() ParallelEdgePolicy {
	return re.policy
}

func (re *RoutingEngine) GetAlgorithm() string {
	return re.algorithm
}

// ShortestPath. search only, the returned result keeps its labels.
func (re *RoutingEngine) ShortestPath(origin, destination da.Index, listener SearchListener) (*SearchResult, error) {
	return NewDijkstra(re.graph, re.policy, listener).ShortestPath(origin, destination)
}

// Route. search and reconstruct as one query. the labels go back to the pool, so the returned result has no
// query state. an unreachable destination returns the result together with ErrDestinationUnreachable.
func (re *RoutingEngine) Route(origin, destination da.Index, listener SearchListener) (*SearchResult, *Path, error) {
	qs := re.statePool.Get().(*QueryState)
	defer re.statePool.Put(qs)

	result, err := NewDijkstra(re.graph, re.policy, listener).WithQueryState(qs).ShortestPath(origin, destination)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		result.state = nil
	}()

	if !result.IsReachable() {
		return result, nil, util.WrapErrorf(ErrDestinationUnreachable, util.ErrNotFound,
			"no path from %d to %d", origin, destination)
	}

	path, err := NewPathReconstructor(re.graph, re.algorithm, listener).Reconstruct(result)
	if err != nil {
		re.logger.Error("path reconstruction failed", zap.Error(err),
			zap.Uint32("origin", uint32(origin)), zap.Uint32("destination", uint32(destination)))
		return result, nil, err
	}
	return result, path, nil
}
