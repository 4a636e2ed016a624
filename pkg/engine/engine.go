package engine

import (
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/costfunction"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/osmparser"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/spatialindex"
	"go.uber.org/zap"
)

const (
	GRAPH_FILE_EXT = ".graph"
)

type Engine struct {
	routingEngine *routing.RoutingEngine
	spatialIndex  *spatialindex.Rtree
}

func (e *Engine) GetRoutingEngine() *routing.RoutingEngine {
	return e.routingEngine
}

func (e *Engine) GetSpatialIndex() *spatialindex.Rtree {
	return e.spatialIndex
}

func (e *Engine) GetGraph() *datastructure.Graph {
	return e.routingEngine.GetGraph()
}

// NewEngine. load the road network at graphFilePath, assign travel time weights and index its vertices.
func NewEngine(graphFilePath string, policy routing.ParallelEdgePolicy, logger *zap.Logger) (*Engine, error) {
	logger.Info("Starting dijkstra query engine...")

	graph, err := LoadGraph(graphFilePath, logger)
	if err != nil {
		return nil, err
	}
	return NewEngineFromGraph(graph, policy, logger)
}

func NewEngineFromGraph(graph *datastructure.Graph, policy routing.ParallelEdgePolicy, logger *zap.Logger) (*Engine, error) {
	if err := costfunction.AssignWeights(graph, costfunction.NewTravelTimeCostFunction(), logger); err != nil {
		return nil, err
	}

	routingEngine, err := routing.NewRoutingEngine(graph, policy, logger)
	if err != nil {
		return nil, err
	}

	rt := spatialindex.NewRtree()
	rt.Build(graph, logger)

	return &Engine{
		routingEngine: routingEngine,
		spatialIndex:  rt,
	}, nil
}

// LoadGraph. a preprocessed .graph file is read directly, anything else is parsed as an openstreetmap extract.
func LoadGraph(path string, logger *zap.Logger) (*datastructure.Graph, error) {
	if strings.EqualFold(filepath.Ext(path), GRAPH_FILE_EXT) {
		logger.Info("Reading graph from ", zap.String("graphFilePath", path))
		return datastructure.ReadGraph(path)
	}

	logger.Info("Parsing openstreetmap extract ", zap.String("mapFile", path))
	return osmparser.NewOsmParser(logger).Parse(path)
}
