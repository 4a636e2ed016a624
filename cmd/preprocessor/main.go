package main

import (
	"flag"

	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/costfunction"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/logger"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/osmparser"
)

var (
	mapFile    = flag.String("f", "./data/torino.osm.pbf", "openstreetmap extract (.osm.pbf / .osm)")
	graphFile  = flag.String("o", "./data/torino.graph", "output graph file")
	largestSCC = flag.Bool("largest_scc", false, "keep only the largest strongly connected component")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	osmParser := osmparser.NewOsmParser(logger)
	graph, err := osmParser.Parse(*mapFile)
	if err != nil {
		panic(err)
	}

	if *largestSCC {
		keep, size := graph.LargestStronglyConnectedComponent()
		logger.Sugar().Infof("largest strongly connected component: %d of %d vertices", size, graph.NumberOfVertices())
		graph = graph.InducedSubgraph(keep)
	}

	// fail here rather than in the engine when a maxspeed cannot be read
	if err := costfunction.AssignWeights(graph, costfunction.NewTravelTimeCostFunction(), logger); err != nil {
		panic(err)
	}

	if err := graph.WriteGraph(*graphFile); err != nil {
		panic(err)
	}

	logger.Sugar().Infof("Preprocessing completed successfully. %d vertices, %d edges written to %s",
		graph.NumberOfVertices(), graph.NumberOfEdges(), *graphFile)
}
