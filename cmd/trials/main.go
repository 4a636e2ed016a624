package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/engine"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/logger"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/trials"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/util"
)

func main() {
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}

	summaries := make([]*trials.Summary, 0, len(trials.Registry))
	for _, place := range trials.Registry {
		graphFile, err := place.GraphFile()
		if err != nil {
			panic(err)
		}

		routingEngine, err := engine.NewEngine(graphFile, routing.FirstParallelEdge, logger)
		if err != nil {
			panic(err)
		}

		runner := trials.NewRunner(routingEngine.GetRoutingEngine(), uint64(time.Now().UnixNano()),
			runtime.NumCPU(), logger)
		summary, err := runner.Run(place, trials.DEFAULT_NUM_TRIALS)
		if err != nil {
			panic(err)
		}
		summary.WriteReport(os.Stdout)
		summaries = append(summaries, summary)
	}

	for _, s := range summaries {
		fmt.Printf("The average step for %s is: %v\n", s.Place.Name, s.MeanSteps())
	}
}
