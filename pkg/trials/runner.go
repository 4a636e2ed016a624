package trials

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/concurrent"
	da "github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

const (
	DEFAULT_NUM_TRIALS = 10
)

var (
	ErrEmptyGraph = errors.New("graph has no vertices")
)

type Trial struct {
	Index       int
	Origin      da.Index
	Destination da.Index
	Steps       int
	Reachable   bool
	TravelTime  float64
}

type Summary struct {
	Place  Place
	Nodes  int
	Edges  int
	Trials []Trial
}

func (s *Summary) NumReachable() int {
	n := 0
	for _, t := range s.Trials {
		if t.Reachable {
			n++
		}
	}
	return n
}

// MeanSteps. mean step count over the trials that reached their destination, 0 when none did.
func (s *Summary) MeanSteps() float64 {
	steps := make([]float64, 0, len(s.Trials))
	for _, t := range s.Trials {
		if t.Reachable {
			steps = append(steps, float64(t.Steps))
		}
	}
	if len(steps) == 0 {
		return 0
	}
	return util.Mean(steps)
}

// WriteReport. graph size followed by the iteration count of every trial
func (s *Summary) WriteReport(w io.Writer) {
	fmt.Fprintln(w, "Running Dijkstra")
	fmt.Fprintln(w, "Nodes: ", s.Nodes)
	fmt.Fprintln(w, "Edges: ", s.Edges)
	for _, t := range s.Trials {
		if t.Reachable {
			fmt.Fprintln(w, "Iterations:", t.Steps)
		} else {
			fmt.Fprintf(w, "Iterations: %d (%d unreachable from %d)\n", t.Steps, t.Destination, t.Origin)
		}
	}
}

// Runner runs shortest path searches between random vertex pairs. endpoints are drawn up front from one seeded
// source, so a seed always gives the same pairs whatever the number of workers.
type Runner struct {
	routingEngine *routing.RoutingEngine
	rnd           *rand.Rand
	workers       int
	logger        *zap.Logger
}

func NewRunner(routingEngine *routing.RoutingEngine, seed uint64, workers int, logger *zap.Logger) *Runner {
	return &Runner{
		routingEngine: routingEngine,
		rnd:           rand.New(rand.NewSource(seed)),
		workers:       workers,
		logger:        logger,
	}
}

func (r *Runner) Run(place Place, numTrials int) (*Summary, error) {
	graph := r.routingEngine.GetGraph()
	n := graph.NumberOfVertices()
	if n == 0 {
		return nil, util.WrapErrorf(ErrEmptyGraph, util.ErrBadParamInput, "place %s", place.Name)
	}

	jobs := make([]Trial, numTrials)
	for i := range jobs {
		jobs[i] = Trial{
			Index:       i,
			Origin:      da.Index(r.rnd.Intn(n)),
			Destination: da.Index(r.rnd.Intn(n)),
		}
	}

	type trialResult struct {
		trial Trial
		err   error
	}
	results := concurrent.Map(r.workers, jobs, func(job Trial) trialResult {
		// search only, random trials do not count edge usage
		result, err := r.routingEngine.ShortestPath(job.Origin, job.Destination, nil)
		if err != nil {
			return trialResult{trial: job, err: err}
		}
		job.Steps = result.GetSteps()
		job.Reachable = result.IsReachable()
		job.TravelTime = result.GetDistance()
		return trialResult{trial: job}
	})

	summary := &Summary{
		Place:  place,
		Nodes:  n,
		Edges:  graph.NumberOfEdges(),
		Trials: make([]Trial, 0, numTrials),
	}
	for _, res := range results {
		if res.err != nil {
			return nil, res.err
		}
		summary.Trials = append(summary.Trials, res.trial)
	}
	sort.Slice(summary.Trials, func(i, j int) bool {
		return summary.Trials[i].Index < summary.Trials[j].Index
	})

	r.logger.Sugar().Infof("%s: %d trials, %d reachable, mean steps %.2f", place.Name, len(summary.Trials),
		summary.NumReachable(), summary.MeanSteps())
	return summary, nil
}
