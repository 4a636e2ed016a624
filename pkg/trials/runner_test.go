package trials

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lintang-b-s/navigatorx-dijkstra/pkg"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/costfunction"
	da "github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/util"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// a ring of n vertices, two way, plus one vertex nobody can reach
func buildRingEngine(t *testing.T, n int) *routing.RoutingEngine {
	t.Helper()
	g := da.NewGraph()
	for i := 0; i <= n; i++ {
		g.AddNode(int64(i+1), 45.7+float64(i)*0.001, 7.3)
	}
	for i := 0; i < n; i++ {
		u, v := da.Index(i), da.Index((i+1)%n)
		_, err := g.AddEdge(u, v, 100, da.NewMaxSpeed("50"), pkg.RESIDENTIAL, nil)
		require.NoError(t, err)
		_, err = g.AddEdge(v, u, 100, da.NewMaxSpeed("30"), pkg.RESIDENTIAL, nil)
		require.NoError(t, err)
	}
	_, err := g.AddEdge(da.Index(n), 0, 100, da.NoMaxSpeed(), pkg.SERVICE, nil)
	require.NoError(t, err)

	require.NoError(t, costfunction.AssignWeights(g, costfunction.NewTravelTimeCostFunction(), zap.NewNop()))
	re, err := routing.NewRoutingEngine(g, routing.FirstParallelEdge, zap.NewNop())
	require.NoError(t, err)
	return re
}

func TestRunnerRun(t *testing.T) {
	re := buildRingEngine(t, 12)
	place, err := LookupPlace("Aosta")
	require.NoError(t, err)

	summary, err := NewRunner(re, 42, 4, zap.NewNop()).Run(place, DEFAULT_NUM_TRIALS)
	require.NoError(t, err)

	assert.Equal(t, 13, summary.Nodes)
	assert.Equal(t, 25, summary.Edges)
	require.Len(t, summary.Trials, DEFAULT_NUM_TRIALS)

	steps := make([]float64, 0)
	for i, trial := range summary.Trials {
		assert.Equal(t, i, trial.Index)
		if trial.Destination == 12 && trial.Origin != 12 {
			assert.False(t, trial.Reachable)
			continue
		}
		assert.True(t, trial.Reachable)
		if trial.Origin == trial.Destination {
			assert.Equal(t, 0, trial.Steps)
		}
		steps = append(steps, float64(trial.Steps))
	}
	if len(steps) > 0 {
		assert.InDelta(t, util.Mean(steps), summary.MeanSteps(), 1e-9)
	}

	// random trials never count edge usage
	assert.Equal(t, uint64(0), re.GetGraph().Usage(pkg.DIJKSTRA).Total())
}

func TestRunnerIsDeterministic(t *testing.T) {
	re := buildRingEngine(t, 20)
	place := Registry[0]

	one, err := NewRunner(re, 7, 1, zap.NewNop()).Run(place, 25)
	require.NoError(t, err)
	many, err := NewRunner(re, 7, 8, zap.NewNop()).Run(place, 25)
	require.NoError(t, err)

	assert.Equal(t, one.Trials, many.Trials)
}

func TestRunnerEmptyGraph(t *testing.T) {
	re, err := routing.NewRoutingEngine(da.NewGraph(), routing.FirstParallelEdge, zap.NewNop())
	require.NoError(t, err)

	_, err = NewRunner(re, 1, 2, zap.NewNop()).Run(Registry[0], 10)
	assert.ErrorIs(t, err, ErrEmptyGraph)
}

func TestSummary(t *testing.T) {
	summary := &Summary{
		Place: Registry[0],
		Nodes: 3,
		Edges: 4,
		Trials: []Trial{
			{Index: 0, Steps: 2, Reachable: true},
			{Index: 1, Steps: 4, Reachable: true},
			{Index: 2, Origin: 1, Destination: 2, Steps: 9},
		},
	}
	assert.Equal(t, 2, summary.NumReachable())
	assert.InDelta(t, 3.0, summary.MeanSteps(), 1e-9)

	var buf bytes.Buffer
	summary.WriteReport(&buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"Running Dijkstra",
		"Nodes:  3",
		"Edges:  4",
		"Iterations: 2",
		"Iterations: 4",
		"Iterations: 9 (2 unreachable from 1)",
	}, lines)

	assert.Equal(t, 0.0, (&Summary{}).MeanSteps())
}

func TestPlaceRegistry(t *testing.T) {
	torino, err := LookupPlace("torino")
	require.NoError(t, err)
	assert.Equal(t, "Turin, Piedmont, Italy", torino.PlaceName)
	assert.Equal(t, "places.torino", torino.ConfigKey())

	_, err = LookupPlace("Milano")
	require.ErrorIs(t, err, ErrUnknownPlace)
	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))

	aosta, _ := LookupPlace("Aosta")
	viper.Set(aosta.ConfigKey(), "./data/aosta.graph")
	defer viper.Set(aosta.ConfigKey(), "")
	path, err := aosta.GraphFile()
	require.NoError(t, err)
	assert.Equal(t, "./data/aosta.graph", path)

	_, err = Place{Name: "Nowhere"}.GraphFile()
	assert.ErrorIs(t, err, ErrPlaceNotConfig)
}
