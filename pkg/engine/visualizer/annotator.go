package visualizer

import (
	da "github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
)

type EdgeRole uint8

const (
	UNVISITED_EDGE EdgeRole = iota
	VISITED_EDGE            // scanned from a settled node
	ACTIVE_EDGE             // leaves a node whose label was lowered
	PATH_EDGE
)

func (r EdgeRole) String() string {
	switch r {
	case VISITED_EDGE:
		return "visited"
	case ACTIVE_EDGE:
		return "active"
	case PATH_EDGE:
		return "path"
	default:
		return "unvisited"
	}
}

type EdgeStyle struct {
	Color     string  `json:"color"`
	Alpha     float64 `json:"alpha"`
	LineWidth float64 `json:"linewidth"`
}

var edgeStyles = map[EdgeRole]EdgeStyle{
	UNVISITED_EDGE: {Color: "gray", Alpha: 1, LineWidth: 0.2},
	VISITED_EDGE:   {Color: "green", Alpha: 1, LineWidth: 1},
	ACTIVE_EDGE:    {Color: "red", Alpha: 1, LineWidth: 1},
	PATH_EDGE:      {Color: "white", Alpha: 1, LineWidth: 5},
}

const (
	ENDPOINT_NODE_SIZE = 50
)

func GetEdgeStyle(r EdgeRole) EdgeStyle {
	return edgeStyles[r]
}

// Annotator tags nodes and edges with visual roles from search events. it is a routing.SearchListener and never
// touches the search itself. one annotator per query, it is not safe for concurrent use.
type Annotator struct {
	graph     *da.Graph
	edgeRoles []EdgeRole
	nodeSizes map[da.Index]float64
	settled   []da.Index
}

func NewAnnotator(graph *da.Graph) *Annotator {
	return &Annotator{
		graph:     graph,
		edgeRoles: make([]EdgeRole, graph.NumberOfEdges()),
		nodeSizes: make(map[da.Index]float64),
		settled:   make([]da.Index, 0),
	}
}

func (a *Annotator) OnSearchStart(origin, destination da.Index) {
	a.resetEdges()
	a.settled = a.settled[:0]
	a.nodeSizes = map[da.Index]float64{
		origin:      ENDPOINT_NODE_SIZE,
		destination: ENDPOINT_NODE_SIZE,
	}
}

func (a *Annotator) OnNodeSettled(u da.Index) {
	a.settled = append(a.settled, u)
}

func (a *Annotator) OnEdgeScanned(e *da.Edge) {
	a.edgeRoles[e.GetEdgeId()] = VISITED_EDGE
}

func (a *Annotator) OnEdgeActivated(e *da.Edge) {
	a.edgeRoles[e.GetEdgeId()] = ACTIVE_EDGE
}

// OnReconstructionStart. the path is drawn on a clean map
func (a *Annotator) OnReconstructionStart(origin, destination da.Index) {
	a.resetEdges()
}

func (a *Annotator) OnPathEdge(e *da.Edge) {
	a.edgeRoles[e.GetEdgeId()] = PATH_EDGE
}

func (a *Annotator) resetEdges() {
	for i := range a.edgeRoles {
		a.edgeRoles[i] = UNVISITED_EDGE
	}
}

func (a *Annotator) GetEdgeRole(e da.Index) EdgeRole {
	return a.edgeRoles[e]
}

func (a *Annotator) GetEdgeStyle(e da.Index) EdgeStyle {
	return edgeStyles[a.edgeRoles[e]]
}

func (a *Annotator) GetNodeSize(u da.Index) float64 {
	return a.nodeSizes[u]
}

// GetSettledNodes. settled nodes in settle order
func (a *Annotator) GetSettledNodes() []da.Index {
	return a.settled
}

func (a *Annotator) CountByRole() map[EdgeRole]int {
	counts := make(map[EdgeRole]int, len(edgeStyles))
	for _, r := range a.edgeRoles {
		counts[r]++
	}
	return counts
}
