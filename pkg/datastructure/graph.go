package datastructure

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/lintang-b-s/navigatorx-dijkstra/pkg"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/geo"
)

type Index uint32

const (
	INVALID_VERTEX_ID Index = math.MaxUint32
	INVALID_EDGE_ID   Index = math.MaxUint32
)

var (
	ErrVertexNotFound = errors.New("vertex not found")
)

type Node struct {
	id         Index
	externalId int64 // osm node id
	lat        float64
	lon        float64
}

func NewNode(id Index, externalId int64, lat, lon float64) Node {
	return Node{
		id:         id,
		externalId: externalId,
		lat:        lat,
		lon:        lon,
	}
}

func (n *Node) GetID() Index {
	return n.id
}

func (n *Node) GetExternalID() int64 {
	return n.externalId
}

func (n *Node) GetLat() float64 {
	return n.lat
}

func (n *Node) GetLon() float64 {
	return n.lon
}

// Edge. one directed road segment. key is the parallel edge index between (from, to), starting at 0.
type Edge struct {
	id     Index
	from   Index
	to     Index
	key    int
	length float64 // meter

	rawMaxSpeed RawMaxSpeed
	maxSpeed    float64 // km/h, set by the cost function
	weight      float64

	highwayType pkg.OsmHighwayType
	geometry    []geo.Coordinate
}

func (e *Edge) GetEdgeId() Index {
	return e.id
}

func (e *Edge) GetFrom() Index {
	return e.from
}

func (e *Edge) GetTo() Index {
	return e.to
}

func (e *Edge) GetKey() int {
	return e.key
}

// GetLength. edge length in meter
func (e *Edge) GetLength() float64 {
	return e.length
}

func (e *Edge) GetRawMaxSpeed() RawMaxSpeed {
	return e.rawMaxSpeed
}

// GetMaxSpeed. normalized max speed in km/h, zero before weights are assigned
func (e *Edge) GetMaxSpeed() float64 {
	return e.maxSpeed
}

func (e *Edge) GetWeight() float64 {
	return e.weight
}

func (e *Edge) GetHighwayType() pkg.OsmHighwayType {
	return e.highwayType
}

func (e *Edge) GetGeometry() []geo.Coordinate {
	return e.geometry
}

func (e *Edge) SetMaxSpeedAndWeight(maxSpeed, weight float64) {
	e.maxSpeed = maxSpeed
	e.weight = weight
}

type nodePair struct {
	from, to Index
}

// Graph. directed multigraph of the road network.
// topology and edge attributes are written once while building, usage counters are the only state
// mutated by queries.
type Graph struct {
	nodes     []Node
	edges     []Edge
	outEdges  [][]Index
	nodeIndex map[int64]Index
	pairEdges map[nodePair][]Index

	usageMu sync.RWMutex
	usage   map[string]*UsageCounters
}

func NewGraph() *Graph {
	return &Graph{
		nodes:     make([]Node, 0),
		edges:     make([]Edge, 0),
		outEdges:  make([][]Index, 0),
		nodeIndex: make(map[int64]Index),
		pairEdges: make(map[nodePair][]Index),
		usage:     make(map[string]*UsageCounters),
	}
}

func NewGraphWithSize(numNodes, numEdges int) *Graph {
	g := NewGraph()
	g.nodes = make([]Node, 0, numNodes)
	g.edges = make([]Edge, 0, numEdges)
	g.outEdges = make([][]Index, 0, numNodes)
	g.nodeIndex = make(map[int64]Index, numNodes)
	return g
}

// AddNode. add node with external id, returns the existing index if the external id is already in the graph.
func (g *Graph) AddNode(externalId int64, lat, lon float64) Index {
	if id, ok := g.nodeIndex[externalId]; ok {
		return id
	}
	id := Index(len(g.nodes))
	g.nodes = append(g.nodes, NewNode(id, externalId, lat, lon))
	g.outEdges = append(g.outEdges, make([]Index, 0, 2))
	g.nodeIndex[externalId] = id
	return id
}

// AddEdge. add directed edge from -> to. parallel edges get increasing keys in insertion order.
func (g *Graph) AddEdge(from, to Index, length float64, rawMaxSpeed RawMaxSpeed,
	highwayType pkg.OsmHighwayType, geometry []geo.Coordinate) (Index, error) {
	if !g.IsValidVertex(from) {
		return INVALID_EDGE_ID, fmt.Errorf("%w: tail %d", ErrVertexNotFound, from)
	}
	if !g.IsValidVertex(to) {
		return INVALID_EDGE_ID, fmt.Errorf("%w: head %d", ErrVertexNotFound, to)
	}

	id := Index(len(g.edges))
	pair := nodePair{from, to}
	key := len(g.pairEdges[pair])

	g.edges = append(g.edges, Edge{
		id:          id,
		from:        from,
		to:          to,
		key:         key,
		length:      length,
		rawMaxSpeed: rawMaxSpeed,
		highwayType: highwayType,
		geometry:    geometry,
	})
	g.outEdges[from] = append(g.outEdges[from], id)
	g.pairEdges[pair] = append(g.pairEdges[pair], id)

	g.usageMu.Lock()
	for _, counters := range g.usage {
		counters.grow(len(g.edges))
	}
	g.usageMu.Unlock()

	return id, nil
}

func (g *Graph) NumberOfVertices() int {
	return len(g.nodes)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}

func (g *Graph) IsValidVertex(u Index) bool {
	return int(u) < len(g.nodes)
}

func (g *Graph) GetNode(u Index) *Node {
	return &g.nodes[u]
}

func (g *Graph) GetNodeIndex(externalId int64) (Index, bool) {
	id, ok := g.nodeIndex[externalId]
	return id, ok
}

func (g *Graph) GetVertexCoordinates(u Index) (float64, float64) {
	return g.nodes[u].lat, g.nodes[u].lon
}

func (g *Graph) GetEdge(e Index) *Edge {
	return &g.edges[e]
}

func (g *Graph) GetOutDegree(u Index) int {
	return len(g.outEdges[u])
}

// ForOutEdgesOf. iterate every outgoing edge of u, including parallel edges, in insertion order
func (g *Graph) ForOutEdgesOf(u Index, handle func(e *Edge)) {
	for _, eId := range g.outEdges[u] {
		handle(&g.edges[eId])
	}
}

func (g *Graph) ForEdges(handle func(e *Edge)) {
	for i := range g.edges {
		handle(&g.edges[i])
	}
}

// GetParallelEdges. all edges from u to v ordered by key
func (g *Graph) GetParallelEdges(u, v Index) []Index {
	return g.pairEdges[nodePair{u, v}]
}

// GetEdgeByKey. the edge (u, v, key)
func (g *Graph) GetEdgeByKey(u, v Index, key int) (*Edge, bool) {
	es := g.pairEdges[nodePair{u, v}]
	if key < 0 || key >= len(es) {
		return nil, false
	}
	return &g.edges[es[key]], true
}

// Usage. edge usage counters for an algorithm name, created on first use
func (g *Graph) Usage(algorithm string) *UsageCounters {
	g.usageMu.RLock()
	counters, ok := g.usage[algorithm]
	g.usageMu.RUnlock()
	if ok {
		return counters
	}

	g.usageMu.Lock()
	defer g.usageMu.Unlock()
	if counters, ok = g.usage[algorithm]; ok {
		return counters
	}
	counters = NewUsageCounters(algorithm, len(g.edges))
	g.usage[algorithm] = counters
	return counters
}

// UsageAlgorithms. names of algorithms that have counters on this graph
func (g *Graph) UsageAlgorithms() []string {
	g.usageMu.RLock()
	defer g.usageMu.RUnlock()
	names := make([]string, 0, len(g.usage))
	for name := range g.usage {
		names = append(names, name)
	}
	return names
}

// ResetUsage. zero every usage counter of every algorithm
func (g *Graph) ResetUsage() {
	g.usageMu.RLock()
	defer g.usageMu.RUnlock()
	for _, counters := range g.usage {
		counters.reset()
	}
}
