package routing

import (
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg"
	da "github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
)

type VertexInfo struct {
	travelTime float64
	parent     da.Index
	parentEdge da.Index // edge parent -> this vertex that gave travelTime
	visited    bool     // travelTime is final
}

func (vi *VertexInfo) GetTravelTime() float64 {
	return vi.travelTime
}

func (vi *VertexInfo) GetParent() da.Index {
	return vi.parent
}

func (vi *VertexInfo) GetParentEdge() da.Index {
	return vi.parentEdge
}

func (vi *VertexInfo) IsVisited() bool {
	return vi.visited
}

// QueryState. per query labels of every vertex (visited, distance, previous). owned by one search.
type QueryState struct {
	info []VertexInfo
}

func NewQueryState(numberOfVertices int) *QueryState {
	qs := &QueryState{}
	qs.Preallocate(numberOfVertices)
	return qs
}

// Preallocate. reset every label to (unvisited, INF, no parent), reusing the buffer when it is big enough
func (qs *QueryState) Preallocate(numberOfVertices int) {
	if cap(qs.info) < numberOfVertices {
		qs.info = make([]VertexInfo, numberOfVertices)
	}
	qs.info = qs.info[:numberOfVertices]
	for i := range qs.info {
		qs.info[i] = VertexInfo{
			travelTime: pkg.INF_WEIGHT,
			parent:     da.INVALID_VERTEX_ID,
			parentEdge: da.INVALID_EDGE_ID,
		}
	}
}

func (qs *QueryState) GetVertexInfo(u da.Index) VertexInfo {
	return qs.info[u]
}

func (qs *QueryState) GetDistance(u da.Index) float64 {
	return qs.info[u].travelTime
}

func (qs *QueryState) IsVisited(u da.Index) bool {
	return qs.info[u].visited
}

// GetPrevious. predecessor of u in the shortest path tree, false for the origin and unlabelled vertices
func (qs *QueryState) GetPrevious(u da.Index) (da.Index, bool) {
	p := qs.info[u].parent
	return p, p != da.INVALID_VERTEX_ID
}

func (qs *QueryState) GetPreviousEdge(u da.Index) da.Index {
	return qs.info[u].parentEdge
}

func (qs *QueryState) setOrigin(s da.Index) {
	qs.info[s].travelTime = 0
}

func (qs *QueryState) markVisited(u da.Index) {
	qs.info[u].visited = true
}

func (qs *QueryState) update(v, parent, parentEdge da.Index, travelTime float64) {
	qs.info[v].travelTime = travelTime
	qs.info[v].parent = parent
	qs.info[v].parentEdge = parentEdge
}

func (qs *QueryState) size() int {
	return len(qs.info)
}
