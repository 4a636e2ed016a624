package routing

import (
	da "github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
)

// SearchListener receives search and reconstruction events. listeners only observe, they must not mutate the graph.
type SearchListener interface {
	OnSearchStart(origin, destination da.Index)
	// OnNodeSettled. u is popped from the queue for the first time, its distance label is final
	OnNodeSettled(u da.Index)
	// OnEdgeScanned. out edge of a settled node considered for relaxation
	OnEdgeScanned(e *da.Edge)
	// OnEdgeActivated. out edge of a node whose distance label was just lowered (frontier)
	OnEdgeActivated(e *da.Edge)
	OnReconstructionStart(origin, destination da.Index)
	// OnPathEdge. edge of the reconstructed path, reported from origin to destination
	OnPathEdge(e *da.Edge)
}

// NoopListener ignores every event. embed it to implement only some of the callbacks.
type NoopListener struct{}

func (NoopListener) OnSearchStart(origin, destination da.Index)         {}
func (NoopListener) OnNodeSettled(u da.Index)                           {}
func (NoopListener) OnEdgeScanned(e *da.Edge)                           {}
func (NoopListener) OnEdgeActivated(e *da.Edge)                         {}
func (NoopListener) OnReconstructionStart(origin, destination da.Index) {}
func (NoopListener) OnPathEdge(e *da.Edge)                              {}

// MultiListener fans events out to several listeners in order.
type MultiListener []SearchListener

func (ml MultiListener) OnSearchStart(origin, destination da.Index) {
	for _, l := range ml {
		l.OnSearchStart(origin, destination)
	}
}

func (ml MultiListener) OnNodeSettled(u da.Index) {
	for _, l := range ml {
		l.OnNodeSettled(u)
	}
}

func (ml MultiListener) OnEdgeScanned(e *da.Edge) {
	for _, l := range ml {
		l.OnEdgeScanned(e)
	}
}

func (ml MultiListener) OnEdgeActivated(e *da.Edge) {
	for _, l := range ml {
		l.OnEdgeActivated(e)
	}
}

func (ml MultiListener) OnReconstructionStart(origin, destination da.Index) {
	for _, l := range ml {
		l.OnReconstructionStart(origin, destination)
	}
}

func (ml MultiListener) OnPathEdge(e *da.Edge) {
	for _, l := range ml {
		l.OnPathEdge(e)
	}
}

func listenerOrNoop(l SearchListener) SearchListener {
	if l == nil {
		return NoopListener{}
	}
	return l
}
