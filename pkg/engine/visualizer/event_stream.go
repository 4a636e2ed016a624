package visualizer

import (
	da "github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
)

type EventType string

const (
	EVENT_SEARCH_START         EventType = "search_start"
	EVENT_NODE_SETTLED         EventType = "node_settled"
	EVENT_EDGE_SCANNED         EventType = "edge_scanned"
	EVENT_EDGE_ACTIVATED       EventType = "edge_activated"
	EVENT_RECONSTRUCTION_START EventType = "reconstruction_start"
	EVENT_PATH_EDGE            EventType = "path_edge"
)

type SearchEvent struct {
	Type EventType `json:"type"`
	Node *da.Index `json:"node,omitempty"`
	Edge *da.Index `json:"edge,omitempty"`
	From *da.Index `json:"from,omitempty"`
	To   *da.Index `json:"to,omitempty"`
}

// EventStream forwards search events to send. after the first send error every later event is dropped and the
// error is kept for Err.
type EventStream struct {
	send func(SearchEvent) error
	err  error
	sent int
}

func NewEventStream(send func(SearchEvent) error) *EventStream {
	return &EventStream{send: send}
}

func (es *EventStream) Err() error {
	return es.err
}

// Sent. number of events delivered
func (es *EventStream) Sent() int {
	return es.sent
}

func (es *EventStream) emit(ev SearchEvent) {
	if es.err != nil {
		return
	}
	if err := es.send(ev); err != nil {
		es.err = err
		return
	}
	es.sent++
}

func idx(i da.Index) *da.Index {
	return &i
}

func (es *EventStream) OnSearchStart(origin, destination da.Index) {
	es.emit(SearchEvent{Type: EVENT_SEARCH_START, From: idx(origin), To: idx(destination)})
}

func (es *EventStream) OnNodeSettled(u da.Index) {
	es.emit(SearchEvent{Type: EVENT_NODE_SETTLED, Node: idx(u)})
}

func (es *EventStream) OnEdgeScanned(e *da.Edge) {
	es.emit(SearchEvent{Type: EVENT_EDGE_SCANNED, Edge: idx(e.GetEdgeId()), From: idx(e.GetFrom()), To: idx(e.GetTo())})
}

func (es *EventStream) OnEdgeActivated(e *da.Edge) {
	es.emit(SearchEvent{Type: EVENT_EDGE_ACTIVATED, Edge: idx(e.GetEdgeId()), From: idx(e.GetFrom()), To: idx(e.GetTo())})
}

func (es *EventStream) OnReconstructionStart(origin, destination da.Index) {
	es.emit(SearchEvent{Type: EVENT_RECONSTRUCTION_START, From: idx(origin), To: idx(destination)})
}

func (es *EventStream) OnPathEdge(e *da.Edge) {
	es.emit(SearchEvent{Type: EVENT_PATH_EDGE, Edge: idx(e.GetEdgeId()), From: idx(e.GetFrom()), To: idx(e.GetTo())})
}
