package routing

import "errors"

var (
	ErrInvalidVertex          = errors.New("vertex is not in the graph")
	ErrDestinationUnreachable = errors.New("destination is unreachable from origin")
	ErrBrokenPredecessorChain = errors.New("predecessor chain does not lead back to origin")
	ErrNonPositiveWeight      = errors.New("edge weight must be positive")
)

type ParallelEdgePolicy uint8

const (
	// FirstParallelEdge. only the edge with key 0 of each (u, v) pair is searched, other parallel roads are ignored
	FirstParallelEdge ParallelEdgePolicy = iota
	// MinWeightParallelEdge. the cheapest edge of each (u, v) pair is searched, lowest key on ties
	MinWeightParallelEdge
)

func (p ParallelEdgePolicy) String() string {
	switch p {
	case FirstParallelEdge:
		return "first"
	case MinWeightParallelEdge:
		return "min_weight"
	default:
		return "unknown"
	}
}

func ParseParallelEdgePolicy(s string) (ParallelEdgePolicy, error) {
	switch s {
	case "", "first":
		return FirstParallelEdge, nil
	case "min_weight":
		return MinWeightParallelEdge, nil
	default:
		return FirstParallelEdge, errors.New("unknown parallel edge policy: " + s)
	}
}
