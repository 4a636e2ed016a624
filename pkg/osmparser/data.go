package osmparser

type NodeType int

const (
	END_NODE NodeType = iota
	BETWEEN_NODE
	JUNCTION_NODE
)

var (
	// drivable highways. service roads, tracks and paths are left out.
	acceptedHighway = map[string]struct{}{
		"motorway":       {},
		"motorway_link":  {},
		"trunk":          {},
		"trunk_link":     {},
		"primary":        {},
		"primary_link":   {},
		"secondary":      {},
		"secondary_link": {},
		"tertiary":       {},
		"tertiary_link":  {},
		"unclassified":   {},
		"residential":    {},
		"living_street":  {},
		"road":           {},
	}

	rejectedAccess = map[string]struct{}{
		"no":      {},
		"private": {},
	}
)

type nodeCoord struct {
	lat float64
	lon float64
}

type osmWay struct {
	id       int64
	nodes    []int64
	highway  string
	maxSpeed string
	forward  bool
	backward bool
}
