package visualizer

import (
	da "github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type RenderOptions struct {
	// IncludeUnvisited. also draw edges the search never touched. a whole city is big, off by default.
	IncludeUnvisited bool
	// Usage. when set, every edge feature carries its usage count
	Usage *da.UsageCounters
}

// RenderGeoJSON. feature collection of the annotated graph: one LineString per edge with its style, one Point per
// node with a non zero size.
func (a *Annotator) RenderGeoJSON(opts RenderOptions) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	a.graph.ForEdges(func(e *da.Edge) {
		role := a.edgeRoles[e.GetEdgeId()]
		if role == UNVISITED_EDGE && !opts.IncludeUnvisited {
			return
		}
		style := edgeStyles[role]

		f := geojson.NewFeature(a.edgeLineString(e))
		f.Properties["edge_id"] = e.GetEdgeId()
		f.Properties["from"] = e.GetFrom()
		f.Properties["to"] = e.GetTo()
		f.Properties["key"] = e.GetKey()
		f.Properties["role"] = role.String()
		f.Properties["color"] = style.Color
		f.Properties["alpha"] = style.Alpha
		f.Properties["linewidth"] = style.LineWidth
		f.Properties["length"] = e.GetLength()
		f.Properties["maxspeed"] = e.GetMaxSpeed()
		if opts.Usage != nil {
			f.Properties["usage"] = opts.Usage.Get(e.GetEdgeId())
		}
		fc.Append(f)
	})

	for u, size := range a.nodeSizes {
		if size <= 0 {
			continue
		}
		lat, lon := a.graph.GetVertexCoordinates(u)
		f := geojson.NewFeature(orb.Point{lon, lat})
		f.Properties["node_id"] = u
		f.Properties["size"] = size
		f.Properties["color"] = "white"
		fc.Append(f)
	}

	return fc
}

func (a *Annotator) edgeLineString(e *da.Edge) orb.LineString {
	shape := e.GetGeometry()
	if len(shape) >= 2 {
		ls := make(orb.LineString, len(shape))
		for i, c := range shape {
			ls[i] = orb.Point{c.Lon, c.Lat}
		}
		return ls
	}
	fromLat, fromLon := a.graph.GetVertexCoordinates(e.GetFrom())
	toLat, toLon := a.graph.GetVertexCoordinates(e.GetTo())
	return orb.LineString{{fromLon, fromLat}, {toLon, toLat}}
}
