package geo

import (
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords. google encoded polyline (precision 1e-5) of coords
func PolylineFromCoords(coords []Coordinate) string {
	if len(coords) == 0 {
		return ""
	}
	raw := make([][]float64, len(coords))
	for i, c := range coords {
		raw[i] = []float64{c.Lat, c.Lon}
	}
	return string(polyline.EncodeCoords(raw))
}

func CoordsFromPolyline(encoded string) ([]Coordinate, error) {
	if encoded == "" {
		return []Coordinate{}, nil
	}
	raw, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	coords := make([]Coordinate, len(raw))
	for i, c := range raw {
		coords[i] = NewCoordinate(c[0], c[1])
	}
	return coords, nil
}
