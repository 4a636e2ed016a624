package geo

import (
	"github.com/golang/geo/s2"
)

// PolylineLength. length of the polyline through coords in meter, measured on the sphere
func PolylineLength(coords []Coordinate) float64 {
	if len(coords) < 2 {
		return 0
	}
	latLngs := make([]s2.LatLng, len(coords))
	for i, c := range coords {
		latLngs[i] = s2.LatLngFromDegrees(c.Lat, c.Lon)
	}
	line := s2.PolylineFromLatLngs(latLngs)
	return line.Length().Radians() * earthRadiusKM * 1000
}
