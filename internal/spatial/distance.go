package spatial

import (
	"field-route-service/internal/domain"

	"github.com/golang/geo/s2"
)

const (
	// Earth's mean radius in kilometers (spherical model).
	EarthRadiusKm = 6371.0
	// Kilometers to statute miles.
	MilesPerKm = 0.621371
)

// MilesBetween returns the great-circle distance between two coordinates in
// statute miles, computed with the haversine formula on a spherical Earth.
// The result is non-negative for finite inputs and exactly zero for
// identical coordinates. Non-finite inputs propagate into the result;
// validation is the caller's responsibility.
func MilesBetween(a, b domain.Coordinate) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p1.Distance(p2).Radians() * EarthRadiusKm * MilesPerKm
}
