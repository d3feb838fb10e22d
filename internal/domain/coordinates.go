package domain

import "fmt"

// Immutable geographic coordinate in decimal degrees.
// Latitude is expected in [-90, 90] and longitude in [-180, 180];
// callers validate ranges, the domain does not.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Return the coordinate as [lon, lat] for external routing API compatibility.
func (c Coordinate) LonLat() []float64 { return []float64{c.Lon, c.Lat} }

// Key returns a stable cache key for the coordinate.
// Six decimal places (~0.1m) keeps keys consistent across float formatting.
func (c Coordinate) Key() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}
