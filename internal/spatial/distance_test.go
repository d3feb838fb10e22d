package spatial

import (
	"math"
	"testing"

	"field-route-service/internal/domain"
)

func TestMilesBetweenIdenticalCoordinates(t *testing.T) {
	c := domain.Coordinate{Lat: 39.7526, Lon: -105.0003}
	if d := MilesBetween(c, c); d != 0 {
		t.Fatalf("distance between identical coordinates = %v, want 0", d)
	}
}

func TestMilesBetweenKnownDistance(t *testing.T) {
	// One degree of longitude along the equator is 111.195 km ≈ 69.09 miles
	// on the 6371 km sphere.
	a := domain.Coordinate{Lat: 0, Lon: 0}
	b := domain.Coordinate{Lat: 0, Lon: 1}

	d := MilesBetween(a, b)
	if math.Abs(d-69.09) > 0.05 {
		t.Fatalf("equator degree distance = %v, want ≈69.09", d)
	}
}

func TestMilesBetweenSymmetricAndNonNegative(t *testing.T) {
	pairs := [][2]domain.Coordinate{
		{{Lat: 39.7526, Lon: -105.0003}, {Lat: 39.7986, Lon: -105.0875}},
		{{Lat: -33.8688, Lon: 151.2093}, {Lat: 51.5074, Lon: -0.1278}},
		{{Lat: 90, Lon: 0}, {Lat: -90, Lon: 0}},
	}

	for i, p := range pairs {
		ab := MilesBetween(p[0], p[1])
		ba := MilesBetween(p[1], p[0])

		if ab < 0 {
			t.Errorf("pair %d: distance = %v, want >= 0", i, ab)
		}
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("pair %d: asymmetric distance: %v vs %v", i, ab, ba)
		}
	}
}

func TestMilesBetweenPropagatesNonFinite(t *testing.T) {
	a := domain.Coordinate{Lat: math.NaN(), Lon: 0}
	b := domain.Coordinate{Lat: 0, Lon: 0}

	if d := MilesBetween(a, b); !math.IsNaN(d) {
		t.Fatalf("distance with NaN input = %v, want NaN", d)
	}
}
