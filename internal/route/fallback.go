package route

import (
	"field-route-service/internal/domain"
	"field-route-service/internal/spatial"
)

// NearestNeighborOrder returns a permutation of the stops approximating a
// short visiting tour via greedy nearest-neighbor selection.
//
// The walk starts at the origin (or the first stop's location when no origin
// is given) and repeatedly appends the closest unvisited stop. Ties keep the
// first minimum in input-encounter order; this is a tie-break policy, not an
// optimality guarantee. O(n^2) in stop count, which is fine for the
// single-digit-to-low-tens routes a technician drives in a day.
func NearestNeighborOrder(stops []domain.Stop, origin *domain.Coordinate) []domain.Stop {
	if len(stops) <= 1 {
		out := make([]domain.Stop, len(stops))
		copy(out, stops)
		return out
	}

	current := stops[0].Coord
	if origin != nil {
		current = *origin
	}

	ordered := make([]domain.Stop, 0, len(stops))
	visited := make([]bool, len(stops))

	for len(ordered) < len(stops) {
		best := -1
		bestMiles := 0.0

		for i, s := range stops {
			if visited[i] {
				continue
			}
			d := spatial.MilesBetween(current, s.Coord)
			if best == -1 || d < bestMiles {
				best = i
				bestMiles = d
			}
		}

		visited[best] = true
		ordered = append(ordered, stops[best])
		current = stops[best].Coord
	}

	return ordered
}

// ComputeFallbackRoute orders the stops with the nearest-neighbor heuristic
// and projects metrics over the result. Used when no authoritative visiting
// order is available; the plan is tagged with fallback provenance.
func ComputeFallbackRoute(stops []domain.Stop, origin *domain.Coordinate) *domain.RoutePlan {
	ordered := NearestNeighborOrder(stops, origin)

	plan := CalculateRouteMetrics(ordered, Options{Origin: origin})
	plan.Source = domain.SourceFallback
	return plan
}
