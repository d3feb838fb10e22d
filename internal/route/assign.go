package route

import (
	"errors"
	"fmt"
	"slices"

	"field-route-service/internal/domain"
	"field-route-service/internal/spatial"
)

// AssignStopsByDistance distributes stops across technicians using a simple
// heuristic.
//
// Stops are sorted by distance from the dispatch origin and chunked across
// technicians so each receives a contiguous band, producing a deterministic,
// reasonably balanced distribution without solving a full VRP.
func AssignStopsByDistance(
	technicians []*domain.Technician,
	stops []domain.Stop,
	origin domain.Coordinate,
) error {
	if len(technicians) == 0 {
		return errors.New("assign stops: technician list must not be empty")
	}

	sorted := make([]domain.Stop, len(stops))
	copy(sorted, stops)

	// Sort by origin distance so each technician receives a contiguous "band".
	slices.SortFunc(sorted, func(a, b domain.Stop) int {
		da := spatial.MilesBetween(origin, a.Coord)
		db := spatial.MilesBetween(origin, b.Coord)
		if da < db {
			return -1
		}
		if da > db {
			return 1
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	nTechs := len(technicians)
	nStops := len(sorted)

	// Ceiling division: distribute stops as evenly as possible.
	chunkSize := (nStops + nTechs - 1) / nTechs

	for ti := 0; ti < nTechs; ti++ {
		start := ti * chunkSize
		if start >= nStops {
			break
		}

		end := start + chunkSize
		if end > nStops {
			end = nStops
		}

		// If capacity is exceeded, assignment fails fast rather than rebalancing.
		for _, s := range sorted[start:end] {
			if err := technicians[ti].Assign(s); err != nil {
				return fmt.Errorf("assign stops: technician %d: %w", technicians[ti].TechnicianID, err)
			}
		}
	}

	return nil
}
