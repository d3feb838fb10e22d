package ports

import (
	"context"

	"field-route-service/internal/domain"
)

// Road distance and travel time for one leg, as returned by a provider.
type LegMetrics struct {
	DistanceMiles float64
	TravelMinutes float64
}

// Contract for retrieving authoritative per-leg metrics from an external
// routing provider. Given an already ordered stop sequence (and an optional
// origin ahead of the first stop), implementations return overrides keyed by
// the stop whose incoming leg they describe. A stop absent from the result
// simply keeps its locally computed leg.
type SegmentProvider interface {
	LegOverrides(ctx context.Context, origin *domain.Coordinate, ordered []domain.Stop) (map[string]domain.SegmentOverride, error)
}

// Optional persistent cache of provider leg results, keyed by coordinate
// pair. Callers build keys with LegKey so all implementations agree.
type LegCache interface {
	GetMany(ctx context.Context, keys []string) (map[string]LegMetrics, error)
	PutMany(ctx context.Context, results map[string]LegMetrics) error
}

// LegKey returns the cache key for a directed leg between two coordinates.
func LegKey(from, to domain.Coordinate) string {
	return from.Key() + "|" + to.Key()
}
