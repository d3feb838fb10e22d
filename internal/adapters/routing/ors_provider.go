package routing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"field-route-service/internal/domain"
	"field-route-service/internal/platform/obs"
	"field-route-service/internal/ports"
)

// ORSSegmentProvider implements SegmentProvider using OpenRouteService.
//
// It coordinates:
//   - Persistent leg caching keyed by coordinate pair
//   - External matrix API calls with retry/backoff
//   - Meters/seconds to miles/minutes conversion at the boundary
//
// The provider is safe for concurrent use.
type ORSSegmentProvider struct {
	session     *http.Client
	apiKey      string
	baseURL     string
	profile     string
	legCache    ports.LegCache
	maxAttempts int
	baseBackoff time.Duration
}

func NewORSSegmentProvider(apiKey string, legCache ports.LegCache) (*ORSSegmentProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSSegmentProvider{
		session:     &http.Client{Timeout: 10 * time.Second},
		apiKey:      apiKey,
		baseURL:     "https://api.openrouteservice.org",
		profile:     "driving-car",
		legCache:    legCache,
		maxAttempts: 4,
		baseBackoff: 200 * time.Millisecond,
	}

	return provider, nil
}

type leg struct {
	from   domain.Coordinate
	to     domain.Coordinate
	stopID string
}

// LegOverrides returns authoritative road metrics for each consecutive leg
// of the ordered stop sequence, keyed by the stop the leg arrives at.
// Without an origin the first stop has no incoming leg and receives no
// override, matching the sequencer's zero-length first leg.
func (o *ORSSegmentProvider) LegOverrides(
	ctx context.Context,
	origin *domain.Coordinate,
	ordered []domain.Stop,
) (_ map[string]domain.SegmentOverride, err error) {
	defer obs.Time(ctx, "ors.LegOverrides")(&err)

	legs := consecutiveLegs(origin, ordered)
	if len(legs) == 0 {
		return map[string]domain.SegmentOverride{}, nil
	}

	keys := make([]string, 0, len(legs))
	for _, l := range legs {
		keys = append(keys, ports.LegKey(l.from, l.to))
	}

	hits := make(map[string]ports.LegMetrics)
	// Check the persistent leg cache before issuing external API calls.
	if o.legCache != nil {
		var err error
		hits, err = o.legCache.GetMany(ctx, keys)
		if err != nil {
			return nil, fmt.Errorf("ORS leg cache read: %w", err)
		}
	}

	misses := make([]leg, 0, len(legs))
	for _, l := range legs {
		if _, ok := hits[ports.LegKey(l.from, l.to)]; !ok {
			misses = append(misses, l)
		}
	}

	fetched := make(map[string]ports.LegMetrics)
	if len(misses) > 0 {
		fetched, err = o.fetchLegMetrics(ctx, misses)
		if err != nil {
			return nil, fmt.Errorf("fetching leg metrics: %w", err)
		}

		if o.legCache != nil {
			if err := o.legCache.PutMany(ctx, fetched); err != nil {
				log.Printf("leg cache write failed: %v", err)
			}
		}
	}

	out := make(map[string]domain.SegmentOverride, len(legs))
	for _, l := range legs {
		key := ports.LegKey(l.from, l.to)

		m, ok := hits[key]
		if !ok {
			m, ok = fetched[key]
		}
		if !ok {
			return nil, fmt.Errorf("ORS matrix did not return leg %q", key)
		}

		miles := m.DistanceMiles
		minutes := m.TravelMinutes
		out[l.stopID] = domain.SegmentOverride{
			DistanceMiles: &miles,
			TravelMinutes: &minutes,
		}
	}

	return out, nil
}

func consecutiveLegs(origin *domain.Coordinate, ordered []domain.Stop) []leg {
	legs := make([]leg, 0, len(ordered))

	if origin != nil && len(ordered) > 0 {
		legs = append(legs, leg{from: *origin, to: ordered[0].Coord, stopID: ordered[0].ID})
	}

	for i := 1; i < len(ordered); i++ {
		legs = append(legs, leg{
			from:   ordered[i-1].Coord,
			to:     ordered[i].Coord,
			stopID: ordered[i].ID,
		})
	}

	return legs
}
