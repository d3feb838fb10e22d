package route

import (
	"math"
	"time"

	"field-route-service/internal/domain"
	"field-route-service/internal/spatial"
)

// Options for a metrics projection over an already ordered stop sequence.
type Options struct {
	// Routing start point. When nil the first stop's own coordinate acts as
	// the implicit origin, making the first leg zero-length: without an
	// origin the first leg does not represent real travel.
	Origin *domain.Coordinate

	// Authoritative per-leg values keyed by stop ID. Supplied fields replace
	// the locally computed leg values; omitted fields fall back.
	Overrides map[string]domain.SegmentOverride

	// Explicit time basis for ETA projection. When nil the earliest
	// scheduled time across the stops is used; when no stop carries one,
	// all ETAs are nil.
	StartAt *time.Time

	// Assumed speed for deriving travel time from distance.
	// Values <= 0 (or non-finite) fall back to DefaultAverageSpeedMph.
	AverageSpeedMph float64
}

// CalculateRouteMetrics walks an ordered stop sequence and projects per-leg
// distance, travel time and ETA, reconciling each leg against any supplied
// override. The computation is pure: it never fails, never mutates its
// inputs, and degrades numerically (non-finite values round to 0) rather
// than rejecting malformed coordinates. The returned plan carries the
// authoritative provenance tag; fallback entry points retag it.
func CalculateRouteMetrics(stops []domain.Stop, opts Options) *domain.RoutePlan {
	if len(stops) == 0 {
		return &domain.RoutePlan{
			Waypoints:            []domain.RouteWaypoint{},
			TotalDistanceMiles:   0,
			TotalDurationMinutes: 0,
			GeneratedAt:          time.Now().UTC(),
			Source:               domain.SourceAuthoritative,
		}
	}

	speed := opts.AverageSpeedMph
	if !(speed > 0) || math.IsInf(speed, 1) {
		speed = domain.DefaultAverageSpeedMph
	}

	clock, hasClock := startTime(stops, opts.StartAt)

	current := stops[0].Coord
	if opts.Origin != nil {
		current = *opts.Origin
	}

	waypoints := make([]domain.RouteWaypoint, 0, len(stops))
	totalMiles := 0.0
	totalMinutes := 0.0

	for i, stop := range stops {
		fallbackMiles := spatial.MilesBetween(current, stop.Coord)

		override, hasOverride := opts.Overrides[stop.ID]

		miles := fallbackMiles
		if hasOverride && override.DistanceMiles != nil {
			miles = *override.DistanceMiles
		}

		minutes := (miles / speed) * 60
		if hasOverride && override.TravelMinutes != nil {
			minutes = *override.TravelMinutes
		}

		var eta *time.Time
		if hasClock {
			// The clock only ever advances by finite amounts; a degenerate
			// leg contributes zero travel rather than corrupting the basis.
			clock = clock.Add(time.Duration(finiteOrZero(minutes) * float64(time.Minute)))
			arrival := clock
			eta = &arrival
		}
		if hasOverride && override.ETA != nil {
			etaCopy := *override.ETA
			eta = &etaCopy
		}

		waypoints = append(waypoints, domain.RouteWaypoint{
			Stop:          stop,
			Sequence:      i + 1,
			DistanceMiles: round2(miles),
			TravelMinutes: round2(minutes),
			ETA:           eta,
		})

		totalMiles += miles
		totalMinutes += minutes
		current = stop.Coord
	}

	return &domain.RoutePlan{
		Waypoints: waypoints,
		// Totals sum the unrounded effective legs and round independently;
		// they are not the sum of the displayed per-leg values.
		TotalDistanceMiles:   round2(totalMiles),
		TotalDurationMinutes: round2(totalMinutes),
		GeneratedAt:          time.Now().UTC(),
		Source:               domain.SourceAuthoritative,
	}
}

// startTime resolves the ETA time basis: an explicit start if given,
// otherwise the earliest scheduled time across the stops.
func startTime(stops []domain.Stop, explicit *time.Time) (time.Time, bool) {
	if explicit != nil {
		return *explicit, true
	}

	var earliest time.Time
	found := false
	for _, s := range stops {
		if s.ScheduledAt == nil || s.ScheduledAt.IsZero() {
			continue
		}
		if !found || s.ScheduledAt.Before(earliest) {
			earliest = *s.ScheduledAt
			found = true
		}
	}

	return earliest, found
}

// round2 rounds half-up to two decimal places.
// Non-finite values are coerced to 0 before rounding so a degenerate leg
// yields a degenerate-but-valid plan instead of NaN output.
func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Floor(v*100+0.5) / 100
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
