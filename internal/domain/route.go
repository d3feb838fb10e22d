package domain

import "time"

// Provenance tags recorded on a RoutePlan.
//
// SourceAuthoritative marks plans whose visiting order was supplied by the
// caller (typically relayed from the upstream dispatch brain); SourceFallback
// marks plans ordered locally by the nearest-neighbor heuristic. The tag is
// a provenance flag, not a behavioral switch.
const (
	SourceAuthoritative = "brainops"
	SourceFallback      = "fallback"
)

// Assumed driving speed used to derive travel time from distance when no
// authoritative travel time is available.
const DefaultAverageSpeedMph = 35.0

// A routed stop: the input stop plus its computed position and leg metrics.
// DistanceMiles and TravelMinutes describe the leg arriving at this stop and
// are rounded to two decimals. ETA is nil when no time basis exists.
type RouteWaypoint struct {
	Stop
	Sequence      int
	DistanceMiles float64
	TravelMinutes float64
	ETA           *time.Time
}

// The planned visiting order for one route, with per-stop leg metrics and
// aggregate totals. A RoutePlan is immutable planning data: it is produced
// by the sequencer and contains no side effects and no persistence.
type RoutePlan struct {
	Waypoints            []RouteWaypoint
	TotalDistanceMiles   float64
	TotalDurationMinutes float64
	GeneratedAt          time.Time
	Source               string
}
