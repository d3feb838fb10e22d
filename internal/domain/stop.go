package domain

import "time"

// Represents a single visit to route to. Stops are input data: the sequencer
// never mutates them and only interprets ID, Coord and ScheduledAt (the
// latter solely to infer a default start time). Everything else is display
// metadata carried through unchanged.
type Stop struct {
	ID          string
	Coord       Coordinate
	Customer    string
	Address     string
	ScheduledAt *time.Time
	Status      string
	Priority    string
}

// Externally computed authoritative values for one stop's incoming leg,
// e.g. from a live routing provider. A nil field means "no override for
// that value, fall back to local computation"; there is no distinction
// between an absent entry and an entry with all fields nil.
type SegmentOverride struct {
	DistanceMiles *float64
	TravelMinutes *float64
	ETA           *time.Time
}
