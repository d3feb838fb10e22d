package domain

import "time"

// Represents a persisted field-service job: one customer visit a technician
// must make on a given day. Jobs are the storage-side source of route stops.
type Job struct {
	JobID       string
	Customer    string
	Address     string
	Lat         float64
	Lon         float64
	ScheduledAt *time.Time
	Status      string
	Priority    string
}

// ToStop converts a job record into a routable stop.
// Display metadata is carried through unchanged for the caller's benefit.
func (j *Job) ToStop() Stop {
	return Stop{
		ID:          j.JobID,
		Coord:       Coordinate{Lat: j.Lat, Lon: j.Lon},
		Customer:    j.Customer,
		Address:     j.Address,
		ScheduledAt: j.ScheduledAt,
		Status:      j.Status,
		Priority:    j.Priority,
	}
}
