package dto

import "time"

type CoordinateRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type DispatchRequest struct {
	Origin             *CoordinateRequest `json:"origin"`
	StartAt            *time.Time         `json:"start_at"`
	AverageSpeedMph    float64            `json:"average_speed_mph"`
	TechnicianCount    int                `json:"technician_count"`
	TechnicianCapacity int                `json:"technician_capacity"`
}

type StopRequest struct {
	ID          string     `json:"id"`
	Lat         float64    `json:"lat"`
	Lon         float64    `json:"lon"`
	Customer    string     `json:"customer"`
	Address     string     `json:"address"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
}

type OverrideRequest struct {
	DistanceMiles *float64   `json:"distance_miles"`
	TravelMinutes *float64   `json:"travel_minutes"`
	ETA           *time.Time `json:"eta"`
}

type MetricsRequest struct {
	Stops           []StopRequest              `json:"stops"`
	Origin          *CoordinateRequest         `json:"origin"`
	Overrides       map[string]OverrideRequest `json:"overrides"`
	StartAt         *time.Time                 `json:"start_at"`
	AverageSpeedMph float64                    `json:"average_speed_mph"`
}

type WaypointResponse struct {
	ID            string     `json:"id"`
	Sequence      int        `json:"sequence"`
	Lat           float64    `json:"lat"`
	Lon           float64    `json:"lon"`
	Customer      string     `json:"customer,omitempty"`
	Address       string     `json:"address,omitempty"`
	Status        string     `json:"status,omitempty"`
	Priority      string     `json:"priority,omitempty"`
	DistanceMiles float64    `json:"distance_miles"`
	TravelMinutes float64    `json:"travel_minutes"`
	ETA           *time.Time `json:"eta"`
}

type PlanResponse struct {
	Waypoints            []WaypointResponse `json:"waypoints"`
	TotalDistanceMiles   float64            `json:"total_distance_miles"`
	TotalDurationMinutes float64            `json:"total_duration_minutes"`
	GeneratedAt          time.Time          `json:"generated_at"`
	Source               string             `json:"source"`
}

type DispatchResponse struct {
	Plans []PlanResponse `json:"plans"`
}
