package dto

import "time"

type JobResponse struct {
	JobID       string     `json:"job_id"`
	Customer    string     `json:"customer"`
	Address     string     `json:"address"`
	Lat         float64    `json:"lat"`
	Lon         float64    `json:"lon"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
}

type ListJobsResponse struct {
	Jobs []JobResponse `json:"jobs"`
}
