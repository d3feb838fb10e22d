package handlers

import (
	"log"
	"net/http"

	"field-route-service/internal/api/dto"
	"field-route-service/internal/ports"
)

// JobHandler exposes read-only job retrieval endpoints.
type JobHandler struct {
	Repo ports.JobRepository
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	jobs, err := h.Repo.ListJobs(r.Context())
	if err != nil {
		log.Printf("list jobs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListJobsResponse{
		Jobs: make([]dto.JobResponse, 0, len(jobs)),
	}
	for _, j := range jobs {
		res.Jobs = append(res.Jobs, dto.JobResponse{
			JobID:       j.JobID,
			Customer:    j.Customer,
			Address:     j.Address,
			Lat:         j.Lat,
			Lon:         j.Lon,
			ScheduledAt: j.ScheduledAt,
			Status:      j.Status,
			Priority:    j.Priority,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
