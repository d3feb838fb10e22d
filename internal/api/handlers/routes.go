package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"field-route-service/internal/api/dto"
	"field-route-service/internal/domain"
	"field-route-service/internal/ports"
	"field-route-service/internal/route"
)

type RouteHandler struct {
	Repo      ports.JobRepository
	Provider  ports.SegmentProvider
	PlanCache ports.PlanCache
}

// Dispatch plans routes over the stored jobs: stops are distributed across
// technicians and ordered by the fallback nearest-neighbor heuristic, with
// leg metrics reconciled against the configured routing provider when one
// is wired. Results are cached by request fingerprint when a plan cache is
// available; cache failures degrade to recomputation.
func (h *RouteHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.DispatchRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	techCount := req.TechnicianCount
	if techCount == 0 {
		techCount = 1
	}
	if techCount < 1 || techCount > 10 {
		writeError(w, r, http.StatusBadRequest, "technician_count must be between 1 and 10")
		return
	}

	techCap := req.TechnicianCapacity
	if techCap == 0 {
		techCap = 25
	}
	if techCap < 1 || techCap > 100 {
		writeError(w, r, http.StatusBadRequest, "technician_capacity must be between 1 and 100")
		return
	}

	cacheKey := fingerprint(req)
	if h.PlanCache != nil {
		cached, err := h.PlanCache.Get(r.Context(), cacheKey)
		if err != nil {
			log.Printf("plan cache read failed: %v", err)
		} else if cached != nil {
			writeJSON(w, r, http.StatusOK, toDispatchResponse(cached))
			return
		}
	}

	svcReq := route.DispatchRequest{
		TechnicianCount:    techCount,
		TechnicianCapacity: techCap,
		StartAt:            req.StartAt,
		AverageSpeedMph:    req.AverageSpeedMph,
	}
	if req.Origin != nil {
		svcReq.Origin = &domain.Coordinate{Lat: req.Origin.Lat, Lon: req.Origin.Lon}
	}

	plans, err := route.PlanDispatch(r.Context(), svcReq, h.Repo, h.Provider)
	if err != nil {
		log.Printf("plan dispatch failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if h.PlanCache != nil {
		if err := h.PlanCache.Put(r.Context(), cacheKey, plans); err != nil {
			log.Printf("plan cache write failed: %v", err)
		}
	}

	writeJSON(w, r, http.StatusOK, toDispatchResponse(plans))
}

// Metrics projects distance, travel time and ETA over an explicitly ordered
// stop list with inline overrides. The ordering is taken as authoritative;
// no reordering happens here.
func (h *RouteHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.MetricsRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	stops := make([]domain.Stop, 0, len(req.Stops))
	for i, s := range req.Stops {
		if strings.TrimSpace(s.ID) == "" {
			log.Printf("metrics request rejected: stop at index %d has empty id", i)
			writeError(w, r, http.StatusBadRequest, "every stop requires a non-empty id")
			return
		}

		stops = append(stops, domain.Stop{
			ID:          s.ID,
			Coord:       domain.Coordinate{Lat: s.Lat, Lon: s.Lon},
			Customer:    s.Customer,
			Address:     s.Address,
			ScheduledAt: s.ScheduledAt,
			Status:      s.Status,
			Priority:    s.Priority,
		})
	}

	var overrides map[string]domain.SegmentOverride
	if len(req.Overrides) > 0 {
		overrides = make(map[string]domain.SegmentOverride, len(req.Overrides))
		for id, o := range req.Overrides {
			overrides[id] = domain.SegmentOverride{
				DistanceMiles: o.DistanceMiles,
				TravelMinutes: o.TravelMinutes,
				ETA:           o.ETA,
			}
		}
	}

	opts := route.Options{
		Overrides:       overrides,
		StartAt:         req.StartAt,
		AverageSpeedMph: req.AverageSpeedMph,
	}
	if req.Origin != nil {
		opts.Origin = &domain.Coordinate{Lat: req.Origin.Lat, Lon: req.Origin.Lon}
	}

	plan := route.CalculateRouteMetrics(stops, opts)

	writeJSON(w, r, http.StatusOK, toPlanResponse(plan))
}

// decodeStrict decodes a single JSON object, rejecting unknown fields and
// trailing content. Returns false after writing the error response.
func decodeStrict(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}

	return true
}

// fingerprint derives a stable cache key from the request body.
func fingerprint(req dto.DispatchRequest) string {
	b, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func toPlanResponse(p *domain.RoutePlan) dto.PlanResponse {
	waypoints := make([]dto.WaypointResponse, 0, len(p.Waypoints))
	for _, wp := range p.Waypoints {
		waypoints = append(waypoints, dto.WaypointResponse{
			ID:            wp.ID,
			Sequence:      wp.Sequence,
			Lat:           wp.Coord.Lat,
			Lon:           wp.Coord.Lon,
			Customer:      wp.Customer,
			Address:       wp.Address,
			Status:        wp.Status,
			Priority:      wp.Priority,
			DistanceMiles: wp.DistanceMiles,
			TravelMinutes: wp.TravelMinutes,
			ETA:           wp.ETA,
		})
	}

	return dto.PlanResponse{
		Waypoints:            waypoints,
		TotalDistanceMiles:   p.TotalDistanceMiles,
		TotalDurationMinutes: p.TotalDurationMinutes,
		GeneratedAt:          p.GeneratedAt,
		Source:               p.Source,
	}
}

func toDispatchResponse(plans []*domain.RoutePlan) dto.DispatchResponse {
	res := dto.DispatchResponse{Plans: make([]dto.PlanResponse, 0, len(plans))}
	for _, p := range plans {
		res.Plans = append(res.Plans, toPlanResponse(p))
	}
	return res
}
