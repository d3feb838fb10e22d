package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"field-route-service/internal/domain"
	"field-route-service/internal/ports"
)

// Meters to statute miles.
const milesPerMeter = 0.000621371

type matrixRequest struct {
	Locations [][]float64 `json:"locations"`
	Metrics   []string    `json:"metrics"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// fetchLegMetrics retrieves distance and duration for the given legs using
// the OpenRouteService matrix endpoint. The legs' coordinates are collapsed
// into one unique location list and fetched as a single full matrix, then
// the needed cells are extracted; one request covers all cache misses.
func (o *ORSSegmentProvider) fetchLegMetrics(
	ctx context.Context,
	legs []leg,
) (map[string]ports.LegMetrics, error) {
	if len(legs) == 0 {
		return map[string]ports.LegMetrics{}, nil
	}

	index := make(map[string]int)
	locations := make([][]float64, 0, 2*len(legs))

	locate := func(c domain.Coordinate) int {
		k := c.Key()
		if i, ok := index[k]; ok {
			return i
		}
		i := len(locations)
		index[k] = i
		locations = append(locations, c.LonLat())
		return i
	}

	type cell struct{ row, col int }
	cells := make(map[string]cell, len(legs))
	for _, l := range legs {
		cells[ports.LegKey(l.from, l.to)] = cell{row: locate(l.from), col: locate(l.to)}
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)

	bodyObj := matrixRequest{
		Locations: locations,
		Metrics:   []string{"distance", "duration"},
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.sendWithRetry(ctx, func() (*http.Request, error) {
		body := bytes.NewReader(payload)
		return o.newRequest(ctx, http.MethodPost, endpoint, body)
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Distances) != len(locations) || len(mr.Durations) != len(locations) {
		return nil, fmt.Errorf(
			"matrix dimensions do not match locations: distances=%d durations=%d locations=%d",
			len(mr.Distances), len(mr.Durations), len(locations),
		)
	}

	out := make(map[string]ports.LegMetrics, len(legs))
	for key, c := range cells {
		if len(mr.Distances[c.row]) != len(locations) || len(mr.Durations[c.row]) != len(locations) {
			return nil, fmt.Errorf("matrix row %d has unexpected length", c.row)
		}

		metersPtr := mr.Distances[c.row][c.col]
		secondsPtr := mr.Durations[c.row][c.col]

		if metersPtr == nil || secondsPtr == nil {
			return nil, fmt.Errorf("matrix returned invalid metrics for leg %q", key)
		}

		out[key] = ports.LegMetrics{
			DistanceMiles: *metersPtr * milesPerMeter,
			TravelMinutes: *secondsPtr / 60,
		}
	}

	return out, nil
}
