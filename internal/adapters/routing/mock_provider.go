package routing

import (
	"context"
	"fmt"

	"field-route-service/internal/domain"
	"field-route-service/internal/ports"
)

type MockLeg struct {
	From, To domain.Coordinate
	Miles    float64
	Minutes  float64
}

// MockSegmentProvider serves canned leg metrics from a fixed table.
type MockSegmentProvider struct {
	m map[string]ports.LegMetrics
}

func NewMockSegmentProvider(legs []MockLeg) *MockSegmentProvider {
	m := make(map[string]ports.LegMetrics, len(legs))
	for _, l := range legs {
		m[ports.LegKey(l.From, l.To)] = ports.LegMetrics{DistanceMiles: l.Miles, TravelMinutes: l.Minutes}
	}
	return &MockSegmentProvider{m: m}
}

func (p *MockSegmentProvider) LegOverrides(
	ctx context.Context,
	origin *domain.Coordinate,
	ordered []domain.Stop,
) (map[string]domain.SegmentOverride, error) {
	out := make(map[string]domain.SegmentOverride)
	for _, l := range consecutiveLegs(origin, ordered) {
		key := ports.LegKey(l.from, l.to)
		m, ok := p.m[key]
		if !ok {
			return nil, fmt.Errorf("missing leg %q", key)
		}

		miles := m.DistanceMiles
		minutes := m.TravelMinutes
		out[l.stopID] = domain.SegmentOverride{DistanceMiles: &miles, TravelMinutes: &minutes}
	}

	return out, nil
}
