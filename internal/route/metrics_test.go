package route

import (
	"math"
	"testing"
	"time"

	"field-route-service/internal/domain"
)

func coord(lat, lon float64) domain.Coordinate {
	return domain.Coordinate{Lat: lat, Lon: lon}
}

func timePtr(t time.Time) *time.Time { return &t }

func float64Ptr(v float64) *float64 { return &v }

func TestCalculateRouteMetricsEmptyInput(t *testing.T) {
	plan := CalculateRouteMetrics(nil, Options{})

	if len(plan.Waypoints) != 0 {
		t.Fatalf("expected 0 waypoints, got %d", len(plan.Waypoints))
	}
	if plan.TotalDistanceMiles != 0 || plan.TotalDurationMinutes != 0 {
		t.Fatalf(
			"expected zero totals, got distance=%v duration=%v",
			plan.TotalDistanceMiles, plan.TotalDurationMinutes,
		)
	}
	if plan.Source != domain.SourceAuthoritative {
		t.Fatalf("source = %q, want %q", plan.Source, domain.SourceAuthoritative)
	}
	if plan.GeneratedAt.IsZero() {
		t.Fatal("expected a generation timestamp")
	}
}

func TestCalculateRouteMetricsPreservesInputOrder(t *testing.T) {
	// Input order is authoritative for the metrics entry point: stops come
	// back in the order given, with 1-based sequence numbers.
	stops := []domain.Stop{
		{ID: "C", Coord: coord(39.7117, -104.8136)},
		{ID: "A", Coord: coord(39.7526, -105.0003)},
		{ID: "B", Coord: coord(39.7986, -105.0875)},
	}

	plan := CalculateRouteMetrics(stops, Options{})

	if len(plan.Waypoints) != 3 {
		t.Fatalf("expected 3 waypoints, got %d", len(plan.Waypoints))
	}
	for i, want := range []string{"C", "A", "B"} {
		wp := plan.Waypoints[i]
		if wp.ID != want {
			t.Errorf("waypoint %d id = %q, want %q", i, wp.ID, want)
		}
		if wp.Sequence != i+1 {
			t.Errorf("waypoint %d sequence = %d, want %d", i, wp.Sequence, i+1)
		}
	}
}

func TestCalculateRouteMetricsOverrideScenario(t *testing.T) {
	start := time.Date(2025, 11, 1, 8, 0, 0, 0, time.UTC)

	stops := []domain.Stop{
		{ID: "JOB-1", Coord: coord(39.7526, -105.0003)},
		{ID: "JOB-2", Coord: coord(39.7986, -105.0875)},
		{ID: "JOB-3", Coord: coord(39.7117, -104.8136)},
	}

	overrides := map[string]domain.SegmentOverride{
		"JOB-1": {DistanceMiles: float64Ptr(5), TravelMinutes: float64Ptr(12)},
		"JOB-2": {DistanceMiles: float64Ptr(8), TravelMinutes: float64Ptr(18)},
		"JOB-3": {DistanceMiles: float64Ptr(7), TravelMinutes: float64Ptr(16)},
	}

	plan := CalculateRouteMetrics(stops, Options{
		Overrides: overrides,
		StartAt:   timePtr(start),
	})

	if plan.TotalDistanceMiles != 20 {
		t.Errorf("total distance = %v, want 20", plan.TotalDistanceMiles)
	}
	if plan.TotalDurationMinutes != 46 {
		t.Errorf("total duration = %v, want 46", plan.TotalDurationMinutes)
	}
	if plan.Source != domain.SourceAuthoritative {
		t.Errorf("source = %q, want %q", plan.Source, domain.SourceAuthoritative)
	}

	wantETAs := []time.Time{
		time.Date(2025, 11, 1, 8, 12, 0, 0, time.UTC),
		time.Date(2025, 11, 1, 8, 30, 0, 0, time.UTC),
		time.Date(2025, 11, 1, 8, 46, 0, 0, time.UTC),
	}
	for i, want := range wantETAs {
		wp := plan.Waypoints[i]
		if wp.ETA == nil {
			t.Fatalf("waypoint %d ETA is nil", i)
		}
		if !wp.ETA.Equal(want) {
			t.Errorf("waypoint %d ETA = %v, want %v", i, *wp.ETA, want)
		}
	}
}

func TestCalculateRouteMetricsPartialOverride(t *testing.T) {
	// An override supplying distance and minutes but no ETA must use the
	// override's numbers verbatim while the ETA still comes from advancing
	// the running clock by the override's travel minutes.
	start := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)

	stops := []domain.Stop{
		{ID: "X", Coord: coord(39.75, -105.0)},
	}
	overrides := map[string]domain.SegmentOverride{
		"X": {DistanceMiles: float64Ptr(12.5), TravelMinutes: float64Ptr(21)},
	}

	plan := CalculateRouteMetrics(stops, Options{Overrides: overrides, StartAt: timePtr(start)})

	wp := plan.Waypoints[0]
	if wp.DistanceMiles != 12.5 {
		t.Errorf("distance = %v, want 12.5", wp.DistanceMiles)
	}
	if wp.TravelMinutes != 21 {
		t.Errorf("minutes = %v, want 21", wp.TravelMinutes)
	}
	if wp.ETA == nil || !wp.ETA.Equal(start.Add(21*time.Minute)) {
		t.Errorf("ETA = %v, want %v", wp.ETA, start.Add(21*time.Minute))
	}
}

func TestCalculateRouteMetricsExplicitETAOverride(t *testing.T) {
	// An explicit override ETA replaces the projected arrival for that stop,
	// but the running clock still advances by the effective travel minutes
	// so later stops project from it.
	start := time.Date(2025, 11, 1, 8, 0, 0, 0, time.UTC)
	fixed := time.Date(2025, 11, 1, 9, 30, 0, 0, time.UTC)

	stops := []domain.Stop{
		{ID: "A", Coord: coord(0, 0)},
		{ID: "B", Coord: coord(0, 0)},
	}
	overrides := map[string]domain.SegmentOverride{
		"A": {TravelMinutes: float64Ptr(10), ETA: timePtr(fixed)},
		"B": {TravelMinutes: float64Ptr(5)},
	}

	plan := CalculateRouteMetrics(stops, Options{Overrides: overrides, StartAt: timePtr(start)})

	if !plan.Waypoints[0].ETA.Equal(fixed) {
		t.Errorf("stop A ETA = %v, want %v", plan.Waypoints[0].ETA, fixed)
	}
	if want := start.Add(15 * time.Minute); !plan.Waypoints[1].ETA.Equal(want) {
		t.Errorf("stop B ETA = %v, want %v", plan.Waypoints[1].ETA, want)
	}
}

func TestCalculateRouteMetricsNoTimeBasis(t *testing.T) {
	stops := []domain.Stop{
		{ID: "A", Coord: coord(39.75, -105.0)},
		{ID: "B", Coord: coord(39.80, -105.08)},
	}

	plan := CalculateRouteMetrics(stops, Options{})

	for i, wp := range plan.Waypoints {
		if wp.ETA != nil {
			t.Errorf("waypoint %d ETA = %v, want nil (no time basis)", i, *wp.ETA)
		}
	}
}

func TestCalculateRouteMetricsScheduledTimeBasis(t *testing.T) {
	// Without an explicit start the earliest scheduled time across the
	// stops becomes the time basis, regardless of stop order.
	early := time.Date(2025, 11, 1, 7, 30, 0, 0, time.UTC)
	late := time.Date(2025, 11, 1, 13, 0, 0, 0, time.UTC)

	stops := []domain.Stop{
		{ID: "A", Coord: coord(0, 0), ScheduledAt: timePtr(late)},
		{ID: "B", Coord: coord(0, 0), ScheduledAt: timePtr(early)},
	}
	overrides := map[string]domain.SegmentOverride{
		"A": {TravelMinutes: float64Ptr(0)},
		"B": {TravelMinutes: float64Ptr(20)},
	}

	plan := CalculateRouteMetrics(stops, Options{Overrides: overrides})

	if !plan.Waypoints[0].ETA.Equal(early) {
		t.Errorf("stop A ETA = %v, want %v", plan.Waypoints[0].ETA, early)
	}
	if want := early.Add(20 * time.Minute); !plan.Waypoints[1].ETA.Equal(want) {
		t.Errorf("stop B ETA = %v, want %v", plan.Waypoints[1].ETA, want)
	}
}

func TestCalculateRouteMetricsDefaultSpeedDerivation(t *testing.T) {
	// 35 miles at the default 35 mph is exactly one hour.
	stops := []domain.Stop{{ID: "A", Coord: coord(0, 0)}}
	overrides := map[string]domain.SegmentOverride{
		"A": {DistanceMiles: float64Ptr(35)},
	}

	plan := CalculateRouteMetrics(stops, Options{Overrides: overrides})

	if plan.Waypoints[0].TravelMinutes != 60 {
		t.Errorf("minutes = %v, want 60", plan.Waypoints[0].TravelMinutes)
	}
}

func TestCalculateRouteMetricsNonFiniteCoercion(t *testing.T) {
	// Malformed coordinates silently degrade: the NaN leg rounds to 0 and
	// the poisoned totals round to 0 rather than failing the plan.
	stops := []domain.Stop{
		{ID: "A", Coord: coord(math.NaN(), math.NaN())},
		{ID: "B", Coord: coord(39.75, -105.0)},
	}

	plan := CalculateRouteMetrics(stops, Options{})

	for i, wp := range plan.Waypoints {
		if math.IsNaN(wp.DistanceMiles) || math.IsNaN(wp.TravelMinutes) {
			t.Errorf("waypoint %d carries NaN metrics", i)
		}
	}
	if plan.TotalDistanceMiles != 0 {
		t.Errorf("total distance = %v, want 0 after coercion", plan.TotalDistanceMiles)
	}
	if plan.TotalDurationMinutes != 0 {
		t.Errorf("total duration = %v, want 0 after coercion", plan.TotalDurationMinutes)
	}
}

func TestCalculateRouteMetricsTotalsRoundIndependently(t *testing.T) {
	// Totals sum the unrounded effective legs and round once: two legs of
	// 1.004 miles display as 1.00 each but total 2.01, not 2.00.
	stops := []domain.Stop{
		{ID: "A", Coord: coord(0, 0)},
		{ID: "B", Coord: coord(0, 0)},
	}
	overrides := map[string]domain.SegmentOverride{
		"A": {DistanceMiles: float64Ptr(1.004)},
		"B": {DistanceMiles: float64Ptr(1.004)},
	}

	plan := CalculateRouteMetrics(stops, Options{Overrides: overrides})

	if plan.Waypoints[0].DistanceMiles != 1.0 || plan.Waypoints[1].DistanceMiles != 1.0 {
		t.Errorf(
			"per-leg distances = %v, %v, want 1.0 each",
			plan.Waypoints[0].DistanceMiles, plan.Waypoints[1].DistanceMiles,
		)
	}
	if plan.TotalDistanceMiles != 2.01 {
		t.Errorf("total distance = %v, want 2.01", plan.TotalDistanceMiles)
	}
}
