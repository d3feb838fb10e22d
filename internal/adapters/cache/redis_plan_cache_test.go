package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"field-route-service/internal/domain"
)

func newTestPlanCache(t *testing.T) (*RedisPlanCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisPlanCache(client, time.Minute), mr
}

func TestRedisPlanCacheRoundTrip(t *testing.T) {
	c, _ := newTestPlanCache(t)
	ctx := context.Background()

	eta := time.Date(2025, 11, 1, 8, 12, 0, 0, time.UTC)
	plans := []*domain.RoutePlan{
		{
			Waypoints: []domain.RouteWaypoint{
				{
					Stop:          domain.Stop{ID: "JOB-1", Coord: domain.Coordinate{Lat: 39.75, Lon: -105.0}},
					Sequence:      1,
					DistanceMiles: 5,
					TravelMinutes: 12,
					ETA:           &eta,
				},
			},
			TotalDistanceMiles:   5,
			TotalDurationMinutes: 12,
			GeneratedAt:          time.Date(2025, 11, 1, 7, 59, 0, 0, time.UTC),
			Source:               domain.SourceFallback,
		},
	}

	if err := c.Put(ctx, "abc123", plans); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := c.Get(ctx, "abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected cache hit, got miss")
	}
	if len(got) != 1 || len(got[0].Waypoints) != 1 {
		t.Fatalf("unexpected shape: %+v", got)
	}

	wp := got[0].Waypoints[0]
	if wp.ID != "JOB-1" || wp.DistanceMiles != 5 || wp.TravelMinutes != 12 {
		t.Errorf("waypoint round-trip mismatch: %+v", wp)
	}
	if wp.ETA == nil || !wp.ETA.Equal(eta) {
		t.Errorf("ETA round-trip mismatch: %v", wp.ETA)
	}
	if got[0].Source != domain.SourceFallback {
		t.Errorf("source = %q, want %q", got[0].Source, domain.SourceFallback)
	}
}

func TestRedisPlanCacheMiss(t *testing.T) {
	c, _ := newTestPlanCache(t)

	got, err := c.Get(context.Background(), "nothing-here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected miss, got %+v", got)
	}
}

func TestRedisPlanCacheEntriesExpire(t *testing.T) {
	c, mr := newTestPlanCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "k", []*domain.RoutePlan{{Source: domain.SourceFallback}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected entry to expire, got %+v", got)
	}
}
