package cache

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"field-route-service/internal/domain"
	"field-route-service/internal/ports"
)

func newLegCacheDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
	CREATE TABLE leg_cache (
        leg_key TEXT PRIMARY KEY,
        distance_miles REAL NOT NULL,
        travel_minutes REAL NOT NULL
    );
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create leg_cache: %v", err)
	}

	return db
}

func TestSqliteLegCachePutAndGet(t *testing.T) {
	c := NewSqliteLegCache(newLegCacheDB(t))
	ctx := context.Background()

	a := domain.Coordinate{Lat: 39.7526, Lon: -105.0003}
	b := domain.Coordinate{Lat: 39.7986, Lon: -105.0875}
	keyAB := ports.LegKey(a, b)

	err := c.PutMany(ctx, map[string]ports.LegMetrics{
		keyAB: {DistanceMiles: 6.2, TravelMinutes: 13.5},
	})
	if err != nil {
		t.Fatalf("put many: %v", err)
	}

	got, err := c.GetMany(ctx, []string{keyAB, ports.LegKey(b, a)})
	if err != nil {
		t.Fatalf("get many: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(got))
	}
	m, ok := got[keyAB]
	if !ok {
		t.Fatalf("missing key %q", keyAB)
	}
	if m.DistanceMiles != 6.2 || m.TravelMinutes != 13.5 {
		t.Errorf("metrics = %+v, want {6.2 13.5}", m)
	}
}

func TestSqliteLegCacheReplacesExistingEntries(t *testing.T) {
	c := NewSqliteLegCache(newLegCacheDB(t))
	ctx := context.Background()

	a := domain.Coordinate{Lat: 0, Lon: 0}
	b := domain.Coordinate{Lat: 0, Lon: 1}
	key := ports.LegKey(a, b)

	if err := c.PutMany(ctx, map[string]ports.LegMetrics{key: {DistanceMiles: 1, TravelMinutes: 2}}); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if err := c.PutMany(ctx, map[string]ports.LegMetrics{key: {DistanceMiles: 3, TravelMinutes: 4}}); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, err := c.GetMany(ctx, []string{key})
	if err != nil {
		t.Fatalf("get many: %v", err)
	}
	if m := got[key]; m.DistanceMiles != 3 || m.TravelMinutes != 4 {
		t.Errorf("metrics = %+v, want replaced values {3 4}", m)
	}
}

func TestSqliteLegCacheEmptyKeyList(t *testing.T) {
	c := NewSqliteLegCache(newLegCacheDB(t))

	got, err := c.GetMany(context.Background(), nil)
	if err != nil {
		t.Fatalf("get many: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d entries", len(got))
	}
}
