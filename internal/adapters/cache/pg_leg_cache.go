package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"field-route-service/internal/platform/obs"
	"field-route-service/internal/ports"
)

// Postgres-backed cache of provider leg results.
type PgLegCache struct {
	DB *sql.DB
}

func NewPgLegCache(db *sql.DB) *PgLegCache {
	return &PgLegCache{DB: db}
}

// Fetch cached metrics for the given leg keys.
func (s *PgLegCache) GetMany(
	ctx context.Context,
	keys []string,
) (_ map[string]ports.LegMetrics, err error) {
	defer obs.Time(ctx, "leg.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("leg cache: db is nil")
	}

	if len(keys) == 0 {
		return map[string]ports.LegMetrics{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}

		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
	}

	if len(uniq) == 0 {
		return map[string]ports.LegMetrics{}, nil
	}

	q := `
	SELECT leg_key, distance_miles, travel_minutes
    FROM leg_cache
    WHERE leg_key = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get leg cache: query leg_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ports.LegMetrics, len(uniq))
	for rows.Next() {
		var key string
		var miles, minutes float64
		if err := rows.Scan(&key, &miles, &minutes); err != nil {
			return nil, fmt.Errorf("get leg cache: scan rows: %w", err)
		}
		out[key] = ports.LegMetrics{
			DistanceMiles: miles,
			TravelMinutes: minutes,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get leg cache: row iteration: %w", err)
	}

	return out, nil
}

// Store metrics for many legs.
func (s *PgLegCache) PutMany(ctx context.Context, results map[string]ports.LegMetrics) error {
	if s.DB == nil {
		return errors.New("leg cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert leg cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO leg_cache (leg_key, distance_miles, travel_minutes)
    VALUES ($1, $2, $3)
	ON CONFLICT (leg_key) DO UPDATE
	SET distance_miles = EXCLUDED.distance_miles,
		travel_minutes = EXCLUDED.travel_minutes;
	`)
	if err != nil {
		return fmt.Errorf("insert leg cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for key, m := range results {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("insert leg cache: empty leg key")
		}

		if _, err := stmt.ExecContext(ctx, key, m.DistanceMiles, m.TravelMinutes); err != nil {
			return fmt.Errorf("insert leg cache key=%q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert leg cache commit: %w", err)
	}

	return nil
}
