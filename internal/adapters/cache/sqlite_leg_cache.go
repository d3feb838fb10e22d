package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"field-route-service/internal/ports"
)

// SQLite-backed cache of provider leg results.
// Keys are expected to be built with ports.LegKey so all callers agree.
type SqliteLegCache struct {
	DB *sql.DB
}

func NewSqliteLegCache(db *sql.DB) *SqliteLegCache {
	return &SqliteLegCache{DB: db}
}

// Fetch cached metrics for the given leg keys.
func (s *SqliteLegCache) GetMany(
	ctx context.Context,
	keys []string,
) (map[string]ports.LegMetrics, error) {
	if s.DB == nil {
		return nil, errors.New("leg cache: db is nil")
	}

	if len(keys) == 0 {
		return map[string]ports.LegMetrics{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(keys))
	ph := make([]string, 0, len(keys))
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
		ph = append(ph, "?")
	}

	if len(uniq) == 0 {
		return map[string]ports.LegMetrics{}, nil
	}

	args := make([]any, 0, len(uniq))
	for _, k := range uniq {
		args = append(args, k)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT leg_key, distance_miles, travel_minutes
    FROM leg_cache
    WHERE leg_key IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
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
func (s *SqliteLegCache) PutMany(ctx context.Context, results map[string]ports.LegMetrics) error {
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
	INSERT OR REPLACE INTO leg_cache (leg_key, distance_miles, travel_minutes)
    VALUES (?, ?, ?)
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
