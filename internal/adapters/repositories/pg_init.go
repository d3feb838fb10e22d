package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema.
func InitPgSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init pg schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init pg schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createJobsQuery := `
	CREATE TABLE IF NOT EXISTS jobs (
		job_id TEXT PRIMARY KEY,
		customer TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		scheduled_at TEXT,
		status TEXT NOT NULL DEFAULT '',
		priority TEXT NOT NULL DEFAULT ''
	);
	`

	createLegCacheQuery := `
	CREATE TABLE IF NOT EXISTS leg_cache (
        leg_key TEXT PRIMARY KEY,
        distance_miles DOUBLE PRECISION NOT NULL,
        travel_minutes DOUBLE PRECISION NOT NULL
    );
	`

	statements := []string{
		createJobsQuery,
		createLegCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init pg schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init pg schema: commit tx: %w", err)
	}

	return nil
}

// Populate the Postgres database with job data from a JSON file.
func SeedPgFromJSON(db *sql.DB, jsonPath string) error {
	rows, err := loadSeeds(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed jobs: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO jobs (
		job_id, customer, address, lat, lon, scheduled_at, status, priority
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (job_id) DO UPDATE
	SET customer = EXCLUDED.customer,
		address = EXCLUDED.address,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		scheduled_at = EXCLUDED.scheduled_at,
		status = EXCLUDED.status,
		priority = EXCLUDED.priority;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed jobs: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, j := range rows {
		if _, err := stmt.Exec(j.JobID, j.Customer, j.Address, j.Lat, j.Lon, j.ScheduledAt, j.Status, j.Priority); err != nil {
			return fmt.Errorf("seed jobs: insert job_id=%q: %w", j.JobID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed jobs: commit tx: %w", err)
	}

	return nil
}
