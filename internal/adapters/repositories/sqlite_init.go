package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createJobsQuery := `
	CREATE TABLE IF NOT EXISTS jobs (
		job_id TEXT PRIMARY KEY,
		customer TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		scheduled_at TEXT,
		status TEXT NOT NULL DEFAULT '',
		priority TEXT NOT NULL DEFAULT ''
	);
	`

	createLegCacheQuery := `
	CREATE TABLE IF NOT EXISTS leg_cache (
        leg_key TEXT PRIMARY KEY,
        distance_miles REAL NOT NULL,
        travel_minutes REAL NOT NULL
    );
	`

	statements := []string{
		createJobsQuery,
		createLegCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type JobSeed struct {
	JobID       string  `json:"job_id"`
	Customer    string  `json:"customer"`
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	ScheduledAt string  `json:"scheduled_at"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
}

// Populate the SQLite database with job data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
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
	INSERT OR REPLACE INTO jobs (
		job_id, customer, address, lat, lon, scheduled_at, status, priority
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
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

func loadSeeds(jsonPath string) ([]JobSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed jobs: read %q: %w", jsonPath, err)
	}

	var data []JobSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed jobs: parse json: %w", err)
	}

	rows := make([]JobSeed, 0, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.JobID)
		if id == "" {
			return nil, fmt.Errorf("seed jobs: item at index %d: job_id cannot be empty", i+1)
		}
		item.JobID = id
		rows = append(rows, item)
	}

	return rows, nil
}
