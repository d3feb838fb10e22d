package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"field-route-service/internal/domain"
)

// SQL-backed implementation of the JobRepository port.
// The queries avoid driver-specific placeholders so the repository works
// against both the SQLite and Postgres schemas.
type SQLJobRepository struct{ DB *sql.DB }

func NewSQLJobRepository(db *sql.DB) *SQLJobRepository {
	return &SQLJobRepository{DB: db}
}

func (r *SQLJobRepository) ListJobs(ctx context.Context) ([]*domain.Job, error) {
	if r.DB == nil {
		return nil, errors.New("job repository: db is nil")
	}

	q := `
	SELECT job_id, customer, address, lat, lon, scheduled_at, status, priority
	FROM jobs
	ORDER BY job_id;
	`

	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list jobs: query jobs table: %w", err)
	}
	defer rows.Close()

	jobs := []*domain.Job{}
	for rows.Next() {
		var (
			j           domain.Job
			scheduledAt sql.NullString
		)
		if err := rows.Scan(&j.JobID, &j.Customer, &j.Address, &j.Lat, &j.Lon, &scheduledAt, &j.Status, &j.Priority); err != nil {
			return nil, fmt.Errorf("list jobs: scan rows: %w", err)
		}

		if scheduledAt.Valid && scheduledAt.String != "" {
			t, err := time.Parse(time.RFC3339, scheduledAt.String)
			if err != nil {
				return nil, fmt.Errorf("list jobs: job %q: parse scheduled_at %q: %w", j.JobID, scheduledAt.String, err)
			}
			j.ScheduledAt = &t
		}

		jobs = append(jobs, &j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list jobs: row iteration: %w", err)
	}

	return jobs, nil
}
