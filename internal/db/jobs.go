package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/riaz37/job-finder-sub001/internal/model"
)

const jobColumns = `id, title, company, location, description, url, salary_min, salary_max, remote, posted_at, created_at`

func scanJob(row interface{ Scan(dest ...any) error }) (*model.Job, error) {
	var job model.Job
	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Company,
		&job.Location,
		&job.Description,
		&job.URL,
		&job.SalaryMin,
		&job.SalaryMax,
		&job.Remote,
		&job.PostedAt,
		&job.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (db *Postgres) CreateJob(ctx context.Context, req model.CreateJobRequest) (*model.Job, error) {
	query := `
		INSERT INTO jobs (id, title, company, location, description, url, salary_min, salary_max, remote, posted_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING ` + jobColumns
	row := db.Pool.QueryRow(ctx, query,
		uuid.NewString(),
		req.Title,
		req.Company,
		req.Location,
		req.Description,
		req.URL,
		req.SalaryMin,
		req.SalaryMax,
		req.Remote,
	)
	return scanJob(row)
}

func (db *Postgres) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return scanJob(db.Pool.QueryRow(ctx, query, jobID))
}

func (db *Postgres) ListJobs(ctx context.Context, filter model.JobFilter) ([]model.Job, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.Title != "" {
		args = append(args, "%"+filter.Title+"%")
		clauses = append(clauses, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		clauses = append(clauses, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if filter.Remote != nil {
		args = append(args, *filter.Remote)
		clauses = append(clauses, fmt.Sprintf("remote = $%d", len(args)))
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY posted_at DESC"

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (db *Postgres) SetJobEmbedding(ctx context.Context, jobID string, vector []float32) error {
	query := `UPDATE jobs SET embedding = $2 WHERE id = $1`
	_, err := db.Pool.Exec(ctx, query, jobID, pgvector.NewVector(vector))
	return err
}

// SearchJobsByEmbedding returns the nearest jobs by cosine distance with a
// similarity score in [0,1].
func (db *Postgres) SearchJobsByEmbedding(ctx context.Context, vector []float32, limit int) ([]model.JobMatch, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	query := `
		SELECT ` + jobColumns + `, 1 - (embedding <=> $1) AS score
		FROM jobs
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2
	`
	rows, err := db.Pool.Query(ctx, query, pgvector.NewVector(vector), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []model.JobMatch
	for rows.Next() {
		var m model.JobMatch
		err := rows.Scan(
			&m.Job.ID,
			&m.Job.Title,
			&m.Job.Company,
			&m.Job.Location,
			&m.Job.Description,
			&m.Job.URL,
			&m.Job.SalaryMin,
			&m.Job.SalaryMax,
			&m.Job.Remote,
			&m.Job.PostedAt,
			&m.Job.CreatedAt,
			&m.Score,
		)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
