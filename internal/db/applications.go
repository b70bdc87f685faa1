package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/riaz37/job-finder-sub001/internal/model"
)

const applicationColumns = `id, user_id, job_id, resume_id, status, match_score, automated, applied_at, updated_at`

func scanApplication(row interface{ Scan(dest ...any) error }) (*model.Application, error) {
	var a model.Application
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.JobID,
		&a.ResumeID,
		&a.Status,
		&a.MatchScore,
		&a.Automated,
		&a.AppliedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (db *Postgres) InsertApplication(ctx context.Context, app model.Application) (*model.Application, error) {
	query := `
		INSERT INTO applications (id, user_id, job_id, resume_id, status, match_score, automated, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + applicationColumns
	row := db.Pool.QueryRow(ctx, query,
		uuid.NewString(),
		app.UserID,
		app.JobID,
		app.ResumeID,
		app.Status,
		app.MatchScore,
		app.Automated,
	)
	return scanApplication(row)
}

func (db *Postgres) GetApplication(ctx context.Context, applicationID string) (*model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	return scanApplication(db.Pool.QueryRow(ctx, query, applicationID))
}

func (db *Postgres) ListApplicationsByUser(ctx context.Context, userID string) ([]model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE user_id = $1 ORDER BY applied_at DESC`
	rows, err := db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}

func (db *Postgres) UpdateApplicationStatus(ctx context.Context, applicationID, status string) (*model.Application, error) {
	query := `
		UPDATE applications
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + applicationColumns
	return scanApplication(db.Pool.QueryRow(ctx, query, applicationID, status))
}

// CountApplicationsSince feeds the automation engine's usage counters:
// callers pass the start of the current day or week.
func (db *Postgres) CountApplicationsSince(ctx context.Context, userID string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM applications WHERE user_id = $1 AND applied_at >= $2`
	var count int
	err := db.Pool.QueryRow(ctx, query, userID, since).Scan(&count)
	return count, err
}
