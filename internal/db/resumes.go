package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/riaz37/job-finder-sub001/internal/model"
)

const resumeColumns = `id, user_id, title, summary, storage_url, is_primary, created_at, updated_at`

func scanResume(row interface{ Scan(dest ...any) error }) (*model.Resume, error) {
	var r model.Resume
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.Title,
		&r.Summary,
		&r.StorageURL,
		&r.IsPrimary,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (db *Postgres) CreateResume(ctx context.Context, userID string, req model.CreateResumeRequest) (*model.Resume, error) {
	query := `
		INSERT INTO resumes (id, user_id, title, summary, storage_url, is_primary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + resumeColumns
	row := db.Pool.QueryRow(ctx, query,
		uuid.NewString(),
		userID,
		req.Title,
		req.Summary,
		req.StorageURL,
		req.IsPrimary,
	)
	return scanResume(row)
}

func (db *Postgres) GetResume(ctx context.Context, resumeID string) (*model.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1`
	return scanResume(db.Pool.QueryRow(ctx, query, resumeID))
}

func (db *Postgres) ListResumesByUser(ctx context.Context, userID string) ([]model.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resumes []model.Resume
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, *r)
	}
	return resumes, rows.Err()
}

func (db *Postgres) UpdateResume(ctx context.Context, resumeID, title, summary string, isPrimary *bool) (*model.Resume, error) {
	query := `
		UPDATE resumes
		SET title = COALESCE(NULLIF($2, ''), title),
		    summary = COALESCE(NULLIF($3, ''), summary),
		    is_primary = COALESCE($4, is_primary),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + resumeColumns
	return scanResume(db.Pool.QueryRow(ctx, query, resumeID, title, summary, isPrimary))
}

func (db *Postgres) DeleteResume(ctx context.Context, resumeID string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, resumeID)
	return err
}

func (db *Postgres) SetResumeEmbedding(ctx context.Context, resumeID string, vector []float32) error {
	query := `UPDATE resumes SET embedding = $2, updated_at = NOW() WHERE id = $1`
	_, err := db.Pool.Exec(ctx, query, resumeID, pgvector.NewVector(vector))
	return err
}

// GetResumeEmbedding returns the stored vector, or nil when the resume has
// not been vectorized yet.
func (db *Postgres) GetResumeEmbedding(ctx context.Context, resumeID string) ([]float32, error) {
	var vec *pgvector.Vector
	err := db.Pool.QueryRow(ctx, `SELECT embedding FROM resumes WHERE id = $1`, resumeID).Scan(&vec)
	if err != nil {
		return nil, err
	}
	if vec == nil {
		return nil, nil
	}
	return vec.Slice(), nil
}
