package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/riaz37/job-finder-sub001/internal/model"
)

// GetPreferences returns the stored preferences row, or pgx.ErrNoRows when
// the user has never saved any.
func (db *Postgres) GetPreferences(ctx context.Context, userID string) (*model.UserPreferences, error) {
	var (
		payload   []byte
		updatedAt time.Time
	)
	query := `SELECT data, updated_at FROM preferences WHERE user_id = $1`
	err := db.Pool.QueryRow(ctx, query, userID).Scan(&payload, &updatedAt)
	if err != nil {
		return nil, err
	}

	var prefs model.UserPreferences
	if err := json.Unmarshal(payload, &prefs); err != nil {
		return nil, err
	}
	prefs.UserID = userID
	prefs.UpdatedAt = updatedAt
	return &prefs, nil
}

func (db *Postgres) UpsertPreferences(ctx context.Context, userID string, prefs model.UserPreferences) (*model.UserPreferences, error) {
	prefs.UserID = userID
	payload, err := json.Marshal(prefs)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO preferences (user_id, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
		RETURNING updated_at
	`
	if err := db.Pool.QueryRow(ctx, query, userID, payload).Scan(&prefs.UpdatedAt); err != nil {
		return nil, err
	}
	return &prefs, nil
}
