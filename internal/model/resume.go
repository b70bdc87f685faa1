package model

import "time"

// Resume holds metadata only; file storage and content extraction are
// handled by external services and referenced by URL.
type Resume struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	StorageURL string    `json:"storage_url"`
	IsPrimary  bool      `json:"is_primary"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateResumeRequest struct {
	Title      string `json:"title" binding:"required"`
	Summary    string `json:"summary"`
	StorageURL string `json:"storage_url"`
	IsPrimary  bool   `json:"is_primary"`
}

type UpdateResumeRequest struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	IsPrimary *bool  `json:"is_primary"`
}
