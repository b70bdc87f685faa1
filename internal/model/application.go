package model

import "time"

const (
	ApplicationStatusApplied         = "applied"
	ApplicationStatusPendingApproval = "pending_approval"
	ApplicationStatusInterview       = "interview"
	ApplicationStatusOffer           = "offer"
	ApplicationStatusRejected        = "rejected"
	ApplicationStatusWithdrawn       = "withdrawn"
)

type Application struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	JobID      string    `json:"job_id"`
	ResumeID   string    `json:"resume_id,omitempty"`
	Status     string    `json:"status"`
	MatchScore float64   `json:"match_score"`
	Automated  bool      `json:"automated"`
	AppliedAt  time.Time `json:"applied_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ApplyRequest struct {
	ResumeID   string  `json:"resume_id"`
	MatchScore float64 `json:"match_score" binding:"min=0,max=1"`
}

type ApplyResponse struct {
	Decision    Decision     `json:"decision"`
	Application *Application `json:"application,omitempty"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
