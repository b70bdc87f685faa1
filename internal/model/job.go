package model

import "time"

type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	SalaryMin   int       `json:"salary_min"`
	SalaryMax   int       `json:"salary_max"`
	Remote      bool      `json:"remote"`
	PostedAt    time.Time `json:"posted_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// JobMatch pairs a job with its similarity score against a resume,
// normalized to [0,1].
type JobMatch struct {
	Job   Job     `json:"job"`
	Score float64 `json:"score"`
}

type CreateJobRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url"`
	SalaryMin   int    `json:"salary_min"`
	SalaryMax   int    `json:"salary_max"`
	Remote      bool   `json:"remote"`
}

type JobFilter struct {
	Title    string
	Location string
	Remote   *bool
	Limit    int
	Offset   int
}
