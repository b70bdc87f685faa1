package model

import "time"

// Decision is the outcome of evaluating one candidate job against a user's
// automation settings and current usage counters.
type Decision struct {
	ShouldApply bool   `json:"should_apply"`
	Reason      string `json:"reason"`
	// RequiresApproval mirrors the user's require_manual_approval setting
	// regardless of the outcome; an approved decision with this set still
	// needs a human before submission.
	RequiresApproval bool `json:"requires_approval"`
}

// ScheduleEstimate projects application pacing for display only; it is not
// consulted when enforcing limits.
type ScheduleEstimate struct {
	Enabled                    bool      `json:"enabled"`
	NextApplicationAt          time.Time `json:"next_application_time,omitempty"`
	DailyLimitReachedAt        time.Time `json:"daily_limit_reached_time,omitempty"`
	WeeklyLimitReachedAt       time.Time `json:"weekly_limit_reached_time,omitempty"`
	ApplicationsPerHour        float64   `json:"applications_per_hour"`
	EstimatedDailyApplications int       `json:"estimated_daily_applications"`
}

type SettingsValidation struct {
	IsValid         bool     `json:"is_valid"`
	Errors          []string `json:"errors"`
	Warnings        []string `json:"warnings"`
	Recommendations []string `json:"recommendations"`
}

type AutomationSummary struct {
	AutomationEnabled        bool    `json:"automation_enabled"`
	DailyLimit               int     `json:"daily_limit"`
	WeeklyLimit              int     `json:"weekly_limit"`
	ManualApprovalRequired   bool    `json:"manual_approval_required"`
	MatchScoreThreshold      float64 `json:"match_score_threshold"`
	DelayBetweenApplications string  `json:"delay_between_applications"`
	ApplicationsPerHour      float64 `json:"estimated_applications_per_hour"`
	JobCriteria              JobCriteriaSummary `json:"job_criteria"`
}

type JobCriteriaSummary struct {
	JobTitles          int  `json:"job_titles"`
	Locations          int  `json:"locations"`
	PreferredCompanies int  `json:"preferred_companies"`
	ExcludedCompanies  int  `json:"excluded_companies"`
	SalaryRangeSet     bool `json:"salary_range_set"`
}
