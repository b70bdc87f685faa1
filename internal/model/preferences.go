package model

import "time"

type SalaryRange struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// AutomationSettings gates the automated-application pipeline for one user.
// MaxApplicationsPerWeek must be at least MaxApplicationsPerDay; that is
// enforced when preferences are saved, not by the decision engine.
type AutomationSettings struct {
	Enabled                 bool    `json:"enabled"`
	MaxApplicationsPerDay   int     `json:"max_applications_per_day"`
	MaxApplicationsPerWeek  int     `json:"max_applications_per_week"`
	RequireManualApproval   bool    `json:"require_manual_approval"`
	MinMatchScoreThreshold  float64 `json:"min_match_score_threshold"`
	ApplicationDelayMinutes int     `json:"application_delay_minutes"`
}

type UserPreferences struct {
	UserID               string             `json:"user_id"`
	JobTitles            []string           `json:"job_titles"`
	Locations            []string           `json:"locations"`
	RemoteWorkPreference bool               `json:"remote_work_preference"`
	SalaryRange          *SalaryRange       `json:"salary_range,omitempty"`
	PreferredCompanies   []string           `json:"preferred_companies"`
	ExcludedCompanies    []string           `json:"excluded_companies"`
	AutomationSettings   AutomationSettings `json:"automation_settings"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

type UpdatePreferencesRequest struct {
	JobTitles            []string            `json:"job_titles"`
	Locations            []string            `json:"locations"`
	RemoteWorkPreference bool                `json:"remote_work_preference"`
	SalaryRange          *SalaryRange        `json:"salary_range"`
	PreferredCompanies   []string            `json:"preferred_companies"`
	ExcludedCompanies    []string            `json:"excluded_companies"`
	AutomationSettings   *AutomationSettings `json:"automation_settings"`
}
