package service

import (
	"fmt"
	"time"

	"github.com/riaz37/job-finder-sub001/internal/model"
)

// AutomationService is the pure decision core for automated applications.
// It never touches a store or the clock on its own: callers pass the
// settings, usage counters, and reference time in, and get a verdict out.
type AutomationService struct{}

func NewAutomationService() *AutomationService {
	return &AutomationService{}
}

// DefaultSettings are applied to users who never saved preferences.
func (s *AutomationService) DefaultSettings() model.AutomationSettings {
	return model.AutomationSettings{
		Enabled:                 true,
		MaxApplicationsPerDay:   5,
		MaxApplicationsPerWeek:  25,
		RequireManualApproval:   false,
		MinMatchScoreThreshold:  0.7,
		ApplicationDelayMinutes: 30,
	}
}

// ShouldApply evaluates one candidate job against the user's settings and
// current usage. Checks run in a fixed order and the first failure wins;
// the reason always explains the verdict. RequiresApproval mirrors the
// setting regardless of outcome.
func (s *AutomationService) ShouldApply(settings model.AutomationSettings, matchScore float64, appliedToday, appliedThisWeek int) model.Decision {
	d := model.Decision{RequiresApproval: settings.RequireManualApproval}

	switch {
	case !settings.Enabled:
		d.Reason = "Automation is disabled"
	case appliedToday >= settings.MaxApplicationsPerDay:
		d.Reason = "Daily application limit reached"
	case appliedThisWeek >= settings.MaxApplicationsPerWeek:
		d.Reason = "Weekly application limit reached"
	case matchScore < settings.MinMatchScoreThreshold:
		d.Reason = fmt.Sprintf("Job match score (%.2f) below threshold (%.2f)", matchScore, settings.MinMatchScoreThreshold)
	default:
		d.ShouldApply = true
		d.Reason = "All automation criteria met"
	}
	return d
}

// Schedule projects the application cadence forward from start. With
// automation disabled every field stays zeroed except Enabled.
func (s *AutomationService) Schedule(settings model.AutomationSettings, start time.Time) model.ScheduleEstimate {
	est := model.ScheduleEstimate{Enabled: settings.Enabled}
	if !settings.Enabled || settings.ApplicationDelayMinutes <= 0 {
		return est
	}

	delay := time.Duration(settings.ApplicationDelayMinutes) * time.Minute
	est.NextApplicationAt = start.Add(delay)
	est.DailyLimitReachedAt = start.Add(delay * time.Duration(settings.MaxApplicationsPerDay))
	est.WeeklyLimitReachedAt = start.Add(delay * time.Duration(settings.MaxApplicationsPerWeek))
	est.ApplicationsPerHour = 60.0 / float64(settings.ApplicationDelayMinutes)

	perDay := 24 * 60 / settings.ApplicationDelayMinutes
	if perDay > settings.MaxApplicationsPerDay {
		perDay = settings.MaxApplicationsPerDay
	}
	est.EstimatedDailyApplications = perDay
	return est
}

// ValidateSettings separates hard errors from advisory warnings. Only an
// error makes the settings invalid; warnings and recommendations pass.
func (s *AutomationService) ValidateSettings(settings model.AutomationSettings) model.SettingsValidation {
	v := model.SettingsValidation{IsValid: true}

	if settings.Enabled && settings.MaxApplicationsPerDay == 0 {
		v.IsValid = false
		v.Errors = append(v.Errors, "Automation is enabled but daily limit is set to 0")
	}
	if settings.MaxApplicationsPerDay > 20 {
		v.Warnings = append(v.Warnings, "Daily limit above 20 may look like spam to employers")
	}
	if settings.MinMatchScoreThreshold < 0.5 {
		v.Warnings = append(v.Warnings, "Match threshold below 0.5 will apply to poorly matching jobs")
	}
	if settings.ApplicationDelayMinutes < 15 {
		v.Warnings = append(v.Warnings, "Delay under 15 minutes may trigger anti-bot detection")
	}
	if settings.Enabled && !settings.RequireManualApproval && settings.MaxApplicationsPerDay > 10 {
		v.Recommendations = append(v.Recommendations, "Consider enabling manual approval with a daily limit above 10")
	}
	return v
}

// Summary condenses the preferences into a dashboard-shaped snapshot.
func (s *AutomationService) Summary(prefs model.UserPreferences) model.AutomationSummary {
	set := prefs.AutomationSettings

	var perHour float64
	if set.ApplicationDelayMinutes > 0 {
		perHour = 60.0 / float64(set.ApplicationDelayMinutes)
	}

	return model.AutomationSummary{
		AutomationEnabled:        set.Enabled,
		DailyLimit:               set.MaxApplicationsPerDay,
		WeeklyLimit:              set.MaxApplicationsPerWeek,
		ManualApprovalRequired:   set.RequireManualApproval,
		MatchScoreThreshold:      set.MinMatchScoreThreshold,
		DelayBetweenApplications: fmt.Sprintf("%d minutes", set.ApplicationDelayMinutes),
		ApplicationsPerHour:      perHour,
		JobCriteria: model.JobCriteriaSummary{
			JobTitles:          len(prefs.JobTitles),
			Locations:          len(prefs.Locations),
			PreferredCompanies: len(prefs.PreferredCompanies),
			ExcludedCompanies:  len(prefs.ExcludedCompanies),
			SalaryRangeSet:     prefs.SalaryRange != nil,
		},
	}
}

// Recommendations reviews the whole preference document, not just the
// automation block, and suggests tuning steps.
func (s *AutomationService) Recommendations(prefs model.UserPreferences) []string {
	set := prefs.AutomationSettings
	var recs []string

	if set.MaxApplicationsPerDay > 15 {
		recs = append(recs, "Lower the daily limit; high-volume applying reduces per-application quality")
	}
	if set.MinMatchScoreThreshold > 0.9 {
		recs = append(recs, "A threshold above 0.9 will match very few jobs; consider relaxing it")
	}
	if len(prefs.JobTitles) < 3 {
		recs = append(recs, "Add more job titles to widen the search")
	}
	if len(prefs.Locations) == 0 && !prefs.RemoteWorkPreference {
		recs = append(recs, "Set locations or enable remote work preference to get matches")
	}
	if set.Enabled && !set.RequireManualApproval && set.MaxApplicationsPerDay > 5 {
		recs = append(recs, "Enable manual approval to review applications before they are sent")
	}
	if set.ApplicationDelayMinutes < 30 {
		recs = append(recs, "Increase the application delay to at least 30 minutes")
	}
	return recs
}
