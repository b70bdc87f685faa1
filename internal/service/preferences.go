package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riaz37/job-finder-sub001/internal/db"
	"github.com/riaz37/job-finder-sub001/internal/model"
)

// PreferencesStore persists the preference document as a whole.
type PreferencesStore interface {
	GetPreferences(ctx context.Context, userID string) (*model.UserPreferences, error)
	UpsertPreferences(ctx context.Context, userID string, prefs model.UserPreferences) (*model.UserPreferences, error)
}

// PreferencesService is the write boundary for preference documents.
// Cross-field rules (weekly vs daily limits, threshold range) are checked
// here so the decision engine can trust whatever it is handed.
type PreferencesService struct {
	store      PreferencesStore
	automation *AutomationService
	log        *slog.Logger
}

func NewPreferencesService(store PreferencesStore, automation *AutomationService, log *slog.Logger) *PreferencesService {
	if log == nil {
		log = slog.Default()
	}
	return &PreferencesService{store: store, automation: automation, log: log}
}

// Get returns the stored preferences, or a default document when the user
// never saved any. The default is not persisted.
func (s *PreferencesService) Get(ctx context.Context, userID string) (*model.UserPreferences, error) {
	prefs, err := s.store.GetPreferences(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return s.defaults(userID), nil
		}
		return nil, err
	}
	return prefs, nil
}

func (s *PreferencesService) defaults(userID string) *model.UserPreferences {
	return &model.UserPreferences{
		UserID:             userID,
		JobTitles:          []string{},
		Locations:          []string{},
		PreferredCompanies: []string{},
		ExcludedCompanies:  []string{},
		AutomationSettings: s.automation.DefaultSettings(),
	}
}

// Update replaces the preference document. Automation settings are
// validated before anything is written; a hard validation error rejects
// the whole update with ErrInvalidInput. Warnings pass through in the
// returned validation so the caller can surface them.
func (s *PreferencesService) Update(ctx context.Context, userID string, req model.UpdatePreferencesRequest) (*model.UserPreferences, *model.SettingsValidation, error) {
	settings := s.automation.DefaultSettings()
	if req.AutomationSettings != nil {
		settings = *req.AutomationSettings
	}

	if err := checkSettingsBounds(settings); err != nil {
		return nil, nil, err
	}

	validation := s.automation.ValidateSettings(settings)
	if !validation.IsValid {
		return nil, &validation, fmt.Errorf("%w: %s", ErrInvalidInput, validation.Errors[0])
	}

	prefs := model.UserPreferences{
		UserID:               userID,
		JobTitles:            emptyIfNil(req.JobTitles),
		Locations:            emptyIfNil(req.Locations),
		RemoteWorkPreference: req.RemoteWorkPreference,
		SalaryRange:          req.SalaryRange,
		PreferredCompanies:   emptyIfNil(req.PreferredCompanies),
		ExcludedCompanies:    emptyIfNil(req.ExcludedCompanies),
		AutomationSettings:   settings,
	}

	saved, err := s.store.UpsertPreferences(ctx, userID, prefs)
	if err != nil {
		return nil, nil, err
	}
	return saved, &validation, nil
}

func checkSettingsBounds(set model.AutomationSettings) error {
	if set.MaxApplicationsPerDay < 0 || set.MaxApplicationsPerWeek < 0 {
		return fmt.Errorf("%w: application limits must not be negative", ErrInvalidInput)
	}
	if set.MaxApplicationsPerWeek < set.MaxApplicationsPerDay {
		return fmt.Errorf("%w: weekly limit must be at least the daily limit", ErrInvalidInput)
	}
	if set.MinMatchScoreThreshold < 0 || set.MinMatchScoreThreshold > 1 {
		return fmt.Errorf("%w: match score threshold must be between 0 and 1", ErrInvalidInput)
	}
	if set.ApplicationDelayMinutes < 0 {
		return fmt.Errorf("%w: application delay must not be negative", ErrInvalidInput)
	}
	return nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
