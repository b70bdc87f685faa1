package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/riaz37/job-finder-sub001/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePreferences struct {
	saved map[string]model.UserPreferences
}

func newFakePreferences() *fakePreferences {
	return &fakePreferences{saved: map[string]model.UserPreferences{}}
}

func (f *fakePreferences) GetPreferences(_ context.Context, userID string) (*model.UserPreferences, error) {
	prefs, ok := f.saved[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &prefs, nil
}

func (f *fakePreferences) UpsertPreferences(_ context.Context, userID string, prefs model.UserPreferences) (*model.UserPreferences, error) {
	prefs.UserID = userID
	prefs.UpdatedAt = time.Now().UTC()
	f.saved[userID] = prefs
	return &prefs, nil
}

func newTestPreferences() (*PreferencesService, *fakePreferences) {
	store := newFakePreferences()
	svc := NewPreferencesService(store, NewAutomationService(), slog.New(slog.DiscardHandler))
	return svc, store
}

func TestGetReturnsDefaultsWhenNeverSaved(t *testing.T) {
	svc, _ := newTestPreferences()

	prefs, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", prefs.UserID)
	assert.True(t, prefs.AutomationSettings.Enabled)
	assert.Equal(t, 5, prefs.AutomationSettings.MaxApplicationsPerDay)
	assert.NotNil(t, prefs.JobTitles)
}

func TestUpdateRoundTrip(t *testing.T) {
	svc, _ := newTestPreferences()
	ctx := context.Background()

	settings := model.AutomationSettings{
		Enabled:                 true,
		MaxApplicationsPerDay:   3,
		MaxApplicationsPerWeek:  10,
		MinMatchScoreThreshold:  0.8,
		ApplicationDelayMinutes: 45,
	}
	saved, validation, err := svc.Update(ctx, "u1", model.UpdatePreferencesRequest{
		JobTitles:          []string{"Backend Engineer"},
		AutomationSettings: &settings,
	})
	require.NoError(t, err)
	assert.True(t, validation.IsValid)
	assert.Equal(t, 3, saved.AutomationSettings.MaxApplicationsPerDay)

	got, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, saved.AutomationSettings, got.AutomationSettings)
	assert.Equal(t, []string{"Backend Engineer"}, got.JobTitles)
}

func TestUpdateRejectsWeeklyBelowDaily(t *testing.T) {
	svc, store := newTestPreferences()

	settings := enabledSettings()
	settings.MaxApplicationsPerDay = 10
	settings.MaxApplicationsPerWeek = 5
	_, _, err := svc.Update(context.Background(), "u1", model.UpdatePreferencesRequest{
		AutomationSettings: &settings,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, store.saved)
}

func TestUpdateRejectsThresholdOutOfRange(t *testing.T) {
	svc, _ := newTestPreferences()

	settings := enabledSettings()
	settings.MinMatchScoreThreshold = 1.5
	_, _, err := svc.Update(context.Background(), "u1", model.UpdatePreferencesRequest{
		AutomationSettings: &settings,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateRejectsEnabledWithZeroDailyLimit(t *testing.T) {
	svc, store := newTestPreferences()

	settings := enabledSettings()
	settings.MaxApplicationsPerDay = 0
	// Weekly stays positive so only the enabled/zero rule fires.
	_, validation, err := svc.Update(context.Background(), "u1", model.UpdatePreferencesRequest{
		AutomationSettings: &settings,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	require.NotNil(t, validation)
	assert.False(t, validation.IsValid)
	assert.Empty(t, store.saved)
}

func TestUpdateWithoutSettingsUsesDefaults(t *testing.T) {
	svc, _ := newTestPreferences()

	saved, validation, err := svc.Update(context.Background(), "u1", model.UpdatePreferencesRequest{
		JobTitles: []string{"SRE"},
	})
	require.NoError(t, err)
	assert.True(t, validation.IsValid)
	assert.Equal(t, NewAutomationService().DefaultSettings(), saved.AutomationSettings)
}
