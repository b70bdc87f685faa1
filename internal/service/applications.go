package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/riaz37/job-finder-sub001/internal/db"
	"github.com/riaz37/job-finder-sub001/internal/logging"
	"github.com/riaz37/job-finder-sub001/internal/model"
)

// ApplicationStore persists application records and the usage counters
// the decision engine consumes.
type ApplicationStore interface {
	InsertApplication(ctx context.Context, app model.Application) (*model.Application, error)
	GetApplication(ctx context.Context, applicationID string) (*model.Application, error)
	ListApplicationsByUser(ctx context.Context, userID string) ([]model.Application, error)
	UpdateApplicationStatus(ctx context.Context, applicationID, status string) (*model.Application, error)
	CountApplicationsSince(ctx context.Context, userID string, since time.Time) (int, error)
}

var validStatuses = map[string]bool{
	model.ApplicationStatusApplied:         true,
	model.ApplicationStatusPendingApproval: true,
	model.ApplicationStatusInterview:       true,
	model.ApplicationStatusOffer:           true,
	model.ApplicationStatusRejected:        true,
	model.ApplicationStatusWithdrawn:       true,
}

// ApplicationService runs each submission through the automation engine
// before anything is written: a refused decision produces no record.
type ApplicationService struct {
	store      ApplicationStore
	jobs       JobStore
	prefs      *PreferencesService
	automation *AutomationService
	activity   *logging.ActivityLog
	log        *slog.Logger
	now        func() time.Time
}

func NewApplicationService(store ApplicationStore, jobs JobStore, prefs *PreferencesService, automation *AutomationService, activity *logging.ActivityLog, log *slog.Logger) *ApplicationService {
	if log == nil {
		log = slog.Default()
	}
	return &ApplicationService{
		store:      store,
		jobs:       jobs,
		prefs:      prefs,
		automation: automation,
		activity:   activity,
		log:        log,
		now:        time.Now,
	}
}

// UsageCounters reports applications since UTC midnight and since the
// start of the week (Monday 00:00 UTC).
func (s *ApplicationService) UsageCounters(ctx context.Context, userID string) (daily, weekly int, err error) {
	now := s.now().UTC()

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	daily, err = s.store.CountApplicationsSince(ctx, userID, midnight)
	if err != nil {
		return 0, 0, err
	}

	// Weekday runs Sunday=0; shift so the week starts Monday.
	offset := (int(now.Weekday()) + 6) % 7
	weekStart := midnight.AddDate(0, 0, -offset)
	weekly, err = s.store.CountApplicationsSince(ctx, userID, weekStart)
	if err != nil {
		return 0, 0, err
	}
	return daily, weekly, nil
}

// Apply evaluates the job against the user's automation settings and, if
// approved, records the application. Manual-approval users get a record
// in pending_approval instead of applied.
func (s *ApplicationService) Apply(ctx context.Context, userID, jobID string, req model.ApplyRequest) (*model.ApplyResponse, error) {
	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: job %s", ErrNotFound, jobID)
		}
		return nil, err
	}

	prefs, err := s.prefs.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	daily, weekly, err := s.UsageCounters(ctx, userID)
	if err != nil {
		return nil, err
	}

	decision := s.automation.ShouldApply(prefs.AutomationSettings, req.MatchScore, daily, weekly)
	resp := &model.ApplyResponse{Decision: decision}
	if !decision.ShouldApply {
		s.log.Info("application refused",
			"user_id", userID, "job_id", jobID, "reason", decision.Reason)
		return resp, nil
	}

	status := model.ApplicationStatusApplied
	if decision.RequiresApproval {
		status = model.ApplicationStatusPendingApproval
	}

	app, err := s.store.InsertApplication(ctx, model.Application{
		UserID:     userID,
		JobID:      jobID,
		ResumeID:   req.ResumeID,
		Status:     status,
		MatchScore: req.MatchScore,
		Automated:  true,
	})
	if err != nil {
		return nil, err
	}

	resp.Application = app
	s.activity.Record(logging.Entry{
		UserID: userID,
		Action: "application_submitted",
		Detail: fmt.Sprintf("%s at %s (%s)", job.Title, job.Company, status),
	})
	return resp, nil
}

func (s *ApplicationService) List(ctx context.Context, userID string) ([]model.Application, error) {
	apps, err := s.store.ListApplicationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []model.Application{}
	}
	return apps, nil
}

// Get enforces ownership the same way resumes do.
func (s *ApplicationService) Get(ctx context.Context, userID, applicationID string) (*model.Application, error) {
	app, err := s.store.GetApplication(ctx, applicationID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: application %s", ErrNotFound, applicationID)
		}
		return nil, err
	}
	if app.UserID != userID {
		return nil, fmt.Errorf("%w: application %s", ErrNotFound, applicationID)
	}
	return app, nil
}

// UpdateStatus moves an application through its lifecycle. Only the
// known status values are accepted.
func (s *ApplicationService) UpdateStatus(ctx context.Context, userID, applicationID, status string) (*model.Application, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	if _, err := s.Get(ctx, userID, applicationID); err != nil {
		return nil, err
	}

	app, err := s.store.UpdateApplicationStatus(ctx, applicationID, status)
	if err != nil {
		return nil, err
	}
	s.activity.Record(logging.Entry{
		UserID: userID,
		Action: "application_status_changed",
		Detail: fmt.Sprintf("%s -> %s", applicationID, status),
	})
	return app, nil
}
