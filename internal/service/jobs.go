package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/riaz37/job-finder-sub001/internal/db"
	"github.com/riaz37/job-finder-sub001/internal/model"
)

// Embedder turns free text into a vector. Implementations call an
// external model; errors from it are treated as degraded service, not
// request failures.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, string, error)
}

// JobStore is the catalog side of persistence.
type JobStore interface {
	CreateJob(ctx context.Context, req model.CreateJobRequest) (*model.Job, error)
	GetJob(ctx context.Context, jobID string) (*model.Job, error)
	ListJobs(ctx context.Context, filter model.JobFilter) ([]model.Job, error)
	SetJobEmbedding(ctx context.Context, jobID string, vector []float32) error
	SearchJobsByEmbedding(ctx context.Context, vector []float32, limit int) ([]model.JobMatch, error)
}

type JobService struct {
	store    JobStore
	embedder Embedder
	log      *slog.Logger
}

func NewJobService(store JobStore, embedder Embedder, log *slog.Logger) *JobService {
	if log == nil {
		log = slog.Default()
	}
	return &JobService{store: store, embedder: embedder, log: log}
}

// Create inserts the job and vectorizes it best-effort. A failed or
// unavailable embedder leaves the job searchable by filters only.
func (s *JobService) Create(ctx context.Context, req model.CreateJobRequest) (*model.Job, error) {
	job, err := s.store.CreateJob(ctx, req)
	if err != nil {
		return nil, err
	}
	s.vectorize(ctx, job)
	return job, nil
}

func (s *JobService) vectorize(ctx context.Context, job *model.Job) {
	if s.embedder == nil {
		return
	}
	text := strings.TrimSpace(job.Title + " at " + job.Company + "\n" + job.Description)
	vec, embModel, err := s.embedder.EmbedText(ctx, text)
	if err != nil {
		s.log.Warn("job embedding failed", "job_id", job.ID, "error", err)
		return
	}
	if err := s.store.SetJobEmbedding(ctx, job.ID, vec); err != nil {
		s.log.Warn("job embedding write failed", "job_id", job.ID, "error", err)
		return
	}
	s.log.Debug("job vectorized", "job_id", job.ID, "model", embModel)
}

func (s *JobService) Get(ctx context.Context, jobID string) (*model.Job, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: job %s", ErrNotFound, jobID)
		}
		return nil, err
	}
	return job, nil
}

func (s *JobService) List(ctx context.Context, filter model.JobFilter) ([]model.Job, error) {
	jobs, err := s.store.ListJobs(ctx, filter)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []model.Job{}
	}
	return jobs, nil
}
