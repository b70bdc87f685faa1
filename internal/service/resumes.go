package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/riaz37/job-finder-sub001/internal/db"
	"github.com/riaz37/job-finder-sub001/internal/model"
)

// ResumeStore is the resume side of persistence, including the stored
// embedding used for job matching.
type ResumeStore interface {
	CreateResume(ctx context.Context, userID string, req model.CreateResumeRequest) (*model.Resume, error)
	GetResume(ctx context.Context, resumeID string) (*model.Resume, error)
	ListResumesByUser(ctx context.Context, userID string) ([]model.Resume, error)
	UpdateResume(ctx context.Context, resumeID, title, summary string, isPrimary *bool) (*model.Resume, error)
	DeleteResume(ctx context.Context, resumeID string) error
	SetResumeEmbedding(ctx context.Context, resumeID string, vector []float32) error
	GetResumeEmbedding(ctx context.Context, resumeID string) ([]float32, error)
}

// JobSearcher is the slice of the job store that resume matching needs.
type JobSearcher interface {
	SearchJobsByEmbedding(ctx context.Context, vector []float32, limit int) ([]model.JobMatch, error)
}

type ResumeService struct {
	store    ResumeStore
	jobs     JobSearcher
	embedder Embedder
	log      *slog.Logger
}

func NewResumeService(store ResumeStore, jobs JobSearcher, embedder Embedder, log *slog.Logger) *ResumeService {
	if log == nil {
		log = slog.Default()
	}
	return &ResumeService{store: store, jobs: jobs, embedder: embedder, log: log}
}

// Create stores the resume and vectorizes its summary best-effort.
func (s *ResumeService) Create(ctx context.Context, userID string, req model.CreateResumeRequest) (*model.Resume, error) {
	resume, err := s.store.CreateResume(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	s.vectorize(ctx, resume)
	return resume, nil
}

func (s *ResumeService) vectorize(ctx context.Context, resume *model.Resume) {
	if s.embedder == nil {
		return
	}
	text := strings.TrimSpace(resume.Title + "\n" + resume.Summary)
	if text == "" {
		return
	}
	vec, embModel, err := s.embedder.EmbedText(ctx, text)
	if err != nil {
		s.log.Warn("resume embedding failed", "resume_id", resume.ID, "error", err)
		return
	}
	if err := s.store.SetResumeEmbedding(ctx, resume.ID, vec); err != nil {
		s.log.Warn("resume embedding write failed", "resume_id", resume.ID, "error", err)
		return
	}
	s.log.Debug("resume vectorized", "resume_id", resume.ID, "model", embModel)
}

// Get enforces ownership: asking for another user's resume reads the
// same as asking for one that does not exist.
func (s *ResumeService) Get(ctx context.Context, userID, resumeID string) (*model.Resume, error) {
	resume, err := s.store.GetResume(ctx, resumeID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: resume %s", ErrNotFound, resumeID)
		}
		return nil, err
	}
	if resume.UserID != userID {
		return nil, fmt.Errorf("%w: resume %s", ErrNotFound, resumeID)
	}
	return resume, nil
}

func (s *ResumeService) List(ctx context.Context, userID string) ([]model.Resume, error) {
	resumes, err := s.store.ListResumesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if resumes == nil {
		resumes = []model.Resume{}
	}
	return resumes, nil
}

// Update edits resume metadata and refreshes the embedding when the text
// changed.
func (s *ResumeService) Update(ctx context.Context, userID, resumeID string, req model.UpdateResumeRequest) (*model.Resume, error) {
	if _, err := s.Get(ctx, userID, resumeID); err != nil {
		return nil, err
	}

	resume, err := s.store.UpdateResume(ctx, resumeID, req.Title, req.Summary, req.IsPrimary)
	if err != nil {
		return nil, err
	}
	if req.Title != "" || req.Summary != "" {
		s.vectorize(ctx, resume)
	}
	return resume, nil
}

func (s *ResumeService) Delete(ctx context.Context, userID, resumeID string) error {
	if _, err := s.Get(ctx, userID, resumeID); err != nil {
		return err
	}
	return s.store.DeleteResume(ctx, resumeID)
}

// MatchJobs ranks catalog jobs against the resume's embedding. A resume
// that was never vectorized cannot be matched.
func (s *ResumeService) MatchJobs(ctx context.Context, userID, resumeID string, limit int) ([]model.JobMatch, error) {
	if _, err := s.Get(ctx, userID, resumeID); err != nil {
		return nil, err
	}

	vec, err := s.store.GetResumeEmbedding(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	if vec == nil {
		return nil, fmt.Errorf("%w: resume has no embedding yet", ErrInvalidInput)
	}

	matches, err := s.jobs.SearchJobsByEmbedding(ctx, vec, limit)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []model.JobMatch{}
	}
	return matches, nil
}
