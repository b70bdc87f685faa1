package service

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/riaz37/job-finder-sub001/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResumes struct {
	resumes    map[string]model.Resume
	embeddings map[string][]float32
}

func newFakeResumes() *fakeResumes {
	return &fakeResumes{
		resumes:    map[string]model.Resume{},
		embeddings: map[string][]float32{},
	}
}

func (f *fakeResumes) CreateResume(_ context.Context, userID string, req model.CreateResumeRequest) (*model.Resume, error) {
	r := model.Resume{
		ID:      fmt.Sprintf("resume-%d", len(f.resumes)+1),
		UserID:  userID,
		Title:   req.Title,
		Summary: req.Summary,
	}
	f.resumes[r.ID] = r
	return &r, nil
}

func (f *fakeResumes) GetResume(_ context.Context, resumeID string) (*model.Resume, error) {
	r, ok := f.resumes[resumeID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &r, nil
}

func (f *fakeResumes) ListResumesByUser(_ context.Context, userID string) ([]model.Resume, error) {
	var out []model.Resume
	for _, r := range f.resumes {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResumes) UpdateResume(_ context.Context, resumeID, title, summary string, isPrimary *bool) (*model.Resume, error) {
	r, ok := f.resumes[resumeID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if title != "" {
		r.Title = title
	}
	if summary != "" {
		r.Summary = summary
	}
	if isPrimary != nil {
		r.IsPrimary = *isPrimary
	}
	f.resumes[resumeID] = r
	return &r, nil
}

func (f *fakeResumes) DeleteResume(_ context.Context, resumeID string) error {
	delete(f.resumes, resumeID)
	return nil
}

func (f *fakeResumes) SetResumeEmbedding(_ context.Context, resumeID string, vector []float32) error {
	f.embeddings[resumeID] = vector
	return nil
}

func (f *fakeResumes) GetResumeEmbedding(_ context.Context, resumeID string) ([]float32, error) {
	return f.embeddings[resumeID], nil
}

type fakeEmbedder struct {
	fail bool
}

func (f *fakeEmbedder) EmbedText(_ context.Context, text string) ([]float32, string, error) {
	if f.fail {
		return nil, "fake-model", fmt.Errorf("embedding backend down")
	}
	return []float32{float32(len(text)), 1, 0}, "fake-model", nil
}

type fakeSearcher struct {
	matches []model.JobMatch
}

func (f *fakeSearcher) SearchJobsByEmbedding(_ context.Context, _ []float32, _ int) ([]model.JobMatch, error) {
	return f.matches, nil
}

func newTestResumes(embedder Embedder, searcher JobSearcher) (*ResumeService, *fakeResumes) {
	store := newFakeResumes()
	svc := NewResumeService(store, searcher, embedder, slog.New(slog.DiscardHandler))
	return svc, store
}

func TestCreateResumeVectorizes(t *testing.T) {
	svc, store := newTestResumes(&fakeEmbedder{}, nil)

	r, err := svc.Create(context.Background(), "u1", model.CreateResumeRequest{
		Title: "Backend Engineer", Summary: "Go, Postgres, Redis",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, store.embeddings[r.ID])
}

func TestCreateResumeSurvivesEmbedderFailure(t *testing.T) {
	svc, store := newTestResumes(&fakeEmbedder{fail: true}, nil)

	r, err := svc.Create(context.Background(), "u1", model.CreateResumeRequest{Title: "SRE"})
	require.NoError(t, err)
	assert.Empty(t, store.embeddings[r.ID])
}

func TestResumeOwnership(t *testing.T) {
	svc, _ := newTestResumes(nil, nil)
	ctx := context.Background()

	r, err := svc.Create(ctx, "u1", model.CreateResumeRequest{Title: "SRE"})
	require.NoError(t, err)

	// Someone else's resume reads the same as a missing one.
	_, err = svc.Get(ctx, "u2", r.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(ctx, "u2", r.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.Get(ctx, "u1", r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
}

func TestMatchJobsRequiresEmbedding(t *testing.T) {
	searcher := &fakeSearcher{matches: []model.JobMatch{{Score: 0.9}}}
	svc, store := newTestResumes(nil, searcher)
	ctx := context.Background()

	r, err := svc.Create(ctx, "u1", model.CreateResumeRequest{Title: "SRE"})
	require.NoError(t, err)

	// Without an embedder the resume was never vectorized.
	_, err = svc.MatchJobs(ctx, "u1", r.ID, 10)
	assert.ErrorIs(t, err, ErrInvalidInput)

	store.embeddings[r.ID] = []float32{1, 2, 3}
	matches, err := svc.MatchJobs(ctx, "u1", r.ID, 10)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
