package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"hirely/matching-api/internal/apperrors"
	"hirely/matching-api/internal/models"
)

// lockedJobRepo guards the in-memory stub for tests that run the worker's
// goroutines for real.
type lockedJobRepo struct {
	mu   sync.Mutex
	repo stubJobRepo
}

func (l *lockedJobRepo) Create(job *models.JobPosting) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.repo.Create(job)
}

func (l *lockedJobRepo) FindByID(id uuid.UUID) (*models.JobPosting, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	job, err := l.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	copied := *job
	return &copied, nil
}

func (l *lockedJobRepo) FindActive() ([]models.JobPosting, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.repo.FindActive()
}

func (l *lockedJobRepo) Deactivate(id uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.repo.Deactivate(id)
}

func (l *lockedJobRepo) MarkVectorSynced(id uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.repo.MarkVectorSynced(id)
}

func (l *lockedJobRepo) FindUnsynced(limit int) ([]models.JobPosting, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.repo.FindUnsynced(limit)
}

func (l *lockedJobRepo) isSynced(id uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, job := range l.repo.jobs {
		if job.ID == id {
			return job.VectorSynced
		}
	}
	return false
}

func TestSyncJobReconcilesUnsyncedJob(t *testing.T) {
	jobID := uuid.New()
	jobRepo := &stubJobRepo{jobs: []models.JobPosting{
		{ID: jobID, Role: "Engineer", Description: "python backend", ClusterID: 1, IsActive: true},
	}}
	vectors := &stubVectorStore{}

	worker := &vectorSyncWorker{
		jobRepo:  jobRepo,
		embedder: &stubEmbedder{vector: []float32{1, 0}},
		vectors:  vectors,
	}

	if err := worker.syncJob(context.Background(), jobID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(vectors.upserts) != 1 || vectors.upserts[0] != jobID {
		t.Fatalf("expected vector upsert for job %s, got %v", jobID, vectors.upserts)
	}
	if !jobRepo.jobs[0].VectorSynced {
		t.Fatal("expected job marked synced after successful upsert")
	}
}

func TestSyncJobSkipsAlreadySyncedJob(t *testing.T) {
	jobID := uuid.New()
	jobRepo := &stubJobRepo{jobs: []models.JobPosting{
		{ID: jobID, Role: "Engineer", Description: "python backend", ClusterID: 1, IsActive: true, VectorSynced: true},
	}}
	vectors := &stubVectorStore{}

	worker := &vectorSyncWorker{
		jobRepo:  jobRepo,
		embedder: &stubEmbedder{vector: []float32{1, 0}},
		vectors:  vectors,
	}

	if err := worker.syncJob(context.Background(), jobID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(vectors.upserts) != 0 {
		t.Fatalf("expected no upsert for synced job, got %v", vectors.upserts)
	}
}

func TestSyncJobUnknownJob(t *testing.T) {
	worker := &vectorSyncWorker{
		jobRepo:  &stubJobRepo{},
		embedder: &stubEmbedder{vector: []float32{1, 0}},
		vectors:  &stubVectorStore{},
	}

	err := worker.syncJob(context.Background(), uuid.New())
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not-found kind, got %v", err)
	}
}

func TestSyncJobKeepsFlagOnUpsertFailure(t *testing.T) {
	jobID := uuid.New()
	jobRepo := &stubJobRepo{jobs: []models.JobPosting{
		{ID: jobID, Role: "Engineer", Description: "python backend", ClusterID: 1, IsActive: true},
	}}

	worker := &vectorSyncWorker{
		jobRepo:  jobRepo,
		embedder: &stubEmbedder{vector: []float32{1, 0}},
		vectors:  &stubVectorStore{upsertErr: errors.New("qdrant down")},
	}

	if err := worker.syncJob(context.Background(), jobID); err == nil {
		t.Fatal("expected error from failed upsert")
	}

	if jobRepo.jobs[0].VectorSynced {
		t.Fatal("job must stay unsynced so a later pass retries it")
	}
}

func TestWorkerSyncsEnqueuedJob(t *testing.T) {
	jobID := uuid.New()
	jobRepo := &lockedJobRepo{repo: stubJobRepo{jobs: []models.JobPosting{
		{ID: jobID, Role: "Engineer", Description: "python backend", ClusterID: 1, IsActive: true},
	}}}

	// Interval long enough that only the explicit enqueue drives the sync.
	worker := NewVectorSyncWorker(jobRepo, &stubEmbedder{vector: []float32{1, 0}}, &stubVectorStore{}, 1, time.Hour)
	worker.Start(context.Background())
	defer worker.Stop()

	worker.EnqueueJob(jobID)

	deadline := time.After(2 * time.Second)
	for !jobRepo.isSynced(jobID) {
		select {
		case <-deadline:
			t.Fatal("job was not synced before deadline")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestWorkerStopsCleanly(t *testing.T) {
	worker := NewVectorSyncWorker(&lockedJobRepo{}, &stubEmbedder{vector: []float32{1, 0}}, &stubVectorStore{}, 2, time.Hour)
	worker.Start(context.Background())

	done := make(chan struct{})
	go func() {
		worker.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop before deadline")
	}
}
