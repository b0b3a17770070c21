package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"hirely/matching-api/internal/repositories"
)

// VectorSyncWorker reconciles the vector store with the relational store.
// CreateJob treats the qdrant write as best-effort; jobs whose write failed
// stay flagged unsynced and this worker retries them until the stores
// converge.
type VectorSyncWorker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(jobID uuid.UUID)
}

type vectorSyncWorker struct {
	jobRepo      repositories.JobRepository
	embedder     Embedder
	vectors      VectorStore
	jobQueue     chan uuid.UUID
	concurrency  int
	syncInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
}

func NewVectorSyncWorker(
	jobRepo repositories.JobRepository,
	embedder Embedder,
	vectors VectorStore,
	concurrency int,
	syncInterval time.Duration,
) VectorSyncWorker {
	return &vectorSyncWorker{
		jobRepo:      jobRepo,
		embedder:     embedder,
		vectors:      vectors,
		jobQueue:     make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		syncInterval: syncInterval,
		stopChan:     make(chan struct{}),
	}
}

// Start implements VectorSyncWorker.
func (w *vectorSyncWorker) Start(ctx context.Context) {
	log.Printf("🚀 Starting vector sync worker with %d workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollUnsyncedJobs()

	log.Println("✅ Vector sync worker started")
}

// Stop implements VectorSyncWorker.
func (w *vectorSyncWorker) Stop() {
	log.Println("🛑 Stopping vector sync worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Vector sync worker stopped")
}

// EnqueueJob implements VectorSyncWorker.
func (w *vectorSyncWorker) EnqueueJob(jobID uuid.UUID) {
	select {
	case w.jobQueue <- jobID:
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue job %s\n", jobID)
	}
}

func (w *vectorSyncWorker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Sync worker #%d stopped\n", workerID)
			return
		case jobID := <-w.jobQueue:
			if err := w.syncJob(ctx, jobID); err != nil {
				log.Printf("❌ Sync worker #%d failed to sync job %s: %v\n", workerID, jobID, err)
			} else {
				log.Printf("✅ Sync worker #%d synced job %s\n", workerID, jobID)
			}
		}
	}
}

func (w *vectorSyncWorker) pollUnsyncedJobs() {
	defer w.wg.Done()
	ticker := time.NewTicker(w.syncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			jobs, err := w.jobRepo.FindUnsynced(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch unsynced jobs: %v\n", err)
				continue
			}

			if len(jobs) > 0 {
				log.Printf("📋 Found %d jobs pending vector sync\n", len(jobs))
			}

			for _, job := range jobs {
				w.EnqueueJob(job.ID)
			}
		}
	}
}

// syncJob re-embeds the posting and retries the vector store write. The
// cluster id on the row stays as assigned at creation; only the vector
// store copy is reconciled.
func (w *vectorSyncWorker) syncJob(ctx context.Context, jobID uuid.UUID) error {
	job, err := w.jobRepo.FindByID(jobID)
	if err != nil {
		return err
	}

	if job.VectorSynced {
		return nil
	}

	vector, err := w.embedder.Embed(ctx, job.Role+" "+job.Description)
	if err != nil {
		return fmt.Errorf("failed to re-embed job: %w", err)
	}

	if err := w.vectors.UpsertJob(ctx, job.ID, vector, job.Role, job.ClusterID); err != nil {
		return err
	}

	return w.jobRepo.MarkVectorSynced(job.ID)
}
