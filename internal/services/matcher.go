package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"hirely/matching-api/internal/apperrors"
	"hirely/matching-api/internal/models"
	"hirely/matching-api/internal/repositories"
)

const (
	// DefaultMatchTopK is the number of jobs returned to an applicant.
	DefaultMatchTopK = 3
	// DefaultShortlistTopK is the number of applicants returned per job.
	DefaultShortlistTopK = 5

	maxExplainTerms  = 10
	jobPreviewLen    = 100
	resumePreviewLen = 200
)

// MatcherService is the two-stage matching engine. Stage one assigns every
// job to a semantic bucket at creation time (embedding + nearest centroid);
// stage two re-ranks lexically with BM25 inside a bucket (Shortlist) or
// across all active jobs (MatchJobsForApplicant).
type MatcherService interface {
	// Ready reports whether the embedding model, cluster model and vector
	// store are all loaded. When false, CreateJob fails with
	// ServiceUnavailable; the BM25-only operations still work.
	Ready() bool

	CreateJob(ctx context.Context, role, description string) (*models.JobPosting, error)
	MatchJobsForApplicant(ctx context.Context, applicantID uuid.UUID, topK int) ([]models.JobMatch, error)
	Shortlist(ctx context.Context, jobID uuid.UUID, topK int) ([]models.ShortlistEntry, error)
	Explain(queryText, candidateText string) []string
}

type matcherService struct {
	jobRepo         repositories.JobRepository
	applicationRepo repositories.ApplicationRepository
	applicantRepo   repositories.ApplicantRepository
	embedder        Embedder
	clusters        *ClusterModel
	vectors         VectorStore
}

// NewMatcherService wires the orchestrator with explicit dependencies.
// embedder, clusters and vectors may be nil when startup could not load
// them; the matcher then serves in degraded mode per Ready.
func NewMatcherService(
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
	applicantRepo repositories.ApplicantRepository,
	embedder Embedder,
	clusters *ClusterModel,
	vectors VectorStore,
) MatcherService {
	return &matcherService{
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		applicantRepo:   applicantRepo,
		embedder:        embedder,
		clusters:        clusters,
		vectors:         vectors,
	}
}

// Ready implements MatcherService.
func (m *matcherService) Ready() bool {
	return m.embedder != nil && m.clusters != nil && m.vectors != nil
}

// CreateJob implements MatcherService. The posting is embedded, assigned a
// cluster and persisted. The relational row is authoritative: it never
// exists without a cluster id. The vector store write is best-effort; on
// failure the row is flagged unsynced and the sync worker retries it.
func (m *matcherService) CreateJob(ctx context.Context, role, description string) (*models.JobPosting, error) {
	if strings.TrimSpace(role) == "" || strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("missing role or description: %w", apperrors.ErrInvalidInput)
	}

	if !m.Ready() {
		return nil, fmt.Errorf("matching engine: %w", apperrors.ErrServiceUnavailable)
	}

	// Role first, single space, same text the vector store indexes.
	vector, err := m.embedder.Embed(ctx, role+" "+description)
	if err != nil {
		return nil, fmt.Errorf("failed to embed job posting: %w", err)
	}

	clusterID, err := m.clusters.Assign(vector)
	if err != nil {
		return nil, fmt.Errorf("failed to assign cluster: %w", err)
	}

	job := &models.JobPosting{
		ID:          uuid.New(),
		Role:        role,
		Description: description,
		ClusterID:   clusterID,
		IsActive:    true,
	}

	if err := m.jobRepo.Create(job); err != nil {
		return nil, err
	}

	if err := m.vectors.UpsertJob(ctx, job.ID, vector, role, clusterID); err != nil {
		// Row stays authoritative; the worker reconciles the vector store.
		log.Printf("⚠️  Vector store write failed for job %s, flagged for resync: %v\n", job.ID, err)
		return job, nil
	}

	if err := m.jobRepo.MarkVectorSynced(job.ID); err != nil {
		log.Printf("⚠️  Failed to mark job %s synced: %v\n", job.ID, err)
	} else {
		job.VectorSynced = true
	}

	return job, nil
}

// MatchJobsForApplicant implements MatcherService. The applicant's most
// recent resume is the query; all active jobs are the corpus.
func (m *matcherService) MatchJobsForApplicant(ctx context.Context, applicantID uuid.UUID, topK int) ([]models.JobMatch, error) {
	if topK <= 0 {
		topK = DefaultMatchTopK
	}

	latest, err := m.applicationRepo.FindLatestByApplicant(applicantID)
	if err != nil {
		return nil, err
	}

	jobs, err := m.jobRepo.FindActive()
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no active jobs: %w", apperrors.ErrNotFound)
	}

	corpus := make([][]string, len(jobs))
	for i, job := range jobs {
		corpus[i] = Tokenize(job.Role + " " + job.Description)
	}

	index, err := NewBM25Index(corpus)
	if err != nil {
		return nil, err
	}

	scores := index.Scores(Tokenize(latest.ResumeText))

	results := make([]models.JobMatch, 0, topK)
	for _, i := range TopK(scores, topK) {
		results = append(results, models.JobMatch{
			JobID:              jobs[i].ID.String(),
			Role:               jobs[i].Role,
			Score:              scores[i],
			DescriptionPreview: truncateText(jobs[i].Description, jobPreviewLen),
		})
	}

	return results, nil
}

// Shortlist implements MatcherService. Candidates are pre-filtered to the
// target job's cluster (the semantic stage), then BM25-ranked against the
// job description (the lexical stage).
func (m *matcherService) Shortlist(ctx context.Context, jobID uuid.UUID, topK int) ([]models.ShortlistEntry, error) {
	if topK <= 0 {
		topK = DefaultShortlistTopK
	}

	job, err := m.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, err
	}

	applications, err := m.applicationRepo.FindByCluster(job.ClusterID)
	if err != nil {
		return nil, err
	}
	if len(applications) == 0 {
		return nil, fmt.Errorf("no applications in cluster %d: %w", job.ClusterID, apperrors.ErrNotFound)
	}

	corpus := make([][]string, len(applications))
	for i, application := range applications {
		corpus[i] = Tokenize(application.ResumeText)
	}

	index, err := NewBM25Index(corpus)
	if err != nil {
		return nil, err
	}

	scores := index.Scores(Tokenize(job.Description))

	results := make([]models.ShortlistEntry, 0, topK)
	for _, i := range TopK(scores, topK) {
		application := applications[i]

		applicant, err := m.applicantRepo.FindByID(application.ApplicantID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve applicant for application %s: %w", application.ID, err)
		}

		results = append(results, models.ShortlistEntry{
			ApplicationID: application.ID.String(),
			ApplicantID:   applicant.ID.String(),
			ApplicantName: applicant.FullName(),
			Email:         applicant.Email,
			Score:         scores[i],
			ResumePreview: truncateText(application.ResumeText, resumePreviewLen),
		})
	}

	return results, nil
}

// Explain implements MatcherService. Returns up to ten deduplicated query
// terms that are both in the candidate's BM25 vocabulary and present in
// the candidate text, case-insensitively. A heuristic "why", not a
// contribution score: the terms are not ranked by importance.
func (m *matcherService) Explain(queryText, candidateText string) []string {
	candidateLower := strings.ToLower(candidateText)

	index, err := NewBM25Index([][]string{Tokenize(candidateLower)})
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var terms []string
	for _, term := range Tokenize(strings.ToLower(queryText)) {
		if seen[term] {
			continue
		}
		if index.HasTerm(term) && strings.Contains(candidateLower, term) {
			seen[term] = true
			terms = append(terms, term)
			if len(terms) == maxExplainTerms {
				break
			}
		}
	}

	return terms
}

// truncateText shortens text to at most limit runes, appending "..." when
// something was cut. Purely presentational.
func truncateText(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
