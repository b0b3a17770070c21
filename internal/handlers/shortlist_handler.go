package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirely/matching-api/internal/models"
	"hirely/matching-api/internal/repositories"
	"hirely/matching-api/internal/services"
)

type ShortlistHandler struct {
	matcher         services.MatcherService
	jobRepo         repositories.JobRepository
	applicationRepo repositories.ApplicationRepository
}

func NewShortlistHandler(
	matcher services.MatcherService,
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
) *ShortlistHandler {
	return &ShortlistHandler{
		matcher:         matcher,
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
	}
}

// HandleShortlist handles GET /shortlist/:jobId. Applicants in the job's
// cluster, BM25-ranked against the job description.
func (h *ShortlistHandler) HandleShortlist(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job ID format",
		})
	}

	topK := c.QueryInt("top_k", services.DefaultShortlistTopK)

	entries, err := h.matcher.Shortlist(c.Context(), jobID, topK)
	if err != nil {
		return err
	}

	return c.JSON(entries)
}

// HandleExplain handles GET /shortlist/explain/:applicationId. Extracts the
// job-description terms present in the application's resume.
func (h *ShortlistHandler) HandleExplain(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("applicationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid application ID format",
		})
	}

	application, err := h.applicationRepo.FindByID(applicationID)
	if err != nil {
		return err
	}

	job, err := h.jobRepo.FindByID(application.JobID)
	if err != nil {
		return err
	}

	terms := h.matcher.Explain(job.Description, application.ResumeText)

	return c.JSON(models.MatchExplanation{
		JobID:         job.ID.String(),
		JobRole:       job.Role,
		ApplicationID: application.ID.String(),
		MatchingTerms: terms,
		Explanation:   explanationSentence(terms, "the resume contains relevant terms like %s that match the job requirements"),
	})
}
