package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirely/matching-api/internal/models"
	"hirely/matching-api/internal/repositories"
	"hirely/matching-api/internal/services"
)

type MatchHandler struct {
	matcher         services.MatcherService
	jobRepo         repositories.JobRepository
	applicationRepo repositories.ApplicationRepository
}

func NewMatchHandler(
	matcher services.MatcherService,
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
) *MatchHandler {
	return &MatchHandler{
		matcher:         matcher,
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
	}
}

// HandleMatches handles GET /matchmaking/applicant/:id. Ranks active jobs
// against the applicant's most recent resume.
func (h *MatchHandler) HandleMatches(c *fiber.Ctx) error {
	applicantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid applicant ID format",
		})
	}

	topK := c.QueryInt("top_k", services.DefaultMatchTopK)

	matches, err := h.matcher.MatchJobsForApplicant(c.Context(), applicantID, topK)
	if err != nil {
		return err
	}

	return c.JSON(matches)
}

// HandleExplain handles GET /matchmaking/explain/:applicantId/:jobId.
// Extracts the resume terms shared with the job posting.
func (h *MatchHandler) HandleExplain(c *fiber.Ctx) error {
	applicantID, err := uuid.Parse(c.Params("applicantId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid applicant ID format",
		})
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job ID format",
		})
	}

	latest, err := h.applicationRepo.FindLatestByApplicant(applicantID)
	if err != nil {
		return err
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return err
	}

	terms := h.matcher.Explain(latest.ResumeText, job.Role+" "+job.Description)

	return c.JSON(models.MatchExplanation{
		JobID:         job.ID.String(),
		JobRole:       job.Role,
		MatchingTerms: terms,
		Explanation:   explanationSentence(terms, "your resume contains relevant terms like %s that align with the job requirements"),
	})
}

// explanationSentence builds the human-readable summary from the first few
// matching terms.
func explanationSentence(terms []string, format string) string {
	if len(terms) == 0 {
		return "No overlapping terms were found for this match."
	}

	sample := terms
	if len(sample) > 3 {
		sample = sample[:3]
	}

	return "This matches because " + fmt.Sprintf(format, strings.Join(sample, ", ")) + "."
}
