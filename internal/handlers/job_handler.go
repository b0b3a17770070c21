package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirely/matching-api/internal/models"
	"hirely/matching-api/internal/repositories"
	"hirely/matching-api/internal/services"
)

type JobHandler struct {
	jobRepo repositories.JobRepository
	matcher services.MatcherService
}

func NewJobHandler(jobRepo repositories.JobRepository, matcher services.MatcherService) *JobHandler {
	return &JobHandler{
		jobRepo: jobRepo,
		matcher: matcher,
	}
}

// HandleList handles GET /jobs. Only active postings are listed.
func (h *JobHandler) HandleList(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.FindActive()
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// HandleCreate handles POST /jobs.
func (h *JobHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}

	job, err := h.matcher.CreateJob(c.Context(), req.Role, req.Description)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Job added successfully",
		"job":     job,
	})
}

// HandleDelete handles DELETE /jobs/:id. Soft delete: the posting drops
// out of listings and matching but its applications stay auditable.
func (h *JobHandler) HandleDelete(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job ID format",
		})
	}

	if err := h.jobRepo.Deactivate(jobID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Job deleted successfully",
	})
}
