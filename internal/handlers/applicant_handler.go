package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirely/matching-api/internal/models"
	"hirely/matching-api/internal/repositories"
)

type ApplicantHandler struct {
	applicantRepo repositories.ApplicantRepository
}

func NewApplicantHandler(applicantRepo repositories.ApplicantRepository) *ApplicantHandler {
	return &ApplicantHandler{
		applicantRepo: applicantRepo,
	}
}

// HandleRegister handles POST /applicants. Authentication is someone
// else's job; this only creates the profile row.
func (h *ApplicantHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterApplicantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}

	if strings.TrimSpace(req.FirstName) == "" ||
		strings.TrimSpace(req.LastName) == "" ||
		strings.TrimSpace(req.Email) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "first_name, last_name and email are required",
		})
	}

	applicant := &models.Applicant{
		ID:        uuid.New(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	}

	if err := h.applicantRepo.Create(applicant); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Applicant registered successfully",
		"applicant": applicant,
	})
}

// HandleGet handles GET /applicants/:id.
func (h *ApplicantHandler) HandleGet(c *fiber.Ctx) error {
	applicantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid applicant ID format",
		})
	}

	applicant, err := h.applicantRepo.FindByID(applicantID)
	if err != nil {
		return err
	}

	return c.JSON(applicant)
}
