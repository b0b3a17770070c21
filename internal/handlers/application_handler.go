package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirely/matching-api/internal/models"
	"hirely/matching-api/internal/repositories"
	"hirely/matching-api/internal/services"
)

type ApplicationHandler struct {
	applicationRepo repositories.ApplicationRepository
	applicantRepo   repositories.ApplicantRepository
	jobRepo         repositories.JobRepository
	storageService  services.StorageService
	pdfParser       services.PDFParserService
	maxFileSize     int64
}

func NewApplicationHandler(
	applicationRepo repositories.ApplicationRepository,
	applicantRepo repositories.ApplicantRepository,
	jobRepo repositories.JobRepository,
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	maxFileSize int64,
) *ApplicationHandler {
	return &ApplicationHandler{
		applicationRepo: applicationRepo,
		applicantRepo:   applicantRepo,
		jobRepo:         jobRepo,
		storageService:  storageService,
		pdfParser:       pdfParser,
		maxFileSize:     maxFileSize,
	}
}

// HandleApply handles POST /applications. Multipart form with applicant_id,
// job_id and a "resume" PDF. The application snapshots the job's cluster id
// at submission time; it is never recomputed afterwards.
func (h *ApplicationHandler) HandleApply(c *fiber.Ctx) error {
	applicantID, err := uuid.Parse(c.FormValue("applicant_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "applicant_id is required",
		})
	}

	jobID, err := uuid.Parse(c.FormValue("job_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_id is required",
		})
	}

	applicant, err := h.applicantRepo.FindByID(applicantID)
	if err != nil {
		return err
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return err
	}

	resumeFile, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no resume file provided",
		})
	}

	if resumeFile.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveResume(resumeFile)
	if err != nil {
		return err
	}

	resumeText, err := h.pdfParser.ExtractText(filePath)
	if err != nil {
		// No application without readable text
		h.storageService.DeleteFile(filename)
		return err
	}

	application := &models.Application{
		ID:             uuid.New(),
		ApplicantID:    applicant.ID,
		JobID:          job.ID,
		ClusterID:      job.ClusterID,
		ResumeText:     resumeText,
		ResumeFile:     filename,
		SubmissionDate: time.Now(),
	}

	if err := h.applicationRepo.Create(application); err != nil {
		h.storageService.DeleteFile(filename)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Application submitted successfully",
		"application": application,
	})
}

// HandleListByApplicant handles GET /applications/applicant/:id.
func (h *ApplicationHandler) HandleListByApplicant(c *fiber.Ctx) error {
	applicantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid applicant ID format",
		})
	}

	applications, err := h.applicationRepo.FindByApplicant(applicantID)
	if err != nil {
		return err
	}

	return c.JSON(applications)
}
