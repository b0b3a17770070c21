package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hirely/matching-api/internal/apperrors"
	"hirely/matching-api/internal/models"
)

type ApplicantRepository interface {
	Create(applicant *models.Applicant) error
	FindByID(id uuid.UUID) (*models.Applicant, error)
}

type applicantRepository struct {
	db *gorm.DB
}

func NewApplicantRepository(db *gorm.DB) ApplicantRepository {
	return &applicantRepository{db: db}
}

// Create implements ApplicantRepository. A duplicate email is a Conflict,
// not a crash: the unique index decides the race.
func (r *applicantRepository) Create(applicant *models.Applicant) error {
	if err := r.db.Create(applicant).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email %s: %w", applicant.Email, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create applicant: %w", err)
	}

	return nil
}

// FindByID implements ApplicantRepository.
func (r *applicantRepository) FindByID(id uuid.UUID) (*models.Applicant, error) {
	var applicant models.Applicant
	if err := r.db.Where("id = ?", id).First(&applicant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("applicant %s: %w", id, apperrors.ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find applicant: %w", err)
	}

	return &applicant, nil
}
