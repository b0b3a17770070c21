package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hirely/matching-api/internal/apperrors"
	"hirely/matching-api/internal/models"
)

type ApplicationRepository interface {
	Create(application *models.Application) error
	FindByID(id uuid.UUID) (*models.Application, error)
	FindByApplicant(applicantID uuid.UUID) ([]models.Application, error)
	FindLatestByApplicant(applicantID uuid.UUID) (*models.Application, error)
	FindByCluster(clusterID int) ([]models.Application, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create implements ApplicationRepository.
func (r *applicationRepository) Create(application *models.Application) error {
	if err := r.db.Create(application).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("application: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// FindByID implements ApplicationRepository.
func (r *applicationRepository) FindByID(id uuid.UUID) (*models.Application, error) {
	var application models.Application
	if err := r.db.Where("id = ?", id).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application %s: %w", id, apperrors.ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	return &application, nil
}

// FindByApplicant implements ApplicationRepository.
func (r *applicationRepository) FindByApplicant(applicantID uuid.UUID) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.
		Where("applicant_id = ?", applicantID).
		Order("submission_date DESC").
		Find(&applications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return applications, nil
}

// FindLatestByApplicant implements ApplicationRepository. The most recent
// submission carries the resume text used as the matchmaking query.
func (r *applicationRepository) FindLatestByApplicant(applicantID uuid.UUID) (*models.Application, error) {
	var application models.Application
	err := r.db.
		Where("applicant_id = ?", applicantID).
		Order("submission_date DESC").
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no applications for applicant %s: %w", applicantID, apperrors.ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find latest application: %w", err)
	}

	return &application, nil
}

// FindByCluster implements ApplicationRepository. Order is fixed so BM25
// tie-breaking by corpus index stays reproducible across requests.
func (r *applicationRepository) FindByCluster(clusterID int) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.
		Where("cluster_id = ?", clusterID).
		Order("submission_date ASC").
		Find(&applications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by cluster: %w", err)
	}

	return applications, nil
}
