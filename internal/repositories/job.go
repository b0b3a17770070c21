package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"hirely/matching-api/internal/apperrors"
	"hirely/matching-api/internal/models"
)

type JobRepository interface {
	Create(job *models.JobPosting) error
	FindByID(id uuid.UUID) (*models.JobPosting, error)
	FindActive() ([]models.JobPosting, error)
	Deactivate(id uuid.UUID) error
	MarkVectorSynced(id uuid.UUID) error
	FindUnsynced(limit int) ([]models.JobPosting, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create implements JobRepository.
func (r *jobRepository) Create(job *models.JobPosting) error {
	if err := r.db.Create(job).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("job %s: %w", job.ID, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// FindByID implements JobRepository.
func (r *jobRepository) FindByID(id uuid.UUID) (*models.JobPosting, error) {
	var job models.JobPosting
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %s: %w", id, apperrors.ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	return &job, nil
}

// FindActive implements JobRepository.
func (r *jobRepository) FindActive() ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	err := r.db.
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}

	return jobs, nil
}

// Deactivate implements JobRepository. Jobs are never hard-deleted so
// existing applications keep a valid reference.
func (r *jobRepository) Deactivate(id uuid.UUID) error {
	result := r.db.Model(&models.JobPosting{}).
		Where("id = ?", id).
		Update("is_active", false)

	if result.Error != nil {
		return fmt.Errorf("failed to deactivate job: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("job %s: %w", id, apperrors.ErrNotFound)
	}

	return nil
}

// MarkVectorSynced implements JobRepository.
func (r *jobRepository) MarkVectorSynced(id uuid.UUID) error {
	result := r.db.Model(&models.JobPosting{}).
		Where("id = ?", id).
		Update("vector_synced", true)

	if result.Error != nil {
		return fmt.Errorf("failed to mark job synced: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("job %s: %w", id, apperrors.ErrNotFound)
	}

	return nil
}

// FindUnsynced implements JobRepository. Returns active jobs whose vector
// store write has not succeeded yet, oldest first.
func (r *jobRepository) FindUnsynced(limit int) ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	err := r.db.
		Where("is_active = ? AND vector_synced = ?", true, false).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find unsynced jobs: %w", err)
	}

	return jobs, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505). The relational store's constraints are the
// authoritative guard against racing creates.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
