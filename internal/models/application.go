package models

import (
	"time"

	"github.com/google/uuid"
)

// Application records an applicant submitting a resume to a job. ClusterID
// is copied from the job at submission time, deliberately not recomputed
// from the resume later: it captures the cluster context the applicant
// applied under, and Shortlist filters on it.
type Application struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ApplicantID    uuid.UUID `gorm:"type:uuid;not null;index" json:"applicant_id"`
	JobID          uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	ClusterID      int       `gorm:"not null;index" json:"cluster_id"`
	ResumeText     string    `gorm:"type:text;not null" json:"-"`
	ResumeFile     string    `gorm:"type:varchar(255)" json:"resume_file"`
	SubmissionDate time.Time `gorm:"type:timestamp;default:now()" json:"submission_date"`

	// Relations
	Applicant Applicant  `gorm:"foreignKey:ApplicantID" json:"-"`
	Job       JobPosting `gorm:"foreignKey:JobID" json:"-"`
}

func (a *Application) TableName() string {
	return "applications"
}
