package models

import (
	"time"

	"github.com/google/uuid"
)

// JobPosting is an employer's posted job. ClusterID is assigned exactly once
// at creation from the posting's embedding and never changes afterwards.
// Jobs are deleted logically via IsActive so applications stay auditable.
type JobPosting struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Role         string    `gorm:"type:varchar(100);not null" json:"role"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	ClusterID    int       `gorm:"not null" json:"cluster_id"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	VectorSynced bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt    time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (j *JobPosting) TableName() string {
	return "jobs"
}
