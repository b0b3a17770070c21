package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Applicant is a registered job seeker. Authentication lives outside this
// service; handlers receive an already-authenticated applicant id.
type Applicant struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FirstName string    `gorm:"type:varchar(80);not null" json:"first_name"`
	LastName  string    `gorm:"type:varchar(80);not null" json:"last_name"`
	Email     string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (a *Applicant) TableName() string {
	return "applicants"
}

// FullName returns "Last, First" for shortlist listings.
func (a *Applicant) FullName() string {
	return strings.TrimSpace(a.LastName + ", " + a.FirstName)
}
