package models

import (
	"time"

	"github.com/google/uuid"
)

// ScreeningResult is one cache row per (document, job) pair. The job title and
// description that produced the score are stored alongside the payload for
// auditability.
type ScreeningResult struct {
	ID             uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ScreeningKey   string      `gorm:"type:text;uniqueIndex;not null" json:"screening_key"`
	FileHash       string      `gorm:"type:text;index;not null" json:"file_hash"`
	JobTitle       string      `gorm:"type:text;not null" json:"job_title"`
	JobDescription string      `gorm:"type:text;not null" json:"job_description"`
	ScreeningData  JSONPayload `gorm:"type:jsonb;not null" json:"screening_data"`
	CreatedAt      time.Time   `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (ScreeningResult) TableName() string {
	return "screening_results"
}
