package models

import (
	"time"

	"github.com/google/uuid"
)

// ParsedResume is one cache row per unique document: the parsing oracle's
// structured output keyed by the document fingerprint. Rows are created on the
// first successful parse and never deleted by the service.
type ParsedResume struct {
	ID         uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FileHash   string      `gorm:"type:text;uniqueIndex;not null" json:"file_hash"`
	ParsedData JSONPayload `gorm:"type:jsonb;not null" json:"parsed_data"`
	CreatedAt  time.Time   `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (ParsedResume) TableName() string {
	return "parsed_resumes"
}
