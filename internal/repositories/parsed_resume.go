package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/resume-screener/internal/models"
)

type ParsedResumeRepository interface {
	FindByFileHash(fileHash string) (*models.ParsedResume, error)
	Upsert(row *models.ParsedResume) error
	All() ([]models.ParsedResume, error)
}

type parsedResumeRepository struct {
	db *gorm.DB
}

func NewParsedResumeRepository(db *gorm.DB) ParsedResumeRepository {
	return &parsedResumeRepository{db: db}
}

// FindByFileHash implements ParsedResumeRepository. A missing row surfaces as
// gorm.ErrRecordNotFound so callers can tell a miss from a store fault.
func (r *parsedResumeRepository) FindByFileHash(fileHash string) (*models.ParsedResume, error) {
	var row models.ParsedResume
	if err := r.db.Where("file_hash = ?", fileHash).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find parsed resume: %w", err)
	}

	return &row, nil
}

// Upsert implements ParsedResumeRepository. Last-writer-wins on file_hash:
// the payload is a deterministic function of the content, so a concurrent
// duplicate write replaces it with an equivalent value.
func (r *parsedResumeRepository) Upsert(row *models.ParsedResume) error {
	row.UpdatedAt = time.Now()
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "file_hash"}},
		DoUpdates: clause.AssignmentColumns([]string{"parsed_data", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert parsed resume: %w", err)
	}

	return nil
}

// All implements ParsedResumeRepository. Used by the reindex script.
func (r *parsedResumeRepository) All() ([]models.ParsedResume, error) {
	var rows []models.ParsedResume
	if err := r.db.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list parsed resumes: %w", err)
	}

	return rows, nil
}
