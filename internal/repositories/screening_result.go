package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/resume-screener/internal/models"
)

type ScreeningResultRepository interface {
	FindByScreeningKey(screeningKey string) (*models.ScreeningResult, error)
	Upsert(row *models.ScreeningResult) error
}

type screeningResultRepository struct {
	db *gorm.DB
}

func NewScreeningResultRepository(db *gorm.DB) ScreeningResultRepository {
	return &screeningResultRepository{db: db}
}

// FindByScreeningKey implements ScreeningResultRepository.
func (r *screeningResultRepository) FindByScreeningKey(screeningKey string) (*models.ScreeningResult, error) {
	var row models.ScreeningResult
	if err := r.db.Where("screening_key = ?", screeningKey).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find screening result: %w", err)
	}

	return &row, nil
}

// Upsert implements ScreeningResultRepository. Last-writer-wins on
// screening_key.
func (r *screeningResultRepository) Upsert(row *models.ScreeningResult) error {
	row.UpdatedAt = time.Now()
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "screening_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"file_hash", "job_title", "job_description", "screening_data", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert screening result: %w", err)
	}

	return nil
}
