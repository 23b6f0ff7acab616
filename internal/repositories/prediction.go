package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/job-predictor/internal/models"
)

var ErrPredictionNotFound = errors.New("prediction not found")

type PredictionRepository interface {
	Create(ctx context.Context, record *models.PredictionRecord) error
	FindByUserID(ctx context.Context, userID string, limit int) ([]models.PredictionRecord, error)
	Delete(ctx context.Context, id uuid.UUID, userID string) error
}

type predictionRepository struct {
	db *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) Create(ctx context.Context, record *models.PredictionRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create prediction: %w", err)
	}
	return nil
}

// FindByUserID returns the user's predictions, newest first. A non-positive
// limit returns every row.
func (r *predictionRepository) FindByUserID(ctx context.Context, userID string, limit int) ([]models.PredictionRecord, error) {
	var records []models.PredictionRecord

	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to find predictions: %w", err)
	}
	return records, nil
}

func (r *predictionRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.PredictionRecord{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete prediction: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrPredictionNotFound
	}

	return nil
}
