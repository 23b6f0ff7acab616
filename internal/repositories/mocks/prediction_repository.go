package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"alfredoptarigan/job-predictor/internal/models"
)

// PredictionRepository is a testify mock of repositories.PredictionRepository.
type PredictionRepository struct {
	mock.Mock
}

func (m *PredictionRepository) Create(ctx context.Context, record *models.PredictionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *PredictionRepository) FindByUserID(ctx context.Context, userID string, limit int) ([]models.PredictionRecord, error) {
	args := m.Called(ctx, userID, limit)
	records, _ := args.Get(0).([]models.PredictionRecord)
	return records, args.Error(1)
}

func (m *PredictionRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
