package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/job-predictor/internal/models"
	"alfredoptarigan/job-predictor/internal/repositories"
)

type HistoryHandler struct {
	predictionRepo repositories.PredictionRepository
	log            *zap.Logger
}

// NewHistoryHandler builds the history endpoints. predictionRepo is nil when
// the service runs without a database.
func NewHistoryHandler(predictionRepo repositories.PredictionRepository, log *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		predictionRepo: predictionRepo,
		log:            log,
	}
}

// HandleList handles GET /predictions?user_id=
func (h *HistoryHandler) HandleList(c *fiber.Ctx) error {
	if h.predictionRepo == nil {
		return persistenceUnavailable(c)
	}

	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	records, err := h.predictionRepo.FindByUserID(c.UserContext(), userID, c.QueryInt("limit", 0))
	if err != nil {
		h.log.Error("failed to load prediction history", zap.String("user_id", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load predictions",
		})
	}

	history := make([]models.PredictionHistoryItem, 0, len(records))
	for _, record := range records {
		topJobs := []models.JobPrediction{}
		if record.TopJobs != "" {
			if err := json.Unmarshal([]byte(record.TopJobs), &topJobs); err != nil {
				h.log.Warn("stored top_jobs is not valid JSON",
					zap.String("id", record.ID.String()),
					zap.Error(err),
				)
				topJobs = []models.JobPrediction{}
			}
		}

		history = append(history, models.PredictionHistoryItem{
			ID:      record.ID.String(),
			UserID:  record.UserID,
			CGPA:    record.CGPA,
			Degree:  record.Degree,
			Major:   record.Major,
			Skills:  record.Skills,
			Role:    record.Role,
			TopJobs: topJobs,
			Date:    record.CreatedAt,
		})
	}

	return c.JSON(history)
}

// HandleDelete handles DELETE /predictions/:id?user_id=
func (h *HistoryHandler) HandleDelete(c *fiber.Ctx) error {
	if h.predictionRepo == nil {
		return persistenceUnavailable(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid prediction ID format",
		})
	}

	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	if err := h.predictionRepo.Delete(c.UserContext(), id, userID); err != nil {
		if errors.Is(err, repositories.ErrPredictionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Prediction not found",
			})
		}
		h.log.Error("failed to delete prediction", zap.String("id", id.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete prediction",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Prediction deleted",
	})
}

func persistenceUnavailable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": "Prediction history is unavailable",
	})
}
