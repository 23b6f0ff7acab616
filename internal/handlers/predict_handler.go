package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/job-predictor/internal/models"
	"alfredoptarigan/job-predictor/internal/services"
)

type PredictHandler struct {
	predictionService services.PredictionService
	log               *zap.Logger
}

func NewPredictHandler(predictionService services.PredictionService, log *zap.Logger) *PredictHandler {
	return &PredictHandler{
		predictionService: predictionService,
		log:               log,
	}
}

// HandlePredict handles POST /predict. It always answers 200 with top_jobs;
// a body that is not a JSON object is treated as an empty profile.
func (h *PredictHandler) HandlePredict(c *fiber.Ctx) error {
	var raw map[string]interface{}
	if body := c.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &raw); err != nil {
			h.log.Warn("invalid prediction payload, using empty profile", zap.Error(err))
			raw = nil
		}
	}

	profile := models.ProfileFromMap(raw)
	result := h.predictionService.Predict(c.UserContext(), profile)

	topJobs := result.Jobs
	if topJobs == nil {
		topJobs = []models.JobPrediction{}
	}

	return c.JSON(models.PredictResponse{TopJobs: topJobs})
}
