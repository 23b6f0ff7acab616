package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/job-predictor/internal/services"
)

type HealthHandler struct {
	artifacts   *services.Artifacts
	persistence bool
}

func NewHealthHandler(artifacts *services.Artifacts, persistence bool) *HealthHandler {
	return &HealthHandler{
		artifacts:   artifacts,
		persistence: persistence,
	}
}

// HandleHealth reports "degraded" while the model cannot produce real predictions.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	status := h.artifacts.Status()

	state := "healthy"
	if !status.Classifier || !status.TargetDecoder {
		state = "degraded"
	}

	return c.JSON(fiber.Map{
		"status":      state,
		"time":        time.Now(),
		"artifacts":   status,
		"persistence": h.persistence,
	})
}
