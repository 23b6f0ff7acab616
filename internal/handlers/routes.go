package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the API. POST /predict stays at the root for clients
// of the original service.
func RegisterRoutes(app *fiber.App, predict *PredictHandler, history *HistoryHandler, health *HealthHandler) {
	app.Post("/predict", predict.HandlePredict)

	api := app.Group("/api/v1")

	api.Get("/health", health.HandleHealth)

	api.Post("/predict", predict.HandlePredict)
	api.Get("/predictions", history.HandleList)
	api.Delete("/predictions/:id", history.HandleDelete)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Job Role Predictor API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /predict",
				"POST /api/v1/predict",
				"GET /api/v1/predictions?user_id=",
				"DELETE /api/v1/predictions/:id?user_id=",
				"GET /api/v1/health",
			},
		})
	})
}
