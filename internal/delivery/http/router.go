package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ucube/wqi-forecast/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, predictionSvc *service.PredictionService, limits ForecastLimits) {
	handler := NewHandler(predictionSvc, limits)

	// Liveness
	app.Get("/", handler.Root)
	app.Get("/health", handler.HealthCheck)
	app.Get("/model", handler.ModelInfo)

	// Prediction endpoints
	predict := app.Group("/predict")
	{
		predict.Post("/all_with_sensors", handler.PredictWithSensors)
		predict.Post("/future", handler.PredictFuture)
	}
}
