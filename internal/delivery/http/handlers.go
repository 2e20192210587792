package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ucube/wqi-forecast/internal/domain"
	"github.com/ucube/wqi-forecast/internal/service"
)

// ForecastLimits bounds the days query parameter of the future endpoint
type ForecastLimits struct {
	DefaultDays int
	MaxDays     int
}

// Handler contains all HTTP handlers
type Handler struct {
	predictionSvc *service.PredictionService
	limits        ForecastLimits
}

// NewHandler creates a new handler
func NewHandler(predictionSvc *service.PredictionService, limits ForecastLimits) *Handler {
	return &Handler{
		predictionSvc: predictionSvc,
		limits:        limits,
	}
}

// Root returns a static liveness message
func (h *Handler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Basin WQI forecast API server",
	})
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// ModelInfo describes the loaded model and encoder
func (h *Handler) ModelInfo(c *fiber.Ctx) error {
	return c.JSON(h.predictionSvc.ModelInfo())
}

// PredictWithSensors predicts every supplied observation date per basin
func (h *Handler) PredictWithSensors(c *fiber.Ctx) error {
	req, err := parsePredictionRequest(c)
	if err != nil {
		return err
	}

	predictions, err := h.predictionSvc.PredictWithSensors(c.Context(), req)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to run predictions")
	}

	return c.JSON(predictions)
}

// PredictFuture forecasts the next days from each basin's last observation
func (h *Handler) PredictFuture(c *fiber.Ctx) error {
	days := h.limits.DefaultDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "days must be an integer")
		}
		days = parsed
	}
	if days < 1 || days > h.limits.MaxDays {
		return fiber.NewError(fiber.StatusBadRequest,
			"days must be between 1 and "+strconv.Itoa(h.limits.MaxDays))
	}

	req, err := parsePredictionRequest(c)
	if err != nil {
		return err
	}

	predictions, err := h.predictionSvc.PredictFuture(c.Context(), req, days)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to run predictions")
	}

	return c.JSON(predictions)
}

func parsePredictionRequest(c *fiber.Ctx) (domain.PredictionRequest, error) {
	var req domain.PredictionRequest
	if err := c.BodyParser(&req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.AllSensorData == nil {
		return req, fiber.NewError(fiber.StatusBadRequest, "all_sensor_data is required")
	}
	return req, nil
}

// ErrorHandler renders errors in the service's error envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
