package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/medchain/portal/internal/portal/dto"
)

// PredictionUpstream is the slice of the upstream client the prediction view needs.
type PredictionUpstream interface {
	PredictDisease(ctx context.Context, credential string, symptoms []string) (json.RawMessage, error)
}

// PredictionHandler serves the symptom-based disease-prediction view. The
// model itself is an opaque external service.
type PredictionHandler struct {
	upstream PredictionUpstream
}

// NewPredictionHandler constructs handler.
func NewPredictionHandler(upstream PredictionUpstream) *PredictionHandler {
	return &PredictionHandler{upstream: upstream}
}

// Predict handles POST /predict.
func (h *PredictionHandler) Predict(c *fiber.Ctx) error {
	var req dto.PredictionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if len(req.Symptoms) == 0 {
		return fiber.NewError(http.StatusBadRequest, "at least one symptom required")
	}

	_, _, cred, err := currentSession(c)
	if err != nil {
		return err
	}

	payload, err := h.upstream.PredictDisease(c.UserContext(), cred, req.Symptoms)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": payload})
}
