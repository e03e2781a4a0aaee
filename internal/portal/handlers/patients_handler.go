package handlers

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
)

// PatientsUpstream is the slice of the upstream client the roster view needs.
type PatientsUpstream interface {
	ListPatients(ctx context.Context, credential string) (json.RawMessage, error)
}

// PatientsHandler serves the doctor's patient roster.
type PatientsHandler struct {
	upstream PatientsUpstream
}

// NewPatientsHandler constructs handler.
func NewPatientsHandler(upstream PatientsUpstream) *PatientsHandler {
	return &PatientsHandler{upstream: upstream}
}

// List handles GET /patients, proxying the roster for the signed-in doctor.
func (h *PatientsHandler) List(c *fiber.Ctx) error {
	_, _, cred, err := currentSession(c)
	if err != nil {
		return err
	}

	payload, err := h.upstream.ListPatients(c.UserContext(), cred)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": payload})
}
