package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/medchain/portal/internal/guard"
)

// ProfileUpstream is the slice of the upstream client onboarding needs.
type ProfileUpstream interface {
	CreateProfile(ctx context.Context, credential string, fields map[string]any) (json.RawMessage, error)
}

// ProfileHandler serves the patient onboarding step.
type ProfileHandler struct {
	upstream ProfileUpstream
}

// NewProfileHandler constructs handler.
func NewProfileHandler(upstream ProfileUpstream) *ProfileHandler {
	return &ProfileHandler{upstream: upstream}
}

// Show handles GET /complete-profile, describing the onboarding form.
func (h *ProfileHandler) Show(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{
		"status": "onboarding",
		"fields": []string{"first_name", "last_name", "date_of_birth", "gender", "blood_group"},
	}})
}

// Submit handles POST /complete-profile. A confirmed creation marks the
// session profile-complete so the gate never redirects this client again.
func (h *ProfileHandler) Submit(c *fiber.Ctx) error {
	fields := map[string]any{}
	if err := c.BodyParser(&fields); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if len(fields) == 0 {
		return fiber.NewError(http.StatusBadRequest, "profile fields required")
	}

	mgr, _, cred, err := currentSession(c)
	if err != nil {
		return err
	}

	if _, err := h.upstream.CreateProfile(c.UserContext(), cred, fields); err != nil {
		return err
	}
	mgr.MarkProfileComplete()

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"redirect": guard.LandingRoute,
	}})
}
