package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/medchain/portal/internal/domain"
	"github.com/medchain/portal/internal/guard"
	"github.com/medchain/portal/internal/portal/dto"
	"github.com/medchain/portal/internal/session"
)

// AuthHandler exposes the portal login, signup, and logout endpoints. It only
// drives the session manager; the manager owns every state transition.
type AuthHandler struct{}

// NewAuthHandler constructs handler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	mgr, ok := session.FromContext(c)
	if !ok {
		return fiber.NewError(http.StatusInternalServerError, "no client session")
	}

	identity, err := mgr.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user":     userResponse(identity),
			"redirect": guard.LandingRoute,
		},
	})
}

// Signup handles POST /signup. No session is established; the browser is
// pointed at login afterward.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	mgr, ok := session.FromContext(c)
	if !ok {
		return fiber.NewError(http.StatusInternalServerError, "no client session")
	}

	identity, err := mgr.SignupUser(c.UserContext(), domain.SignupData{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user":     userResponse(identity),
			"redirect": guard.LoginRoute,
		},
	})
}

// Logout handles POST /logout. Synchronous, no upstream call.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if mgr, ok := session.FromContext(c); ok {
		mgr.LogoutUser(c.UserContext())
	}
	return c.Redirect(guard.LoginRoute, fiber.StatusSeeOther)
}

// Refresh handles POST /session/refresh. Verification re-runs silently: a
// failed refresh keeps the current session rather than logging the user out.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	mgr, ok := session.FromContext(c)
	if !ok {
		return fiber.NewError(http.StatusInternalServerError, "no client session")
	}
	mgr.RefreshUser(c.UserContext())
	return h.Session(c)
}

// Session handles GET /session, exposing the read-only session state the
// browser shell renders from.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	mgr, ok := session.FromContext(c)
	if !ok {
		return fiber.NewError(http.StatusInternalServerError, "no client session")
	}

	sess := mgr.Snapshot()
	payload := fiber.Map{
		"status":        string(sess.Status),
		"authenticated": sess.Authenticated(),
	}
	if sess.User != nil {
		payload["user"] = userResponse(sess.User)
	}
	if sess.ErrorMessage != "" {
		payload["error"] = sess.ErrorMessage
	}
	return c.JSON(fiber.Map{"data": payload})
}

func userResponse(identity *domain.UserIdentity) dto.UserResponse {
	return dto.UserResponse{
		ID:       identity.ID,
		Email:    identity.Email,
		Username: identity.Username,
		Role:     string(identity.Role),
	}
}
