package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/medchain/portal/internal/domain"
	"github.com/medchain/portal/internal/session"
)

// DashboardUpstream is the slice of the upstream client the dashboard needs.
type DashboardUpstream interface {
	PatientDashboard(ctx context.Context, credential string) (json.RawMessage, error)
	ListPatients(ctx context.Context, credential string) (json.RawMessage, error)
}

// DashboardHandler serves the role-agnostic landing route.
type DashboardHandler struct {
	upstream DashboardUpstream
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(upstream DashboardUpstream) *DashboardHandler {
	return &DashboardHandler{upstream: upstream}
}

// Show handles GET /dashboard, proxying the role-appropriate upstream view.
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	_, sess, cred, err := currentSession(c)
	if err != nil {
		return err
	}

	var payload json.RawMessage
	switch sess.User.Role {
	case domain.RolePatient:
		payload, err = h.upstream.PatientDashboard(c.UserContext(), cred)
	case domain.RoleDoctor, domain.RoleAdmin:
		// Admins land on the roster too; the upstream scopes the query by
		// the role baked into the credential.
		payload, err = h.upstream.ListPatients(c.UserContext(), cred)
	default:
		return fiber.NewError(http.StatusForbidden, "unrecognized role")
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"role":      string(sess.User.Role),
		"dashboard": payload,
	}})
}

// currentSession pulls the manager, a session snapshot, and the credential for
// a guarded route. The guard has already established that the session is
// authenticated; a missing credential here means it was cleared mid-flight.
func currentSession(c *fiber.Ctx) (*session.Manager, domain.Session, string, error) {
	mgr, ok := session.FromContext(c)
	if !ok {
		return nil, domain.Session{}, "", fiber.NewError(http.StatusInternalServerError, "no client session")
	}
	sess := mgr.Snapshot()
	if sess.User == nil {
		return nil, domain.Session{}, "", fiber.NewError(http.StatusUnauthorized, "not authenticated")
	}
	cred, ok := mgr.Credential(c.UserContext())
	if !ok {
		return nil, domain.Session{}, "", fiber.NewError(http.StatusUnauthorized, "not authenticated")
	}
	return mgr, sess, cred, nil
}
