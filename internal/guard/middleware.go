package guard

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/medchain/portal/internal/domain"
	"github.com/medchain/portal/internal/session"
)

// RequireAuthenticated guards a route that any signed-in user may reach.
func RequireAuthenticated() fiber.Handler {
	return guardHandler(domain.RouteRequirement{})
}

// RequireRole guards a route reserved for one role. An authenticated user of
// another role is sent to the dashboard, not to login.
func RequireRole(role domain.Role) fiber.Handler {
	return guardHandler(domain.RouteRequirement{RequiredRole: role})
}

func guardHandler(req domain.RouteRequirement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mgr, ok := session.FromContext(c)
		if !ok {
			return c.Redirect(LoginRoute, fiber.StatusFound)
		}

		switch decision := Decide(mgr.Snapshot(), req); decision.Action {
		case ActionLoading:
			return c.JSON(fiber.Map{"status": "loading"})
		case ActionRedirect:
			return c.Redirect(decision.Target, fiber.StatusFound)
		default:
			return c.Next()
		}
	}
}

// ProfileChecker is the slice of the upstream client the gate depends on.
type ProfileChecker interface {
	ProfileExists(ctx context.Context, credential string) (domain.ProfileStatus, error)
}

// NewProfileGate redirects patients without a completed profile to the
// onboarding form. Doctors and admins skip the check entirely. A confirmed
// profile is cached on the session manager, so the upstream is asked at most
// until it first answers exists=true. A failed check is logged and the
// navigation allowed: an unrelated outage must not lock users out.
func NewProfileGate(upstream ProfileChecker, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mgr, ok := session.FromContext(c)
		if !ok {
			return c.Next()
		}

		sess := mgr.Snapshot()
		if !sess.Authenticated() || sess.User.Role != domain.RolePatient || mgr.ProfileComplete() {
			return c.Next()
		}

		cred, ok := mgr.Credential(c.UserContext())
		if !ok {
			return c.Next()
		}

		status, err := upstream.ProfileExists(c.UserContext(), cred)
		if err != nil {
			logger.Warn("profile check failed, allowing navigation", zap.Error(err))
			return c.Next()
		}
		if status.Exists {
			mgr.MarkProfileComplete()
			return c.Next()
		}
		if c.Path() != OnboardingRoute {
			return c.Redirect(OnboardingRoute, fiber.StatusFound)
		}
		return c.Next()
	}
}
