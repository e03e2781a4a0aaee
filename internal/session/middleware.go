package session

import "github.com/gofiber/fiber/v2"

const managerKey = "portal_session_manager"

// NewMiddleware resolves the per-client session manager from the session
// cookie, minting a cookie for first-time visitors, and bootstraps the
// session from any stored credential before the route runs.
func NewMiddleware(registry *Registry, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientID := c.Cookies(cookieName)
		if clientID == "" {
			clientID = registry.NewClientID()
			c.Cookie(&fiber.Cookie{
				Name:     cookieName,
				Value:    clientID,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		mgr := registry.Manager(clientID)
		mgr.Bootstrap(c.UserContext())
		c.Locals(managerKey, mgr)
		return c.Next()
	}
}

// FromContext retrieves the session manager for the current client.
func FromContext(c *fiber.Ctx) (*Manager, bool) {
	val := c.Locals(managerKey)
	if val == nil {
		return nil, false
	}
	mgr, ok := val.(*Manager)
	return mgr, ok
}
