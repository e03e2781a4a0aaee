package portal

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medchain/portal/internal/domain"
	"github.com/medchain/portal/internal/guard"
	"github.com/medchain/portal/internal/portal/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Dashboard  *handlers.DashboardHandler
	Records    *handlers.RecordsHandler
	Patients   *handlers.PatientsHandler
	Chat       *handlers.ChatHandler
	Prediction *handlers.PredictionHandler
	Profile    *handlers.ProfileHandler

	// SessionMiddleware resolves the per-client session manager.
	SessionMiddleware fiber.Handler
	// ProfileGate redirects un-onboarded patients to /complete-profile.
	ProfileGate fiber.Handler
}

// RegisterRoutes wires HTTP routes. Role requirements are declared here, at
// routing-table construction time, and enforced by the guard on every request.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.SessionMiddleware)

	app.Post("/login", cfg.Auth.Login)
	app.Post("/signup", cfg.Auth.Signup)
	app.Post("/logout", cfg.Auth.Logout)
	app.Get("/session", cfg.Auth.Session)
	app.Post("/session/refresh", cfg.Auth.Refresh)

	app.Get("/dashboard", guard.RequireAuthenticated(), cfg.ProfileGate, cfg.Dashboard.Show)

	app.Get("/records", guard.RequireRole(domain.RolePatient), cfg.ProfileGate, cfg.Records.List)
	app.Post("/records", guard.RequireRole(domain.RolePatient), cfg.ProfileGate, cfg.Records.Upload)
	app.Get("/patients", guard.RequireRole(domain.RoleDoctor), cfg.Patients.List)
	app.Post("/chat", guard.RequireRole(domain.RolePatient), cfg.ProfileGate, cfg.Chat.Ask)
	app.Post("/predict", guard.RequireRole(domain.RolePatient), cfg.ProfileGate, cfg.Prediction.Predict)

	app.Get("/complete-profile", guard.RequireRole(domain.RolePatient), cfg.ProfileGate, cfg.Profile.Show)
	app.Post("/complete-profile", guard.RequireRole(domain.RolePatient), cfg.Profile.Submit)
}
