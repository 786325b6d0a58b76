package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/produccion-glp-api/internal/application/production"
	"github.com/jhoicas/produccion-glp-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StartSession *production.StartSessionUseCase
	Autosave     *production.AutosaveUseCase
	CloseSession *production.CloseSessionUseCase
	Query        *production.SessionQueryUseCase
	Report       *production.ReportUseCase
	TankTools    *production.TankToolsUseCase
	JWTSecret    string
	JWTIssuer    string
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	anyRole := RequireRole(RoleAdmin, RoleChefCentre, RoleOperateur)
	supervisors := RequireRole(RoleAdmin, RoleChefCentre)

	sessionHandler := NewSessionHandler(deps.StartSession, deps.Autosave, deps.CloseSession, deps.Query, deps.Report, deps.Log)
	sessions := protected.Group("/sessions")
	sessions.Post("/", supervisors, sessionHandler.Start)
	sessions.Get("/", anyRole, sessionHandler.List)
	sessions.Get("/by-date/:date", anyRole, sessionHandler.GetByDate)
	sessions.Get("/:id", anyRole, sessionHandler.GetByID)
	sessions.Patch("/:id/autosave", anyRole, sessionHandler.Autosave)
	sessions.Post("/:id/close", supervisors, sessionHandler.Close)
	sessions.Get("/:id/report.pdf", anyRole, sessionHandler.Report)

	tankHandler := NewTankHandler(deps.TankTools, deps.Log)
	tanks := protected.Group("/tanks", anyRole)
	tanks.Get("/", tankHandler.List)
	tanks.Post("/:id/calculate", tankHandler.Calculate)
	tanks.Post("/:id/volume", tankHandler.Volume)
	protected.Get("/correction-factors", anyRole, tankHandler.CorrectionFactors)
}
