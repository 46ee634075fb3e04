package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/empleos-api/internal/application/auth"
	"github.com/jhoicas/empleos-api/internal/application/jobs"
	"github.com/jhoicas/empleos-api/internal/application/lifecycle"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	JobsUC      *jobs.UseCase
	LifecycleUC *lifecycle.UseCase
}

// Router registra las rutas de la API. Las rutas mutantes componen la guardia
// en dos pasos explícitos: SessionMiddleware resuelve identidad, RequireRole
// autoriza; el handler solo corre si ambos pasan.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	guard := SessionMiddleware(deps.AuthUC)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", guard, authHandler.Me)

	// Usuarios (admin)
	userHandler := NewUserHandler(deps.AuthUC)
	api.Patch("/users/:id/verify", guard, RequireAdmin(), userHandler.VerifyEmployer)

	// Vacantes: listado y detalle públicos; publicación y edición protegidas.
	jobHandler := NewJobHandler(deps.JobsUC)
	api.Get("/jobs", jobHandler.List)
	api.Get("/jobs/:id", jobHandler.GetByID)
	api.Post("/jobs", guard, RequireEmployerOrAdmin(), jobHandler.Create)
	api.Put("/jobs/:id", guard, RequireEmployerOrAdmin(), jobHandler.Update)

	// Postulaciones
	appHandler := NewApplicationHandler(deps.LifecycleUC)
	api.Post("/jobs/:id/apply", guard, RequireJobSeeker(), appHandler.Apply)
	api.Get("/jobs/:id/applications", guard, RequireEmployerOrAdmin(), appHandler.ListByJob)
	api.Get("/applications", guard, RequireJobSeeker(), appHandler.ListOwn)
	api.Get("/applications/:id", guard, appHandler.GetByID)
	api.Patch("/applications/:id/status", guard, RequireEmployerOrAdmin(), appHandler.UpdateStatus)
	api.Post("/applications/:id/documents", guard, RequireJobSeeker(), appHandler.SubmitDocuments)
}
