package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/empleos-api/internal/application/auth"
	"github.com/jhoicas/empleos-api/internal/application/jobs"
	"github.com/jhoicas/empleos-api/internal/application/lifecycle"
	"github.com/jhoicas/empleos-api/internal/application/notification"
	"github.com/jhoicas/empleos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/empleos-api/internal/infrastructure/sms"
	httpRouter "github.com/jhoicas/empleos-api/internal/interfaces/http"
	"github.com/jhoicas/empleos-api/pkg/config"
	"github.com/jhoicas/empleos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	appRepo := postgres.NewApplicationRepository(pool)

	// Gateway SMS: sin credenciales el dispatcher degrada a "failed" sin
	// intentar red; las transiciones nunca dependen del envío.
	var sender notification.Sender
	if cfg.SMS.Configured() {
		sender = sms.NewClient(cfg.SMS)
	} else {
		log.Warn().Msg("gateway SMS sin configurar; las notificaciones se registrarán como failed")
	}
	dispatcher := notification.NewDispatcher(sender, cfg.SMS, log)

	authUC := auth.NewUseCase(userRepo, sessionRepo, cfg.Session)
	jobsUC := jobs.NewUseCase(jobRepo)
	lifecycleUC := lifecycle.NewUseCase(appRepo, jobRepo, userRepo, dispatcher, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Empleos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		JobsUC:      jobsUC,
		LifecycleUC: lifecycleUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
