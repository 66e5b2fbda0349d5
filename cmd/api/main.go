package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Inventario-equipos/internal/application/analytics"
	"github.com/jhoicas/Inventario-equipos/internal/application/auth"
	"github.com/jhoicas/Inventario-equipos/internal/application/confirm"
	"github.com/jhoicas/Inventario-equipos/internal/application/inventory"
	"github.com/jhoicas/Inventario-equipos/internal/application/usecase"
	infrapdf "github.com/jhoicas/Inventario-equipos/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-equipos/internal/infrastructure/wiring"
	httpRouter "github.com/jhoicas/Inventario-equipos/internal/interfaces/http"
	"github.com/jhoicas/Inventario-equipos/pkg/config"
	"github.com/jhoicas/Inventario-equipos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")
	if cfg.Backend.JWTSecret == "" {
		log.Fatal().Msg("SUPABASE_JWT_SECRET es obligatorio para validar los tokens de la API")
	}

	ctx := context.Background()
	backend, err := wiring.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("backend")
	}
	defer backend.Close()

	authUC := auth.NewAuthUseCase(backend.Auth, backend.Profiles, log.Component("auth"))
	equipmentUC := usecase.NewEquipmentUseCase(backend.Equipment, backend.Profiles, backend.TxRunner, log.Component("equipment"))
	movementUC := inventory.NewMovementUseCase(backend.Equipment, backend.Movements)
	reductionUC := inventory.NewStockReductionUseCase(backend.TxRunner, backend.Equipment, log.Component("reduction"))
	userAdminUC := usecase.NewUserAdminUseCase(
		backend.Profiles, backend.UserAdmin, backend.Auth, authUC,
		cfg.Users.CreateCooldown, log.Component("users"),
	)
	dashboardUC := analytics.NewDashboardUseCase(backend.Equipment, backend.Movements, cfg.Inventory.LowStockThreshold)
	reportUC := analytics.NewReportUseCase(backend.Equipment, infrapdf.NewMarotoReportGenerator(cfg.Inventory.LowStockThreshold))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventário de Equipamentos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "data_mode": cfg.Backend.DataMode})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		EquipmentUC:   equipmentUC,
		MovementUC:    movementUC,
		ReductionUC:   reductionUC,
		UserAdminUC:   userAdminUC,
		DashboardUC:   dashboardUC,
		ReportUC:      reportUC,
		Confirmations: confirm.NewRegistry(cfg.Confirmation.TTL),
		JWTSecret:     cfg.Backend.JWTSecret,
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
