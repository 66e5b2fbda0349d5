package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/Inventario-equipos/internal/application/analytics"
	"github.com/jhoicas/Inventario-equipos/internal/application/auth"
	"github.com/jhoicas/Inventario-equipos/internal/application/inventory"
	"github.com/jhoicas/Inventario-equipos/internal/application/usecase"
	"github.com/jhoicas/Inventario-equipos/internal/infrastructure/supabase"
	"github.com/jhoicas/Inventario-equipos/internal/infrastructure/wiring"
	"github.com/jhoicas/Inventario-equipos/internal/interfaces/console"
	"github.com/jhoicas/Inventario-equipos/pkg/config"
	"github.com/jhoicas/Inventario-equipos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	// Los logs van a stderr para no mezclarse con la salida de los comandos.
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
		Out:     os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := wiring.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("backend")
	}
	defer backend.Close()

	sessions := supabase.NewSessionManager(backend.Auth, cfg.Console.SessionFile, log.Component("session"))
	go sessions.AutoRefresh(ctx)
	go func() {
		// Corta la lectura pendiente de stdin al recibir la señal.
		<-ctx.Done()
		_ = os.Stdin.Close()
	}()

	authUC := auth.NewAuthUseCase(backend.Auth, backend.Profiles, log.Component("auth"))
	store := auth.NewSessionStore(authUC, sessions, log.Component("auth"))
	if err := store.Start(ctx); err != nil {
		log.Warn().Err(err).Msg("sesión previa descartada")
	}
	defer store.Close()

	svc := console.Services{
		Session:   store,
		Equipment: usecase.NewEquipmentUseCase(backend.Equipment, backend.Profiles, backend.TxRunner, log.Component("equipment")),
		Movements: inventory.NewMovementUseCase(backend.Equipment, backend.Movements),
		Reduction: inventory.NewStockReductionUseCase(backend.TxRunner, backend.Equipment, log.Component("reduction")),
		Users: usecase.NewUserAdminUseCase(
			backend.Profiles, backend.UserAdmin, backend.Auth, store,
			cfg.Users.CreateCooldown, log.Component("users"),
		),
		Dashboard: analytics.NewDashboardUseCase(backend.Equipment, backend.Movements, cfg.Inventory.LowStockThreshold),
	}

	if err := console.New(svc, os.Stdin, os.Stdout, log.Component("console")).Run(ctx); err != nil {
		log.Error().Err(err).Msg("consola")
	}
}
