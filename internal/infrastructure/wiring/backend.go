// Package wiring arma los adaptadores del backend según BACKEND_DATA_MODE.
package wiring

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-equipos/internal/application/inventory"
	"github.com/jhoicas/Inventario-equipos/internal/domain/repository"
	"github.com/jhoicas/Inventario-equipos/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-equipos/internal/infrastructure/supabase"
	"github.com/jhoicas/Inventario-equipos/pkg/config"
	"github.com/jhoicas/Inventario-equipos/pkg/logger"
)

// Backend puertos de datos y auth listos para inyectar en los casos de uso.
// El servicio de auth siempre es el del proyecto; los datos van por PostgREST o por Postgres.
type Backend struct {
	Auth      *supabase.AuthClient
	Equipment repository.EquipmentRepository
	Movements repository.StockMovementRepository
	Profiles  repository.ProfileRepository
	UserAdmin repository.UserAdminGateway
	TxRunner  inventory.TxRunner

	close func()
}

// Close libera el pool de Postgres si se abrió.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open construye el backend para cfg.Backend.DataMode.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	client := supabase.NewClient(supabase.Config{
		URL:            cfg.Backend.URL,
		AnonKey:        cfg.Backend.AnonKey,
		ServiceRoleKey: cfg.Backend.ServiceRoleKey,
	}, log.Component("supabase"))
	b := &Backend{Auth: supabase.NewAuthClient(client)}

	switch cfg.Backend.DataMode {
	case config.DataModePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		db := postgres.NewDB(pool, log.Component("postgres"))
		profiles := postgres.NewProfileRepository(db)
		b.Equipment = postgres.NewEquipmentRepository(db)
		b.Movements = postgres.NewMovementRepository(db)
		b.Profiles = profiles
		b.UserAdmin = profiles
		b.TxRunner = postgres.NewTxRunner(db)
		b.close = pool.Close
	default:
		b.Equipment = supabase.NewEquipmentRepo(client)
		b.Movements = supabase.NewMovementRepo(client)
		b.Profiles = supabase.NewProfileRepo(client)
		b.UserAdmin = supabase.NewRPCGateway(client)
		b.TxRunner = supabase.NewTxRunner(client)
	}
	log.Info().Str("data_mode", cfg.Backend.DataMode).Msg("backend configurado")
	return b, nil
}
