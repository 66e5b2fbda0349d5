// Package analytics contiene los casos de uso de lectura: resumen del dashboard y
// reporte de inventario.
package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Inventario-equipos/internal/application/dto"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
	"github.com/jhoicas/Inventario-equipos/internal/domain/repository"
)

// MovementWindowDays ventana de movimientos del resumen.
const MovementWindowDays = 30

// DashboardUseCase genera el resumen del inventario.
type DashboardUseCase struct {
	equipRepo         repository.EquipmentRepository
	movRepo           repository.StockMovementRepository
	lowStockThreshold int
	now               func() time.Time
}

// NewDashboardUseCase construye el caso de uso. Los equipos con cantidad <= lowStockThreshold
// se listan como stock bajo.
func NewDashboardUseCase(equipRepo repository.EquipmentRepository, movRepo repository.StockMovementRepository, lowStockThreshold int) *DashboardUseCase {
	return &DashboardUseCase{equipRepo: equipRepo, movRepo: movRepo, lowStockThreshold: lowStockThreshold, now: time.Now}
}

// Summary lee equipos y movimientos recientes en paralelo y arma los KPIs.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	since := uc.now().AddDate(0, 0, -MovementWindowDays)

	var (
		equipment []*entity.Equipment
		movements []*entity.StockMovement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		equipment, err = uc.equipRepo.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		movements, err = uc.movRepo.ListSince(gctx, since)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.DashboardSummaryDTO{
		EquipmentCount:    len(equipment),
		LowStockThreshold: uc.lowStockThreshold,
		LowStock:          []dto.LowStockItemDTO{},
		Movements:         dto.MovementTotalsDTO{WindowDays: MovementWindowDays},
	}
	for _, e := range equipment {
		out.TotalUnits += e.Quantity
		if e.Quantity == 0 {
			out.OutOfStockCount++
		}
		if e.Quantity <= uc.lowStockThreshold {
			out.LowStock = append(out.LowStock, dto.LowStockItemDTO{ID: e.ID, Name: e.Name, Quantity: e.Quantity})
		}
	}
	for _, m := range movements {
		switch m.Type {
		case entity.MovementIn:
			out.Movements.InCount++
			out.Movements.InUnits += m.Quantity
		case entity.MovementOut:
			out.Movements.OutCount++
			out.Movements.OutUnits += m.Quantity
		}
	}
	return out, nil
}
