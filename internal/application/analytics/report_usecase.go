package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
	"github.com/jhoicas/Inventario-equipos/internal/domain/repository"
)

// InventoryReportGenerator puerto del generador de PDF (infraestructura).
type InventoryReportGenerator interface {
	GenerateInventoryPDF(ctx context.Context, items []*entity.Equipment, generatedAt time.Time, generatedBy string) ([]byte, error)
}

// ReportUseCase genera el reporte de inventario.
type ReportUseCase struct {
	equipRepo repository.EquipmentRepository
	generator InventoryReportGenerator
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(equipRepo repository.EquipmentRepository, generator InventoryReportGenerator) *ReportUseCase {
	return &ReportUseCase{equipRepo: equipRepo, generator: generator, now: time.Now}
}

// InventoryPDF devuelve el PDF con todos los equipos y el nombre de archivo sugerido.
func (uc *ReportUseCase) InventoryPDF(ctx context.Context, caller entity.Principal) (pdfBytes []byte, filename string, err error) {
	items, err := uc.equipRepo.List(ctx)
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	by := caller.FullName
	if by == "" {
		by = caller.Email
	}
	pdfBytes, err = uc.generator.GenerateInventoryPDF(ctx, items, now, by)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar pdf: %w", err)
	}
	return pdfBytes, fmt.Sprintf("inventario-%s.pdf", now.Format("20060102-1504")), nil
}
