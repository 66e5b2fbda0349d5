package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	EquipmentCount    int               `json:"equipment_count"`
	TotalUnits        int               `json:"total_units"`
	OutOfStockCount   int               `json:"out_of_stock_count"`
	LowStockThreshold int               `json:"low_stock_threshold"`
	LowStock          []LowStockItemDTO `json:"low_stock"`
	Movements         MovementTotalsDTO `json:"movements"`
}

// LowStockItemDTO equipo con cantidad <= umbral.
type LowStockItemDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// MovementTotalsDTO totales del ledger en la ventana del resumen.
type MovementTotalsDTO struct {
	WindowDays int `json:"window_days"`
	InCount    int `json:"in_count"`
	InUnits    int `json:"in_units"`
	OutCount   int `json:"out_count"`
	OutUnits   int `json:"out_units"`
}
