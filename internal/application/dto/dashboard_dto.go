package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// TotalUnits se recalcula sumando los registros de warehouseStocks (el
// camino fuerte), no desde los snapshots totalStock de los productos.
type DashboardSummaryDTO struct {
	ProductCount   int64 `json:"product_count"`
	WarehouseCount int64 `json:"warehouse_count"`

	// Unidades totales en bodegas (suma viva de warehouseStocks)
	TotalUnits int64 `json:"total_units"`

	// Valorización del inventario: sum(quantity * price) por producto
	InventoryValue decimal.Decimal `json:"inventory_value"`

	// Productos cuyo snapshot totalStock difiere de la suma viva de sus
	// registros por bodega (la brecha de consistencia documentada)
	StaleSnapshots int64 `json:"stale_snapshots"`
}
