package dto

import "time"

// StockLineInput una línea del cuerpo de PUT /api/products/:id/stock.
// Quantity es deliberadamente `any`: el valor pasa por la coerción a entero
// no negativo, así que cadenas o basura caen a cero en vez de rechazarse.
type StockLineInput struct {
	WarehouseID string `json:"warehouse_id" validate:"required"`
	Quantity    any    `json:"quantity"`
}

// SaveStockRequest entrada para guardar el stock de un producto.
type SaveStockRequest struct {
	Lines []StockLineInput `json:"lines" validate:"required"`
}

// TraceEntryResponse entrada de la traza de guardado.
type TraceEntryResponse struct {
	At      time.Time `json:"at"`
	Message string    `json:"message"`
}

// SaveReportResponse salida de un guardado exitoso, traza incluida.
type SaveReportResponse struct {
	ProductID    string               `json:"product_id"`
	TotalStock   int64                `json:"total_stock"`
	LinesWritten int                  `json:"lines_written"`
	Trace        []TraceEntryResponse `json:"trace"`
}

// StockLineResponse una línea leída de vuelta del almacén.
type StockLineResponse struct {
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	Quantity      int64  `json:"quantity"`
}

// StockReadResponse salida de la verificación de stock de un producto.
// Las líneas vienen en el orden de iteración del almacén. LiveTotal suma
// las líneas leídas; SnapshotTotal es el totalStock del documento del
// producto, que puede quedar desfasado si un guardado abortó a medias.
type StockReadResponse struct {
	ProductID     string              `json:"product_id"`
	Lines         []StockLineResponse `json:"lines"`
	LiveTotal     int64               `json:"live_total"`
	SnapshotTotal int64               `json:"snapshot_total"`
}
