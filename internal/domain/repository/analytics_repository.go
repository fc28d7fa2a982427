package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductStaleness resultado crudo de la consulta de instantáneas
// desfasadas: productos cuyo totalStock guardado ya no coincide con la
// suma viva de sus registros de stock.
type ProductStaleness struct {
	ProductID string
	Snapshot  int64 // totalStock escrito en el último guardado
	Live      int64 // SUM(quantity) recalculada sobre los registros
}

// AnalyticsRepository define las consultas de lectura para el tablero.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// CountProducts devuelve cuántos productos hay registrados.
	CountProducts(ctx context.Context) (int64, error)

	// CountWarehouses devuelve cuántas bodegas hay registradas.
	CountWarehouses(ctx context.Context) (int64, error)

	// LiveTotal recalcula el total de un producto sumando sus registros
	// de stock. Es la lectura fuerte; totalStock es solo la instantánea
	// del último guardado.
	LiveTotal(ctx context.Context, productID string) (int64, error)

	// TotalUnits suma las cantidades de todos los registros de stock.
	TotalUnits(ctx context.Context) (int64, error)

	// Valuation devuelve SUM(quantity * price) cruzando registros de
	// stock con su producto. Registros sin producto valoran cero.
	Valuation(ctx context.Context) (decimal.Decimal, error)

	// StaleSnapshots devuelve los productos cuya instantánea difiere de
	// la suma viva. Un guardado abortado a mitad de camino los produce.
	StaleSnapshots(ctx context.Context) ([]ProductStaleness, error)
}
