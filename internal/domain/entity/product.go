package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// TotalStock es un snapshot calculado al guardar, no un valor vivo: el total
// real se recalcula sumando los registros de stock por bodega.
type Product struct {
	ID               string
	SKU              string // código único
	Name             string
	Description      string
	Price            decimal.Decimal // precio de venta
	Cost             decimal.Decimal // costo unitario
	Category         string
	DefaultWarehouse string
	TotalStock       int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
