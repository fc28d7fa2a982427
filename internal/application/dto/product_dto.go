package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU              string          `json:"sku" validate:"required,min=1,max=100"`
	Name             string          `json:"name" validate:"required,min=1,max=200"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	Cost             decimal.Decimal `json:"cost"`
	Category         string          `json:"category"`
	DefaultWarehouse string          `json:"default_warehouse"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales;
// TotalStock no se toca aquí: lo escribe el protocolo de guardado de stock).
type UpdateProductRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description      *string          `json:"description"`
	Price            *decimal.Decimal `json:"price"`
	Cost             *decimal.Decimal `json:"cost"`
	Category         *string          `json:"category"`
	DefaultWarehouse *string          `json:"default_warehouse"`
}

// ProductResponse salida de un producto. TotalStock es el snapshot del
// último guardado, no un total vivo.
type ProductResponse struct {
	ID               string          `json:"id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	Cost             decimal.Decimal `json:"cost"`
	Category         string          `json:"category"`
	DefaultWarehouse string          `json:"default_warehouse"`
	TotalStock       int64           `json:"total_stock"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
