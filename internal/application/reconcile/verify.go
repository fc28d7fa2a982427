package reconcile

import (
	"context"
	"fmt"

	"github.com/invorya/stock-recon/internal/docstore"
	"github.com/invorya/stock-recon/internal/domain"
	"github.com/invorya/stock-recon/internal/domain/ledger"
)

// ReadError describe un fallo al leer los registros de stock de un producto.
type ReadError struct {
	Collection string
	Cause      error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("lectura de %s fallida: %v", e.Collection, e.Cause)
}

func (e *ReadError) Unwrap() error { return e.Cause }

// Reader lee de vuelta los registros de stock persistidos de un producto.
type Reader struct {
	store docstore.Store
}

// NewReader construye el verificador de lectura.
func NewReader(store docstore.Store) *Reader {
	return &Reader{store: store}
}

// Verify consulta todos los registros de warehouseStocks cuyo productId
// coincide y los proyecta a líneas de stock, en el orden en que el almacén
// los entrega; no se garantiza el orden de las bodegas del libro. La
// comparación contra un libro esperado es responsabilidad del llamador;
// aquí solo se devuelve la lectura cruda.
func (r *Reader) Verify(ctx context.Context, productID string) ([]ledger.StockLine, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	docs, err := r.store.Query(ctx, docstore.CollectionWarehouseStocks, docstore.Filter{"productId": productID})
	if err != nil {
		return nil, &ReadError{Collection: docstore.CollectionWarehouseStocks, Cause: err}
	}
	lines := make([]ledger.StockLine, 0, len(docs))
	for _, doc := range docs {
		lines = append(lines, ledger.StockLine{
			WarehouseID:   asString(doc["warehouseId"]),
			WarehouseName: asString(doc["warehouseName"]),
			// Una cantidad malformada en el documento se lee como cero,
			// igual que en la captura.
			Quantity: ledger.CoerceQuantity(doc["quantity"]),
		})
	}
	return lines, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
