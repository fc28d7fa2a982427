// Package docstore define el puerto genérico de almacenamiento de documentos
// que consume el núcleo de reconciliación. El motor concreto (memoria,
// PostgreSQL) queda detrás de esta interfaz; el núcleo solo conoce la
// secuencia lógica de escrituras y lecturas.
package docstore

import (
	"context"
	"reflect"
)

// Colecciones usadas por el sistema.
const (
	CollectionProducts        = "products"
	CollectionWarehouses      = "warehouses"
	CollectionWarehouseStocks = "warehouseStocks"
	CollectionUsers           = "users"
)

// Doc es un documento plano tal como lo entrega el almacén.
type Doc map[string]any

// Filter selecciona documentos por igualdad campo a campo.
type Filter map[string]any

// Store define el puerto del almacén de documentos (DIP).
// Put es un upsert por id. Get devuelve (nil, nil) si el documento no
// existe. Query devuelve los documentos cuyos campos contienen el filtro,
// en el orden de iteración propio del almacén.
//
// El protocolo de guardado de stock consume exactamente esta interfaz: no
// incluye borrado, así el protocolo no puede eliminar registros obsoletos
// ni por accidente.
type Store interface {
	Put(ctx context.Context, collection, id string, doc Doc) error
	Get(ctx context.Context, collection, id string) (Doc, error)
	Query(ctx context.Context, collection string, filter Filter) ([]Doc, error)
}

// DeleteStore amplía Store con borrado por id. Lo usa el CRUD de catálogo
// (bodegas, productos), nunca el protocolo de reconciliación.
type DeleteStore interface {
	Store
	Delete(ctx context.Context, collection, id string) error
}

// Matches informa si el documento contiene todos los pares del filtro.
func Matches(doc Doc, filter Filter) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
