package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/invorya/stock-recon/internal/application/dto"
	"github.com/invorya/stock-recon/internal/docstore"
	"github.com/invorya/stock-recon/internal/domain"
	"github.com/invorya/stock-recon/internal/domain/entity"
	"github.com/invorya/stock-recon/internal/domain/ident"
)

// WarehouseUseCase casos de uso CRUD para bodegas. El ID se acuña saneando
// el nombre, de modo que el mismo nombre produce siempre el mismo ID y ese
// ID es el que entra en las claves compuestas de stock.
type WarehouseUseCase struct {
	store     docstore.DeleteStore
	sanitizer *ident.Sanitizer
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(store docstore.DeleteStore, sanitizer *ident.Sanitizer) *WarehouseUseCase {
	return &WarehouseUseCase{store: store, sanitizer: sanitizer}
}

// Create acuña el ID a partir del nombre saneado y persiste la bodega. El
// nombre se guarda tal cual lo escribió el usuario; solo el ID se sanea.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	id := uc.sanitizer.Sanitize(in.Name)
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.store.Get(ctx, docstore.CollectionWarehouses, id)
	if err != nil {
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now().UTC()
	warehouse := &entity.Warehouse{
		ID:        id,
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.store.Put(ctx, docstore.CollectionWarehouses, id, warehouseDoc(warehouse)); err != nil {
		return nil, fmt.Errorf("put warehouse: %w", err)
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	doc, err := uc.store.Get(ctx, docstore.CollectionWarehouses, id)
	if err != nil {
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	warehouse := warehouseFromDoc(doc)
	return toWarehouseResponse(&warehouse), nil
}

// GetAll devuelve todas las bodegas registradas en el orden del almacén.
// Es la fuente de líneas cuando se arma un libro de stock.
func (uc *WarehouseUseCase) GetAll(ctx context.Context) ([]entity.Warehouse, error) {
	docs, err := uc.store.Query(ctx, docstore.CollectionWarehouses, nil)
	if err != nil {
		return nil, fmt.Errorf("query warehouses: %w", err)
	}
	warehouses := make([]entity.Warehouse, 0, len(docs))
	for _, doc := range docs {
		warehouses = append(warehouses, warehouseFromDoc(doc))
	}
	return warehouses, nil
}

// Update actualiza nombre visible y dirección. El ID nunca cambia, aunque
// el nombre nuevo sanee distinto: las claves de stock ya acuñadas dependen
// de él.
func (uc *WarehouseUseCase) Update(ctx context.Context, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	doc, err := uc.store.Get(ctx, docstore.CollectionWarehouses, id)
	if err != nil {
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	warehouse := warehouseFromDoc(doc)
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	warehouse.UpdatedAt = time.Now().UTC()
	if err := uc.store.Put(ctx, docstore.CollectionWarehouses, id, warehouseDoc(&warehouse)); err != nil {
		return nil, fmt.Errorf("put warehouse: %w", err)
	}
	return toWarehouseResponse(&warehouse), nil
}

// List lista bodegas con paginación en memoria.
func (uc *WarehouseUseCase) List(ctx context.Context, limit, offset int) (*dto.WarehouseListResponse, error) {
	warehouses, err := uc.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, limit)
	for i := offset; i < len(warehouses) && len(items) < limit; i++ {
		items = append(items, *toWarehouseResponse(&warehouses[i]))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una bodega por ID. Los registros de stock que la
// mencionan no se tocan.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.store.Delete(ctx, docstore.CollectionWarehouses, id); err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return nil
}

func warehouseDoc(w *entity.Warehouse) docstore.Doc {
	return docstore.Doc{
		"id":        w.ID,
		"name":      w.Name,
		"address":   w.Address,
		"createdAt": w.CreatedAt.Format(time.RFC3339),
		"updatedAt": w.UpdatedAt.Format(time.RFC3339),
	}
}

func warehouseFromDoc(doc docstore.Doc) entity.Warehouse {
	return entity.Warehouse{
		ID:        docString(doc, "id"),
		Name:      docString(doc, "name"),
		Address:   docString(doc, "address"),
		CreatedAt: docTime(doc, "createdAt"),
		UpdatedAt: docTime(doc, "updatedAt"),
	}
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
