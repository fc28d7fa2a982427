package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/invorya/stock-recon/internal/application/dto"
	"github.com/invorya/stock-recon/internal/docstore"
	"github.com/invorya/stock-recon/internal/domain"
	"github.com/invorya/stock-recon/internal/domain/entity"
)

// ProductUseCase casos de uso CRUD para productos. TotalStock no se edita
// por aquí: lo escribe la conciliación como instantánea del último guardado.
type ProductUseCase struct {
	store docstore.DeleteStore
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(store docstore.DeleteStore) *ProductUseCase {
	return &ProductUseCase{store: store}
}

// Create crea un nuevo producto con SKU único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.store.Query(ctx, docstore.CollectionProducts, docstore.Filter{"sku": in.SKU})
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	if len(existing) > 0 {
		return nil, domain.ErrDuplicate
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:               uuid.New().String(),
		SKU:              in.SKU,
		Name:             in.Name,
		Description:      in.Description,
		Price:            in.Price,
		Cost:             in.Cost,
		Category:         in.Category,
		DefaultWarehouse: in.DefaultWarehouse,
		TotalStock:       0,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.store.Put(ctx, docstore.CollectionProducts, product.ID, productDoc(product)); err != nil {
		return nil, fmt.Errorf("put product: %w", err)
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	doc, err := uc.store.Get(ctx, docstore.CollectionProducts, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	product := productFromDoc(doc)
	// Un producto creado por la conciliación no trae campo id en el
	// documento; la clave de búsqueda manda.
	product.ID = id
	return toProductResponse(&product), nil
}

// Update actualiza campos de catálogo. No permite tocar TotalStock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	doc, err := uc.store.Get(ctx, docstore.CollectionProducts, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	product := productFromDoc(doc)
	product.ID = id
	if in.SKU != nil && *in.SKU != product.SKU {
		existing, err := uc.store.Query(ctx, docstore.CollectionProducts, docstore.Filter{"sku": *in.SKU})
		if err != nil {
			return nil, fmt.Errorf("query products: %w", err)
		}
		if len(existing) > 0 {
			return nil, domain.ErrDuplicate
		}
		product.SKU = *in.SKU
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.DefaultWarehouse != nil {
		product.DefaultWarehouse = *in.DefaultWarehouse
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.store.Put(ctx, docstore.CollectionProducts, id, productDoc(&product)); err != nil {
		return nil, fmt.Errorf("put product: %w", err)
	}
	return toProductResponse(&product), nil
}

// List lista productos con paginación en memoria.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	docs, err := uc.store.Query(ctx, docstore.CollectionProducts, nil)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	items := make([]dto.ProductResponse, 0, limit)
	for i := offset; i < len(docs) && len(items) < limit; i++ {
		product := productFromDoc(docs[i])
		items = append(items, *toProductResponse(&product))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto por ID. Sus registros de stock quedan como
// huellas del último guardado.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.store.Delete(ctx, docstore.CollectionProducts, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func productDoc(p *entity.Product) docstore.Doc {
	return docstore.Doc{
		"id":               p.ID,
		"sku":              p.SKU,
		"name":             p.Name,
		"description":      p.Description,
		"price":            numberValue(p.Price),
		"cost":             numberValue(p.Cost),
		"category":         p.Category,
		"defaultWarehouse": p.DefaultWarehouse,
		"totalStock":       p.TotalStock,
		"createdAt":        p.CreatedAt.Format(time.RFC3339),
		"updatedAt":        p.UpdatedAt.Format(time.RFC3339),
	}
}

func productFromDoc(doc docstore.Doc) entity.Product {
	return entity.Product{
		ID:               docString(doc, "id"),
		SKU:              docString(doc, "sku"),
		Name:             docString(doc, "name"),
		Description:      docString(doc, "description"),
		Price:            docDecimal(doc, "price"),
		Cost:             docDecimal(doc, "cost"),
		Category:         docString(doc, "category"),
		DefaultWarehouse: docString(doc, "defaultWarehouse"),
		TotalStock:       docInt64(doc, "totalStock"),
		CreatedAt:        docTime(doc, "createdAt"),
		UpdatedAt:        docTime(doc, "updatedAt"),
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:               p.ID,
		SKU:              p.SKU,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		Cost:             p.Cost,
		Category:         p.Category,
		DefaultWarehouse: p.DefaultWarehouse,
		TotalStock:       p.TotalStock,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
