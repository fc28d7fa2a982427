package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/stock-recon/internal/application/dto"
	"github.com/invorya/stock-recon/internal/application/usecase"
	"github.com/invorya/stock-recon/internal/docstore"
	"github.com/invorya/stock-recon/internal/docstore/memstore"
	"github.com/invorya/stock-recon/internal/domain"
)

func newProductUC() (*usecase.ProductUseCase, *memstore.Store) {
	mem := memstore.New()
	return usecase.NewProductUseCase(mem), mem
}

func TestProductCreate_GeneraUUIDYPersiste(t *testing.T) {
	uc, mem := newProductUC()

	resp, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU:   "CAF-001",
		Name:  "Café de Nariño 500g",
		Price: decimal.RequireFromString("18500.00"),
		Cost:  decimal.RequireFromString("9000.00"),
	})
	require.NoError(t, err)

	_, err = uuid.Parse(resp.ID)
	assert.NoError(t, err, "el ID debe ser un UUID")
	assert.Equal(t, int64(0), resp.TotalStock, "un producto nuevo nace sin instantánea de stock")

	doc, err := mem.Get(context.Background(), docstore.CollectionProducts, resp.ID)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "CAF-001", doc["sku"])
}

func TestProductCreate_SKUDuplicadoRechazado(t *testing.T) {
	uc, _ := newProductUC()

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{SKU: "CAF-001", Name: "Café"})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{SKU: "CAF-001", Name: "Otro café"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_SinSKUONombreEsInvalido(t *testing.T) {
	uc, _ := newProductUC()

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "Sin SKU"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{SKU: "SIN-NOMBRE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_SoloCamposEnviados(t *testing.T) {
	uc, _ := newProductUC()

	created, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU:      "CAF-001",
		Name:     "Café",
		Price:    decimal.RequireFromString("18500.00"),
		Category: "alimentos",
	})
	require.NoError(t, err)

	nuevoPrecio := decimal.RequireFromString("19900.00")
	updated, err := uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{Price: &nuevoPrecio})
	require.NoError(t, err)

	assert.True(t, updated.Price.Equal(nuevoPrecio))
	assert.Equal(t, "Café", updated.Name, "los campos no enviados no cambian")
	assert.Equal(t, "alimentos", updated.Category)
}

func TestProductUpdate_SKUDuplicadoRechazado(t *testing.T) {
	uc, _ := newProductUC()

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{SKU: "CAF-001", Name: "Café"})
	require.NoError(t, err)
	otro, err := uc.Create(context.Background(), dto.CreateProductRequest{SKU: "PAN-001", Name: "Panela"})
	require.NoError(t, err)

	skuOcupado := "CAF-001"
	_, err = uc.Update(context.Background(), otro.ID, dto.UpdateProductRequest{SKU: &skuOcupado})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductGetByID_InexistenteDevuelveNilNil(t *testing.T) {
	uc, _ := newProductUC()

	resp, err := uc.GetByID(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.Nil(t, resp)
}

// Un producto puede nacer por el flujo de conciliación, que escribe el
// documento sin campo id embebido. La lectura debe responder con la clave
// de búsqueda igualmente.
func TestProductGetByID_DocumentoDeConciliacionSinIDEmbebido(t *testing.T) {
	uc, mem := newProductUC()

	require.NoError(t, mem.Put(context.Background(), docstore.CollectionProducts, "p1", docstore.Doc{
		"name":       "Producto conciliado",
		"totalStock": int64(7),
		"updatedAt":  "2026-03-10T12:00:00Z",
	}))

	resp, err := uc.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "p1", resp.ID)
	assert.Equal(t, int64(7), resp.TotalStock)
}

func TestProductList_PaginaEnOrdenDelAlmacen(t *testing.T) {
	uc, _ := newProductUC()

	for _, sku := range []string{"A-1", "B-1", "C-1"} {
		_, err := uc.Create(context.Background(), dto.CreateProductRequest{SKU: sku, Name: "Producto " + sku})
		require.NoError(t, err)
	}

	all, err := uc.List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, all.Items, 3)

	// El almacén ordena por ID de documento; la paginación respeta ese orden.
	page, err := uc.List(context.Background(), 2, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, all.Items[1].ID, page.Items[0].ID)
	assert.Equal(t, all.Items[2].ID, page.Items[1].ID)
}

func TestProductDelete_DejaLasHuellasDeStock(t *testing.T) {
	uc, mem := newProductUC()

	created, err := uc.Create(context.Background(), dto.CreateProductRequest{SKU: "CAF-001", Name: "Café"})
	require.NoError(t, err)

	require.NoError(t, mem.Put(context.Background(), docstore.CollectionWarehouseStocks, created.ID+"_central", docstore.Doc{
		"productId": created.ID,
		"quantity":  int64(3),
	}))

	require.NoError(t, uc.Delete(context.Background(), created.ID))

	assert.Equal(t, 0, mem.Len(docstore.CollectionProducts))
	assert.Equal(t, 1, mem.Len(docstore.CollectionWarehouseStocks))
}
