package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/stock-recon/internal/application/dto"
	"github.com/invorya/stock-recon/internal/application/usecase"
	"github.com/invorya/stock-recon/internal/docstore"
	"github.com/invorya/stock-recon/internal/docstore/memstore"
	"github.com/invorya/stock-recon/internal/domain"
	"github.com/invorya/stock-recon/internal/domain/ident"
)

// ──────────────────────────────────────────────────────────────────────────────
// Registro de bodegas: el ID se acuña saneando el nombre y de ahí salen las
// claves compuestas de stock, así que la acuñación tiene que ser estable.
// ──────────────────────────────────────────────────────────────────────────────

func newWarehouseUC() (*usecase.WarehouseUseCase, *memstore.Store) {
	mem := memstore.New()
	return usecase.NewWarehouseUseCase(mem, ident.NewSanitizer()), mem
}

func TestWarehouseCreate_AcunaIDConNombreSaneado(t *testing.T) {
	uc, mem := newWarehouseUC()

	resp, err := uc.Create(context.Background(), dto.CreateWarehouseRequest{
		Name:    "  Main   Depot ",
		Address: "Calle 10 # 4-20",
	})
	require.NoError(t, err)

	assert.Equal(t, "main_depot", resp.ID, "el ID debe ser el nombre saneado")
	assert.Equal(t, "  Main   Depot ", resp.Name, "el nombre visible se guarda tal cual")

	doc, err := mem.Get(context.Background(), docstore.CollectionWarehouses, "main_depot")
	require.NoError(t, err)
	require.NotNil(t, doc, "la bodega debe quedar persistida bajo su ID acuñado")
	assert.Equal(t, "Calle 10 # 4-20", doc["address"])
}

func TestWarehouseCreate_NombreVacioEsInvalido(t *testing.T) {
	uc, _ := newWarehouseUC()

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: name})
		assert.ErrorIs(t, err, domain.ErrInvalidInput,
			"un nombre que sanea a vacío no puede acuñar ID: %q", name)
	}
}

func TestWarehouseCreate_ColisionDeIDSaneadoEsDuplicado(t *testing.T) {
	uc, _ := newWarehouseUC()

	_, err := uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: "Main Depot"})
	require.NoError(t, err)

	// Distinto texto, mismo ID saneado.
	_, err = uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: "  MAIN   depot "})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestWarehouseUpdate_CambiarNombreNoCambiaElID(t *testing.T) {
	uc, mem := newWarehouseUC()

	created, err := uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: "Norte"})
	require.NoError(t, err)

	nuevoNombre := "Bodega Norte Renovada"
	updated, err := uc.Update(context.Background(), created.ID, dto.UpdateWarehouseRequest{Name: &nuevoNombre})
	require.NoError(t, err)

	assert.Equal(t, "norte", updated.ID, "el ID acuñado es inmutable")
	assert.Equal(t, nuevoNombre, updated.Name)

	// No debe aparecer un documento nuevo bajo el nombre re-saneado.
	doc, err := mem.Get(context.Background(), docstore.CollectionWarehouses, "bodega_norte_renovada")
	require.NoError(t, err)
	assert.Nil(t, doc)
	assert.Equal(t, 1, mem.Len(docstore.CollectionWarehouses))
}

func TestWarehouseUpdate_InexistenteDevuelveNil(t *testing.T) {
	uc, _ := newWarehouseUC()

	direccion := "Av. Siempre Viva 742"
	resp, err := uc.Update(context.Background(), "fantasma", dto.UpdateWarehouseRequest{Address: &direccion})
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestWarehouseList_PaginaEnOrdenDelAlmacen(t *testing.T) {
	uc, _ := newWarehouseUC()

	for _, name := range []string{"Sur", "Central", "Norte"} {
		_, err := uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: name})
		require.NoError(t, err)
	}

	page1, err := uc.List(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, page1.Items, 2)
	assert.Equal(t, "central", page1.Items[0].ID)
	assert.Equal(t, "norte", page1.Items[1].ID)

	page2, err := uc.List(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	assert.Equal(t, "sur", page2.Items[0].ID)
}

func TestWarehouseDelete_NoTocaLosRegistrosDeStock(t *testing.T) {
	uc, mem := newWarehouseUC()

	_, err := uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: "Central"})
	require.NoError(t, err)

	// Registro de stock que menciona la bodega, escrito por la conciliación.
	require.NoError(t, mem.Put(context.Background(), docstore.CollectionWarehouseStocks, "p1_central", docstore.Doc{
		"productId":   "p1",
		"warehouseId": "central",
		"quantity":    int64(4),
	}))

	require.NoError(t, uc.Delete(context.Background(), "central"))

	assert.Equal(t, 0, mem.Len(docstore.CollectionWarehouses))
	assert.Equal(t, 1, mem.Len(docstore.CollectionWarehouseStocks),
		"borrar la bodega no barre sus registros de stock")
}
