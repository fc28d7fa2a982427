package analytics_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/stock-recon/internal/application/analytics"
	"github.com/invorya/stock-recon/internal/docstore"
	"github.com/invorya/stock-recon/internal/docstore/memstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// El tablero recalcula sobre los registros de stock, nunca sobre la
// instantánea totalStock. Estos tests fijan esa distinción con un producto
// cuya instantánea quedó desfasada a propósito.
// ──────────────────────────────────────────────────────────────────────────────

// seedStore monta un catálogo pequeño con una instantánea desfasada:
//
//	p1: precio 10.50, instantánea 5, registros vivos 2+3=5  → consistente
//	p2: precio  4.00, instantánea 9, registro  vivo  4      → desfasada
func seedStore(t *testing.T) *memstore.Store {
	t.Helper()
	mem := memstore.New()
	ctx := context.Background()

	require.NoError(t, mem.Put(ctx, docstore.CollectionWarehouses, "central", docstore.Doc{
		"id": "central", "name": "Central",
	}))
	require.NoError(t, mem.Put(ctx, docstore.CollectionWarehouses, "norte", docstore.Doc{
		"id": "norte", "name": "Norte",
	}))

	require.NoError(t, mem.Put(ctx, docstore.CollectionProducts, "p1", docstore.Doc{
		"id": "p1", "name": "Café", "price": "10.50", "totalStock": int64(5),
	}))
	require.NoError(t, mem.Put(ctx, docstore.CollectionProducts, "p2", docstore.Doc{
		"id": "p2", "name": "Panela", "price": "4.00", "totalStock": int64(9),
	}))

	require.NoError(t, mem.Put(ctx, docstore.CollectionWarehouseStocks, "p1_central", docstore.Doc{
		"productId": "p1", "warehouseId": "central", "quantity": int64(2),
	}))
	require.NoError(t, mem.Put(ctx, docstore.CollectionWarehouseStocks, "p1_norte", docstore.Doc{
		"productId": "p1", "warehouseId": "norte", "quantity": int64(3),
	}))
	require.NoError(t, mem.Put(ctx, docstore.CollectionWarehouseStocks, "p2_central", docstore.Doc{
		"productId": "p2", "warehouseId": "central", "quantity": int64(4),
	}))
	return mem
}

func TestStoreAnalytics_Recuentos(t *testing.T) {
	repo := analytics.NewStoreAnalytics(seedStore(t))

	products, err := repo.CountProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), products)

	warehouses, err := repo.CountWarehouses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), warehouses)
}

func TestStoreAnalytics_LiveTotalSumaSoloElProducto(t *testing.T) {
	repo := analytics.NewStoreAnalytics(seedStore(t))

	total, err := repo.LiveTotal(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	total, err = repo.LiveTotal(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, int64(4), total, "la lectura viva ignora la instantánea 9")

	total, err = repo.LiveTotal(context.Background(), "desconocido")
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestStoreAnalytics_TotalUnits(t *testing.T) {
	repo := analytics.NewStoreAnalytics(seedStore(t))

	total, err := repo.TotalUnits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), total)
}

func TestStoreAnalytics_ValuationCruzaPrecios(t *testing.T) {
	repo := analytics.NewStoreAnalytics(seedStore(t))

	value, err := repo.Valuation(context.Background())
	require.NoError(t, err)
	// 5 * 10.50 + 4 * 4.00 = 68.50
	assert.True(t, value.Equal(decimal.RequireFromString("68.50")),
		"valoración esperada 68.50, obtenida %s", value)
}

func TestStoreAnalytics_ValuationIgnoraRegistrosHuerfanos(t *testing.T) {
	mem := seedStore(t)
	require.NoError(t, mem.Put(context.Background(), docstore.CollectionWarehouseStocks, "px_central", docstore.Doc{
		"productId": "px", "warehouseId": "central", "quantity": int64(100),
	}))
	repo := analytics.NewStoreAnalytics(mem)

	value, err := repo.Valuation(context.Background())
	require.NoError(t, err)
	assert.True(t, value.Equal(decimal.RequireFromString("68.50")),
		"un registro sin producto no aporta valor")
}

func TestStoreAnalytics_StaleSnapshotsDetectaLaDesviacion(t *testing.T) {
	repo := analytics.NewStoreAnalytics(seedStore(t))

	stale, err := repo.StaleSnapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "p2", stale[0].ProductID)
	assert.Equal(t, int64(9), stale[0].Snapshot)
	assert.Equal(t, int64(4), stale[0].Live)
}

// Un documento de producto escrito solo por la conciliación no trae id
// embebido; la detección lo alcanza a través de sus registros de stock.
func TestStoreAnalytics_StaleSnapshotsCubreProductosSinIDEmbebido(t *testing.T) {
	mem := seedStore(t)
	ctx := context.Background()
	require.NoError(t, mem.Put(ctx, docstore.CollectionProducts, "p3", docstore.Doc{
		"name": "Conciliado", "totalStock": int64(10),
	}))
	require.NoError(t, mem.Put(ctx, docstore.CollectionWarehouseStocks, "p3_central", docstore.Doc{
		"productId": "p3", "warehouseId": "central", "quantity": int64(6),
	}))
	repo := analytics.NewStoreAnalytics(mem)

	stale, err := repo.StaleSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, stale, 2)
	assert.Equal(t, "p2", stale[0].ProductID)
	assert.Equal(t, "p3", stale[1].ProductID)
	assert.Equal(t, int64(10), stale[1].Snapshot)
	assert.Equal(t, int64(6), stale[1].Live)
}

func TestDashboard_GetSummaryAgrega(t *testing.T) {
	uc := analytics.NewDashboardUseCase(analytics.NewStoreAnalytics(seedStore(t)))

	summary, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.ProductCount)
	assert.Equal(t, int64(2), summary.WarehouseCount)
	assert.Equal(t, int64(9), summary.TotalUnits)
	assert.True(t, summary.InventoryValue.Equal(decimal.RequireFromString("68.50")))
	assert.Equal(t, int64(1), summary.StaleSnapshots)
}
