package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/invorya/stock-recon/internal/docstore"
	"github.com/invorya/stock-recon/internal/domain/ledger"
	"github.com/invorya/stock-recon/internal/domain/repository"
)

// StoreAnalytics implementa AnalyticsRepository recorriendo el almacén de
// documentos. Es la implementación del modo en memoria y de las pruebas;
// el modo Postgres usa consultas SQL equivalentes sobre la misma tabla.
type StoreAnalytics struct {
	store docstore.Store
}

var _ repository.AnalyticsRepository = (*StoreAnalytics)(nil)

// NewStoreAnalytics construye el adaptador sobre cualquier Store.
func NewStoreAnalytics(store docstore.Store) *StoreAnalytics {
	return &StoreAnalytics{store: store}
}

func (a *StoreAnalytics) CountProducts(ctx context.Context) (int64, error) {
	docs, err := a.store.Query(ctx, docstore.CollectionProducts, nil)
	if err != nil {
		return 0, fmt.Errorf("query products: %w", err)
	}
	return int64(len(docs)), nil
}

func (a *StoreAnalytics) CountWarehouses(ctx context.Context) (int64, error) {
	docs, err := a.store.Query(ctx, docstore.CollectionWarehouses, nil)
	if err != nil {
		return 0, fmt.Errorf("query warehouses: %w", err)
	}
	return int64(len(docs)), nil
}

func (a *StoreAnalytics) LiveTotal(ctx context.Context, productID string) (int64, error) {
	docs, err := a.store.Query(ctx, docstore.CollectionWarehouseStocks, docstore.Filter{"productId": productID})
	if err != nil {
		return 0, fmt.Errorf("query stocks: %w", err)
	}
	var total int64
	for _, doc := range docs {
		total += ledger.CoerceQuantity(doc["quantity"])
	}
	return total, nil
}

func (a *StoreAnalytics) TotalUnits(ctx context.Context) (int64, error) {
	docs, err := a.store.Query(ctx, docstore.CollectionWarehouseStocks, nil)
	if err != nil {
		return 0, fmt.Errorf("query stocks: %w", err)
	}
	var total int64
	for _, doc := range docs {
		total += ledger.CoerceQuantity(doc["quantity"])
	}
	return total, nil
}

func (a *StoreAnalytics) Valuation(ctx context.Context) (decimal.Decimal, error) {
	live, err := a.liveTotals(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	value := decimal.Zero
	for productID, quantity := range live {
		doc, err := a.store.Get(ctx, docstore.CollectionProducts, productID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("get product: %w", err)
		}
		if doc == nil {
			// Registro de stock huérfano: sin producto no hay precio.
			continue
		}
		price := fieldDecimal(doc, "price")
		value = value.Add(price.Mul(decimal.NewFromInt(quantity)))
	}
	return value, nil
}

func (a *StoreAnalytics) StaleSnapshots(ctx context.Context) ([]repository.ProductStaleness, error) {
	live, err := a.liveTotals(ctx)
	if err != nil {
		return nil, err
	}

	stale := make([]repository.ProductStaleness, 0)
	seen := make(map[string]bool)

	// Productos del catálogo: comparan su instantánea contra la suma viva
	// (cero si no tienen registros).
	products, err := a.store.Query(ctx, docstore.CollectionProducts, nil)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	for _, doc := range products {
		productID, _ := doc["id"].(string)
		if productID == "" {
			// Documento sin id embebido (creado solo por conciliación);
			// se cubre abajo a partir de sus registros de stock.
			continue
		}
		seen[productID] = true
		snapshot := ledger.CoerceQuantity(doc["totalStock"])
		if snapshot != live[productID] {
			stale = append(stale, repository.ProductStaleness{
				ProductID: productID,
				Snapshot:  snapshot,
				Live:      live[productID],
			})
		}
	}

	// Productos referenciados por registros de stock pero sin id embebido.
	for productID, liveTotal := range live {
		if seen[productID] {
			continue
		}
		doc, err := a.store.Get(ctx, docstore.CollectionProducts, productID)
		if err != nil {
			return nil, fmt.Errorf("get product: %w", err)
		}
		if doc == nil {
			continue
		}
		snapshot := ledger.CoerceQuantity(doc["totalStock"])
		if snapshot != liveTotal {
			stale = append(stale, repository.ProductStaleness{
				ProductID: productID,
				Snapshot:  snapshot,
				Live:      liveTotal,
			})
		}
	}

	sort.Slice(stale, func(i, j int) bool { return stale[i].ProductID < stale[j].ProductID })
	return stale, nil
}

// liveTotals agrupa los registros de stock por producto y suma cantidades.
func (a *StoreAnalytics) liveTotals(ctx context.Context) (map[string]int64, error) {
	docs, err := a.store.Query(ctx, docstore.CollectionWarehouseStocks, nil)
	if err != nil {
		return nil, fmt.Errorf("query stocks: %w", err)
	}
	totals := make(map[string]int64, len(docs))
	for _, doc := range docs {
		productID, _ := doc["productId"].(string)
		if productID == "" {
			continue
		}
		totals[productID] += ledger.CoerceQuantity(doc["quantity"])
	}
	return totals, nil
}

func fieldDecimal(doc docstore.Doc, key string) decimal.Decimal {
	switch v := doc[key].(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		return decimal.NewFromFloat(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		return decimal.Zero
	}
}
