package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/invorya/stock-recon/internal/docstore"
	"github.com/invorya/stock-recon/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el tablero, resueltas en
// SQL sobre la tabla documents. Equivalen a las del adaptador en memoria,
// con una ventaja: aquí el id del documento es columna, así que la
// detección de instantáneas desfasadas alcanza también a los productos
// escritos solo por la conciliación.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// CountProducts cuenta los documentos de la colección de productos.
func (r *AnalyticsRepo) CountProducts(ctx context.Context) (int64, error) {
	return r.countCollection(ctx, docstore.CollectionProducts)
}

// CountWarehouses cuenta los documentos de la colección de bodegas.
func (r *AnalyticsRepo) CountWarehouses(ctx context.Context) (int64, error) {
	return r.countCollection(ctx, docstore.CollectionWarehouses)
}

func (r *AnalyticsRepo) countCollection(ctx context.Context, collection string) (int64, error) {
	const query = `SELECT COUNT(*) FROM documents WHERE collection = $1`
	var count int64
	if err := r.pool.QueryRow(ctx, query, collection).Scan(&count); err != nil {
		return 0, fmt.Errorf("analytics.countCollection %s: %w", collection, err)
	}
	return count, nil
}

// LiveTotal recalcula el total de un producto sumando sus registros de
// stock. COALESCE devuelve cero si el producto no tiene registros.
func (r *AnalyticsRepo) LiveTotal(ctx context.Context, productID string) (int64, error) {
	const query = `
	SELECT COALESCE(SUM((doc->>'quantity')::BIGINT), 0)
	FROM documents
	WHERE collection = $1
	  AND doc->>'productId' = $2`

	var total int64
	err := r.pool.QueryRow(ctx, query, docstore.CollectionWarehouseStocks, productID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("analytics.LiveTotal: %w", err)
	}
	return total, nil
}

// TotalUnits suma las cantidades de todos los registros de stock.
func (r *AnalyticsRepo) TotalUnits(ctx context.Context) (int64, error) {
	const query = `
	SELECT COALESCE(SUM((doc->>'quantity')::BIGINT), 0)
	FROM documents
	WHERE collection = $1`

	var total int64
	err := r.pool.QueryRow(ctx, query, docstore.CollectionWarehouseStocks).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("analytics.TotalUnits: %w", err)
	}
	return total, nil
}

// Valuation cruza cada registro de stock con el precio de su producto.
// Los registros huérfanos (sin producto) valoran cero vía COALESCE.
func (r *AnalyticsRepo) Valuation(ctx context.Context) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(
	    (s.doc->>'quantity')::BIGINT * COALESCE((p.doc->>'price')::NUMERIC, 0)
	), 0)
	FROM documents s
	LEFT JOIN documents p
	       ON p.collection = $2
	      AND p.id         = s.doc->>'productId'
	WHERE s.collection = $1`

	var value decimal.Decimal
	err := r.pool.QueryRow(ctx, query, docstore.CollectionWarehouseStocks, docstore.CollectionProducts).
		Scan(&value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("analytics.Valuation: %w", err)
	}
	return value, nil
}

// StaleSnapshots devuelve los productos cuya instantánea totalStock
// difiere de la suma viva de sus registros. IS DISTINCT FROM cubre también
// los productos sin ningún registro (suma viva NULL → 0).
func (r *AnalyticsRepo) StaleSnapshots(ctx context.Context) ([]repository.ProductStaleness, error) {
	const query = `
	SELECT
	    p.id,
	    COALESCE((p.doc->>'totalStock')::BIGINT, 0) AS snapshot,
	    COALESCE(s.live, 0)                         AS live
	FROM documents p
	LEFT JOIN (
	    SELECT doc->>'productId' AS product_id,
	           SUM((doc->>'quantity')::BIGINT) AS live
	    FROM documents
	    WHERE collection = $2
	    GROUP BY doc->>'productId'
	) s ON s.product_id = p.id
	WHERE p.collection = $1
	  AND COALESCE((p.doc->>'totalStock')::BIGINT, 0) IS DISTINCT FROM COALESCE(s.live, 0)
	ORDER BY p.id`

	rows, err := r.pool.Query(ctx, query, docstore.CollectionProducts, docstore.CollectionWarehouseStocks)
	if err != nil {
		return nil, fmt.Errorf("analytics.StaleSnapshots: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductStaleness
	for rows.Next() {
		var row repository.ProductStaleness
		if err := rows.Scan(&row.ProductID, &row.Snapshot, &row.Live); err != nil {
			return nil, fmt.Errorf("analytics.StaleSnapshots scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
