// Package analytics contiene el caso de uso del tablero de inventario:
// recuentos, total vivo de unidades, valoración y detección de
// instantáneas desfasadas.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/invorya/stock-recon/internal/application/dto"
	"github.com/invorya/stock-recon/internal/domain/repository"
)

// DashboardUseCase genera el resumen del estado del inventario.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). A diferencia
// del flujo de guardado, aquí los totales se recalculan sobre los
// registros de stock, no sobre la instantánea totalStock.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro llamadas en paralelo (consultas independientes):
//  1. CountProducts + CountWarehouses → recuentos de catálogo
//  2. TotalUnits                      → unidades vivas
//  3. Valuation                       → SUM(quantity * price)
//  4. StaleSnapshots                  → productos con instantánea desfasada
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type countsResult struct {
		products   int64
		warehouses int64
		err        error
	}
	type unitsResult struct {
		units int64
		err   error
	}
	type valuationResult struct {
		value decimal.Decimal
		err   error
	}
	type staleResult struct {
		rows []repository.ProductStaleness
		err  error
	}

	countsCh := make(chan countsResult, 1)
	unitsCh := make(chan unitsResult, 1)
	valueCh := make(chan valuationResult, 1)
	staleCh := make(chan staleResult, 1)

	go func() {
		products, err := uc.analyticsRepo.CountProducts(ctx)
		if err != nil {
			countsCh <- countsResult{err: err}
			return
		}
		warehouses, err := uc.analyticsRepo.CountWarehouses(ctx)
		countsCh <- countsResult{products: products, warehouses: warehouses, err: err}
	}()
	go func() {
		units, err := uc.analyticsRepo.TotalUnits(ctx)
		unitsCh <- unitsResult{units, err}
	}()
	go func() {
		value, err := uc.analyticsRepo.Valuation(ctx)
		valueCh <- valuationResult{value, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.StaleSnapshots(ctx)
		staleCh <- staleResult{rows, err}
	}()

	counts := <-countsCh
	units := <-unitsCh
	value := <-valueCh
	stale := <-staleCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: recuentos: %w", counts.err)
	}
	if units.err != nil {
		return nil, fmt.Errorf("dashboard: unidades: %w", units.err)
	}
	if value.err != nil {
		return nil, fmt.Errorf("dashboard: valoración: %w", value.err)
	}
	if stale.err != nil {
		return nil, fmt.Errorf("dashboard: instantáneas: %w", stale.err)
	}

	return &dto.DashboardSummaryDTO{
		ProductCount:   counts.products,
		WarehouseCount: counts.warehouses,
		TotalUnits:     units.units,
		InventoryValue: value.value.Round(2),
		StaleSnapshots: int64(len(stale.rows)),
	}, nil
}
