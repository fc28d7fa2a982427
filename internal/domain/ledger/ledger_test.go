package ledger_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/stock-recon/internal/domain/entity"
	"github.com/invorya/stock-recon/internal/domain/ledger"
)

func bodegas(names ...string) []entity.Warehouse {
	out := make([]entity.Warehouse, 0, len(names))
	for _, n := range names {
		out = append(out, entity.Warehouse{ID: n, Name: "Bodega " + n})
	}
	return out
}

func TestNew_SinBodegas(t *testing.T) {
	l := ledger.New("p1", "Tornillos", nil)

	assert.Empty(t, l.Lines(), "sin bodegas no debe haber líneas")
	assert.EqualValues(t, 0, l.TotalStock())
}

func TestNew_UnaLineaEnCeroPorBodegaEnOrden(t *testing.T) {
	l := ledger.New("p1", "Tornillos", bodegas("w1", "w2", "w3"))

	lines := l.Lines()
	require.Len(t, lines, 3)
	for i, id := range []string{"w1", "w2", "w3"} {
		assert.Equal(t, id, lines[i].WarehouseID, "el orden de las bodegas debe conservarse")
		assert.EqualValues(t, 0, lines[i].Quantity, "toda línea inicia en cero")
	}
}

func TestAddWarehouse_NoDuplicaYRefrescaNombre(t *testing.T) {
	l := ledger.New("p1", "Tornillos", bodegas("w1"))
	l.SetQuantity("w1", 7)

	l.AddWarehouse(entity.Warehouse{ID: "w1", Name: "Bodega Renombrada"})

	lines := l.Lines()
	require.Len(t, lines, 1, "agregar una bodega existente no debe duplicar la línea")
	assert.Equal(t, "Bodega Renombrada", lines[0].WarehouseName)
	assert.EqualValues(t, 7, lines[0].Quantity, "la cantidad previa debe conservarse")
}

func TestSetQuantity_BodegaDesconocidaNoHaceNada(t *testing.T) {
	l := ledger.New("p1", "Tornillos", bodegas("w1"))
	l.SetQuantity("w1", 5)

	l.SetQuantity("fantasma", 99)

	assert.EqualValues(t, 5, l.TotalStock())
	_, ok := l.Quantity("fantasma")
	assert.False(t, ok)
}

// TestSetQuantity_EntradaInvalidaCaeACero cubre la política de coerción: el
// valor malformado reinicia la línea a cero en vez de producir un error.
func TestSetQuantity_EntradaInvalidaCaeACero(t *testing.T) {
	l := ledger.New("p1", "Tornillos", bodegas("w1"))
	l.SetQuantity("w1", 5)
	require.EqualValues(t, 5, l.TotalStock())

	l.SetQuantity("w1", "abc")

	q, ok := l.Quantity("w1")
	require.True(t, ok)
	assert.EqualValues(t, 0, q, "una cantidad no numérica debe dejar la línea en cero")
}

func TestTotalStock_RecalculadoTrasCadaMutacion(t *testing.T) {
	l := ledger.New("p1", "Tornillos", bodegas("w1", "w2"))

	l.SetQuantity("w1", 5)
	l.SetQuantity("w2", 3)
	assert.EqualValues(t, 8, l.TotalStock())

	l.SetQuantity("w1", 0)
	assert.EqualValues(t, 3, l.TotalStock(), "el total debe reflejar la última mutación")
}

func TestLines_DevuelveCopia(t *testing.T) {
	l := ledger.New("p1", "Tornillos", bodegas("w1"))

	lines := l.Lines()
	lines[0].Quantity = 999

	q, _ := l.Quantity("w1")
	assert.EqualValues(t, 0, q, "mutar la copia no debe afectar el libro")
}

// ── CoerceQuantity ────────────────────────────────────────────────────────────

func TestCoerceQuantity(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int64
	}{
		{"entero válido", 5, 5},
		{"cero", 0, 0},
		{"int64", int64(42), 42},
		{"negativo cae a cero", -3, 0},
		{"float entero", float64(5), 5},
		{"float fraccional cae a cero", 5.5, 0},
		{"float negativo cae a cero", -2.0, 0},
		{"NaN cae a cero", math.NaN(), 0},
		{"infinito cae a cero", math.Inf(1), 0},
		{"cadena numérica", "7", 7},
		{"cadena con espacios", " 12 ", 12},
		{"cadena no numérica cae a cero", "abc", 0},
		{"cadena vacía cae a cero", "", 0},
		{"cadena negativa cae a cero", "-8", 0},
		{"cadena fraccional cae a cero", "3.5", 0},
		{"json.Number válido", json.Number("9"), 9},
		{"json.Number fraccional cae a cero", json.Number("9.1"), 0},
		{"nil cae a cero", nil, 0},
		{"bool cae a cero", true, 0},
		{"uint64 fuera de rango cae a cero", uint64(math.MaxUint64), 0},
		{"uint dentro de rango", uint32(11), 11},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ledger.CoerceQuantity(tc.in))
		})
	}
}
