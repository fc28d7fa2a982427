// Package ledger: representación en memoria del stock de un producto en
// todas las bodegas conocidas. El libro vive mientras la pantalla del
// producto está abierta; al guardarlo, los registros persistidos pasan a
// ser la fuente de verdad.
package ledger

import "github.com/invorya/stock-recon/internal/domain/entity"

// StockLine es la entrada de cantidad de una bodega dentro del libro.
type StockLine struct {
	WarehouseID   string
	WarehouseName string
	Quantity      int64
}

// Ledger mantiene un producto y sus líneas de stock por bodega.
// Invariante: a lo sumo una línea por WarehouseID, en orden de inserción.
// El total nunca se almacena: se recalcula en cada consulta.
type Ledger struct {
	ProductID   string
	ProductName string

	lines []StockLine
	index map[string]int // WarehouseID -> posición en lines
}

// New construye un Ledger con una línea en cero por cada bodega conocida,
// preservando el orden recibido.
func New(productID, productName string, warehouses []entity.Warehouse) *Ledger {
	l := &Ledger{
		ProductID:   productID,
		ProductName: productName,
		index:       make(map[string]int, len(warehouses)),
	}
	for _, w := range warehouses {
		l.AddWarehouse(w)
	}
	return l
}

// AddWarehouse agrega una línea en cero para la bodega si aún no existe.
// Si ya existe solo refresca el nombre visible; nunca duplica la línea.
func (l *Ledger) AddWarehouse(w entity.Warehouse) {
	if l.index == nil {
		l.index = make(map[string]int)
	}
	if i, ok := l.index[w.ID]; ok {
		l.lines[i].WarehouseName = w.Name
		return
	}
	l.index[w.ID] = len(l.lines)
	l.lines = append(l.lines, StockLine{WarehouseID: w.ID, WarehouseName: w.Name})
}

// SetQuantity fija la cantidad de la bodega indicada pasando el valor por
// CoerceQuantity: una entrada inválida deja la línea en 0 en vez de fallar.
// Si la bodega no está en el libro, no hace nada.
func (l *Ledger) SetQuantity(warehouseID string, raw any) {
	i, ok := l.index[warehouseID]
	if !ok {
		return
	}
	l.lines[i].Quantity = CoerceQuantity(raw)
}

// Quantity devuelve la cantidad de la bodega y si la línea existe.
func (l *Ledger) Quantity(warehouseID string) (int64, bool) {
	i, ok := l.index[warehouseID]
	if !ok {
		return 0, false
	}
	return l.lines[i].Quantity, true
}

// Lines devuelve una copia de las líneas en orden de inserción.
func (l *Ledger) Lines() []StockLine {
	out := make([]StockLine, len(l.lines))
	copy(out, l.lines)
	return out
}

// TotalStock suma todas las cantidades, recalculado en cada llamada.
func (l *Ledger) TotalStock() int64 {
	var total int64
	for _, ln := range l.lines {
		total += ln.Quantity
	}
	return total
}
