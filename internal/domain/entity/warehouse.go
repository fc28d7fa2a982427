package entity

import "time"

// Warehouse representa una bodega o sucursal donde se almacena inventario.
// El ID se acuña desde el nombre saneado al crearla y es inmutable.
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
