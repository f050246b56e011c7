package entity

import "time"

// Customer representa un cliente que alquila equipos.
type Customer struct {
	ID         string
	Name       string
	DocumentID string // NIT o cédula
	Email      string
	Phone      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Supplier proveedor externo para líneas de pedido que no salen del inventario propio.
type Supplier struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
