package entity

import "time"

// Warehouse representa una bodega donde se almacenan los equipos.
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
