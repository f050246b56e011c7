package entity

import "time"

// Estados de un serial (reflejan el bucket de la unidad).
const (
	SerialStatusAvailable = "AVAILABLE"
	SerialStatusReserved  = "RESERVED"
	SerialStatusOnRent    = "ON_RENT"
	SerialStatusDirty     = "DIRTY"
	SerialStatusBroken    = "BROKEN"
)

// DeviceSerial unidad física identificada por número de serie.
// OrderID solo se llena mientras la unidad está comprometida con un pedido.
type DeviceSerial struct {
	ID           string
	ProductID    string
	WarehouseID  string
	SerialNumber string
	Status       string
	OrderID      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
