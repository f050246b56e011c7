package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido.
const (
	OrderStatusDraft     = "DRAFT"
	OrderStatusBooked    = "BOOKED"
	OrderStatusActive    = "ACTIVE"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// Order pedido de alquiler. StartDate y EndDate son días calendario inclusivos (UTC).
type Order struct {
	ID               string
	CustomerID       string
	StartDate        time.Time
	EndDate          time.Time // fecha esperada de devolución
	ActualReturnDate *time.Time
	Status           string
	TotalAmount      decimal.Decimal
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsCommitting indica si el pedido compromete stock en el cálculo de disponibilidad.
func (o *Order) IsCommitting() bool {
	return o.Status == OrderStatusBooked || o.Status == OrderStatusActive
}

// IsClosed pedido en estado terminal.
func (o *Order) IsClosed() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}

// OrderItem línea de pedido. Las líneas externas (IsExternal) las suministra un proveedor
// y no tocan el inventario propio.
type OrderItem struct {
	ID               string
	OrderID          string
	ProductID        string
	WarehouseID      string
	IsExternal       bool
	ExternalName     string
	SupplierID       string
	SupplierCost     decimal.Decimal
	Quantity         int
	ExportedQuantity int
	ReturnedQuantity int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OnRent unidades despachadas que aún no vuelven.
func (i *OrderItem) OnRent() int {
	if i.ExportedQuantity <= i.ReturnedQuantity {
		return 0
	}
	return i.ExportedQuantity - i.ReturnedQuantity
}

// IsFullyReturned la línea ya devolvió al menos lo solicitado.
func (i *OrderItem) IsFullyReturned() bool {
	return i.ReturnedQuantity >= i.Quantity
}
