package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body de POST /api/orders. Fechas en formato YYYY-MM-DD.
type CreateOrderRequest struct {
	CustomerID string                   `json:"customer_id" validate:"required"`
	StartDate  string                   `json:"start_date" validate:"required"`
	EndDate    string                   `json:"end_date" validate:"required"`
	Notes      string                   `json:"notes" validate:"max=1000"`
	Items      []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOrderItemRequest línea del pedido. Las externas llevan external_name y supplier_id en lugar de product_id.
type CreateOrderItemRequest struct {
	ProductID    string          `json:"product_id" validate:"required_without=IsExternal"`
	WarehouseID  string          `json:"warehouse_id"`
	Quantity     int             `json:"quantity" validate:"required,min=1"`
	IsExternal   bool            `json:"is_external"`
	ExternalName string          `json:"external_name" validate:"required_if=IsExternal true,max=200"`
	SupplierID   string          `json:"supplier_id"`
	SupplierCost decimal.Decimal `json:"supplier_cost"`
}

// PrepareRequest body de POST /api/orders/:id/prepare y /release.
// Con serial_ids se reservan esos seriales; si no, quantity unidades a granel.
type PrepareRequest struct {
	ProductID string   `json:"product_id" validate:"required"`
	SerialIDs []string `json:"serial_ids"`
	Quantity  int      `json:"quantity" validate:"min=0"`
}

// ItemQuantity cantidad a mover para una línea.
type ItemQuantity struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// ItemsRequest body de POST /api/orders/:id/ship y /return. Vacío = todo lo pendiente.
type ItemsRequest struct {
	Items []ItemQuantity `json:"items" validate:"omitempty,dive"`
}

// StatusPatchRequest body de PATCH /api/orders/:id/status.
type StatusPatchRequest struct {
	Status string `json:"status" validate:"required,oneof=DRAFT BOOKED ACTIVE COMPLETED CANCELLED"`
}

// OrderItemResponse salida de una línea del pedido.
type OrderItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id,omitempty"`
	WarehouseID      string          `json:"warehouse_id,omitempty"`
	IsExternal       bool            `json:"is_external"`
	ExternalName     string          `json:"external_name,omitempty"`
	SupplierID       string          `json:"supplier_id,omitempty"`
	SupplierCost     decimal.Decimal `json:"supplier_cost"`
	Quantity         int             `json:"quantity"`
	ExportedQuantity int             `json:"exported_quantity"`
	ReturnedQuantity int             `json:"returned_quantity"`
}

// OrderResponse salida de un pedido con sus líneas.
type OrderResponse struct {
	ID               string              `json:"id"`
	CustomerID       string              `json:"customer_id"`
	StartDate        string              `json:"start_date"`
	EndDate          string              `json:"end_date"`
	ActualReturnDate *time.Time          `json:"actual_return_date,omitempty"`
	Status           string              `json:"status"`
	TotalAmount      decimal.Decimal     `json:"total_amount"`
	Notes            string              `json:"notes,omitempty"`
	Items            []OrderItemResponse `json:"items"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}
