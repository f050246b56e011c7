package dto

import "time"

// AvailabilityQuery query de GET /api/inventory/availability.
type AvailabilityQuery struct {
	ProductID      string `query:"product_id" validate:"required"`
	Quantity       int    `query:"quantity" validate:"min=0"`
	StartDate      string `query:"start_date" validate:"required"`
	EndDate        string `query:"end_date" validate:"required"`
	ExcludeOrderID string `query:"exclude_order_id"`
}

// AvailabilityResponse respuesta del chequeo de disponibilidad. Available nunca es negativo aquí.
type AvailabilityResponse struct {
	ProductID string `json:"product_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	IsEnough  bool   `json:"is_enough"`
}

// StockQuantityRequest body de POST /api/inventory/receive y /clean.
type StockQuantityRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
	Note        string `json:"note" validate:"max=500"`
}

// DamageRequest body de POST /api/inventory/damage.
// Con serial_ids se dañan esas unidades; si no, quantity unidades a granel desde from.
type DamageRequest struct {
	ProductID   string   `json:"product_id" validate:"required"`
	WarehouseID string   `json:"warehouse_id"`
	From        string   `json:"from" validate:"omitempty,oneof=available dirty"`
	Quantity    int      `json:"quantity" validate:"min=0"`
	SerialIDs   []string `json:"serial_ids"`
	Note        string   `json:"note" validate:"max=500"`
}

// RepairRequest body de POST /api/inventory/repair.
type RepairRequest struct {
	ProductID   string   `json:"product_id" validate:"required"`
	WarehouseID string   `json:"warehouse_id"`
	Quantity    int      `json:"quantity" validate:"min=0"`
	SerialIDs   []string `json:"serial_ids"`
	Note        string   `json:"note" validate:"max=500"`
}

// BucketTotals contadores de los cinco buckets.
type BucketTotals struct {
	Available int `json:"available"`
	Reserved  int `json:"reserved"`
	OnRent    int `json:"on_rent"`
	Dirty     int `json:"dirty"`
	Broken    int `json:"broken"`
}

// Sum total de unidades en los buckets.
func (b BucketTotals) Sum() int {
	return b.Available + b.Reserved + b.OnRent + b.Dirty + b.Broken
}

// WarehouseStock buckets de un producto en una bodega.
type WarehouseStock struct {
	WarehouseID string       `json:"warehouse_id"`
	Buckets     BucketTotals `json:"buckets"`
}

// StockOverviewResponse respuesta de GET /api/inventory/products/:id/stock.
type StockOverviewResponse struct {
	ProductID  string           `json:"product_id"`
	Code       string           `json:"code"`
	Name       string           `json:"name"`
	TotalOwned int              `json:"total_owned"`
	Totals     BucketTotals     `json:"totals"`
	Warehouses []WarehouseStock `json:"warehouses"`
	// Balanced indica que la suma de buckets coincide con total_owned.
	Balanced bool `json:"balanced"`
}

// InventoryLogResponse una entrada del log de inventario.
type InventoryLogResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	WarehouseID string    `json:"warehouse_id"`
	OrderID     string    `json:"order_id,omitempty"`
	SerialID    string    `json:"serial_id,omitempty"`
	Action      string    `json:"action"`
	From        string    `json:"from,omitempty"`
	To          string    `json:"to,omitempty"`
	Quantity    int       `json:"quantity"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// InventoryLogListResponse listado paginado del log.
type InventoryLogListResponse struct {
	Items []InventoryLogResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// ReplayResponse buckets reconstruidos desde el log frente a los actuales.
type ReplayResponse struct {
	ProductID  string       `json:"product_id"`
	Replayed   BucketTotals `json:"replayed"`
	Current    BucketTotals `json:"current"`
	Consistent bool         `json:"consistent"`
}

// CreateSerialRequest body de POST /api/serials.
type CreateSerialRequest struct {
	ProductID    string `json:"product_id" validate:"required"`
	WarehouseID  string `json:"warehouse_id"`
	SerialNumber string `json:"serial_number" validate:"required,max=100"`
}

// SerialListQuery query de GET /api/serials.
type SerialListQuery struct {
	ProductID   string `query:"product_id" validate:"required"`
	WarehouseID string `query:"warehouse_id"`
	Status      string `query:"status" validate:"omitempty,oneof=AVAILABLE RESERVED ON_RENT DIRTY BROKEN"`
}

// SerialResponse representación de un serial.
type SerialResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	WarehouseID  string    `json:"warehouse_id"`
	SerialNumber string    `json:"serial_number"`
	Status       string    `json:"status"`
	OrderID      string    `json:"order_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
