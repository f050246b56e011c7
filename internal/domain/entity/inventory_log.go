package entity

import "time"

// Acciones registradas en el log de inventario.
const (
	LogActionExport  = "EXPORT"  // despacho al cliente
	LogActionImport  = "IMPORT"  // devolución del cliente
	LogActionAdjust  = "ADJUST"  // despacho sintetizado por devolución sin salida registrada
	LogActionClean   = "CLEAN"   // limpieza dirty -> available
	LogActionReserve = "RESERVE" // preparación de pedido
	LogActionRelease = "RELEASE" // liberación de reserva
	LogActionReceive = "RECEIVE" // alta de unidades nuevas
	LogActionRetire  = "RETIRE"  // baja de unidades (p. ej. borrar serial)
	LogActionDamage  = "DAMAGE"
	LogActionRepair  = "REPAIR"
)

// InventoryLog registro inmutable de un movimiento entre buckets.
// FromBucket vacío = la unidad entra al inventario; ToBucket vacío = sale del inventario.
type InventoryLog struct {
	ID          string
	ProductID   string
	WarehouseID string
	OrderID     string
	SerialID    string
	Action      string
	FromBucket  string
	ToBucket    string
	Quantity    int
	Note        string
	CreatedAt   time.Time
}
