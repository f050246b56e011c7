package repository

import (
	"context"

	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
)

// SerialFilter filtros para listar seriales. Campos vacíos no filtran.
type SerialFilter struct {
	ProductID   string
	WarehouseID string
	OrderID     string
	Status      string
	Limit       int
}

// SerialRepository puerto del registro de seriales. Los cambios de estado solo deben
// hacerse junto con el movimiento de bucket correspondiente (misma transacción).
type SerialRepository interface {
	Create(ctx context.Context, serial *entity.DeviceSerial) error
	GetByID(ctx context.Context, id string) (*entity.DeviceSerial, error)
	GetForUpdate(ctx context.Context, id string) (*entity.DeviceSerial, error)
	GetBySerialNumber(ctx context.Context, serialNumber string) (*entity.DeviceSerial, error)
	// List devuelve seriales ordenados por updated_at ascendente (los que llevan más tiempo primero).
	List(ctx context.Context, filter SerialFilter) ([]*entity.DeviceSerial, error)
	UpdateStatus(ctx context.Context, id, status, orderID string) error
	Delete(ctx context.Context, id string) error
}
