package repository

import (
	"context"
	"time"

	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rental-inventory-api/internal/domain/inventory"
)

// OrderRepository puerto de persistencia de pedidos y sus líneas (las líneas se borran en cascada).
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea la cabecera: serializa las operaciones de ciclo de vida sobre un mismo pedido.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	ListItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
	// UpdateItemProgress persiste exported_quantity y returned_quantity.
	UpdateItemProgress(ctx context.Context, item *entity.OrderItem) error
	// UpdateStatus persiste status, actual_return_date y updated_at.
	UpdateStatus(ctx context.Context, order *entity.Order) error
	// ListCommitments líneas no externas de pedidos BOOKED/ACTIVE del producto cuyo rango
	// se solapa (inclusivo) con [start, end]. excludeOrderID vacío no excluye nada.
	ListCommitments(ctx context.Context, productID string, start, end time.Time, excludeOrderID string) ([]inventory.Commitment, error)
}
