// Package orders implementa el ciclo de vida de los pedidos de alquiler: creación con chequeo de
// disponibilidad, preparación, despacho, devolución, cierre forzado y cancelación. Cada operación
// corre en una sola transacción: si una línea falla no queda ningún movimiento aplicado.
package orders

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/rental-inventory-api/internal/application/dto"
	"github.com/jhoicas/rental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rental-inventory-api/internal/domain/repository"
	"github.com/jhoicas/rental-inventory-api/pkg/metrics"
)

// UseCase casos de uso del pedido.
type UseCase struct {
	tx                 inventory.TxRunner
	repos              inventory.Repos
	customers          repository.CustomerRepository
	suppliers          repository.SupplierRepository
	ledger             *inventory.Ledger
	serials            *inventory.SerialRegistry
	availability       *inventory.Availability
	pdf                DeliveryNotePDFGenerator
	defaultWarehouseID string
	log                zerolog.Logger
	metrics            *metrics.Recorder
	now                func() time.Time
}

// NewUseCase construye el caso de uso. pdf puede ser nil (la nota de entrega queda deshabilitada).
func NewUseCase(
	tx inventory.TxRunner,
	repos inventory.Repos,
	customers repository.CustomerRepository,
	suppliers repository.SupplierRepository,
	ledger *inventory.Ledger,
	serials *inventory.SerialRegistry,
	availability *inventory.Availability,
	pdf DeliveryNotePDFGenerator,
	defaultWarehouseID string,
	log zerolog.Logger,
	rec *metrics.Recorder,
) *UseCase {
	return &UseCase{
		tx:                 tx,
		repos:              repos,
		customers:          customers,
		suppliers:          suppliers,
		ledger:             ledger,
		serials:            serials,
		availability:       availability,
		pdf:                pdf,
		defaultWarehouseID: defaultWarehouseID,
		log:                log,
		metrics:            rec,
		now:                time.Now,
	}
}

// Get devuelve el pedido con sus líneas.
func (uc *UseCase) Get(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	items, err := uc.repos.Orders.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, items), nil
}

// Logs movimientos de inventario asociados al pedido, en orden cronológico.
func (uc *UseCase) Logs(ctx context.Context, orderID string) ([]dto.InventoryLogResponse, error) {
	order, err := uc.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	entries, err := uc.repos.Logs.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, inventory.ToLogResponse(e))
	}
	return out, nil
}

// lockOrder bloquea la cabecera del pedido y carga sus líneas.
func lockOrder(ctx context.Context, repos inventory.Repos, orderID string) (*entity.Order, []*entity.OrderItem, error) {
	order, err := repos.Orders.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	items, err := repos.Orders.ListItems(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

// lockProducts bloquea los productos de las líneas propias en orden de id, para que dos
// operaciones concurrentes sobre los mismos productos no se crucen.
func lockProducts(ctx context.Context, repos inventory.Repos, items []*entity.OrderItem) (map[string]*entity.Product, error) {
	ids := make([]string, 0, len(items))
	seen := map[string]bool{}
	for _, it := range items {
		if it.IsExternal || seen[it.ProductID] {
			continue
		}
		seen[it.ProductID] = true
		ids = append(ids, it.ProductID)
	}
	sort.Strings(ids)
	products := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		p, err := inventory.LockProduct(ctx, repos, id)
		if err != nil {
			return nil, err
		}
		products[id] = p
	}
	return products, nil
}

func invalidTransition(order *entity.Order, op string) error {
	return fmt.Errorf("%w: %s no aplica a un pedido %s", domain.ErrInvalidStatusTransition, op, order.Status)
}

// observe registra duración y resultado de la operación.
func (uc *UseCase) observe(op string, started time.Time, err error) {
	uc.metrics.ObserveOperation(op, started, err)
	if err != nil {
		uc.log.Debug().Err(err).Str("operation", op).Msg("operación de pedido rechazada")
	}
}
