package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/rental-inventory-api/internal/application/dto"
	"github.com/jhoicas/rental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	domaininv "github.com/jhoicas/rental-inventory-api/internal/domain/inventory"
)

// Prepare reserva unidades para una línea (available -> reserved); el pedido sigue BOOKED.
// Con serial_ids cada serial debe estar AVAILABLE; a granel, available debe cubrir quantity y se
// toman primero los seriales AVAILABLE. Lo reservado nunca supera lo pendiente de despachar.
func (uc *UseCase) Prepare(ctx context.Context, orderID string, in dto.PrepareRequest) (res *dto.OrderResponse, err error) {
	started := time.Now()
	defer func() { uc.observe("prepare", started, err) }()

	var qty int
	err = uc.tx.Run(ctx, func(repos inventory.Repos) error {
		order, items, err := lockOrder(ctx, repos, orderID)
		if err != nil {
			return err
		}
		if order.Status != entity.OrderStatusBooked && order.Status != entity.OrderStatusActive {
			return invalidTransition(order, "prepare")
		}
		item, err := stockItem(items, in.ProductID)
		if err != nil {
			return err
		}
		qty = in.Quantity
		if len(in.SerialIDs) > 0 {
			qty = len(in.SerialIDs)
		}
		if _, err := inventory.LockProduct(ctx, repos, item.ProductID); err != nil {
			return err
		}
		held, err := uc.heldFor(ctx, repos, order.ID, item)
		if err != nil {
			return err
		}
		if pending := item.Quantity - item.ExportedQuantity - held; qty > pending {
			return fmt.Errorf("%w: se piden %d unidades y la línea solo tiene %d por reservar", domain.ErrInvalidInput, qty, max(pending, 0))
		}
		if len(in.SerialIDs) > 0 {
			for _, id := range in.SerialIDs {
				s, err := uc.lockItemSerial(ctx, repos, item, id)
				if err != nil {
					return err
				}
				if err := uc.serials.Assign(ctx, repos, s, order.ID); err != nil {
					return err
				}
			}
			return nil
		}
		if qty <= 0 {
			return fmt.Errorf("%w: indique serial_ids o quantity", domain.ErrInvalidInput)
		}
		return uc.serials.Move(ctx, repos, inventory.Move{
			ProductID:   item.ProductID,
			WarehouseID: item.WarehouseID,
			OrderID:     order.ID,
			From:        domaininv.Available,
			To:          domaininv.Reserved,
			Quantity:    qty,
			Action:      entity.LogActionReserve,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("order_id", orderID).
		Str("product_id", in.ProductID).
		Int("quantity", qty).
		Int("serials", len(in.SerialIDs)).
		Msg("pedido preparado")
	return uc.Get(ctx, orderID)
}

// Release deshace una preparación (reserved -> available). Los seriales deben estar reservados para este pedido;
// a granel no se libera más de lo que el pedido tiene reservado.
func (uc *UseCase) Release(ctx context.Context, orderID string, in dto.PrepareRequest) (res *dto.OrderResponse, err error) {
	started := time.Now()
	defer func() { uc.observe("release", started, err) }()

	err = uc.tx.Run(ctx, func(repos inventory.Repos) error {
		order, items, err := lockOrder(ctx, repos, orderID)
		if err != nil {
			return err
		}
		if order.IsClosed() {
			return invalidTransition(order, "release")
		}
		item, err := stockItem(items, in.ProductID)
		if err != nil {
			return err
		}
		if _, err := inventory.LockProduct(ctx, repos, item.ProductID); err != nil {
			return err
		}
		if len(in.SerialIDs) > 0 {
			for _, id := range in.SerialIDs {
				s, err := uc.lockItemSerial(ctx, repos, item, id)
				if err != nil {
					return err
				}
				if s.OrderID != order.ID {
					return &domain.SerialStateError{SerialID: s.ID, Serial: s.SerialNumber, Status: s.Status, Sentinel: domain.ErrSerialUnavailable}
				}
				if err := uc.serials.Release(ctx, repos, s, "liberado del pedido"); err != nil {
					return err
				}
			}
			return nil
		}
		if in.Quantity <= 0 {
			return fmt.Errorf("%w: indique serial_ids o quantity", domain.ErrInvalidInput)
		}
		held, err := uc.heldFor(ctx, repos, order.ID, item)
		if err != nil {
			return err
		}
		if in.Quantity > held {
			return fmt.Errorf("%w: se piden liberar %d unidades y el pedido solo tiene %d reservadas", domain.ErrInvalidInput, in.Quantity, held)
		}
		return uc.serials.Move(ctx, repos, inventory.Move{
			ProductID:   item.ProductID,
			WarehouseID: item.WarehouseID,
			OrderID:     order.ID,
			From:        domaininv.Reserved,
			To:          domaininv.Available,
			Quantity:    in.Quantity,
			Action:      entity.LogActionRelease,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", orderID).Str("product_id", in.ProductID).Msg("reserva liberada")
	return uc.Get(ctx, orderID)
}

// stockItem línea propia del producto en el pedido.
func stockItem(items []*entity.OrderItem, productID string) (*entity.OrderItem, error) {
	for _, it := range items {
		if !it.IsExternal && it.ProductID == productID {
			return it, nil
		}
	}
	return nil, fmt.Errorf("%w: el pedido no tiene una línea del producto %s", domain.ErrNotFound, productID)
}

// lockItemSerial bloquea el serial y valida que corresponda al producto y bodega de la línea.
func (uc *UseCase) lockItemSerial(ctx context.Context, repos inventory.Repos, item *entity.OrderItem, serialID string) (*entity.DeviceSerial, error) {
	s, err := uc.serials.Lock(ctx, repos, serialID)
	if err != nil {
		return nil, err
	}
	if s.ProductID != item.ProductID || s.WarehouseID != item.WarehouseID {
		return nil, fmt.Errorf("%w: serial %s no corresponde al producto/bodega de la línea", domain.ErrInvalidInput, s.SerialNumber)
	}
	return s, nil
}
