package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/rental-inventory-api/internal/application/dto"
	"github.com/jhoicas/rental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
)

const forceCompleteNote = "cierre forzado"

// ForceComplete cierra el pedido sin esperar devoluciones: lo que sigue en alquiler pasa a dirty
// (se da por devuelto sucio) y lo reservado sin despachar vuelve a available.
// Un pedido ya COMPLETED se devuelve sin cambios.
func (uc *UseCase) ForceComplete(ctx context.Context, orderID string) (res *dto.OrderResponse, err error) {
	started := time.Now()
	defer func() { uc.observe("force_complete", started, err) }()

	var noop bool
	err = uc.tx.Run(ctx, func(repos inventory.Repos) error {
		order, items, err := lockOrder(ctx, repos, orderID)
		if err != nil {
			return err
		}
		noop = order.Status == entity.OrderStatusCompleted
		if noop {
			return nil
		}
		if order.Status == entity.OrderStatusCancelled {
			return invalidTransition(order, "force-complete")
		}
		return uc.forceComplete(ctx, repos, order, items)
	})
	if err != nil {
		return nil, err
	}
	if !noop {
		uc.log.Warn().Str("order_id", orderID).Msg("pedido completado de forma forzada")
	}
	return uc.Get(ctx, orderID)
}

func (uc *UseCase) forceComplete(ctx context.Context, repos inventory.Repos, order *entity.Order, items []*entity.OrderItem) error {
	if _, err := lockProducts(ctx, repos, items); err != nil {
		return err
	}
	for _, it := range items {
		if !it.IsExternal {
			if onRent := it.OnRent(); onRent > 0 {
				if err := uc.returnItem(ctx, repos, order.ID, it, onRent, forceCompleteNote); err != nil {
					return err
				}
			}
			if err := uc.releaseReservation(ctx, repos, order.ID, it, forceCompleteNote); err != nil {
				return err
			}
		}
		if it.ReturnedQuantity < it.ExportedQuantity {
			it.ReturnedQuantity = it.ExportedQuantity
			if err := repos.Orders.UpdateItemProgress(ctx, it); err != nil {
				return err
			}
		}
	}
	now := uc.now()
	order.Status = entity.OrderStatusCompleted
	order.ActualReturnDate = &now
	order.UpdatedAt = now
	return repos.Orders.UpdateStatus(ctx, order)
}

// Cancel anula un pedido DRAFT/BOOKED sin despachos y libera sus reservas.
func (uc *UseCase) Cancel(ctx context.Context, orderID string) (res *dto.OrderResponse, err error) {
	started := time.Now()
	defer func() { uc.observe("cancel", started, err) }()

	err = uc.tx.Run(ctx, func(repos inventory.Repos) error {
		order, items, err := lockOrder(ctx, repos, orderID)
		if err != nil {
			return err
		}
		return uc.cancel(ctx, repos, order, items)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", orderID).Msg("pedido cancelado")
	return uc.Get(ctx, orderID)
}

func (uc *UseCase) cancel(ctx context.Context, repos inventory.Repos, order *entity.Order, items []*entity.OrderItem) error {
	if order.Status != entity.OrderStatusBooked && order.Status != entity.OrderStatusDraft {
		return invalidTransition(order, "cancel")
	}
	for _, it := range items {
		if it.ExportedQuantity > 0 {
			return fmt.Errorf("%w: el pedido ya tiene unidades despachadas", domain.ErrInvalidStatusTransition)
		}
	}
	if _, err := lockProducts(ctx, repos, items); err != nil {
		return err
	}
	for _, it := range items {
		if it.IsExternal {
			continue
		}
		if err := uc.releaseReservation(ctx, repos, order.ID, it, "pedido cancelado"); err != nil {
			return err
		}
	}
	order.Status = entity.OrderStatusCancelled
	order.UpdatedAt = uc.now()
	return repos.Orders.UpdateStatus(ctx, order)
}

// PatchStatus corrección administrativa de estado. Solo admite transiciones que se pueden
// reconciliar con el libro: COMPLETED ejecuta el cierre forzado, CANCELLED la cancelación y
// DRAFT -> BOOKED vuelve a verificar disponibilidad. Pedir el estado actual no cambia nada.
func (uc *UseCase) PatchStatus(ctx context.Context, orderID string, in dto.StatusPatchRequest) (res *dto.OrderResponse, err error) {
	started := time.Now()
	defer func() { uc.observe("status_patch", started, err) }()

	var from string
	err = uc.tx.Run(ctx, func(repos inventory.Repos) error {
		order, items, err := lockOrder(ctx, repos, orderID)
		if err != nil {
			return err
		}
		from = order.Status
		switch {
		case in.Status == order.Status:
			return nil
		case in.Status == entity.OrderStatusCompleted && !order.IsClosed():
			return uc.forceComplete(ctx, repos, order, items)
		case in.Status == entity.OrderStatusCancelled:
			return uc.cancel(ctx, repos, order, items)
		case in.Status == entity.OrderStatusBooked && order.Status == entity.OrderStatusDraft:
			if _, err := lockProducts(ctx, repos, items); err != nil {
				return err
			}
			if err := uc.checkAvailability(ctx, repos, order, items, order.ID); err != nil {
				return err
			}
			order.Status = entity.OrderStatusBooked
			order.UpdatedAt = uc.now()
			return repos.Orders.UpdateStatus(ctx, order)
		default:
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatusTransition, order.Status, in.Status)
		}
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", orderID).Str("from", from).Str("to", in.Status).Msg("estado de pedido corregido")
	return uc.Get(ctx, orderID)
}
