package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/rental-inventory-api/internal/application/dto"
	"github.com/jhoicas/rental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
)

const completedNote = "pedido completado: reserva sobrante liberada"

type adjustment struct {
	itemID    string
	productID string
	qty       int
}

// Return recibe unidades devueltas (onRent -> dirty). Si una línea devuelve más de lo despachado
// se sintetiza primero el despacho faltante (ADJUST). Cuando todas las líneas quedan devueltas
// el pedido pasa a COMPLETED y se libera lo que siguiera reservado.
func (uc *UseCase) Return(ctx context.Context, orderID string, in dto.ItemsRequest) (res *dto.OrderResponse, err error) {
	started := time.Now()
	defer func() { uc.observe("return", started, err) }()

	var (
		adjusted  []adjustment
		returned  int
		completed bool
	)
	err = uc.tx.Run(ctx, func(repos inventory.Repos) error {
		adjusted, returned, completed = nil, 0, false
		order, items, err := lockOrder(ctx, repos, orderID)
		if err != nil {
			return err
		}
		if order.Status != entity.OrderStatusBooked && order.Status != entity.OrderStatusActive {
			return invalidTransition(order, "return")
		}
		plan, err := resolvePlan(items, in.Items, func(it *entity.OrderItem) int {
			return it.Quantity - it.ReturnedQuantity
		})
		if err != nil {
			return err
		}
		if _, err := lockProducts(ctx, repos, items); err != nil {
			return err
		}
		for _, p := range plan {
			it := p.item
			if phantom := it.ReturnedQuantity + p.qty - it.ExportedQuantity; phantom > 0 {
				if !it.IsExternal {
					if err := uc.shipItem(ctx, repos, order.ID, it, phantom, entity.LogActionAdjust); err != nil {
						var short *domain.InsufficientStockError
						if errors.As(err, &short) {
							return fmt.Errorf("%w: no se puede sintetizar el despacho faltante: %s", domain.ErrLedgerInconsistency, short.Error())
						}
						return err
					}
				}
				it.ExportedQuantity += phantom
				adjusted = append(adjusted, adjustment{itemID: it.ID, productID: it.ProductID, qty: phantom})
			}
			if !it.IsExternal {
				if err := uc.returnItem(ctx, repos, order.ID, it, p.qty, ""); err != nil {
					return err
				}
			}
			it.ReturnedQuantity += p.qty
			if err := repos.Orders.UpdateItemProgress(ctx, it); err != nil {
				return err
			}
			returned += p.qty
		}

		changed := false
		if order.Status == entity.OrderStatusBooked {
			order.Status = entity.OrderStatusActive
			changed = true
		}
		if allReturned(items) {
			for _, it := range items {
				if it.IsExternal {
					continue
				}
				if err := uc.releaseReservation(ctx, repos, order.ID, it, completedNote); err != nil {
					return err
				}
			}
			now := uc.now()
			order.Status = entity.OrderStatusCompleted
			order.ActualReturnDate = &now
			completed, changed = true, true
		}
		if !changed {
			return nil
		}
		order.UpdatedAt = uc.now()
		return repos.Orders.UpdateStatus(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	for _, a := range adjusted {
		uc.log.Warn().
			Str("order_id", orderID).
			Str("item_id", a.itemID).
			Str("product_id", a.productID).
			Int("quantity", a.qty).
			Msg("devolución sin despacho registrado: se sintetizó el despacho")
	}
	uc.log.Info().Str("order_id", orderID).Int("units", returned).Bool("completed", completed).Msg("devolución registrada")
	return uc.Get(ctx, orderID)
}

func allReturned(items []*entity.OrderItem) bool {
	for _, it := range items {
		if !it.IsFullyReturned() {
			return false
		}
	}
	return true
}
