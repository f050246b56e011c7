package orders

import (
	"context"
	"time"

	"github.com/jhoicas/rental-inventory-api/internal/application/dto"
	"github.com/jhoicas/rental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
)

// Ship despacha las líneas pedidas (o todo lo pendiente). Cada línea propia necesita
// reservado + disponible >= cantidad; si una falla no se despacha ninguna.
// El pedido pasa a ACTIVE con el primer despacho.
func (uc *UseCase) Ship(ctx context.Context, orderID string, in dto.ItemsRequest) (res *dto.OrderResponse, err error) {
	started := time.Now()
	defer func() { uc.observe("ship", started, err) }()

	shipped := 0
	err = uc.tx.Run(ctx, func(repos inventory.Repos) error {
		shipped = 0
		order, items, err := lockOrder(ctx, repos, orderID)
		if err != nil {
			return err
		}
		if order.Status != entity.OrderStatusBooked && order.Status != entity.OrderStatusActive {
			return invalidTransition(order, "ship")
		}
		plan, err := resolvePlan(items, in.Items, func(it *entity.OrderItem) int {
			return it.Quantity - it.ExportedQuantity
		})
		if err != nil {
			return err
		}
		if _, err := lockProducts(ctx, repos, planItems(plan)); err != nil {
			return err
		}
		for _, p := range plan {
			if !p.item.IsExternal {
				if err := uc.shipItem(ctx, repos, order.ID, p.item, p.qty, entity.LogActionExport); err != nil {
					return err
				}
			}
			p.item.ExportedQuantity += p.qty
			if err := repos.Orders.UpdateItemProgress(ctx, p.item); err != nil {
				return err
			}
			shipped += p.qty
		}
		if order.Status == entity.OrderStatusBooked {
			order.Status = entity.OrderStatusActive
			order.UpdatedAt = uc.now()
			return repos.Orders.UpdateStatus(ctx, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", orderID).Int("units", shipped).Msg("pedido despachado")
	return uc.Get(ctx, orderID)
}
