package orders

import (
	"context"
	"fmt"

	"github.com/jhoicas/rental-inventory-api/internal/application/dto"
	"github.com/jhoicas/rental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	domaininv "github.com/jhoicas/rental-inventory-api/internal/domain/inventory"
)

type plannedItem struct {
	item *entity.OrderItem
	qty  int
}

// resolvePlan arma las cantidades por línea. Sin pedidos explícitos toma lo pendiente de cada línea.
func resolvePlan(items []*entity.OrderItem, req []dto.ItemQuantity, pending func(*entity.OrderItem) int) ([]plannedItem, error) {
	var plan []plannedItem
	if len(req) == 0 {
		for _, it := range items {
			if n := pending(it); n > 0 {
				plan = append(plan, plannedItem{item: it, qty: n})
			}
		}
	} else {
		byID := make(map[string]*entity.OrderItem, len(items))
		for _, it := range items {
			byID[it.ID] = it
		}
		seen := map[string]bool{}
		for _, r := range req {
			it, ok := byID[r.ItemID]
			if !ok {
				return nil, fmt.Errorf("%w: línea %s", domain.ErrNotFound, r.ItemID)
			}
			if seen[r.ItemID] {
				return nil, fmt.Errorf("%w: línea %s repetida", domain.ErrInvalidInput, r.ItemID)
			}
			seen[r.ItemID] = true
			if r.Quantity <= 0 {
				return nil, fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
			}
			if n := pending(it); r.Quantity > n {
				return nil, fmt.Errorf("%w: línea %s tiene %d unidades pendientes, se pidieron %d", domain.ErrInvalidInput, it.ID, n, r.Quantity)
			}
			plan = append(plan, plannedItem{item: it, qty: r.Quantity})
		}
	}
	if len(plan) == 0 {
		return nil, fmt.Errorf("%w: no hay unidades pendientes", domain.ErrInvalidInput)
	}
	return plan, nil
}

func planItems(plan []plannedItem) []*entity.OrderItem {
	out := make([]*entity.OrderItem, 0, len(plan))
	for _, p := range plan {
		out = append(out, p.item)
	}
	return out
}

// shipItem lleva qty unidades de la línea a onRent: primero los seriales reservados para el pedido,
// después la reserva a granel del pedido y por último available (seriales AVAILABLE antes que granel).
func (uc *UseCase) shipItem(ctx context.Context, repos inventory.Repos, orderID string, item *entity.OrderItem, qty int, action string) error {
	reserved, err := uc.serials.ListForOrder(ctx, repos, orderID, item.ProductID, entity.SerialStatusReserved, qty)
	if err != nil {
		return err
	}
	bulkReserved, err := uc.ledger.ReservedFor(ctx, repos, orderID, item.ProductID)
	if err != nil {
		return err
	}
	stock, err := uc.ledger.Balance(ctx, repos, item.ProductID, item.WarehouseID)
	if err != nil {
		return err
	}
	ownReserved := len(reserved) + max(min(bulkReserved, stock.Reserved-len(reserved)), 0)
	if ownReserved+stock.Available < qty {
		return &domain.InsufficientStockError{
			ProductID:   item.ProductID,
			WarehouseID: item.WarehouseID,
			Bucket:      string(domaininv.Reserved) + "+" + string(domaininv.Available),
			Requested:   qty,
			Reserved:    ownReserved,
			Available:   stock.Available,
		}
	}
	for _, s := range reserved {
		locked, err := uc.serials.Lock(ctx, repos, s.ID)
		if err != nil {
			return err
		}
		if err := uc.serials.Ship(ctx, repos, locked, orderID, action); err != nil {
			return err
		}
	}
	rest := qty - len(reserved)
	if fromAvailable := rest - (ownReserved - len(reserved)); fromAvailable > 0 {
		moved, err := uc.serials.Take(ctx, repos, item.ProductID, item.WarehouseID, domaininv.Available, domaininv.OnRent, fromAvailable, orderID, action, "")
		if err != nil {
			return err
		}
		rest -= moved
	}
	if rest == 0 {
		return nil
	}
	return uc.ledger.Ship(ctx, repos, item.ProductID, item.WarehouseID, orderID, rest, bulkReserved, action, "")
}

// returnItem lleva qty unidades de onRent a dirty, primero los seriales del pedido.
func (uc *UseCase) returnItem(ctx context.Context, repos inventory.Repos, orderID string, item *entity.OrderItem, qty int, note string) error {
	onRent, err := uc.serials.ListForOrder(ctx, repos, orderID, item.ProductID, entity.SerialStatusOnRent, qty)
	if err != nil {
		return err
	}
	for _, s := range onRent {
		locked, err := uc.serials.Lock(ctx, repos, s.ID)
		if err != nil {
			return err
		}
		if err := uc.serials.Return(ctx, repos, locked, orderID, entity.LogActionImport, note); err != nil {
			return err
		}
	}
	rest := qty - len(onRent)
	if rest == 0 {
		return nil
	}
	return uc.ledger.Move(ctx, repos, inventory.Move{
		ProductID:   item.ProductID,
		WarehouseID: item.WarehouseID,
		OrderID:     orderID,
		From:        domaininv.OnRent,
		To:          domaininv.Dirty,
		Quantity:    rest,
		Action:      entity.LogActionImport,
		Note:        note,
	})
}

// heldFor unidades que el pedido tiene reservadas para la línea: seriales RESERVED más la reserva a granel.
func (uc *UseCase) heldFor(ctx context.Context, repos inventory.Repos, orderID string, item *entity.OrderItem) (int, error) {
	reserved, err := uc.serials.ListForOrder(ctx, repos, orderID, item.ProductID, entity.SerialStatusReserved, 0)
	if err != nil {
		return 0, err
	}
	bulk, err := uc.ledger.ReservedFor(ctx, repos, orderID, item.ProductID)
	if err != nil {
		return 0, err
	}
	return len(reserved) + bulk, nil
}

// releaseReservation devuelve a available todo lo reservado por el pedido para la línea:
// seriales RESERVED y la reserva a granel registrada en el log.
func (uc *UseCase) releaseReservation(ctx context.Context, repos inventory.Repos, orderID string, item *entity.OrderItem, note string) error {
	reserved, err := uc.serials.ListForOrder(ctx, repos, orderID, item.ProductID, entity.SerialStatusReserved, 0)
	if err != nil {
		return err
	}
	for _, s := range reserved {
		locked, err := uc.serials.Lock(ctx, repos, s.ID)
		if err != nil {
			return err
		}
		if err := uc.serials.Release(ctx, repos, locked, note); err != nil {
			return err
		}
	}
	bulk, err := uc.ledger.ReservedFor(ctx, repos, orderID, item.ProductID)
	if err != nil {
		return err
	}
	stock, err := uc.ledger.Balance(ctx, repos, item.ProductID, item.WarehouseID)
	if err != nil {
		return err
	}
	n := min(bulk, stock.Reserved)
	if n <= 0 {
		return nil
	}
	return uc.ledger.Move(ctx, repos, inventory.Move{
		ProductID:   item.ProductID,
		WarehouseID: item.WarehouseID,
		OrderID:     orderID,
		From:        domaininv.Reserved,
		To:          domaininv.Available,
		Quantity:    n,
		Action:      entity.LogActionRelease,
		Note:        note,
	})
}
