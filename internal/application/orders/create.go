package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rental-inventory-api/internal/application/dto"
	"github.com/jhoicas/rental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
)

// Create registra un pedido BOOKED. Para cada línea propia la disponibilidad en el rango debe
// cubrir la cantidad; si alguna no alcanza no se crea nada.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (res *dto.OrderResponse, err error) {
	started := time.Now()
	defer func() { uc.observe("create", started, err) }()

	start, err := dto.ParseDate("start_date", in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := dto.ParseDate("end_date", in.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: el pedido no tiene líneas", domain.ErrInvalidInput)
	}
	customer, err := uc.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
	}

	now := uc.now()
	order := &entity.Order{
		ID:          uuid.New().String(),
		CustomerID:  in.CustomerID,
		StartDate:   start,
		EndDate:     end,
		Status:      entity.OrderStatusBooked,
		TotalAmount: decimal.Zero,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	items, err := uc.buildItems(ctx, order, in.Items, now)
	if err != nil {
		return nil, err
	}

	err = uc.tx.Run(ctx, func(repos inventory.Repos) error {
		products, err := lockProducts(ctx, repos, items)
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.IsExternal {
				continue
			}
			if err := inventory.RequireWarehouse(ctx, repos, it.WarehouseID); err != nil {
				return err
			}
		}
		if err := uc.checkAvailability(ctx, repos, order, items, ""); err != nil {
			return err
		}
		order.TotalAmount = totalAmount(order, items, products)
		if err := repos.Orders.Create(ctx, order); err != nil {
			return err
		}
		for _, it := range items {
			if err := repos.Orders.CreateItem(ctx, it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("order_id", order.ID).
		Str("customer_id", order.CustomerID).
		Int("items", len(items)).
		Msg("pedido reservado")
	return toOrderResponse(order, items), nil
}

func (uc *UseCase) buildItems(ctx context.Context, order *entity.Order, in []dto.CreateOrderItemRequest, now time.Time) ([]*entity.OrderItem, error) {
	items := make([]*entity.OrderItem, 0, len(in))
	seen := map[string]bool{}
	for _, req := range in {
		if req.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
		}
		it := &entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			Quantity:  req.Quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if req.IsExternal {
			if req.ExternalName == "" {
				return nil, fmt.Errorf("%w: external_name requerido en líneas externas", domain.ErrInvalidInput)
			}
			if req.SupplierID != "" {
				s, err := uc.suppliers.GetByID(ctx, req.SupplierID)
				if err != nil {
					return nil, err
				}
				if s == nil {
					return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, req.SupplierID)
				}
			}
			it.IsExternal = true
			it.ExternalName = req.ExternalName
			it.SupplierID = req.SupplierID
			it.SupplierCost = req.SupplierCost
		} else {
			if req.ProductID == "" {
				return nil, fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
			}
			if seen[req.ProductID] {
				return nil, fmt.Errorf("%w: producto %s repetido en el pedido", domain.ErrInvalidInput, req.ProductID)
			}
			seen[req.ProductID] = true
			it.ProductID = req.ProductID
			it.WarehouseID = req.WarehouseID
			if it.WarehouseID == "" {
				it.WarehouseID = uc.defaultWarehouseID
			}
		}
		items = append(items, it)
	}
	return items, nil
}

// checkAvailability exige computeAvailable >= quantity para cada línea propia.
func (uc *UseCase) checkAvailability(ctx context.Context, repos inventory.Repos, order *entity.Order, items []*entity.OrderItem, excludeOrderID string) error {
	for _, it := range items {
		if it.IsExternal {
			continue
		}
		n, err := uc.availability.Compute(ctx, repos, it.ProductID, order.StartDate, order.EndDate, excludeOrderID)
		if err != nil {
			return err
		}
		if n < it.Quantity {
			return &domain.InsufficientStockError{
				ProductID:   it.ProductID,
				WarehouseID: it.WarehouseID,
				Bucket:      "availability",
				Requested:   it.Quantity,
				Available:   max(n, 0),
			}
		}
	}
	return nil
}

// totalAmount = precio por día * cantidad * días de alquiler (inclusivo) + costo de proveedor de las externas.
func totalAmount(order *entity.Order, items []*entity.OrderItem, products map[string]*entity.Product) decimal.Decimal {
	days := decimal.NewFromInt(int64(order.EndDate.Sub(order.StartDate).Hours()/24) + 1)
	total := decimal.Zero
	for _, it := range items {
		qty := decimal.NewFromInt(int64(it.Quantity))
		if it.IsExternal {
			total = total.Add(it.SupplierCost.Mul(qty))
			continue
		}
		if p, ok := products[it.ProductID]; ok {
			total = total.Add(p.PricePerDay.Mul(qty).Mul(days))
		}
	}
	return total
}
