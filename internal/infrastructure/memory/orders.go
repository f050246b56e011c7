package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rental-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos y líneas en memoria.
type OrderRepo struct{ v *view }

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.orders[o.ID]; ok {
			return fmt.Errorf("%w: pedido %s", domain.ErrDuplicate, o.ID)
		}
		st.orders[o.ID] = *o
		return nil
	})
}

func (r *OrderRepo) CreateItem(_ context.Context, it *entity.OrderItem) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.orders[it.OrderID]; !ok {
			return fmt.Errorf("%w: pedido %s", domain.ErrOrderNotFound, it.OrderID)
		}
		st.items[it.ID] = *it
		st.orderItems[it.OrderID] = append(st.orderItems[it.OrderID], it.ID)
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.v.do(func(st *state) error {
		if o, ok := st.orders[id]; ok {
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) ListItems(_ context.Context, orderID string) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	err := r.v.do(func(st *state) error {
		for _, id := range st.orderItems[orderID] {
			it := st.items[id]
			out = append(out, &it)
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) UpdateItemProgress(_ context.Context, it *entity.OrderItem) error {
	return r.v.do(func(st *state) error {
		current, ok := st.items[it.ID]
		if !ok {
			return fmt.Errorf("%w: línea %s", domain.ErrNotFound, it.ID)
		}
		current.ExportedQuantity = it.ExportedQuantity
		current.ReturnedQuantity = it.ReturnedQuantity
		current.UpdatedAt = time.Now()
		st.items[it.ID] = current
		return nil
	})
}

func (r *OrderRepo) UpdateStatus(_ context.Context, o *entity.Order) error {
	return r.v.do(func(st *state) error {
		current, ok := st.orders[o.ID]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, o.ID)
		}
		current.Status = o.Status
		current.ActualReturnDate = o.ActualReturnDate
		current.UpdatedAt = o.UpdatedAt
		st.orders[o.ID] = current
		return nil
	})
}

func (r *OrderRepo) ListCommitments(_ context.Context, productID string, start, end time.Time, excludeOrderID string) ([]inventory.Commitment, error) {
	var out []inventory.Commitment
	err := r.v.do(func(st *state) error {
		for orderID, ids := range st.orderItems {
			o := st.orders[orderID]
			if orderID == excludeOrderID || !o.IsCommitting() || !inventory.Overlaps(o.StartDate, o.EndDate, start, end) {
				continue
			}
			for _, id := range ids {
				it := st.items[id]
				if it.IsExternal || it.ProductID != productID {
					continue
				}
				out = append(out, inventory.Commitment{
					OrderID:   orderID,
					StartDate: o.StartDate,
					EndDate:   o.EndDate,
					Quantity:  it.Quantity,
				})
			}
		}
		return nil
	})
	return out, err
}
