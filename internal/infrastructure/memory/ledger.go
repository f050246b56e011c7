package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rental-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/domain/repository"
)

var (
	_ repository.StockRepository        = (*StockRepo)(nil)
	_ repository.SerialRepository       = (*SerialRepo)(nil)
	_ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)
)

// StockRepo contadores por bucket en memoria.
type StockRepo struct{ v *view }

func (r *StockRepo) Get(_ context.Context, productID, warehouseID string) (*entity.Stock, error) {
	var out *entity.Stock
	err := r.v.do(func(st *state) error {
		if s, ok := st.stock[stockKey{productID, warehouseID}]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *StockRepo) GetForUpdate(_ context.Context, productID, warehouseID string) (*entity.Stock, error) {
	out := &entity.Stock{ProductID: productID, WarehouseID: warehouseID}
	err := r.v.do(func(st *state) error {
		if s, ok := st.stock[stockKey{productID, warehouseID}]; ok {
			*out = s
		}
		return nil
	})
	return out, err
}

func (r *StockRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	err := r.v.do(func(st *state) error {
		for k, s := range st.stock {
			if k.productID == productID {
				s := s
				out = append(out, &s)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].WarehouseID < out[j].WarehouseID })
	return out, err
}

func (r *StockRepo) ApplyMove(_ context.Context, productID, warehouseID string, from, to inventory.Bucket, qty int) error {
	return r.v.do(func(st *state) error {
		k := stockKey{productID, warehouseID}
		s, ok := st.stock[k]
		if !ok || inventory.Quantity(&s, from) < qty {
			return fmt.Errorf("%w: %s/%s sin saldo en %s", domain.ErrLedgerInconsistency, productID, warehouseID, from)
		}
		if err := inventory.Move(&s, from, to, qty); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrLedgerInconsistency, err)
		}
		return put(st, k, s)
	})
}

// put guarda la fila si ningún contador quedó negativo (equivale a los CHECK de la tabla stock).
func put(st *state, k stockKey, s entity.Stock) error {
	if err := inventory.Validate(&s); err != nil {
		return err
	}
	s.UpdatedAt = time.Now()
	st.stock[k] = s
	return nil
}

func (r *StockRepo) AddAvailable(_ context.Context, productID, warehouseID string, qty int) error {
	return r.v.do(func(st *state) error {
		k := stockKey{productID, warehouseID}
		s, ok := st.stock[k]
		if !ok {
			s = entity.Stock{ProductID: productID, WarehouseID: warehouseID}
		}
		if err := inventory.Receive(&s, qty); err != nil {
			return err
		}
		return put(st, k, s)
	})
}

func (r *StockRepo) RemoveAvailable(_ context.Context, productID, warehouseID string, qty int) error {
	return r.v.do(func(st *state) error {
		k := stockKey{productID, warehouseID}
		s, ok := st.stock[k]
		if !ok {
			return fmt.Errorf("%w: %s/%s sin saldo en available", domain.ErrLedgerInconsistency, productID, warehouseID)
		}
		s.Available -= qty
		return put(st, k, s)
	})
}

// SerialRepo seriales en memoria.
type SerialRepo struct{ v *view }

func (r *SerialRepo) Create(_ context.Context, s *entity.DeviceSerial) error {
	return r.v.do(func(st *state) error {
		for _, other := range st.serials {
			if other.SerialNumber == s.SerialNumber {
				return fmt.Errorf("%w: serial %s", domain.ErrDuplicate, s.SerialNumber)
			}
		}
		st.serials[s.ID] = *s
		return nil
	})
}

func (r *SerialRepo) GetByID(_ context.Context, id string) (*entity.DeviceSerial, error) {
	var out *entity.DeviceSerial
	err := r.v.do(func(st *state) error {
		if s, ok := st.serials[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SerialRepo) GetForUpdate(ctx context.Context, id string) (*entity.DeviceSerial, error) {
	return r.GetByID(ctx, id)
}

func (r *SerialRepo) GetBySerialNumber(_ context.Context, serialNumber string) (*entity.DeviceSerial, error) {
	var out *entity.DeviceSerial
	err := r.v.do(func(st *state) error {
		for _, s := range st.serials {
			if s.SerialNumber == serialNumber {
				s := s
				out = &s
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *SerialRepo) List(_ context.Context, f repository.SerialFilter) ([]*entity.DeviceSerial, error) {
	var out []*entity.DeviceSerial
	err := r.v.do(func(st *state) error {
		for _, s := range st.serials {
			if (f.ProductID != "" && s.ProductID != f.ProductID) ||
				(f.WarehouseID != "" && s.WarehouseID != f.WarehouseID) ||
				(f.OrderID != "" && s.OrderID != f.OrderID) ||
				(f.Status != "" && s.Status != f.Status) {
				continue
			}
			s := s
			out = append(out, &s)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.Before(out[j].UpdatedAt)
		}
		return out[i].SerialNumber < out[j].SerialNumber
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, err
}

func (r *SerialRepo) UpdateStatus(_ context.Context, id, status, orderID string) error {
	return r.v.do(func(st *state) error {
		s, ok := st.serials[id]
		if !ok {
			return fmt.Errorf("%w: serial %s", domain.ErrNotFound, id)
		}
		s.Status = status
		s.OrderID = orderID
		s.UpdatedAt = time.Now()
		st.serials[id] = s
		return nil
	})
}

func (r *SerialRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.serials[id]; !ok {
			return fmt.Errorf("%w: serial %s", domain.ErrNotFound, id)
		}
		delete(st.serials, id)
		return nil
	})
}

// InventoryLogRepo log de inventario en memoria (solo inserción).
type InventoryLogRepo struct{ v *view }

func (r *InventoryLogRepo) Create(_ context.Context, e *entity.InventoryLog) error {
	return r.v.do(func(st *state) error {
		st.logs = append(st.logs, *e)
		return nil
	})
}

func (r *InventoryLogRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.InventoryLog, error) {
	var out []*entity.InventoryLog
	err := r.v.do(func(st *state) error {
		for i := len(st.logs) - 1; i >= 0; i-- {
			if st.logs[i].ProductID == productID {
				e := st.logs[i]
				out = append(out, &e)
			}
		}
		return nil
	})
	return page(out, limit, offset), err
}

func (r *InventoryLogRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.InventoryLog, error) {
	var out []*entity.InventoryLog
	err := r.v.do(func(st *state) error {
		for i := range st.logs {
			if st.logs[i].OrderID == orderID {
				e := st.logs[i]
				out = append(out, &e)
			}
		}
		return nil
	})
	return out, err
}

func (r *InventoryLogRepo) ListAllByProduct(_ context.Context, productID string) ([]*entity.InventoryLog, error) {
	var out []*entity.InventoryLog
	err := r.v.do(func(st *state) error {
		for i := range st.logs {
			if st.logs[i].ProductID == productID {
				e := st.logs[i]
				out = append(out, &e)
			}
		}
		return nil
	})
	return out, err
}
