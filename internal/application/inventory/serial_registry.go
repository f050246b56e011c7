package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rental-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/domain/repository"
)

// SerialRegistry mantiene el estado por unidad sincronizado con los buckets:
// cada cambio de estado de un serial va acompañado de su movimiento de una unidad en el Ledger.
type SerialRegistry struct {
	ledger *Ledger
}

// NewSerialRegistry construye el registro sobre el ledger.
func NewSerialRegistry(ledger *Ledger) *SerialRegistry {
	return &SerialRegistry{ledger: ledger}
}

// Lock obtiene el serial bloqueado para update. Devuelve domain.ErrNotFound si no existe.
func (r *SerialRegistry) Lock(ctx context.Context, repos Repos, serialID string) (*entity.DeviceSerial, error) {
	s, err := repos.Serials.GetForUpdate(ctx, serialID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: serial %s", domain.ErrNotFound, serialID)
	}
	return s, nil
}

// Assign AVAILABLE -> RESERVED para el pedido (available -> reserved).
func (r *SerialRegistry) Assign(ctx context.Context, repos Repos, s *entity.DeviceSerial, orderID string) error {
	if s.Status != entity.SerialStatusAvailable {
		return &domain.SerialStateError{SerialID: s.ID, Serial: s.SerialNumber, Status: s.Status, Sentinel: domain.ErrSerialUnavailable}
	}
	return r.transition(ctx, repos, s, inventory.Reserved, orderID, orderID, entity.LogActionReserve, "")
}

// Release RESERVED -> AVAILABLE (reserved -> available).
func (r *SerialRegistry) Release(ctx context.Context, repos Repos, s *entity.DeviceSerial, note string) error {
	if s.Status != entity.SerialStatusReserved {
		return &domain.SerialStateError{SerialID: s.ID, Serial: s.SerialNumber, Status: s.Status, Sentinel: domain.ErrSerialUnavailable}
	}
	return r.transition(ctx, repos, s, inventory.Available, "", s.OrderID, entity.LogActionRelease, note)
}

// Ship RESERVED -> ON_RENT (reserved -> onRent). action es EXPORT o ADJUST.
func (r *SerialRegistry) Ship(ctx context.Context, repos Repos, s *entity.DeviceSerial, orderID, action string) error {
	if s.Status != entity.SerialStatusReserved {
		return &domain.SerialStateError{SerialID: s.ID, Serial: s.SerialNumber, Status: s.Status, Sentinel: domain.ErrSerialUnavailable}
	}
	return r.transition(ctx, repos, s, inventory.OnRent, orderID, orderID, action, "")
}

// Return ON_RENT -> DIRTY (onRent -> dirty). El serial conserva el pedido hasta la limpieza.
func (r *SerialRegistry) Return(ctx context.Context, repos Repos, s *entity.DeviceSerial, orderID, action, note string) error {
	if s.Status != entity.SerialStatusOnRent {
		return &domain.SerialStateError{SerialID: s.ID, Serial: s.SerialNumber, Status: s.Status, Sentinel: domain.ErrSerialUnavailable}
	}
	return r.transition(ctx, repos, s, inventory.Dirty, orderID, orderID, action, note)
}

// Clean DIRTY -> AVAILABLE (dirty -> available) y libera el pedido.
func (r *SerialRegistry) Clean(ctx context.Context, repos Repos, s *entity.DeviceSerial, note string) error {
	if s.Status != entity.SerialStatusDirty {
		return &domain.SerialStateError{SerialID: s.ID, Serial: s.SerialNumber, Status: s.Status, Sentinel: domain.ErrSerialUnavailable}
	}
	return r.transition(ctx, repos, s, inventory.Available, "", "", entity.LogActionClean, note)
}

// Damage AVAILABLE|DIRTY -> BROKEN.
func (r *SerialRegistry) Damage(ctx context.Context, repos Repos, s *entity.DeviceSerial, note string) error {
	if s.Status != entity.SerialStatusAvailable && s.Status != entity.SerialStatusDirty {
		return &domain.SerialStateError{SerialID: s.ID, Serial: s.SerialNumber, Status: s.Status, Sentinel: domain.ErrSerialInUse}
	}
	return r.transition(ctx, repos, s, inventory.Broken, "", "", entity.LogActionDamage, note)
}

// Repair BROKEN -> AVAILABLE.
func (r *SerialRegistry) Repair(ctx context.Context, repos Repos, s *entity.DeviceSerial, note string) error {
	if s.Status != entity.SerialStatusBroken {
		return &domain.SerialStateError{SerialID: s.ID, Serial: s.SerialNumber, Status: s.Status, Sentinel: domain.ErrSerialUnavailable}
	}
	return r.transition(ctx, repos, s, inventory.Available, "", "", entity.LogActionRepair, note)
}

// Add registra una unidad nueva AVAILABLE: alta en available y total_owned.
func (r *SerialRegistry) Add(ctx context.Context, repos Repos, s *entity.DeviceSerial) error {
	existing, err := repos.Serials.GetBySerialNumber(ctx, s.SerialNumber)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: serial %s", domain.ErrDuplicate, s.SerialNumber)
	}
	s.Status = entity.SerialStatusAvailable
	s.OrderID = ""
	if err := repos.Serials.Create(ctx, s); err != nil {
		return err
	}
	return r.ledger.Receive(ctx, repos, s.ProductID, s.WarehouseID, s.ID, 1, "alta serial "+s.SerialNumber)
}

// Delete elimina un serial AVAILABLE: baja en available y total_owned.
func (r *SerialRegistry) Delete(ctx context.Context, repos Repos, s *entity.DeviceSerial) error {
	if s.Status != entity.SerialStatusAvailable {
		return &domain.SerialStateError{SerialID: s.ID, Serial: s.SerialNumber, Status: s.Status, Sentinel: domain.ErrSerialInUse}
	}
	if err := r.ledger.Retire(ctx, repos, s.ProductID, s.WarehouseID, s.ID, 1, "baja serial "+s.SerialNumber); err != nil {
		return err
	}
	return repos.Serials.Delete(ctx, s.ID)
}

// ListForOrder seriales del pedido y producto en el estado dado (hasta limit; 0 = todos).
func (r *SerialRegistry) ListForOrder(ctx context.Context, repos Repos, orderID, productID, status string, limit int) ([]*entity.DeviceSerial, error) {
	return repos.Serials.List(ctx, repository.SerialFilter{OrderID: orderID, ProductID: productID, Status: status, Limit: limit})
}

// Move aplica un movimiento a granel manteniendo sincronizados los seriales: primero pasan los
// seriales que están en el bucket de origen (los más antiguos) y el resto se mueve a granel.
// Valida el saldo completo antes de tocar nada.
func (r *SerialRegistry) Move(ctx context.Context, repos Repos, m Move) error {
	stock, err := r.ledger.Balance(ctx, repos, m.ProductID, m.WarehouseID)
	if err != nil {
		return err
	}
	check := *stock
	if err := inventory.Move(&check, m.From, m.To, m.Quantity); err != nil {
		return err
	}
	moved, err := r.Take(ctx, repos, m.ProductID, m.WarehouseID, m.From, m.To, m.Quantity, m.OrderID, m.Action, m.Note)
	if err != nil {
		return err
	}
	if rest := m.Quantity - moved; rest > 0 {
		m.Quantity = rest
		return r.ledger.Move(ctx, repos, m)
	}
	return nil
}

// Take pasa hasta n seriales del producto y bodega desde el estado de from hacia to, los que llevan
// más tiempo primero, y devuelve cuántos movió. Desde reserved u onRent solo toma los del pedido.
func (r *SerialRegistry) Take(ctx context.Context, repos Repos, productID, warehouseID string, from, to inventory.Bucket, n int, orderID, action, note string) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	filter := repository.SerialFilter{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Status:      inventory.SerialStatus(from),
		Limit:       n,
	}
	if from == inventory.Reserved || from == inventory.OnRent {
		if orderID == "" {
			return 0, nil
		}
		filter.OrderID = orderID
	}
	candidates, err := repos.Serials.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	moved := 0
	for _, c := range candidates {
		s, err := r.Lock(ctx, repos, c.ID)
		if err != nil {
			return moved, err
		}
		if s.Status != filter.Status {
			continue
		}
		if err := r.transition(ctx, repos, s, to, holder(to, orderID), orderID, action, note); err != nil {
			return moved, err
		}
		moved++
	}
	return moved, nil
}

// holder pedido que queda asociado al serial: lo conserva mientras la unidad está comprometida o sucia.
func holder(to inventory.Bucket, orderID string) string {
	switch to {
	case inventory.Reserved, inventory.OnRent, inventory.Dirty:
		return orderID
	}
	return ""
}

func (r *SerialRegistry) transition(ctx context.Context, repos Repos, s *entity.DeviceSerial, to inventory.Bucket, newOrderID, logOrderID, action, note string) error {
	from, ok := inventory.BucketOf(s.Status)
	if !ok {
		return fmt.Errorf("%w: serial %s con estado desconocido %q", domain.ErrLedgerInconsistency, s.SerialNumber, s.Status)
	}
	if note == "" {
		note = "serial " + s.SerialNumber
	}
	err := r.ledger.Move(ctx, repos, Move{
		ProductID:   s.ProductID,
		WarehouseID: s.WarehouseID,
		OrderID:     logOrderID,
		SerialID:    s.ID,
		From:        from,
		To:          to,
		Quantity:    1,
		Action:      action,
		Note:        note,
	})
	if err != nil {
		return err
	}
	status := inventory.SerialStatus(to)
	if err := repos.Serials.UpdateStatus(ctx, s.ID, status, newOrderID); err != nil {
		return err
	}
	s.Status = status
	s.OrderID = newOrderID
	return nil
}
