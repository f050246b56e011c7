package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rental-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/rental-inventory-api/pkg/metrics"
)

// Ledger es el único dueño de las mutaciones de buckets. Cada movimiento bloquea la fila
// (producto, bodega), valida el saldo, aplica el cambio y escribe la entrada del log,
// todo con los repositorios de la transacción del caller.
type Ledger struct {
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewLedger construye el libro de stock. rec puede ser nil.
func NewLedger(rec *metrics.Recorder) *Ledger {
	return &Ledger{metrics: rec, now: time.Now}
}

// Move describe un movimiento de Quantity unidades entre dos buckets.
type Move struct {
	ProductID   string
	WarehouseID string
	OrderID     string
	SerialID    string
	From        inventory.Bucket
	To          inventory.Bucket
	Quantity    int
	Action      string
	Note        string
}

// Balance devuelve el registro de stock bloqueado para update.
func (l *Ledger) Balance(ctx context.Context, repos Repos, productID, warehouseID string) (*entity.Stock, error) {
	return repos.Stock.GetForUpdate(ctx, productID, warehouseID)
}

// Move aplica el movimiento. Si el bucket de origen no alcanza devuelve
// *domain.InsufficientStockError y no escribe nada.
func (l *Ledger) Move(ctx context.Context, repos Repos, m Move) error {
	stock, err := repos.Stock.GetForUpdate(ctx, m.ProductID, m.WarehouseID)
	if err != nil {
		return err
	}
	if err := inventory.Move(stock, m.From, m.To, m.Quantity); err != nil {
		return err
	}
	if err := repos.Stock.ApplyMove(ctx, m.ProductID, m.WarehouseID, m.From, m.To, m.Quantity); err != nil {
		return err
	}
	if err := l.writeLog(ctx, repos, m); err != nil {
		return err
	}
	l.metrics.AddLedgerMove(string(m.From), string(m.To), m.Quantity)
	return nil
}

// Receive da de alta qty unidades nuevas: available += qty y total_owned += qty.
func (l *Ledger) Receive(ctx context.Context, repos Repos, productID, warehouseID, serialID string, qty int, note string) error {
	if qty <= 0 {
		return fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	if err := repos.Stock.AddAvailable(ctx, productID, warehouseID, qty); err != nil {
		return err
	}
	if err := repos.Products.AdjustTotalOwned(ctx, productID, qty); err != nil {
		return err
	}
	m := Move{
		ProductID: productID, WarehouseID: warehouseID, SerialID: serialID,
		To: inventory.Available, Quantity: qty, Action: entity.LogActionReceive, Note: note,
	}
	if err := l.writeLog(ctx, repos, m); err != nil {
		return err
	}
	l.metrics.AddLedgerMove("", string(inventory.Available), qty)
	return nil
}

// Retire da de baja qty unidades disponibles: available -= qty y total_owned -= qty.
func (l *Ledger) Retire(ctx context.Context, repos Repos, productID, warehouseID, serialID string, qty int, note string) error {
	stock, err := repos.Stock.GetForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return err
	}
	if err := inventory.Retire(stock, qty); err != nil {
		return err
	}
	if err := repos.Stock.RemoveAvailable(ctx, productID, warehouseID, qty); err != nil {
		return err
	}
	if err := repos.Products.AdjustTotalOwned(ctx, productID, -qty); err != nil {
		return err
	}
	m := Move{
		ProductID: productID, WarehouseID: warehouseID, SerialID: serialID,
		From: inventory.Available, Quantity: qty, Action: entity.LogActionRetire, Note: note,
	}
	if err := l.writeLog(ctx, repos, m); err != nil {
		return err
	}
	l.metrics.AddLedgerMove(string(inventory.Available), "", qty)
	return nil
}

// Ship saca qty unidades hacia onRent tomando primero de reserved (hasta reservedCap, la reserva
// a granel del pedido) y el resto de available. Si no alcanza devuelve *domain.InsufficientStockError
// con ambos saldos.
func (l *Ledger) Ship(ctx context.Context, repos Repos, productID, warehouseID, orderID string, qty, reservedCap int, action, note string) error {
	stock, err := repos.Stock.GetForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return err
	}
	fromReserved := min(qty, max(reservedCap, 0), stock.Reserved)
	fromAvailable := qty - fromReserved
	if fromAvailable > stock.Available {
		return &domain.InsufficientStockError{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Bucket:      string(inventory.Reserved) + "+" + string(inventory.Available),
			Requested:   qty,
			Reserved:    fromReserved,
			Available:   stock.Available,
		}
	}
	base := Move{ProductID: productID, WarehouseID: warehouseID, OrderID: orderID, To: inventory.OnRent, Action: action, Note: note}
	if fromReserved > 0 {
		m := base
		m.From, m.Quantity = inventory.Reserved, fromReserved
		if err := l.Move(ctx, repos, m); err != nil {
			return err
		}
	}
	if fromAvailable > 0 {
		m := base
		m.From, m.Quantity = inventory.Available, fromAvailable
		if err := l.Move(ctx, repos, m); err != nil {
			return err
		}
	}
	return nil
}

// ReservedFor reserva a granel vigente del pedido para el producto, según el log
// (los seriales llevan su propio estado y no cuentan aquí). Nunca negativa.
func (l *Ledger) ReservedFor(ctx context.Context, repos Repos, orderID, productID string) (int, error) {
	entries, err := repos.Logs.ListByOrder(ctx, orderID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if e.ProductID != productID || e.SerialID != "" {
			continue
		}
		if e.ToBucket == string(inventory.Reserved) {
			n += e.Quantity
		}
		if e.FromBucket == string(inventory.Reserved) {
			n -= e.Quantity
		}
	}
	return max(n, 0), nil
}

func (l *Ledger) writeLog(ctx context.Context, repos Repos, m Move) error {
	return repos.Logs.Create(ctx, &entity.InventoryLog{
		ID:          uuid.New().String(),
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		OrderID:     m.OrderID,
		SerialID:    m.SerialID,
		Action:      m.Action,
		FromBucket:  string(m.From),
		ToBucket:    string(m.To),
		Quantity:    m.Quantity,
		Note:        m.Note,
		CreatedAt:   l.now(),
	})
}
