package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rental-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// bucketColumns nombre de columna por bucket. Solo estos identificadores se interpolan en SQL.
var bucketColumns = map[inventory.Bucket]string{
	inventory.Available: "available",
	inventory.Reserved:  "reserved",
	inventory.OnRent:    "on_rent",
	inventory.Dirty:     "dirty",
	inventory.Broken:    "broken",
}

const stockColumns = `product_id, warehouse_id, available, reserved, on_rent, dirty, broken, updated_at`

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene los contadores de un producto en una bodega (nil si no hay fila).
func (r *StockRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	s, err := scanStock(r.q.QueryRow(ctx,
		`SELECT `+stockColumns+` FROM stock WHERE product_id = $1 AND warehouse_id = $2`,
		productID, warehouseID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene los contadores y bloquea la fila (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	s, err := scanStock(r.q.QueryRow(ctx,
		`SELECT `+stockColumns+` FROM stock WHERE product_id = $1 AND warehouse_id = $2 FOR UPDATE`,
		productID, warehouseID))
	if err != nil {
		if noRows(err) {
			return &entity.Stock{ProductID: productID, WarehouseID: warehouseID}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return s, nil
}

// ListByProduct filas del producto en todas las bodegas.
func (r *StockRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Stock, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+stockColumns+` FROM stock WHERE product_id = $1 ORDER BY warehouse_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ApplyMove mueve qty de un bucket a otro. El WHERE exige saldo suficiente en el origen:
// si no afecta filas el libro está inconsistente con lo leído bajo bloqueo.
func (r *StockRepo) ApplyMove(ctx context.Context, productID, warehouseID string, from, to inventory.Bucket, qty int) error {
	src, okFrom := bucketColumns[from]
	dst, okTo := bucketColumns[to]
	if !okFrom || !okTo || from == to {
		return fmt.Errorf("%w: movimiento %s -> %s", domain.ErrInvalidInput, from, to)
	}
	query := fmt.Sprintf(`
		UPDATE stock SET %[1]s = %[1]s - $3, %[2]s = %[2]s + $3, updated_at = now()
		WHERE product_id = $1 AND warehouse_id = $2 AND %[1]s >= $3`, src, dst)
	cmd, err := r.q.Exec(ctx, query, productID, warehouseID, qty)
	if err != nil {
		return fmt.Errorf("apply stock move: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s/%s sin saldo en %s", domain.ErrLedgerInconsistency, productID, warehouseID, from)
	}
	return nil
}

// AddAvailable alta de unidades; crea la fila si no existe.
func (r *StockRepo) AddAvailable(ctx context.Context, productID, warehouseID string, qty int) error {
	query := `
		INSERT INTO stock (product_id, warehouse_id, available, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET available = stock.available + EXCLUDED.available, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, productID, warehouseID, qty); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto %s o bodega %s", domain.ErrNotFound, productID, warehouseID)
		}
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// RemoveAvailable baja de unidades disponibles.
func (r *StockRepo) RemoveAvailable(ctx context.Context, productID, warehouseID string, qty int) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE stock SET available = available - $3, updated_at = now()
		WHERE product_id = $1 AND warehouse_id = $2 AND available >= $3`,
		productID, warehouseID, qty)
	if err != nil {
		return fmt.Errorf("remove available: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s/%s sin saldo en available", domain.ErrLedgerInconsistency, productID, warehouseID)
	}
	return nil
}

func scanStock(row pgx.Row) (*entity.Stock, error) {
	var s entity.Stock
	err := row.Scan(&s.ProductID, &s.WarehouseID, &s.Available, &s.Reserved, &s.OnRent, &s.Dirty, &s.Broken, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
