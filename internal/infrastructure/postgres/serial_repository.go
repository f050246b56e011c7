package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rental-inventory-api/internal/domain/repository"
)

var _ repository.SerialRepository = (*SerialRepo)(nil)

const serialColumns = `id, product_id, warehouse_id, serial_number, status, order_id, created_at, updated_at`

// SerialRepo registro de seriales sobre PostgreSQL.
type SerialRepo struct {
	q Querier
}

// NewSerialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSerialRepository(q Querier) *SerialRepo {
	return &SerialRepo{q: q}
}

func (r *SerialRepo) Create(ctx context.Context, s *entity.DeviceSerial) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO device_serials (`+serialColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.ProductID, s.WarehouseID, s.SerialNumber, s.Status, nullIfEmpty(s.OrderID), s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: serial %s", domain.ErrDuplicate, s.SerialNumber)
		}
		return fmt.Errorf("insert serial: %w", err)
	}
	return nil
}

func (r *SerialRepo) GetByID(ctx context.Context, id string) (*entity.DeviceSerial, error) {
	return r.getOne(ctx, `SELECT `+serialColumns+` FROM device_serials WHERE id = $1`, id)
}

func (r *SerialRepo) GetForUpdate(ctx context.Context, id string) (*entity.DeviceSerial, error) {
	return r.getOne(ctx, `SELECT `+serialColumns+` FROM device_serials WHERE id = $1 FOR UPDATE`, id)
}

func (r *SerialRepo) GetBySerialNumber(ctx context.Context, serialNumber string) (*entity.DeviceSerial, error) {
	return r.getOne(ctx, `SELECT `+serialColumns+` FROM device_serials WHERE serial_number = $1`, serialNumber)
}

func (r *SerialRepo) getOne(ctx context.Context, query, arg string) (*entity.DeviceSerial, error) {
	s, err := scanSerial(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get serial: %w", err)
	}
	return s, nil
}

// List aplica los filtros no vacíos; orden por updated_at ascendente y número de serie.
func (r *SerialRepo) List(ctx context.Context, f repository.SerialFilter) ([]*entity.DeviceSerial, error) {
	var (
		where []string
		args  []any
	)
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		where = append(where, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("product_id", f.ProductID)
	add("warehouse_id", f.WarehouseID)
	add("order_id", f.OrderID)
	add("status", f.Status)

	query := `SELECT ` + serialColumns + ` FROM device_serials`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY updated_at, serial_number`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list serials: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeviceSerial
	for rows.Next() {
		s, err := scanSerial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan serial: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SerialRepo) UpdateStatus(ctx context.Context, id, status, orderID string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE device_serials SET status = $2, order_id = $3, updated_at = clock_timestamp() WHERE id = $1`,
		id, status, nullIfEmpty(orderID))
	if err != nil {
		return fmt.Errorf("update serial status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: serial %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *SerialRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM device_serials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete serial: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: serial %s", domain.ErrNotFound, id)
	}
	return nil
}

func scanSerial(row pgx.Row) (*entity.DeviceSerial, error) {
	var (
		s       entity.DeviceSerial
		orderID *string
	)
	err := row.Scan(&s.ID, &s.ProductID, &s.WarehouseID, &s.SerialNumber, &s.Status, &orderID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.OrderID = deref(orderID)
	return &s, nil
}
