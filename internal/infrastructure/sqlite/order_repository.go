package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/ordersync-api/internal/domain"
	"github.com/jhoicas/ordersync-api/internal/domain/entity"
	"github.com/jhoicas/ordersync-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

type orderRow struct {
	ID          string `db:"id"`
	CompanyID   string `db:"company_id"`
	Content     string `db:"content"`
	Status      string `db:"status"`
	CreatedBy   string `db:"created_by"`
	CreatorName string `db:"creator_name"`
	CreatedAt   int64  `db:"created_at"`
}

func (r orderRow) toEntity() *entity.Order {
	return &entity.Order{
		ID:          r.ID,
		CompanyID:   r.CompanyID,
		Content:     r.Content,
		Status:      entity.OrderStatus(r.Status),
		CreatedBy:   r.CreatedBy,
		CreatorName: r.CreatorName,
		CreatedAt:   fromMillis(r.CreatedAt),
	}
}

const orderColumns = `id, company_id, content, status, created_by, creator_name, created_at`

// OrderRepo implementación de OrderRepository sobre SQLite.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste un nuevo pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.CompanyID, o.Content, string(o.Status), o.CreatedBy, o.CreatorName, toMillis(o.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido de la empresa.
func (r *OrderRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Order, error) {
	var row orderRow
	err := r.q.GetContext(ctx, &row, `SELECT `+orderColumns+` FROM orders WHERE company_id = ? AND id = ?`, companyID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return row.toEntity(), nil
}

// ListByCompany lista los pedidos de la empresa, más recientes primero.
func (r *OrderRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Order, error) {
	var rows []orderRow
	err := r.q.SelectContext(ctx, &rows,
		`SELECT `+orderColumns+` FROM orders WHERE company_id = ? ORDER BY created_at DESC, id DESC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	list := make([]*entity.Order, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

// UpdateStatus compare-and-set del estado.
func (r *OrderRepo) UpdateStatus(ctx context.Context, companyID, id string, from, to entity.OrderStatus) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE orders SET status = ? WHERE company_id = ? AND id = ? AND status = ?`,
		string(to), companyID, id, string(from))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	current, err := r.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrNotFound
	}
	return domain.ErrInvalidTransition
}

// Delete elimina un pedido de la empresa si su estado sigue siendo expected.
func (r *OrderRepo) Delete(ctx context.Context, companyID, id string, expected entity.OrderStatus) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM orders WHERE company_id = ? AND id = ? AND status = ?`, companyID, id, string(expected))
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	current, err := r.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrNotFound
	}
	return domain.ErrStatusChanged
}
