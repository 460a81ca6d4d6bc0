// internal/repository/postgres/order_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"cncquote-service/internal/domain/order"
	xerrors "cncquote-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	query := `
		INSERT INTO orders (user_id, order_number, order_code, part_details_id, logistics_info_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		o.UserID, o.OrderNumber, o.OrderCode, o.PartDetailsID, o.LogisticsInfoID, o.Status,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id, userID int64) (*order.Order, error) {
	query := `
		SELECT id, user_id, order_number, order_code, part_details_id, logistics_info_id, status, created_at, updated_at
		FROM orders
		WHERE id = $1 AND user_id = $2
	`
	return r.scanRow(r.db.QueryRow(ctx, query, id, userID))
}

func (r *OrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	query := `
		SELECT id, user_id, order_number, order_code, part_details_id, logistics_info_id, status, created_at, updated_at
		FROM orders
		WHERE order_number = $1
	`
	return r.scanRow(r.db.QueryRow(ctx, query, orderNumber))
}

func (r *OrderRepository) scanRow(row pgx.Row) (*order.Order, error) {
	var o order.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.OrderNumber, &o.OrderCode,
		&o.PartDetailsID, &o.LogisticsInfoID, &o.Status,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	return &o, nil
}

// ListByUser returns a page of the user's orders, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]order.Order, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, user_id, order_number, order_code, part_details_id, logistics_info_id, status, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		o, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
