// internal/repository/postgres/cart_item_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"cncquote-service/internal/domain/cart"
	xerrors "cncquote-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CartItemRepository struct {
	db *pgxpool.Pool
}

func NewCartItemRepository(db *pgxpool.Pool) *CartItemRepository {
	return &CartItemRepository{db: db}
}

func (r *CartItemRepository) Create(ctx context.Context, item *cart.CartItem) error {
	query := `
		INSERT INTO cart_items (user_id, part_details_id, quantity, expected_delivery_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		item.UserID, item.PartDetailsID, item.Quantity, item.ExpectedDeliveryDate,
	).Scan(&item.ID)

	if err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// FindByID retrieves one cart item scoped to its owner.
func (r *CartItemRepository) FindByID(ctx context.Context, id, userID int64) (*cart.CartItem, error) {
	query := `
		SELECT id, user_id, part_details_id, quantity, expected_delivery_date
		FROM cart_items
		WHERE id = $1 AND user_id = $2
	`

	var item cart.CartItem
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&item.ID, &item.UserID, &item.PartDetailsID, &item.Quantity, &item.ExpectedDeliveryDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find cart item: %w", err)
	}
	return &item, nil
}

func (r *CartItemRepository) ListByUser(ctx context.Context, userID int64) ([]cart.CartItem, error) {
	query := `
		SELECT id, user_id, part_details_id, quantity, expected_delivery_date
		FROM cart_items
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	var items []cart.CartItem
	for rows.Next() {
		var item cart.CartItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.PartDetailsID, &item.Quantity, &item.ExpectedDeliveryDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *CartItemRepository) Delete(ctx context.Context, id, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
