// internal/repository/postgres/address_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"cncquote-service/internal/domain/address"
	xerrors "cncquote-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const addressColumns = `
	id, user_id, contact_name, contact_phone, address_detail, shipping_method,
	country_code, province, city, post_name, postal_code, is_default,
	created_at, updated_at`

type AddressRepository struct {
	db *pgxpool.Pool
}

func NewAddressRepository(db *pgxpool.Pool) *AddressRepository {
	return &AddressRepository{db: db}
}

// Create inserts a new address row. Default-flag bookkeeping is the
// service's responsibility; this is a plain insert.
func (r *AddressRepository) Create(ctx context.Context, a *address.Address) error {
	query := `
		INSERT INTO addresses (
			user_id, contact_name, contact_phone, address_detail, shipping_method,
			country_code, province, city, post_name, postal_code, is_default
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		a.UserID, a.ContactName, a.ContactPhone, a.AddressDetail, a.ShippingMethod,
		a.CountryCode, a.Province, a.City, a.PostName, a.PostalCode, a.IsDefault,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}

func (r *AddressRepository) ListByUser(ctx context.Context, userID int64) ([]address.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	defer rows.Close()

	var addrs []address.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, *a)
	}
	return addrs, rows.Err()
}

func (r *AddressRepository) FindDefault(ctx context.Context, userID int64) (*address.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 AND is_default`
	return scanAddress(r.db.QueryRow(ctx, query, userID))
}

// ClearDefault unsets the user's current default address, if any.
func (r *AddressRepository) ClearDefault(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx,
		`UPDATE addresses SET is_default = false, updated_at = now() WHERE user_id = $1 AND is_default`,
		userID,
	); err != nil {
		return fmt.Errorf("failed to clear default address: %w", err)
	}
	return nil
}

// MarkDefault flags one address, scoped to its owner, as the default.
func (r *AddressRepository) MarkDefault(ctx context.Context, id, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE addresses SET is_default = true, updated_at = now() WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark default address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, id, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM addresses WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func scanAddress(row pgx.Row) (*address.Address, error) {
	var a address.Address
	err := row.Scan(
		&a.ID, &a.UserID, &a.ContactName, &a.ContactPhone, &a.AddressDetail, &a.ShippingMethod,
		&a.CountryCode, &a.Province, &a.City, &a.PostName, &a.PostalCode, &a.IsDefault,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan address: %w", err)
	}
	return &a, nil
}
