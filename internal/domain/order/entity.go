// internal/domain/order/entity.go
package order

import (
	"database/sql"
	"time"
)

// Order statuses as tracked locally; vendor-side states map onto these.
const (
	StatusPendingReview = "pending_review"
	StatusConfirmed     = "confirmed"
	StatusInProduction  = "in_production"
	StatusShipped       = "shipped"
	StatusCompleted     = "completed"
	StatusCancelled     = "cancelled"
)

type Order struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"user_id" db:"user_id"`

	OrderNumber string         `json:"order_number" db:"order_number"` // ULID, unique
	OrderCode   sql.NullString `json:"order_code,omitempty" db:"order_code"`

	PartDetailsID   int64         `json:"part_details_id" db:"part_details_id"`
	LogisticsInfoID sql.NullInt64 `json:"logistics_info_id,omitempty" db:"logistics_info_id"`

	Status string `json:"status" db:"status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
