// internal/domain/cart/entity.go
package cart

import (
	"database/sql"

	"cncquote-service/internal/domain/file"
	"cncquote-service/internal/domain/part"
)

type CartItem struct {
	ID                   int64          `json:"id" db:"id"`
	UserID               int64          `json:"user_id" db:"user_id"`
	PartDetailsID        int64          `json:"part_details_id" db:"part_details_id"`
	Quantity             int            `json:"quantity" db:"quantity"`
	ExpectedDeliveryDate sql.NullString `json:"expected_delivery_date,omitempty" db:"expected_delivery_date"`
}

// Entry is the joined cart view returned to the storefront: the cart row
// plus its part details and the originating file.
type Entry struct {
	Cart        CartItem          `json:"cart"`
	PartDetails *part.PartDetails `json:"part_details"`
	FileInfo    *file.File        `json:"file_info,omitempty"`
}
