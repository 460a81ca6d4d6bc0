// internal/domain/address/entity.go
package address

import "time"

type Address struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"user_id" db:"user_id"`

	ContactName  string `json:"contact_name" db:"contact_name"`
	ContactPhone string `json:"contact_phone" db:"contact_phone"`

	AddressDetail  string `json:"address_detail" db:"address_detail"`
	ShippingMethod string `json:"shipping_method" db:"shipping_method"`
	CountryCode    string `json:"country_code" db:"country_code"`
	Province       string `json:"province" db:"province"`
	City           string `json:"city" db:"city"`
	PostName       string `json:"post_name" db:"post_name"`
	PostalCode     string `json:"postal_code" db:"postal_code"`

	IsDefault bool `json:"is_default" db:"is_default"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
