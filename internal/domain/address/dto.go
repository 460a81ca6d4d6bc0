// internal/domain/address/dto.go
package address

type CreateAddressRequest struct {
	ContactName    string `json:"contact_name" binding:"required,max=100"`
	ContactPhone   string `json:"contact_phone" binding:"required,max=20"`
	AddressDetail  string `json:"address_detail" binding:"required,max=255"`
	ShippingMethod string `json:"shipping_method" binding:"required,max=255"`
	CountryCode    string `json:"country_code" binding:"required,max=255"`
	Province       string `json:"province" binding:"required,max=255"`
	City           string `json:"city" binding:"required,max=255"`
	PostName       string `json:"post_name" binding:"required,max=255"`
	PostalCode     string `json:"postal_code" binding:"required,max=255"`
	IsDefault      bool   `json:"is_default"`
}

type SetDefaultRequest struct {
	AddressID int64 `json:"address_id" binding:"required"`
}
