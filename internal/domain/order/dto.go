// internal/domain/order/dto.go
package order

type CreateOrderRequest struct {
	PartDetailsID int64  `json:"part_details_id" binding:"required"`
	OrderCode     string `json:"order_code"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListFilters struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}
