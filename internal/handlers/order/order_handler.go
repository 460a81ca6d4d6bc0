// internal/handlers/order/order_handler.go
package order

import (
	"encoding/json"
	"net/http"
	"strconv"

	"cncquote-service/internal/domain/order"
	"cncquote-service/internal/middleware"
	xerrors "cncquote-service/internal/pkg/errors"
	"cncquote-service/internal/pkg/response"
	service "cncquote-service/internal/service/order"
	"cncquote-service/internal/service/payment"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService *service.OrderService
	paypal       *payment.PayPalClient
}

func NewOrderHandler(orderService *service.OrderService, paypal *payment.PayPalClient) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		paypal:       paypal,
	}
}

// Price forwards the valuation payload and returns per-part quotes. The
// storefront sends either a bare array of parts or an object with a data
// field wrapping it.
func (h *OrderHandler) Price(c *gin.Context) {
	var raw json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		response.ValidationError(c, "invalid quote payload", err)
		return
	}

	var payload any
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && len(wrapper.Data) > 0 {
		payload = wrapper.Data
	} else {
		payload = raw
	}

	quotes, err := h.orderService.Quote(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "price quote failed", err)
		return
	}

	response.Success(c, http.StatusOK, "quotes retrieved", quotes)
}

// Create places an order from a configured part.
func (h *OrderHandler) Create(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req order.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid order payload", err)
		return
	}

	o, err := h.orderService.Create(c.Request.Context(), userID, &req)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		response.NotFound(c, "part details not found")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to create order", err)
		return
	}

	response.Success(c, http.StatusCreated, "order created", o)
}

// List returns a page of the user's orders.
func (h *OrderHandler) List(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var filters order.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	orders, err := h.orderService.List(c.Request.Context(), userID, &filters)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list orders", err)
		return
	}

	response.Success(c, http.StatusOK, "orders retrieved", orders)
}

// Get returns one order.
func (h *OrderHandler) Get(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid order id", err)
		return
	}

	o, err := h.orderService.Get(c.Request.Context(), id, userID)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		response.NotFound(c, "order not found")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load order", err)
		return
	}

	response.Success(c, http.StatusOK, "order retrieved", o)
}

// UpdateStatus transitions an order.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid order id", err)
		return
	}

	var req order.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid status payload", err)
		return
	}

	if err := h.orderService.UpdateStatus(c.Request.Context(), id, userID, req.Status); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "order not found")
			return
		}
		response.ValidationError(c, "failed to update order status", err)
		return
	}

	response.Success(c, http.StatusOK, "order status updated", nil)
}

// PaymentToken issues a PayPal access token for the storefront's capture
// flow.
func (h *OrderHandler) PaymentToken(c *gin.Context) {
	token, err := h.paypal.AccessToken(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to obtain payment token", err)
		return
	}

	response.Success(c, http.StatusOK, "payment token issued", gin.H{
		"access_token": token,
	})
}
