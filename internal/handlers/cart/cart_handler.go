// internal/handlers/cart/cart_handler.go
package cart

import (
	"net/http"
	"strconv"

	"cncquote-service/internal/domain/part"
	"cncquote-service/internal/middleware"
	xerrors "cncquote-service/internal/pkg/errors"
	"cncquote-service/internal/pkg/response"
	service "cncquote-service/internal/service/cart"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartService *service.CartService
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// AddToCart stores a batch of configured parts as cart rows.
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var items []part.PartItemRequest
	if err := c.ShouldBindJSON(&items); err != nil {
		response.ValidationError(c, "invalid cart payload", err)
		return
	}
	if len(items) == 0 {
		response.ValidationError(c, "cart payload is empty", nil)
		return
	}

	if err := h.cartService.AddToCart(c.Request.Context(), userID, items); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "upload record not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to add to cart", err)
		return
	}

	response.Success(c, http.StatusOK, "added to cart", nil)
}

// GetCart returns the joined cart view.
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	entries, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load cart", err)
		return
	}

	response.Success(c, http.StatusOK, "cart retrieved", entries)
}

// DeleteItem removes one cart row and its part details.
func (h *CartHandler) DeleteItem(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid cart item id", err)
		return
	}

	if err := h.cartService.DeleteItem(c.Request.Context(), id, userID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "cart item not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to delete cart item", err)
		return
	}

	response.Success(c, http.StatusOK, "cart item deleted", nil)
}
