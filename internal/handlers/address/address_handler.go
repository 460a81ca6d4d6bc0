// internal/handlers/address/address_handler.go
package address

import (
	"net/http"
	"strconv"

	"cncquote-service/internal/domain/address"
	"cncquote-service/internal/middleware"
	xerrors "cncquote-service/internal/pkg/errors"
	"cncquote-service/internal/pkg/response"
	service "cncquote-service/internal/service/address"

	"github.com/gin-gonic/gin"
)

type AddressHandler struct {
	addressService *service.AddressService
}

func NewAddressHandler(addressService *service.AddressService) *AddressHandler {
	return &AddressHandler{
		addressService: addressService,
	}
}

// Add stores a new shipping address.
func (h *AddressHandler) Add(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req address.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid address payload", err)
		return
	}

	a, err := h.addressService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to save address", err)
		return
	}

	response.Success(c, http.StatusCreated, "address saved", a)
}

// List returns the user's addresses.
func (h *AddressHandler) List(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	addresses, err := h.addressService.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list addresses", err)
		return
	}

	response.Success(c, http.StatusOK, "addresses retrieved", addresses)
}

// Delete removes one address.
func (h *AddressHandler) Delete(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid address id", err)
		return
	}

	if err := h.addressService.Delete(c.Request.Context(), id, userID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "address not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to delete address", err)
		return
	}

	response.Success(c, http.StatusOK, "address deleted", nil)
}

// SetDefault marks one address as the default.
func (h *AddressHandler) SetDefault(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req address.SetDefaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid payload", err)
		return
	}

	if err := h.addressService.SetDefault(c.Request.Context(), req.AddressID, userID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "address not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to set default address", err)
		return
	}

	response.Success(c, http.StatusOK, "default address updated", nil)
}

// GetDefault returns the user's default address.
func (h *AddressHandler) GetDefault(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	a, err := h.addressService.GetDefault(c.Request.Context(), userID)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		response.NotFound(c, "no default address")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load default address", err)
		return
	}

	response.Success(c, http.StatusOK, "default address retrieved", a)
}
