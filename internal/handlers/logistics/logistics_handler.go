// internal/handlers/logistics/logistics_handler.go
package logistics

import (
	"net/http"

	xerrors "cncquote-service/internal/pkg/errors"
	"cncquote-service/internal/pkg/response"
	service "cncquote-service/internal/service/logistics"

	"github.com/gin-gonic/gin"
)

type LogisticsHandler struct {
	logisticsService *service.Service
}

func NewLogisticsHandler(logisticsService *service.Service) *LogisticsHandler {
	return &LogisticsHandler{
		logisticsService: logisticsService,
	}
}

// GetCountry lists destination countries for a shipping product.
func (h *LogisticsHandler) GetCountry(c *gin.Context) {
	productCode := c.Query("product_code")
	if productCode == "" {
		response.ValidationError(c, "product_code is required", nil)
		return
	}

	data, err := h.logisticsService.Countries(c.Request.Context(), productCode)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to fetch countries", err)
		return
	}

	response.Success(c, http.StatusOK, "countries retrieved", data)
}

// GetRegion1 lists first-level regions of a country.
func (h *LogisticsHandler) GetRegion1(c *gin.Context) {
	country := c.Query("country")
	if country == "" {
		response.ValidationError(c, "country is required", nil)
		return
	}

	data, err := h.logisticsService.Regions(c.Request.Context(), country, "")
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to fetch regions", err)
		return
	}

	response.Success(c, http.StatusOK, "regions retrieved", data)
}

// GetRegion2 lists second-level regions under a first-level region.
func (h *LogisticsHandler) GetRegion2(c *gin.Context) {
	country := c.Query("country")
	region1 := c.Query("region1")
	if country == "" || region1 == "" {
		response.ValidationError(c, "country and region1 are required", nil)
		return
	}

	data, err := h.logisticsService.Regions(c.Request.Context(), country, region1)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to fetch regions", err)
		return
	}

	response.Success(c, http.StatusOK, "regions retrieved", data)
}

// GetPostcode lists postcodes for a region pair.
func (h *LogisticsHandler) GetPostcode(c *gin.Context) {
	country := c.Query("country")
	region1 := c.Query("region1")
	region2 := c.Query("region2")
	if country == "" || region1 == "" || region2 == "" {
		response.ValidationError(c, "country, region1 and region2 are required", nil)
		return
	}

	data, err := h.logisticsService.Postcodes(c.Request.Context(), country, region1, region2)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to fetch postcodes", err)
		return
	}

	response.Success(c, http.StatusOK, "postcodes retrieved", data)
}

// FreightEst computes the blended shipping estimate for a quoted order.
func (h *LogisticsHandler) FreightEst(c *gin.Context) {
	var req service.FreightEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid freight estimate payload", err)
		return
	}

	est, err := h.logisticsService.Estimate(c.Request.Context(), &req)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		response.NotFound(c, "no freight price for the selected shipping method")
		return
	}
	if err != nil {
		response.Error(c, http.StatusBadGateway, "freight estimate failed", err)
		return
	}

	response.Success(c, http.StatusOK, "freight estimate computed", est)
}

// TrackShipment returns tracking events for a waybill.
func (h *LogisticsHandler) TrackShipment(c *gin.Context) {
	waybill := c.Param("waybill")
	if waybill == "" {
		response.ValidationError(c, "waybill number is required", nil)
		return
	}

	data, err := h.logisticsService.Track(c.Request.Context(), waybill)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to fetch tracking info", err)
		return
	}

	response.Success(c, http.StatusOK, "tracking info retrieved", data)
}
