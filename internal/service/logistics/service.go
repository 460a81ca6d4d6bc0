// internal/service/logistics/service.go
package logistics

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	xerrors "cncquote-service/internal/pkg/errors"
	"cncquote-service/internal/service/cnc"

	"go.uber.org/zap"
)

// FreightEstimateRequest identifies the quoted order and destination to
// estimate shipping for.
type FreightEstimateRequest struct {
	BusinessLine     string `json:"business_line" binding:"required"`
	BizOrderAccessID string `json:"biz_order_access_id" binding:"required"`
	CountryCode      string `json:"country_code" binding:"required"`
	ShippingMethod   string `json:"shipping_method" binding:"required"`
}

// FreightEstimate is the blended international + domestic shipping
// estimate, in USD.
type FreightEstimate struct {
	ProductCode    string  `json:"product_code"`
	BizTotalWeight float64 `json:"biz_total_weight"`
	BasicFreight   float64 `json:"basic_freight"`
	TaxFee         float64 `json:"tax_fee"`
	TotalFreight   float64 `json:"total_freight"`
	IntervalDay    string  `json:"interval_day"`
}

// Service orchestrates the logistics vendor, the CNC platform's domestic
// courier fees and the exchange rate into storefront-facing answers.
type Service struct {
	client    *Client
	cncClient *cnc.Client
	rates     *RateClient

	cncRatio       float64
	logisticsRatio float64

	logger *zap.Logger
}

func NewService(client *Client, cncClient *cnc.Client, rates *RateClient, cncRatio, logisticsRatio float64, logger *zap.Logger) *Service {
	return &Service{
		client:         client,
		cncClient:      cncClient,
		rates:          rates,
		cncRatio:       cncRatio,
		logisticsRatio: logisticsRatio,
		logger:         logger,
	}
}

// Countries proxies the destination country catalog.
func (s *Service) Countries(ctx context.Context, productCode string) (json.RawMessage, error) {
	return s.client.Countries(ctx, productCode)
}

// Regions proxies the region catalog; region1 may be empty for the first
// level.
func (s *Service) Regions(ctx context.Context, countryCode, region1 string) (json.RawMessage, error) {
	return s.client.Regions(ctx, countryCode, region1)
}

// Postcodes proxies the postcode catalog.
func (s *Service) Postcodes(ctx context.Context, countryCode, region1, region2 string) (json.RawMessage, error) {
	return s.client.Postcodes(ctx, countryCode, region1, region2)
}

// Track proxies tracking events for a waybill.
func (s *Service) Track(ctx context.Context, waybillNumber string) (json.RawMessage, error) {
	return s.client.Track(ctx, waybillNumber)
}

// Estimate computes the full shipping estimate for a quoted order: the
// order's settlement weight feeds the vendor's price trial, the
// platform's own courier fee covers the domestic leg, and the blended
// total converts to USD with the configured ratios applied.
func (s *Service) Estimate(ctx context.Context, req *FreightEstimateRequest) (*FreightEstimate, error) {
	weight, err := s.cncClient.OrderWeight(ctx, req.BusinessLine, req.BizOrderAccessID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order weight: %w", err)
	}

	fees, err := s.client.PriceTrial(ctx, req.CountryCode, weight)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch freight prices: %w", err)
	}

	var e1Fee, e2Fee float64
	var intervalDay string
	matched := false
	for _, fee := range fees {
		if fee.ProductCode != req.ShippingMethod {
			continue
		}
		matched = true
		switch fee.FeeName {
		case "E1":
			e1Fee = fee.CalculateAmount
			intervalDay = fee.IntervalDay
		case "E2":
			e2Fee = fee.CalculateAmount
		}
	}
	if !matched {
		return nil, fmt.Errorf("%w: no freight price for product %s", xerrors.ErrNotFound, req.ShippingMethod)
	}

	carriage, err := s.cncClient.CalculateCarriage(ctx, req.BizOrderAccessID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch domestic carriage fee: %w", err)
	}

	rate := s.rates.CNHToUSD(ctx)

	basicFreight := ((e1Fee+e2Fee)*s.logisticsRatio + carriage.Fee*s.cncRatio) / rate
	taxFee := (carriage.IncludeTax - carriage.Fee) * s.cncRatio / rate

	est := &FreightEstimate{
		ProductCode:    req.ShippingMethod,
		BizTotalWeight: weight,
		BasicFreight:   round2(basicFreight),
		TaxFee:         round2(taxFee),
		TotalFreight:   round2(basicFreight + taxFee),
		IntervalDay:    intervalDay,
	}

	s.logger.Info("freight estimate computed",
		zap.String("product_code", est.ProductCode),
		zap.Float64("weight", est.BizTotalWeight),
		zap.Float64("total_freight", est.TotalFreight),
	)
	return est, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
