// internal/service/logistics/service_test.go
package logistics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	xerrors "cncquote-service/internal/pkg/errors"
	"cncquote-service/internal/service/cnc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCNCServer answers the two platform calls the estimate makes: the
// settlement weight lookup and the domestic carriage fee.
func fakeCNCServer(t *testing.T, weight, carriageFee, carriageFeeIncludeTax float64) *cnc.Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/cncSettlement/obtain/queryObtainBizOrder", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{
			"code": 200,
			"data": map[string]any{"bizTotalWeight": weight},
		})
	})
	mux.HandleFunc("/api/cncOrder/walletWeb/placeCalculateCouponFee", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{
			"code": 200,
			"data": map[string]any{
				"carriageFee":           carriageFee,
				"carriageFeeIncludeTax": carriageFeeIncludeTax,
			},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return cnc.NewClient(srv.URL, "", zap.NewNop())
}

// fakeLogisticsServer answers the token exchange and the price trial
// with a fixed fee table.
func fakeLogisticsServer(t *testing.T, fees []FreightFee) *Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/openapi/oauth2/token", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{"accessToken": "tok-1"})
	})
	mux.HandleFunc("/v1/price-trial/get", func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("token"))
		assert.NotEmpty(t, r.Header.Get("sign"))
		writeJSON(t, w, map[string]any{"result": fees})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewClient(ClientConfig{
		APIBase:   srv.URL,
		UCBase:    srv.URL,
		OMSBase:   srv.URL,
		ClientID:  "client",
		Secret:    "secret",
		SourceKey: "source",
	}, zap.NewNop())
}

func fakeRateServer(t *testing.T, rate float64) *RateClient {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/latest.json", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{"rates": map[string]float64{"CNH": rate}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewRateClient(srv.URL, "app-id", 7.2, zap.NewNop())
}

func writeJSON(t *testing.T, w http.ResponseWriter, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(body))
}

func estimateRequest() *FreightEstimateRequest {
	return &FreightEstimateRequest{
		BusinessLine:     "cnc",
		BizOrderAccessID: "biz-1",
		CountryCode:      "US",
		ShippingMethod:   "THPHR",
	}
}

func TestEstimateBlendsVendorFees(t *testing.T) {
	t.Parallel()

	cncClient := fakeCNCServer(t, 2.5, 30, 33)
	lgClient := fakeLogisticsServer(t, []FreightFee{
		{ProductCode: "THPHR", FeeName: "E1", CalculateAmount: 100, IntervalDay: "7-10"},
		{ProductCode: "THPHR", FeeName: "E2", CalculateAmount: 50},
		{ProductCode: "OTHER", FeeName: "E1", CalculateAmount: 999},
	})
	rates := fakeRateServer(t, 2.0)

	svc := NewService(lgClient, cncClient, rates, 1.0, 1.0, zap.NewNop())

	est, err := svc.Estimate(context.Background(), estimateRequest())
	require.NoError(t, err)

	assert.Equal(t, "THPHR", est.ProductCode)
	assert.Equal(t, 2.5, est.BizTotalWeight)
	assert.Equal(t, "7-10", est.IntervalDay)

	// ((100+50)*1.0 + 30*1.0) / 2.0 and (33-30)*1.0 / 2.0.
	assert.InDelta(t, 90.0, est.BasicFreight, 0.001)
	assert.InDelta(t, 1.5, est.TaxFee, 0.001)
	assert.InDelta(t, 91.5, est.TotalFreight, 0.001)
}

func TestEstimateAppliesRatios(t *testing.T) {
	t.Parallel()

	cncClient := fakeCNCServer(t, 1.0, 20, 24)
	lgClient := fakeLogisticsServer(t, []FreightFee{
		{ProductCode: "THPHR", FeeName: "E1", CalculateAmount: 60, IntervalDay: "5-8"},
		{ProductCode: "THPHR", FeeName: "E2", CalculateAmount: 40},
	})
	rates := fakeRateServer(t, 2.0)

	svc := NewService(lgClient, cncClient, rates, 0.5, 0.8, zap.NewNop())

	est, err := svc.Estimate(context.Background(), estimateRequest())
	require.NoError(t, err)

	// ((60+40)*0.8 + 20*0.5) / 2.0 and (24-20)*0.5 / 2.0.
	assert.InDelta(t, 45.0, est.BasicFreight, 0.001)
	assert.InDelta(t, 1.0, est.TaxFee, 0.001)
	assert.InDelta(t, 46.0, est.TotalFreight, 0.001)
}

func TestEstimateUnknownShippingMethod(t *testing.T) {
	t.Parallel()

	cncClient := fakeCNCServer(t, 2.5, 30, 33)
	lgClient := fakeLogisticsServer(t, []FreightFee{
		{ProductCode: "OTHER", FeeName: "E1", CalculateAmount: 100},
	})
	rates := fakeRateServer(t, 2.0)

	svc := NewService(lgClient, cncClient, rates, 1.0, 1.0, zap.NewNop())

	_, err := svc.Estimate(context.Background(), estimateRequest())
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, xerrors.ErrNotFound))
}

func TestCNHToUSDFallsBackOnVendorFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	rates := NewRateClient(srv.URL, "app-id", 7.2, zap.NewNop())
	assert.Equal(t, 7.2, rates.CNHToUSD(context.Background()))
}

func TestRound2(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.43, round2(1.426))
	assert.Equal(t, 2.34, round2(2.344))
	assert.Equal(t, 91.5, round2(91.504))
}
