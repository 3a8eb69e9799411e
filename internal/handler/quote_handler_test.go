package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/philipeduarte001/licitacao/internal/domain"
	"github.com/philipeduarte001/licitacao/internal/port"
	"github.com/philipeduarte001/licitacao/mocks"
)

func newQuoteRouter(rates port.RateProvider) *gin.Engine {
	r := gin.New()
	h := NewQuoteHandler(rates)
	r.GET("/api/v1/quotes/usd", h.CurrentUSD)
	return r
}

func TestCurrentUSD(t *testing.T) {
	rates := new(mocks.MockRateProvider)
	rates.On("CurrentRate", mock.Anything).Return(5.43, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/usd", nil)
	rec := httptest.NewRecorder()
	newQuoteRouter(rates).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "USD-BRL", data["pair"])
	assert.InDelta(t, 5.43, data["rate"].(float64), 0.0001)
}

func TestCurrentUSD_Unavailable(t *testing.T) {
	rates := new(mocks.MockRateProvider)
	rates.On("CurrentRate", mock.Anything).Return(0.0, domain.ErrQuoteUnavailable)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/usd", nil)
	rec := httptest.NewRecorder()
	newQuoteRouter(rates).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "QUOTE_UNAVAILABLE")
}
