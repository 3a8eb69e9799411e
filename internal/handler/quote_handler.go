package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/philipeduarte001/licitacao/internal/port"
)

// QuoteHandler handles currency quote endpoints.
type QuoteHandler struct {
	rates port.RateProvider
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(rates port.RateProvider) *QuoteHandler {
	return &QuoteHandler{rates: rates}
}

// QuoteResponse is the DTO for quote responses.
type QuoteResponse struct {
	Pair string  `json:"pair"`
	Rate float64 `json:"rate"`
}

// CurrentUSD handles GET /api/v1/quotes/usd
// @Summary Current USD-BRL quote
// @Description Returns the latest USD-BRL ask price
// @Tags quotes
// @Produce json
// @Success 200 {object} APIResponse{data=QuoteResponse}
// @Failure 502 {object} APIResponse "Quote service unavailable"
// @Router /quotes/usd [get]
func (h *QuoteHandler) CurrentUSD(c *gin.Context) {
	rate, err := h.rates.CurrentRate(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, QuoteResponse{Pair: "USD-BRL", Rate: rate})
}
