// Package quote resolves the current USD-BRL exchange rate.
package quote

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/philipeduarte001/licitacao/internal/config"
	"github.com/philipeduarte001/licitacao/internal/domain"
	"github.com/philipeduarte001/licitacao/internal/port"
)

// askPath is where the AwesomeAPI last-quote payload carries the ask
// price.
const askPath = "USDBRL.ask"

// Provider fetches the USD-BRL rate from the AwesomeAPI quote endpoint.
type Provider struct {
	url    string
	client *http.Client
}

// New creates a Provider from quote configuration.
func New(cfg *config.QuoteConfig) *Provider {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Provider{
		url:    cfg.URL,
		client: &http.Client{Timeout: timeout},
	}
}

var _ port.RateProvider = (*Provider)(nil)

// CurrentRate returns the latest ask price for one US dollar in BRL.
func (p *Provider) CurrentRate(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: building request: %v", domain.ErrQuoteUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrQuoteUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: quote endpoint returned status %d", domain.ErrQuoteUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("%w: reading response: %v", domain.ErrQuoteUnavailable, err)
	}
	if !gjson.ValidBytes(body) {
		return 0, fmt.Errorf("%w: response is not valid JSON", domain.ErrQuoteUnavailable)
	}

	ask := gjson.GetBytes(body, askPath)
	if !ask.Exists() {
		return 0, fmt.Errorf("%w: response payload missing %s", domain.ErrQuoteUnavailable, askPath)
	}
	rate := ask.Float()
	if rate <= 0 {
		return 0, fmt.Errorf("%w: unusable ask price %q", domain.ErrQuoteUnavailable, ask.String())
	}

	log.Printf("quote.Provider: current USD-BRL ask %.4f", rate)
	return rate, nil
}
