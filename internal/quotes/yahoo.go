package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	yahooBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	yahooUA      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
)

// yahooChartResponse is the subset of the v8 chart response we read.
type yahooChartResponse struct {
	Chart struct {
		Result []yahooChartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooChartResult struct {
	Meta struct {
		Symbol             string  `json:"symbol"`
		RegularMarketPrice float64 `json:"regularMarketPrice"`
	} `json:"meta"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

// YahooProvider fetches prices from the Yahoo Finance chart API.
type YahooProvider struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewYahooProvider creates a new Yahoo Finance price provider. An empty
// baseURL selects the public endpoint.
func NewYahooProvider(httpClient *http.Client, baseURL string) *YahooProvider {
	if baseURL == "" {
		baseURL = yahooBaseURL
	}
	return &YahooProvider{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

// Name returns the provider's display name.
func (p *YahooProvider) Name() string { return "Yahoo Finance" }

// FetchPrice fetches the latest regular-market price for symbol.
func (p *YahooProvider) FetchPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	endpoint := p.baseURL + "/" + url.PathEscape(symbol) + "?interval=1d&range=1d"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var chart yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return decimal.Zero, fmt.Errorf("decoding response: %w", err)
	}
	if chart.Chart.Error != nil {
		return decimal.Zero, fmt.Errorf("chart error %s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return decimal.Zero, fmt.Errorf("%s: %w", symbol, ErrNoPrice)
	}

	price := latestPrice(chart.Chart.Result[0])
	if price <= 0 {
		return decimal.Zero, fmt.Errorf("%s: %w", symbol, ErrNoPrice)
	}
	return decimal.NewFromFloat(price), nil
}

// latestPrice prefers the meta market price and falls back to the last
// non-zero close.
func latestPrice(r yahooChartResult) float64 {
	if r.Meta.RegularMarketPrice > 0 {
		return r.Meta.RegularMarketPrice
	}
	if len(r.Indicators.Quote) == 0 {
		return 0
	}
	closes := r.Indicators.Quote[0].Close
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] != nil && *closes[i] > 0 {
			return *closes[i]
		}
	}
	return 0
}
