package quotes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chartResponse builds a v8 chart JSON body carrying a single meta price.
func chartResponse(symbol string, price float64) map[string]any {
	return map[string]any{
		"chart": map[string]any{
			"result": []any{
				map[string]any{"meta": map[string]any{"symbol": symbol, "regularMarketPrice": price}},
			},
			"error": nil,
		},
	}
}

// chartErrorResponse builds a v8 chart error body.
func chartErrorResponse(code, description string) map[string]any {
	return map[string]any{
		"chart": map[string]any{
			"result": nil,
			"error":  map[string]any{"code": code, "description": description},
		},
	}
}

// newChartServer serves chart responses per ticker taken from the URL path.
// Tickers not in priceMap get a chart error.
func newChartServer(priceMap map[string]float64) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ticker := strings.TrimPrefix(r.URL.Path, "/")
		w.Header().Set("Content-Type", "application/json")

		price, ok := priceMap[ticker]
		if !ok {
			_ = json.NewEncoder(w).Encode(chartErrorResponse("Not Found", "No data found, symbol may be delisted"))
			return
		}
		_ = json.NewEncoder(w).Encode(chartResponse(ticker, price))
	}))
}

func TestYahooProvider_FetchPrice_Success(t *testing.T) {
	server := newChartServer(map[string]float64{"AAPL": 178.72})
	defer server.Close()

	p := NewYahooProvider(server.Client(), server.URL)
	price, err := p.FetchPrice(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Equal(t, "178.72", price.String())
}

func TestYahooProvider_FetchPrice_SendsUserAgent(t *testing.T) {
	var ua string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		_ = json.NewEncoder(w).Encode(chartResponse("AAPL", 1))
	}))
	defer server.Close()

	p := NewYahooProvider(server.Client(), server.URL)
	_, err := p.FetchPrice(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Equal(t, yahooUA, ua)
}

func TestYahooProvider_FetchPrice_CloseFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"chart":{"result":[{"meta":{"symbol":"NOKIA.HE"},` +
			`"indicators":{"quote":[{"close":[3.51,3.52,null]}]}}],"error":null}}`))
	}))
	defer server.Close()

	p := NewYahooProvider(server.Client(), server.URL)
	price, err := p.FetchPrice(context.Background(), "NOKIA.HE")

	require.NoError(t, err)
	assert.Equal(t, "3.52", price.String())
}

func TestYahooProvider_FetchPrice_ChartError(t *testing.T) {
	server := newChartServer(map[string]float64{})
	defer server.Close()

	p := NewYahooProvider(server.Client(), server.URL)
	_, err := p.FetchPrice(context.Background(), "FAKESYM")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not Found")
}

func TestYahooProvider_FetchPrice_ZeroPrice(t *testing.T) {
	server := newChartServer(map[string]float64{"DEAD": 0})
	defer server.Close()

	p := NewYahooProvider(server.Client(), server.URL)
	_, err := p.FetchPrice(context.Background(), "DEAD")

	assert.ErrorIs(t, err, ErrNoPrice)
}

func TestYahooProvider_FetchPrice_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	p := NewYahooProvider(server.Client(), server.URL)
	_, err := p.FetchPrice(context.Background(), "AAPL")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestYahooProvider_FetchPrice_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	p := NewYahooProvider(server.Client(), server.URL)
	_, err := p.FetchPrice(context.Background(), "AAPL")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestNewYahooProvider_DefaultBaseURL(t *testing.T) {
	p := NewYahooProvider(http.DefaultClient, "")
	assert.Equal(t, yahooBaseURL, p.baseURL)
	assert.Equal(t, "Yahoo Finance", p.Name())
}
