package quotes

import (
	"context"

	"github.com/shopspring/decimal"

	"stockfolio/internal/logger"
	"stockfolio/internal/models"
)

// Fetcher resolves a set of position symbols to their latest prices, one
// symbol at a time. A failing symbol never aborts the batch.
type Fetcher struct {
	provider Provider
}

// NewFetcher creates a Fetcher backed by provider.
func NewFetcher(provider Provider) *Fetcher {
	return &Fetcher{provider: provider}
}

// Fetch returns a price for every distinct non-cash symbol. Failed symbols
// map to an invalid NullDecimal and are also reported in the error slice.
// Prices are rounded to two decimal places.
func (f *Fetcher) Fetch(ctx context.Context, symbols []string) (map[string]decimal.NullDecimal, []FetchError) {
	prices := make(map[string]decimal.NullDecimal, len(symbols))
	var fetchErrors []FetchError

	for _, symbol := range symbols {
		if symbol == "" || models.IsCash(symbol) {
			continue
		}
		if _, seen := prices[symbol]; seen {
			continue
		}

		price, err := f.provider.FetchPrice(ctx, symbol)
		if err != nil {
			logger.Get().Warnw("price fetch failed",
				"provider", f.provider.Name(),
				"symbol", symbol,
				"error", err.Error(),
			)
			prices[symbol] = decimal.NullDecimal{}
			fetchErrors = append(fetchErrors, FetchError{Symbol: symbol, Err: err})
			continue
		}
		prices[symbol] = decimal.NewNullDecimal(price.Round(models.MoneyPlaces))
	}

	return prices, fetchErrors
}
