// Package quotes fetches latest stock prices from an external quote source.
package quotes

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNoPrice is returned by a provider when the source answered but carried
// no usable price for the symbol.
var ErrNoPrice = errors.New("no price available")

// Provider fetches the latest trade price for a single symbol.
type Provider interface {
	// Name returns the provider's display name (e.g., "Yahoo Finance").
	Name() string

	// FetchPrice returns the latest price for symbol. Implementations must
	// not retry; the fetcher treats any error as an absent price.
	FetchPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// FetchError represents a failed price fetch for a specific symbol.
type FetchError struct {
	Symbol string
	Err    error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch price for %s: %v", e.Symbol, e.Err)
}

// Unwrap returns the provider error.
func (e *FetchError) Unwrap() error { return e.Err }
