package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stockfolio/internal/models"
	"stockfolio/internal/pagination"
	"stockfolio/internal/quotes"
)

// QuoteFetcher resolves symbols to their latest prices. Failed symbols map to
// an invalid NullDecimal.
type QuoteFetcher interface {
	Fetch(ctx context.Context, symbols []string) (map[string]decimal.NullDecimal, []quotes.FetchError)
}

// RefreshReport summarizes one valuation refresh.
type RefreshReport struct {
	Quoted            []string `json:"quoted"`
	Missing           []string `json:"missing"`
	AllocationSkipped bool     `json:"allocation_skipped"`
}

// PortfolioServicer defines the contract for reading and revaluing positions.
type PortfolioServicer interface {
	ListPositions(ctx context.Context) ([]models.Position, error)
	Refresh(ctx context.Context) (*RefreshReport, error)
	Snapshot(ctx context.Context) ([]models.Position, error)
}

// LifecycleResult describes the outcome of a lifecycle command.
type LifecycleResult struct {
	Operation models.Operation `json:"operation"`
	Symbol    string           `json:"symbol"`
	Skipped   bool             `json:"skipped"`
	Message   string           `json:"message"`
	Position  *models.Position `json:"position,omitempty"`
	Activity  *models.Activity `json:"activity,omitempty"`
}

// LifecycleServicer defines the contract for Entry/Exit/Add/Trim.
type LifecycleServicer interface {
	Apply(ctx context.Context, cmd Command) (*LifecycleResult, error)
}

// ActivityEntry is the caller-supplied part of an Activity row.
type ActivityEntry struct {
	Operation models.Operation
	Symbol    string
	Quantity  decimal.Decimal
	Price     decimal.Decimal
}

// ActivityServicer defines the contract for the append-only trade log.
type ActivityServicer interface {
	Record(tx *gorm.DB, entry ActivityEntry) (*models.Activity, error)
	GetActivity(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Activity], error)
}
