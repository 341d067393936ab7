package testutil

import (
	"testing"
	"time"

	"stockfolio/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Dec parses a decimal literal, panicking on malformed input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// CreateTestPosition inserts a position with no market data yet.
func CreateTestPosition(t *testing.T, db *gorm.DB, symbol, quantity, avgCost string) *models.Position {
	t.Helper()

	position := &models.Position{
		Symbol:   symbol,
		Quantity: Dec(quantity),
		AvgCost:  Dec(avgCost),
		OpenDate: time.Now().UTC().Truncate(24 * time.Hour),
	}
	if err := db.Create(position).Error; err != nil {
		t.Fatalf("failed to create test position: %v", err)
	}
	return position
}

// CreateTestPricedPosition inserts a position with a stored current price.
func CreateTestPricedPosition(t *testing.T, db *gorm.DB, symbol, quantity, avgCost, price string) *models.Position {
	t.Helper()

	position := &models.Position{
		Symbol:       symbol,
		Quantity:     Dec(quantity),
		AvgCost:      Dec(avgCost),
		CurrentPrice: decimal.NewNullDecimal(Dec(price)),
		OpenDate:     time.Now().UTC().Truncate(24 * time.Hour),
	}
	if err := db.Create(position).Error; err != nil {
		t.Fatalf("failed to create test position: %v", err)
	}
	return position
}

// CreateTestCash inserts the CASH position with the given balance.
func CreateTestCash(t *testing.T, db *gorm.DB, balance string) *models.Position {
	t.Helper()
	return CreateTestPosition(t, db, models.CashSymbol, balance, "0")
}

// CreateTestActivity inserts an activity row with an explicit id.
func CreateTestActivity(t *testing.T, db *gorm.DB, id int64, op models.Operation, symbol, quantity, price string) *models.Activity {
	t.Helper()

	activity := &models.Activity{
		ActivityID: id,
		Operation:  op,
		Timestamp:  time.Now().UTC().Truncate(time.Second),
		Symbol:     symbol,
		Quantity:   Dec(quantity),
		Price:      Dec(price),
		Value:      Dec(price).Mul(Dec(quantity)),
	}
	if err := db.Create(activity).Error; err != nil {
		t.Fatalf("failed to create test activity: %v", err)
	}
	return activity
}

// GetPosition reloads a position by symbol, or returns nil if it is gone.
func GetPosition(t *testing.T, db *gorm.DB, symbol string) *models.Position {
	t.Helper()

	var position models.Position
	err := db.Where("symbol = ?", symbol).Limit(1).Find(&position).Error
	if err != nil {
		t.Fatalf("failed to load position %s: %v", symbol, err)
	}
	if position.Symbol == "" {
		return nil
	}
	return &position
}
