package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is one held symbol. Value, Allocation and Change are derived by
// the valuation engine; OpenDate is set once at Entry.
type Position struct {
	Symbol       string              `gorm:"primaryKey;type:varchar(20)" json:"symbol"`
	Quantity     decimal.Decimal     `gorm:"type:numeric(20,4);not null;default:0" json:"quantity"`
	AvgCost      decimal.Decimal     `gorm:"type:numeric(20,2);not null;default:0" json:"avg_cost"`
	CurrentPrice decimal.NullDecimal `gorm:"type:numeric(20,2)" json:"current_price"`
	Value        decimal.Decimal     `gorm:"type:numeric(20,2);not null;default:0" json:"value"`
	Allocation   decimal.Decimal     `gorm:"type:numeric(7,2);not null;default:0" json:"allocation"`
	Change       decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"change"`
	OpenDate     time.Time           `gorm:"type:date;not null" json:"open_date"`
}

// TableName pins the table name shared with the SQL migrations.
func (Position) TableName() string {
	return "positions"
}

// IsCash reports whether the position is the cash balance.
func (p *Position) IsCash() bool {
	return IsCash(p.Symbol)
}
