package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operation is the lifecycle discriminator sent by the dashboard as
// "selectedOption".
type Operation string

const (
	OperationEntry Operation = "Entry"
	OperationExit  Operation = "Exit"
	OperationAdd   Operation = "Add"
	OperationTrim  Operation = "Trim"
)

// Valid reports whether o is one of the four lifecycle operations.
func (o Operation) Valid() bool {
	switch o {
	case OperationEntry, OperationExit, OperationAdd, OperationTrim:
		return true
	}
	return false
}

// Activity is an immutable trade record. ActivityID is assigned by the
// application as max+1, not by the database.
type Activity struct {
	ActivityID int64           `gorm:"column:activityid;primaryKey;autoIncrement:false" json:"activityid"`
	Operation  Operation       `gorm:"type:varchar(10);not null" json:"operation"`
	Timestamp  time.Time       `gorm:"column:timestamp;not null" json:"timestamp"`
	Symbol     string          `gorm:"type:varchar(20);not null;index" json:"symbol"`
	Quantity   decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"quantity"`
	Price      decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"price"`
	Value      decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"value"`
}

// TableName pins the table name shared with the SQL migrations.
func (Activity) TableName() string {
	return "activity"
}
