package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stockfolio/internal/database"
	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/logger"
	"stockfolio/internal/models"
	"stockfolio/internal/valuation"
)

// Command is one of EntryCommand, ExitCommand, AddCommand or TrimCommand.
// The set is closed: only this package can add variants.
type Command interface {
	Operation() models.Operation
	Target() string
	isCommand()
}

// EntryCommand opens a new position.
type EntryCommand struct {
	Symbol   string
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// ExitCommand closes a position entirely at Price.
type ExitCommand struct {
	Symbol string
	Price  decimal.Decimal
}

// AddCommand buys Quantity more at Price.
type AddCommand struct {
	Symbol   string
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// TrimCommand sells Quantity at Price.
type TrimCommand struct {
	Symbol   string
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

func (EntryCommand) Operation() models.Operation { return models.OperationEntry }
func (ExitCommand) Operation() models.Operation  { return models.OperationExit }
func (AddCommand) Operation() models.Operation   { return models.OperationAdd }
func (TrimCommand) Operation() models.Operation  { return models.OperationTrim }

func (c EntryCommand) Target() string { return c.Symbol }
func (c ExitCommand) Target() string  { return c.Symbol }
func (c AddCommand) Target() string   { return c.Symbol }
func (c TrimCommand) Target() string  { return c.Symbol }

func (EntryCommand) isCommand() {}
func (ExitCommand) isCommand()  {}
func (AddCommand) isCommand()   {}
func (TrimCommand) isCommand()  {}

// lifecycleService applies Entry/Exit/Add/Trim to the positions table.
type lifecycleService struct {
	db              *gorm.DB
	activityService ActivityServicer
	now             func() time.Time
}

// NewLifecycleService creates a new LifecycleServicer.
func NewLifecycleService(db *gorm.DB, activityService ActivityServicer) LifecycleServicer {
	return &lifecycleService{db: db, activityService: activityService, now: time.Now}
}

// Apply runs cmd in a single transaction together with its Activity row.
// Cash movements are bookkeeping and are not written to the Activity log.
func (s *lifecycleService) Apply(ctx context.Context, cmd Command) (*LifecycleResult, error) {
	var result *LifecycleResult
	err := database.Session(ctx, s.db, func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			var err error
			switch c := cmd.(type) {
			case EntryCommand:
				result, err = s.entry(tx, c)
			case ExitCommand:
				result, err = s.exit(tx, c)
			case AddCommand:
				result, err = s.add(tx, c)
			case TrimCommand:
				result, err = s.trim(tx, c)
			default:
				err = apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Unsupported operation %T", cmd))
			}
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("lifecycle operation applied",
		"operation", result.Operation,
		"symbol", result.Symbol,
		"skipped", result.Skipped,
	)
	return result, nil
}

func (s *lifecycleService) entry(tx *gorm.DB, c EntryCommand) (*LifecycleResult, error) {
	existing, err := findPosition(tx, c.Symbol)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.WithMessage(apperrors.ErrDuplicateSymbol,
			fmt.Sprintf("Symbol %s already exists in the portfolio", c.Symbol))
	}

	price := c.Price.Round(models.MoneyPlaces)
	qty := normalizeQuantity(c.Symbol, c.Quantity)
	y, m, d := s.now().Date()
	position := &models.Position{
		Symbol:       c.Symbol,
		Quantity:     qty,
		AvgCost:      price,
		CurrentPrice: decimal.NewNullDecimal(price),
		Value:        decimal.Zero,
		Allocation:   decimal.Zero,
		Change:       decimal.NewNullDecimal(decimal.Zero),
		OpenDate:     time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}
	if err := tx.Create(position).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := &LifecycleResult{
		Operation: models.OperationEntry,
		Symbol:    c.Symbol,
		Message:   fmt.Sprintf("Opened %s: %s @ %s", c.Symbol, qty, price),
		Position:  position,
	}
	return s.record(tx, result, qty, price)
}

func (s *lifecycleService) exit(tx *gorm.DB, c ExitCommand) (*LifecycleResult, error) {
	position, err := requirePosition(tx, c.Symbol)
	if err != nil {
		return nil, err
	}

	if err := tx.Delete(&models.Position{}, "symbol = ?", c.Symbol).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := &LifecycleResult{
		Operation: models.OperationExit,
		Symbol:    c.Symbol,
		Message:   fmt.Sprintf("Closed %s: %s @ %s", c.Symbol, position.Quantity, c.Price),
	}
	return s.record(tx, result, position.Quantity, c.Price)
}

// add is a read-modify-write without row locking: two concurrent Adds on the
// same symbol can lose one update.
func (s *lifecycleService) add(tx *gorm.DB, c AddCommand) (*LifecycleResult, error) {
	position, err := requirePosition(tx, c.Symbol)
	if err != nil {
		return nil, err
	}

	qty := normalizeQuantity(c.Symbol, c.Quantity)
	newAvg := valuation.WeightedAverage(position.AvgCost, position.Quantity, c.Price, qty)
	newQty := position.Quantity.Add(qty)
	if err := tx.Model(&models.Position{}).Where("symbol = ?", c.Symbol).Updates(map[string]interface{}{
		"avg_cost": newAvg,
		"quantity": newQty,
	}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	position.AvgCost = newAvg
	position.Quantity = newQty

	result := &LifecycleResult{
		Operation: models.OperationAdd,
		Symbol:    c.Symbol,
		Message:   fmt.Sprintf("Average cost for %s is now %s, quantity %s", c.Symbol, newAvg.StringFixed(models.MoneyPlaces), newQty),
		Position:  position,
	}
	return s.record(tx, result, qty, c.Price)
}

func (s *lifecycleService) trim(tx *gorm.DB, c TrimCommand) (*LifecycleResult, error) {
	position, err := requirePosition(tx, c.Symbol)
	if err != nil {
		return nil, err
	}

	qty := normalizeQuantity(c.Symbol, c.Quantity)
	if qty.GreaterThan(position.Quantity) {
		msg := fmt.Sprintf("Quantity to decrease (%s) exceeds current quantity (%s) for symbol %s; nothing changed",
			qty, position.Quantity, c.Symbol)
		logger.Get().Warnw("trim skipped",
			"symbol", c.Symbol,
			"requested", qty.String(),
			"held", position.Quantity.String(),
		)
		return &LifecycleResult{
			Operation: models.OperationTrim,
			Symbol:    c.Symbol,
			Skipped:   true,
			Message:   msg,
			Position:  position,
		}, nil
	}

	newQty := position.Quantity.Sub(qty)
	if err := tx.Model(&models.Position{}).Where("symbol = ?", c.Symbol).
		Update("quantity", newQty).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	position.Quantity = newQty

	result := &LifecycleResult{
		Operation: models.OperationTrim,
		Symbol:    c.Symbol,
		Message:   fmt.Sprintf("Quantity for %s decreased by %s, now %s", c.Symbol, qty, newQty),
		Position:  position,
	}
	return s.record(tx, result, qty, c.Price)
}

// record appends the Activity row for result unless the symbol is cash.
func (s *lifecycleService) record(tx *gorm.DB, result *LifecycleResult, quantity, price decimal.Decimal) (*LifecycleResult, error) {
	if models.IsCash(result.Symbol) {
		return result, nil
	}
	activity, err := s.activityService.Record(tx, ActivityEntry{
		Operation: result.Operation,
		Symbol:    result.Symbol,
		Quantity:  quantity,
		Price:     price,
	})
	if err != nil {
		return nil, err
	}
	result.Activity = activity
	return result, nil
}

// normalizeQuantity rounds a cash balance to cents so its value, stored at
// two places, always equals its quantity. Share quantities pass through.
func normalizeQuantity(symbol string, q decimal.Decimal) decimal.Decimal {
	if models.IsCash(symbol) {
		return q.Round(models.MoneyPlaces)
	}
	return q
}

// findPosition loads a position by symbol, returning nil when absent.
func findPosition(tx *gorm.DB, symbol string) (*models.Position, error) {
	var position models.Position
	if err := tx.Where("symbol = ?", symbol).First(&position).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &position, nil
}

// requirePosition is findPosition with a SymbolNotFound error for absence.
func requirePosition(tx *gorm.DB, symbol string) (*models.Position, error) {
	position, err := findPosition(tx, symbol)
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, apperrors.WithMessage(apperrors.ErrSymbolNotFound,
			fmt.Sprintf("Symbol %s not found in the portfolio", symbol))
	}
	return position, nil
}
