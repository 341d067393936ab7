package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stockfolio/internal/database"
	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
	"stockfolio/internal/pagination"
)

// activityService handles the append-only trade log.
type activityService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewActivityService creates a new ActivityServicer.
func NewActivityService(db *gorm.DB) ActivityServicer {
	return &activityService{db: db, now: time.Now}
}

// Record appends one Activity row using tx, so it commits or rolls back with
// the lifecycle change that caused it. The id is max+1 over existing rows.
func (s *activityService) Record(tx *gorm.DB, entry ActivityEntry) (*models.Activity, error) {
	var nextID int64
	if err := tx.Model(&models.Activity{}).
		Select("COALESCE(MAX(activityid), 0) + 1").
		Scan(&nextID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	activity := &models.Activity{
		ActivityID: nextID,
		Operation:  entry.Operation,
		Timestamp:  s.now().Truncate(time.Second),
		Symbol:     entry.Symbol,
		Quantity:   entry.Quantity,
		Price:      entry.Price,
		Value:      entry.Price.Mul(entry.Quantity).Round(models.MoneyPlaces),
	}
	if err := tx.Create(activity).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return activity, nil
}

// GetActivity returns a page of the trade log, newest first.
func (s *activityService) GetActivity(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Activity], error) {
	page.Defaults()

	var totalItems int64
	var activities []models.Activity
	err := database.Session(ctx, s.db, func(conn *gorm.DB) error {
		if err := conn.Model(&models.Activity{}).Count(&totalItems).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := conn.Order("activityid DESC").
			Scopes(pagination.Paginate(page)).
			Find(&activities).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := pagination.NewPageResponse(activities, page.Page, page.PageSize, totalItems)
	return &result, nil
}
