package services

import (
	"context"

	"gorm.io/gorm"

	"stockfolio/internal/database"
	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/logger"
	"stockfolio/internal/models"
	"stockfolio/internal/valuation"
)

// portfolioService reads positions and keeps their derived fields current.
type portfolioService struct {
	db      *gorm.DB
	fetcher QuoteFetcher
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB, fetcher QuoteFetcher) PortfolioServicer {
	return &portfolioService{db: db, fetcher: fetcher}
}

// ListPositions returns the stored positions ordered by symbol.
func (s *portfolioService) ListPositions(ctx context.Context) ([]models.Position, error) {
	var positions []models.Position
	err := database.Session(ctx, s.db, func(conn *gorm.DB) error {
		return conn.Order("symbol").Find(&positions).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if positions == nil {
		positions = []models.Position{}
	}
	return positions, nil
}

// Refresh fetches quotes and runs the four valuation steps. Each step is
// written row by row before the next one starts, so a store error leaves
// earlier steps committed and later ones stale; the error is returned and
// the remaining steps are not attempted.
func (s *portfolioService) Refresh(ctx context.Context) (*RefreshReport, error) {
	positions, err := s.ListPositions(ctx)
	if err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(positions))
	for i := range positions {
		symbols = append(symbols, positions[i].Symbol)
	}
	prices, fetchErrors := s.fetcher.Fetch(ctx, symbols)

	report := &RefreshReport{Quoted: []string{}, Missing: []string{}}
	for _, fe := range fetchErrors {
		report.Missing = append(report.Missing, fe.Symbol)
	}

	err = database.Session(ctx, s.db, func(conn *gorm.DB) error {
		for _, i := range valuation.UpdatePrices(positions, prices) {
			report.Quoted = append(report.Quoted, positions[i].Symbol)
			if err := updateColumn(conn, positions[i].Symbol, "current_price", positions[i].CurrentPrice); err != nil {
				return err
			}
		}

		valuation.UpdateValues(positions)
		for i := range positions {
			if err := updateColumn(conn, positions[i].Symbol, "value", positions[i].Value); err != nil {
				return err
			}
		}

		if valuation.UpdateAllocations(positions) {
			report.AllocationSkipped = true
			logger.Get().Infow("total value is zero, allocation update skipped", "positions", len(positions))
		} else {
			for i := range positions {
				if err := updateColumn(conn, positions[i].Symbol, "allocation", positions[i].Allocation); err != nil {
					return err
				}
			}
		}

		for _, i := range valuation.UpdateChanges(positions) {
			if err := updateColumn(conn, positions[i].Symbol, "change", positions[i].Change); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return report, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("positions refreshed",
		"positions", len(positions),
		"quoted", len(report.Quoted),
		"missing", len(report.Missing),
	)
	return report, nil
}

// Snapshot refreshes and then returns every position. A failed refresh is
// logged and the stored table is served as-is.
func (s *portfolioService) Snapshot(ctx context.Context) ([]models.Position, error) {
	if _, err := s.Refresh(ctx); err != nil {
		logger.Get().Warnw("refresh failed, serving stored positions", "error", err)
	}
	return s.ListPositions(ctx)
}

// updateColumn writes a single derived column for one symbol; every call is
// its own autocommitted statement.
func updateColumn(conn *gorm.DB, symbol, column string, value interface{}) error {
	return conn.Model(&models.Position{}).
		Where("symbol = ?", symbol).
		Update(column, value).Error
}
