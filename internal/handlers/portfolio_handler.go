package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
	"stockfolio/internal/services"
)

// PortfolioHandler handles the dashboard's position requests.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
	lifecycleService services.LifecycleServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer, lifecycleService services.LifecycleServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, lifecycleService: lifecycleService}
}

// PositionRequest is the lifecycle payload posted by the dashboard form.
// Price and Quantity accept JSON numbers or numeric strings; which of them
// are required depends on SelectedOption.
type PositionRequest struct {
	SelectedOption models.Operation `json:"selectedOption" binding:"required,lifecycle_operation" example:"Add"`
	Symbol         string           `json:"symbol" binding:"required,ticker" example:"AAPL"`
	Price          *decimal.Decimal `json:"price,omitempty" swaggertype:"number" example:"150.25"`
	Quantity       *decimal.Decimal `json:"quantity,omitempty" swaggertype:"number" example:"10"`
}

// PositionsResponse wraps the position table.
type PositionsResponse struct {
	Status string            `json:"status" example:"success"`
	Data   []models.Position `json:"data"`
}

// LifecycleResponse reports the outcome of a lifecycle operation.
type LifecycleResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message"`
	Skipped bool   `json:"skipped,omitempty"`
}

// toCommand checks the operation-specific fields and builds the command.
func (r *PositionRequest) toCommand() (services.Command, error) {
	symbol := strings.ToUpper(r.Symbol)

	switch r.SelectedOption {
	case models.OperationEntry:
		price, err := requireDecimal("price", r.Price, false)
		if err != nil {
			return nil, err
		}
		qty, err := requireDecimal("quantity", r.Quantity, true)
		if err != nil {
			return nil, err
		}
		return services.EntryCommand{Symbol: symbol, Price: price, Quantity: qty}, nil

	case models.OperationExit:
		price, err := requireDecimal("price", r.Price, false)
		if err != nil {
			return nil, err
		}
		return services.ExitCommand{Symbol: symbol, Price: price}, nil

	case models.OperationAdd:
		price, err := requireDecimal("price", r.Price, true)
		if err != nil {
			return nil, err
		}
		qty, err := requireDecimal("quantity", r.Quantity, true)
		if err != nil {
			return nil, err
		}
		return services.AddCommand{Symbol: symbol, Price: price, Quantity: qty}, nil

	case models.OperationTrim:
		price, err := requireDecimal("price", r.Price, false)
		if err != nil {
			return nil, err
		}
		qty, err := requireDecimal("quantity", r.Quantity, true)
		if err != nil {
			return nil, err
		}
		return services.TrimCommand{Symbol: symbol, Price: price, Quantity: qty}, nil
	}

	return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
		fmt.Sprintf("Unsupported selectedOption %q", r.SelectedOption))
}

// requireDecimal rejects a missing or negative value, and zero when positive is set.
func requireDecimal(field string, v *decimal.Decimal, positive bool) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidInput, field+" is required")
	}
	if positive && !v.IsPositive() {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidInput, field+" must be greater than 0")
	}
	if v.IsNegative() {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidInput, field+" must not be negative")
	}
	return *v, nil
}

// GetHome refreshes quotes and valuations, then returns every position.
// @Summary     Portfolio snapshot
// @Description Refresh prices and derived fields, then return the full position table
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} PositionsResponse "Positions"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /home [get]
func (h *PortfolioHandler) GetHome(c *gin.Context) {
	positions, err := h.portfolioService.Snapshot(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, PositionsResponse{Status: statusSuccess, Data: positions})
}

// GetPositions returns the stored position table without refreshing it.
// @Summary     List positions
// @Description Return the stored position table as last valued
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} PositionsResponse "Positions"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /positions [get]
func (h *PortfolioHandler) GetPositions(c *gin.Context) {
	positions, err := h.portfolioService.ListPositions(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, PositionsResponse{Status: statusSuccess, Data: positions})
}

// PostPosition applies one lifecycle operation.
// @Summary     Apply lifecycle operation
// @Description Entry, Exit, Add or Trim a position. An oversized Trim is reported as skipped, not as an error.
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Param       request body PositionRequest true "Lifecycle operation"
// @Success     200 {object} LifecycleResponse "Operation applied or skipped"
// @Failure     400 {object} ErrorResponse "Invalid input, duplicate or unknown symbol"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /positions [post]
func (h *PortfolioHandler) PostPosition(c *gin.Context) {
	var req PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cmd, err := req.toCommand()
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.lifecycleService.Apply(c.Request.Context(), cmd)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, LifecycleResponse{
		Status:  statusSuccess,
		Message: result.Message,
		Skipped: result.Skipped,
	})
}
