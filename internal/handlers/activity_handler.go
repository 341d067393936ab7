package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/pagination"
	"stockfolio/internal/services"
)

// ActivityHandler serves the trade log.
type ActivityHandler struct {
	activityService services.ActivityServicer
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService services.ActivityServicer) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// GetActivity handles listing the trade log.
// @Summary     List activity
// @Description Get a paginated list of trades, newest first
// @Tags        activity
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Activity] "Paginated activity"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /activity [get]
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.activityService.GetActivity(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
