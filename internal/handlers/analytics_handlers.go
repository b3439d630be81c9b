package handlers

import (
	"net/http"

	"qr_dine_backend/internal/middleware"
	"qr_dine_backend/internal/models"
	"qr_dine_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler serves the dashboard analytics summary.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(as services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: as}
}

// Summary returns revenue, order counts, top items and breakdowns for a
// date range. Defaults to the last 30 days when no range is given.
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	var rng models.AnalyticsRange
	if err := c.ShouldBindQuery(&rng); err != nil {
		bindError(c, err)
		return
	}
	summary, err := h.analyticsService.Summary(middleware.RestaurantID(c), rng)
	if err != nil {
		handleServiceError(c, err, "AnalyticsSummary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
