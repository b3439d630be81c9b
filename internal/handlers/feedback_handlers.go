package handlers

import (
	"net/http"

	"qr_dine_backend/internal/middleware"
	"qr_dine_backend/internal/models"
	"qr_dine_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler serves customer feedback submission and staff responses.
type FeedbackHandler struct {
	feedbackService services.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(fs services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: fs}
}

// Submit records customer feedback. Public endpoint, scoped by the
// restaurant id in the path.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req services.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	feedback, err := h.feedbackService.Submit(c.Param("id"), req)
	if err != nil {
		handleServiceError(c, err, "SubmitFeedback")
		return
	}
	c.JSON(http.StatusCreated, feedback.PublicView())
}

// List returns feedback for the restaurant with optional rating filter.
func (h *FeedbackHandler) List(c *gin.Context) {
	var filters models.FeedbackFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		bindError(c, err)
		return
	}
	items, total, err := h.feedbackService.List(middleware.RestaurantID(c), filters)
	if err != nil {
		handleServiceError(c, err, "ListFeedback")
		return
	}
	views := make([]models.FeedbackResponse, 0, len(items))
	for i := range items {
		views = append(views, items[i].PublicView())
	}
	c.JSON(http.StatusOK, gin.H{"feedback": views, "total": total})
}

// Respond attaches a staff reply to a feedback entry.
func (h *FeedbackHandler) Respond(c *gin.Context) {
	var req services.RespondFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	feedback, err := h.feedbackService.Respond(c.Param("id"), middleware.RestaurantID(c), req)
	if err != nil {
		handleServiceError(c, err, "RespondFeedback")
		return
	}
	c.JSON(http.StatusOK, feedback.PublicView())
}

// Stats returns aggregate rating figures for the restaurant.
func (h *FeedbackHandler) Stats(c *gin.Context) {
	stats, err := h.feedbackService.Stats(middleware.RestaurantID(c))
	if err != nil {
		handleServiceError(c, err, "FeedbackStats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
