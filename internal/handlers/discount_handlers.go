package handlers

import (
	"net/http"

	"qr_dine_backend/internal/middleware"
	"qr_dine_backend/internal/models"
	"qr_dine_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// DiscountHandler serves discount management and public code application.
type DiscountHandler struct {
	discountService services.DiscountService
}

// NewDiscountHandler creates a new DiscountHandler.
func NewDiscountHandler(ds services.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: ds}
}

// Create registers a new discount code for the restaurant.
func (h *DiscountHandler) Create(c *gin.Context) {
	var req services.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	discount, err := h.discountService.Create(middleware.RestaurantID(c), req)
	if err != nil {
		handleServiceError(c, err, "CreateDiscount")
		return
	}
	c.JSON(http.StatusCreated, discount.PublicView())
}

// List returns all discounts of the restaurant.
func (h *DiscountHandler) List(c *gin.Context) {
	discounts, err := h.discountService.List(middleware.RestaurantID(c))
	if err != nil {
		handleServiceError(c, err, "ListDiscounts")
		return
	}
	views := make([]models.DiscountResponse, 0, len(discounts))
	for i := range discounts {
		views = append(views, discounts[i].PublicView())
	}
	c.JSON(http.StatusOK, gin.H{"discounts": views})
}

// GetByID returns one discount.
func (h *DiscountHandler) GetByID(c *gin.Context) {
	discount, err := h.discountService.GetByID(c.Param("id"), middleware.RestaurantID(c))
	if err != nil {
		handleServiceError(c, err, "GetDiscountByID")
		return
	}
	c.JSON(http.StatusOK, discount.PublicView())
}

// Update replaces a discount definition.
func (h *DiscountHandler) Update(c *gin.Context) {
	var req services.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	discount, err := h.discountService.Update(c.Param("id"), middleware.RestaurantID(c), req)
	if err != nil {
		handleServiceError(c, err, "UpdateDiscount")
		return
	}
	c.JSON(http.StatusOK, discount.PublicView())
}

// Delete removes a discount.
func (h *DiscountHandler) Delete(c *gin.Context) {
	if err := h.discountService.Delete(c.Param("id"), middleware.RestaurantID(c)); err != nil {
		handleServiceError(c, err, "DeleteDiscount")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Discount deleted"})
}

// Apply previews a discount against an order amount without consuming usage.
// Public endpoint, scoped by the restaurant id in the path.
func (h *DiscountHandler) Apply(c *gin.Context) {
	var req services.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	result, err := h.discountService.Apply(c.Param("id"), req)
	if err != nil {
		handleServiceError(c, err, "ApplyDiscount")
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListUsage returns the redemption history of a discount.
func (h *DiscountHandler) ListUsage(c *gin.Context) {
	usage, err := h.discountService.ListUsage(c.Param("id"), middleware.RestaurantID(c))
	if err != nil {
		handleServiceError(c, err, "ListDiscountUsage")
		return
	}
	c.JSON(http.StatusOK, gin.H{"usage": usage})
}
