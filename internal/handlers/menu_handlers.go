package handlers

import (
	"net/http"

	"qr_dine_backend/internal/middleware"
	"qr_dine_backend/internal/models"
	"qr_dine_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// MenuHandler serves the dashboard menu management routes.
type MenuHandler struct {
	menuService services.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(ms services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: ms}
}

// Create adds a menu item.
func (h *MenuHandler) Create(c *gin.Context) {
	var req services.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	item, err := h.menuService.Create(middleware.RestaurantID(c), req)
	if err != nil {
		handleServiceError(c, err, "CreateMenuItem")
		return
	}
	c.JSON(http.StatusCreated, item.PublicView())
}

// List returns all menu items including hidden ones for the dashboard.
func (h *MenuHandler) List(c *gin.Context) {
	var filters models.MenuFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		bindError(c, err)
		return
	}
	filters.IncludeHidden = true

	items, err := h.menuService.List(middleware.RestaurantID(c), filters)
	if err != nil {
		handleServiceError(c, err, "ListMenuItems")
		return
	}
	views := make([]models.MenuItemResponse, 0, len(items))
	for i := range items {
		views = append(views, items[i].PublicView())
	}
	c.JSON(http.StatusOK, gin.H{"items": views})
}

// GetByID returns one menu item.
func (h *MenuHandler) GetByID(c *gin.Context) {
	item, err := h.menuService.GetByID(c.Param("id"), middleware.RestaurantID(c))
	if err != nil {
		handleServiceError(c, err, "GetMenuItemByID")
		return
	}
	c.JSON(http.StatusOK, item.PublicView())
}

// Update replaces a menu item's editable fields.
func (h *MenuHandler) Update(c *gin.Context) {
	var req services.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	item, err := h.menuService.Update(c.Param("id"), middleware.RestaurantID(c), req)
	if err != nil {
		handleServiceError(c, err, "UpdateMenuItem")
		return
	}
	c.JSON(http.StatusOK, item.PublicView())
}

// Delete removes a menu item, or hides it when order history references it.
// The response's "deleted" field says which happened.
func (h *MenuHandler) Delete(c *gin.Context) {
	result, err := h.menuService.Delete(c.Param("id"), middleware.RestaurantID(c))
	if err != nil {
		handleServiceError(c, err, "DeleteMenuItem")
		return
	}
	c.JSON(http.StatusOK, result)
}

// ReorderRequest carries the new display order as a full ID list.
type ReorderRequest struct {
	ItemIDs []string `json:"item_ids" binding:"required"`
}

// Reorder rewrites display_order for the restaurant's menu.
func (h *MenuHandler) Reorder(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.menuService.Reorder(middleware.RestaurantID(c), req.ItemIDs); err != nil {
		handleServiceError(c, err, "ReorderMenuItems")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu order updated"})
}
