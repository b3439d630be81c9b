package handlers

import (
	"net/http"
	"strconv"

	"qr_dine_backend/internal/middleware"
	"qr_dine_backend/internal/models"
	"qr_dine_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// RestaurantHandler serves both the public restaurant surface and the owner
// profile routes.
type RestaurantHandler struct {
	restaurantService services.RestaurantService
	menuService       services.MenuService
}

// NewRestaurantHandler creates a new RestaurantHandler.
func NewRestaurantHandler(rs services.RestaurantService, ms services.MenuService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: rs, menuService: ms}
}

// Search is the public restaurant lookup behind the QR landing page.
func (h *RestaurantHandler) Search(c *gin.Context) {
	var filters models.RestaurantFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		bindError(c, err)
		return
	}
	restaurants, total, err := h.restaurantService.Search(filters)
	if err != nil {
		handleServiceError(c, err, "Search restaurants")
		return
	}
	views := make([]models.RestaurantResponse, 0, len(restaurants))
	for i := range restaurants {
		views = append(views, restaurants[i].PublicView())
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": views, "total": total})
}

// GetByID is the public restaurant detail fetch.
func (h *RestaurantHandler) GetByID(c *gin.Context) {
	restaurant, err := h.restaurantService.GetByID(c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "GetRestaurantByID")
		return
	}
	c.JSON(http.StatusOK, restaurant.PublicView())
}

// GetMenu is the public QR menu fetch; hidden items are excluded.
func (h *RestaurantHandler) GetMenu(c *gin.Context) {
	var filters models.MenuFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		bindError(c, err)
		return
	}
	filters.IncludeHidden = false
	filters.Available = nil

	items, err := h.menuService.List(c.Param("id"), filters)
	if err != nil {
		handleServiceError(c, err, "GetMenu")
		return
	}
	views := make([]models.MenuItemResponse, 0, len(items))
	for i := range items {
		views = append(views, items[i].PublicView())
	}
	c.JSON(http.StatusOK, gin.H{"items": views})
}

// GetProfile returns the authenticated restaurant's own record.
func (h *RestaurantHandler) GetProfile(c *gin.Context) {
	restaurant, err := h.restaurantService.GetByID(middleware.RestaurantID(c))
	if err != nil {
		handleServiceError(c, err, "GetProfile")
		return
	}
	c.JSON(http.StatusOK, restaurant.PublicView())
}

// UpdateProfile patches the authenticated restaurant's profile.
func (h *RestaurantHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	restaurant, err := h.restaurantService.Update(middleware.RestaurantID(c), req)
	if err != nil {
		handleServiceError(c, err, "UpdateProfile")
		return
	}
	c.JSON(http.StatusOK, restaurant.PublicView())
}

// AdminList returns all restaurants, paged. Admin token only.
func (h *RestaurantHandler) AdminList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	restaurants, total, err := h.restaurantService.List(page, pageSize)
	if err != nil {
		handleServiceError(c, err, "AdminListRestaurants")
		return
	}
	views := make([]models.RestaurantResponse, 0, len(restaurants))
	for i := range restaurants {
		views = append(views, restaurants[i].PublicView())
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": views, "total": total})
}

// AdminCreate provisions a restaurant on behalf of its owner, optionally
// with a non-default feature flag map. Admin token only.
func (h *RestaurantHandler) AdminCreate(c *gin.Context) {
	var req services.RegisterRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.restaurantService.Register(req)
	if err != nil {
		handleServiceError(c, err, "AdminCreateRestaurant")
		return
	}
	// The owner logs in with their own credentials; the admin does not get
	// the owner token.
	c.JSON(http.StatusCreated, resp.Restaurant)
}

// AdminUpdateFeatures replaces the feature flag map of any restaurant.
// Admin token only.
func (h *RestaurantHandler) AdminUpdateFeatures(c *gin.Context) {
	var features models.FeatureFlags
	if err := c.ShouldBindJSON(&features); err != nil {
		bindError(c, err)
		return
	}
	restaurant, err := h.restaurantService.UpdateFeatures(c.Param("id"), features)
	if err != nil {
		handleServiceError(c, err, "AdminUpdateFeatures")
		return
	}
	c.JSON(http.StatusOK, restaurant.PublicView())
}

// UpdateFeatures replaces the authenticated restaurant's feature flag map.
func (h *RestaurantHandler) UpdateFeatures(c *gin.Context) {
	var features models.FeatureFlags
	if err := c.ShouldBindJSON(&features); err != nil {
		bindError(c, err)
		return
	}
	restaurant, err := h.restaurantService.UpdateFeatures(middleware.RestaurantID(c), features)
	if err != nil {
		handleServiceError(c, err, "UpdateFeatures")
		return
	}
	c.JSON(http.StatusOK, restaurant.PublicView())
}
