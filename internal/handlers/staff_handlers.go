package handlers

import (
	"net/http"

	"qr_dine_backend/internal/middleware"
	"qr_dine_backend/internal/models"
	"qr_dine_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// StaffHandler serves staff account management for a restaurant.
type StaffHandler struct {
	staffService services.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(ss services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: ss}
}

// Create provisions a staff account with role-template permissions.
func (h *StaffHandler) Create(c *gin.Context) {
	var req services.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	staff, err := h.staffService.Create(middleware.RestaurantID(c), req)
	if err != nil {
		handleServiceError(c, err, "CreateStaff")
		return
	}
	c.JSON(http.StatusCreated, staff.PublicView())
}

// List returns all staff of the restaurant.
func (h *StaffHandler) List(c *gin.Context) {
	members, err := h.staffService.List(middleware.RestaurantID(c))
	if err != nil {
		handleServiceError(c, err, "ListStaff")
		return
	}
	views := make([]models.StaffResponse, 0, len(members))
	for i := range members {
		views = append(views, members[i].PublicView())
	}
	c.JSON(http.StatusOK, gin.H{"staff": views})
}

// GetByID returns one staff member.
func (h *StaffHandler) GetByID(c *gin.Context) {
	staff, err := h.staffService.GetByID(c.Param("id"), middleware.RestaurantID(c))
	if err != nil {
		handleServiceError(c, err, "GetStaffByID")
		return
	}
	c.JSON(http.StatusOK, staff.PublicView())
}

// Update patches a staff account; a role change re-snapshots permissions.
func (h *StaffHandler) Update(c *gin.Context) {
	var req services.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	staff, err := h.staffService.Update(c.Param("id"), middleware.RestaurantID(c), req)
	if err != nil {
		handleServiceError(c, err, "UpdateStaff")
		return
	}
	c.JSON(http.StatusOK, staff.PublicView())
}

// Delete removes a staff account and cascades its sessions.
func (h *StaffHandler) Delete(c *gin.Context) {
	if err := h.staffService.Delete(c.Param("id"), middleware.RestaurantID(c)); err != nil {
		handleServiceError(c, err, "DeleteStaff")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted"})
}
