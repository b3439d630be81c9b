package handlers

import (
	"net/http"

	"qr_dine_backend/internal/middleware"
	"qr_dine_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// PrinterHandler serves kitchen printer and bill formatting settings.
type PrinterHandler struct {
	printerService services.PrinterService
}

// NewPrinterHandler creates a new PrinterHandler.
func NewPrinterHandler(ps services.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: ps}
}

// Get returns the restaurant's printer settings, falling back to defaults.
func (h *PrinterHandler) Get(c *gin.Context) {
	settings, err := h.printerService.Get(middleware.RestaurantID(c))
	if err != nil {
		handleServiceError(c, err, "GetPrinterSettings")
		return
	}
	c.JSON(http.StatusOK, settings.PublicView())
}

// Update upserts the restaurant's printer settings.
func (h *PrinterHandler) Update(c *gin.Context) {
	var req services.UpdatePrinterSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	settings, err := h.printerService.Update(middleware.RestaurantID(c), req)
	if err != nil {
		handleServiceError(c, err, "UpdatePrinterSettings")
		return
	}
	c.JSON(http.StatusOK, settings.PublicView())
}
