package handlers

import (
	"net/http"

	"qr_dine_backend/internal/middleware"
	"qr_dine_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ThirdPartyHandler ingests delivery-platform webhooks and manual entries.
type ThirdPartyHandler struct {
	thirdPartyService services.ThirdPartyService
}

// NewThirdPartyHandler creates a new ThirdPartyHandler.
func NewThirdPartyHandler(ts services.ThirdPartyService) *ThirdPartyHandler {
	return &ThirdPartyHandler{thirdPartyService: ts}
}

// SwiggyWebhook accepts an order pushed by the swiggy platform.
func (h *ThirdPartyHandler) SwiggyWebhook(c *gin.Context) {
	var payload services.SwiggyWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	order, err := h.thirdPartyService.IngestSwiggy(payload)
	if err != nil {
		handleServiceError(c, err, "SwiggyWebhook")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order_id": order.ID, "status": order.Status})
}

// ZomatoWebhook accepts an order pushed by the zomato platform.
func (h *ThirdPartyHandler) ZomatoWebhook(c *gin.Context) {
	var payload services.ZomatoWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	order, err := h.thirdPartyService.IngestZomato(payload)
	if err != nil {
		handleServiceError(c, err, "ZomatoWebhook")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order_id": order.ID, "status": order.Status})
}

// CreateManual records a platform order entered by staff, computing the
// same commission figures as the webhook path.
func (h *ThirdPartyHandler) CreateManual(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	order, err := h.thirdPartyService.CreateManual(middleware.RestaurantID(c), c.Param("platform"), req)
	if err != nil {
		handleServiceError(c, err, "CreateManualThirdParty")
		return
	}
	c.JSON(http.StatusCreated, order.PublicView())
}
