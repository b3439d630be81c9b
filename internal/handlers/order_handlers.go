package handlers

import (
	"net/http"

	"qr_dine_backend/internal/middleware"
	"qr_dine_backend/internal/models"
	"qr_dine_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// OrderHandler serves order placement and the dashboard order workflow.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// PlaceOrder is the public, unauthenticated order placement used by QR
// customers. The restaurant comes from the path, not a token.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	// Public orders are always direct; source and financial fields are not
	// client-controlled on this route.
	req.Source = models.OrderSourceDirect
	req.CommissionRate = 0
	req.PlatformFee = 0
	req.ExternalOrderID = ""

	order, err := h.orderService.CreateOrder(c.Param("id"), req)
	if err != nil {
		handleServiceError(c, err, "PlaceOrder")
		return
	}
	c.JSON(http.StatusCreated, order.PublicView())
}

// Create is the staff-side order entry on the dashboard.
func (h *OrderHandler) Create(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.Source == "" {
		req.Source = models.OrderSourceStaff
	}
	order, err := h.orderService.CreateOrder(middleware.RestaurantID(c), req)
	if err != nil {
		handleServiceError(c, err, "CreateOrder")
		return
	}
	c.JSON(http.StatusCreated, order.PublicView())
}

// List returns the restaurant's orders with filters and pagination.
func (h *OrderHandler) List(c *gin.Context) {
	var filters models.OrderFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		bindError(c, err)
		return
	}
	if filters.PageSize <= 0 || filters.PageSize > 100 {
		filters.PageSize = 50
	}
	orders, total, err := h.orderService.GetOrders(middleware.RestaurantID(c), filters)
	if err != nil {
		handleServiceError(c, err, "ListOrders")
		return
	}
	views := make([]models.OrderResponse, 0, len(orders))
	for i := range orders {
		views = append(views, orders[i].PublicView())
	}
	c.JSON(http.StatusOK, gin.H{"orders": views, "total": total})
}

// GetByID returns one order with its items.
func (h *OrderHandler) GetByID(c *gin.Context) {
	order, err := h.orderService.GetOrderByID(c.Param("id"), middleware.RestaurantID(c))
	if err != nil {
		handleServiceError(c, err, "GetOrderByID")
		return
	}
	c.JSON(http.StatusOK, order.PublicView())
}

// UpdateStatus moves an order to a new status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	order, err := h.orderService.UpdateOrderStatus(c.Param("id"), middleware.RestaurantID(c), req)
	if err != nil {
		handleServiceError(c, err, "UpdateOrderStatus")
		return
	}
	c.JSON(http.StatusOK, order.PublicView())
}

// Update patches order fields and optionally replaces its items.
func (h *OrderHandler) Update(c *gin.Context) {
	var req services.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	order, err := h.orderService.UpdateOrder(c.Param("id"), middleware.RestaurantID(c), req)
	if err != nil {
		handleServiceError(c, err, "UpdateOrder")
		return
	}
	c.JSON(http.StatusOK, order.PublicView())
}

// Delete removes one order and its items.
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.orderService.DeleteOrder(c.Param("id"), middleware.RestaurantID(c)); err != nil {
		handleServiceError(c, err, "DeleteOrder")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

// BulkDeleteRequest carries the order IDs to remove.
type BulkDeleteRequest struct {
	OrderIDs []string `json:"order_ids" binding:"required"`
}

// DeleteMany removes a batch of orders in one transaction.
func (h *OrderHandler) DeleteMany(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	deleted, err := h.orderService.DeleteOrders(middleware.RestaurantID(c), req.OrderIDs)
	if err != nil {
		handleServiceError(c, err, "DeleteOrders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// PrintKOT marks unprinted items as sent to the kitchen and returns the
// ticket payload.
func (h *OrderHandler) PrintKOT(c *gin.Context) {
	order, printed, err := h.orderService.PrintKOT(c.Param("id"), middleware.RestaurantID(c))
	if err != nil {
		handleServiceError(c, err, "PrintKOT")
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order.PublicView(), "printed_items": printed})
}
