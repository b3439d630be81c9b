package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"qr_dine_backend/internal/handlers"
	"qr_dine_backend/internal/models"
	"qr_dine_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOrderService captures CreateOrder calls; the embedded interface panics
// on anything else, which no test here should reach.
type stubOrderService struct {
	services.OrderService
	restaurantID string
	req          services.CreateOrderRequest
	err          error
}

func (s *stubOrderService) CreateOrder(restaurantID string, req services.CreateOrderRequest) (*models.Order, error) {
	s.restaurantID = restaurantID
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.Order{
		ID:           "o-1",
		RestaurantID: restaurantID,
		OrderType:    req.OrderType,
		Status:       models.OrderStatusPending,
		Source:       req.Source,
	}, nil
}

func setupPlaceOrderRouter(stub *stubOrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handler := handlers.NewOrderHandler(stub)
	engine.POST("/api/v1/restaurants/:id/orders", handler.PlaceOrder)
	return engine
}

func postJSON(engine *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func TestPlaceOrderScopesRestaurantFromPath(t *testing.T) {
	stub := &stubOrderService{}
	engine := setupPlaceOrderRouter(stub)

	recorder := postJSON(engine, "/api/v1/restaurants/r-42/orders", gin.H{
		"order_type":  "dine-in",
		"is_qr_order": true,
		"items": []gin.H{
			{"menu_item_id": "m-1", "quantity": 2},
		},
	})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "r-42", stub.restaurantID)
}

// A public customer must not be able to smuggle platform financials or a
// source into their order.
func TestPlaceOrderIgnoresClientFinancialFields(t *testing.T) {
	stub := &stubOrderService{}
	engine := setupPlaceOrderRouter(stub)

	recorder := postJSON(engine, "/api/v1/restaurants/r-1/orders", gin.H{
		"order_type":        "dine-in",
		"source":            "swiggy",
		"commission_rate":   50,
		"platform_fee":      99,
		"external_order_id": "FAKE-1",
		"items": []gin.H{
			{"menu_item_id": "m-1", "quantity": 1},
		},
	})

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, models.OrderSourceDirect, stub.req.Source)
	assert.Zero(t, stub.req.CommissionRate)
	assert.Zero(t, stub.req.PlatformFee)
	assert.Empty(t, stub.req.ExternalOrderID)
}

func TestPlaceOrderRejectsMalformedBody(t *testing.T) {
	stub := &stubOrderService{}
	engine := setupPlaceOrderRouter(stub)

	recorder := postJSON(engine, "/api/v1/restaurants/r-1/orders", gin.H{
		"order_type": "dine-in",
		// items missing entirely
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestPlaceOrderMapsEmptyOrderTo400(t *testing.T) {
	stub := &stubOrderService{err: services.ErrEmptyOrder}
	engine := setupPlaceOrderRouter(stub)

	recorder := postJSON(engine, "/api/v1/restaurants/r-1/orders", gin.H{
		"order_type": "dine-in",
		"items": []gin.H{
			{"menu_item_id": "m-1", "quantity": 1},
		},
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestPlaceOrderMapsDiscountRejectionTo422(t *testing.T) {
	stub := &stubOrderService{err: services.ErrDiscountExpired}
	engine := setupPlaceOrderRouter(stub)

	recorder := postJSON(engine, "/api/v1/restaurants/r-1/orders", gin.H{
		"order_type":    "dine-in",
		"discount_code": "OLD10",
		"items": []gin.H{
			{"menu_item_id": "m-1", "quantity": 1},
		},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}
