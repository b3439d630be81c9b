package services

import (
	"testing"

	"qr_dine_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOrderService records the create request instead of touching a
// database.
type captureOrderService struct {
	OrderService
	restaurantID string
	req          CreateOrderRequest
}

func (c *captureOrderService) CreateOrder(restaurantID string, req CreateOrderRequest) (*models.Order, error) {
	c.restaurantID = restaurantID
	c.req = req
	return &models.Order{ID: "o-1", RestaurantID: restaurantID, Status: models.OrderStatusPending}, nil
}

func TestIngestSwiggyTranslatesPayload(t *testing.T) {
	capture := &captureOrderService{}
	svc := NewThirdPartyService(capture)

	_, err := svc.IngestSwiggy(SwiggyWebhookPayload{
		RestaurantID:  "r-1",
		SwiggyOrderID: "SWG-123",
		CustomerName:  "Asha",
		CustomerPhone: "9999999999",
		DropAddress:   "12 MG Road",
		Instructions:  "extra spicy",
		PlatformFee:   10,
		Items: []WebhookItem{
			{Name: "Dosa", Price: 120, Quantity: 2},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "r-1", capture.restaurantID)
	assert.Equal(t, models.OrderTypeDelivery, capture.req.OrderType)
	assert.Equal(t, models.OrderSourceSwiggy, capture.req.Source)
	assert.Equal(t, "SWG-123", capture.req.ExternalOrderID)
	assert.Equal(t, "Asha", capture.req.CustomerName)
	assert.Equal(t, "12 MG Road", capture.req.DeliveryAddress)
	assert.Equal(t, "extra spicy", capture.req.Notes)
	assert.Equal(t, 22.0, capture.req.CommissionRate)
	assert.Equal(t, 10.0, capture.req.PlatformFee)
	require.Len(t, capture.req.Items, 1)
	assert.Equal(t, "Dosa", capture.req.Items[0].Name)
	assert.Equal(t, 2, capture.req.Items[0].Quantity)
}

func TestIngestZomatoUsesDefaultCommissionRate(t *testing.T) {
	capture := &captureOrderService{}
	svc := NewThirdPartyService(capture)

	_, err := svc.IngestZomato(ZomatoWebhookPayload{
		ResID:         "r-2",
		ZomatoOrderID: "ZMT-9",
		Dishes: []WebhookItem{
			{Name: "Pulao", Price: 180, Quantity: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "r-2", capture.restaurantID)
	assert.Equal(t, models.OrderSourceZomato, capture.req.Source)
	assert.Equal(t, 24.0, capture.req.CommissionRate)
}

func TestIngestPayloadCommissionRateOverridesDefault(t *testing.T) {
	capture := &captureOrderService{}
	svc := NewThirdPartyService(capture)

	rate := 18.0
	_, err := svc.IngestSwiggy(SwiggyWebhookPayload{
		RestaurantID:   "r-1",
		SwiggyOrderID:  "SWG-2",
		CommissionRate: &rate,
		Items: []WebhookItem{
			{Name: "Idli", Price: 60, Quantity: 4},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 18.0, capture.req.CommissionRate)
}

func TestCreateManualRejectsUnknownPlatform(t *testing.T) {
	svc := NewThirdPartyService(&captureOrderService{})

	_, err := svc.CreateManual("r-1", "ubereats", CreateOrderRequest{})

	assert.ErrorIs(t, err, ErrUnknownPlatform)
}

func TestCreateManualFillsPlatformDefaults(t *testing.T) {
	capture := &captureOrderService{}
	svc := NewThirdPartyService(capture)

	_, err := svc.CreateManual("r-1", models.OrderSourceZomato, CreateOrderRequest{
		OrderType: models.OrderTypeDelivery,
		Items: []CreateOrderItemRequest{
			{Name: "Thali", Price: 250, Quantity: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, models.OrderSourceZomato, capture.req.Source)
	assert.Equal(t, 24.0, capture.req.CommissionRate)
}
