package services

import (
	"errors"
	"fmt"

	"qr_dine_backend/internal/models"
)

var ErrUnknownPlatform = errors.New("unknown third-party platform")

// Default commission rates per platform, used when the webhook payload does
// not carry one. Percent of the order total.
var platformCommissionRates = map[string]float64{
	models.OrderSourceSwiggy: 22.0,
	models.OrderSourceZomato: 24.0,
}

// --- DTOs ---

// WebhookItem is one line of a third-party payload, already in the common
// shape both platforms reduce to.
type WebhookItem struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Quantity int     `json:"quantity" binding:"required,gt=0"`
}

// SwiggyWebhookPayload mirrors the fields consumed from Swiggy's order push.
type SwiggyWebhookPayload struct {
	RestaurantID   string        `json:"restaurant_id" binding:"required"`
	SwiggyOrderID  string        `json:"order_id" binding:"required"`
	CustomerName   string        `json:"customer_name"`
	CustomerPhone  string        `json:"customer_phone"`
	DropAddress    string        `json:"drop_address"`
	Items          []WebhookItem `json:"items" binding:"required,dive"`
	CommissionRate *float64      `json:"commission_rate"`
	PlatformFee    float64       `json:"platform_fee"`
	Instructions   string        `json:"instructions"`
}

// ZomatoWebhookPayload mirrors the fields consumed from Zomato's order push.
type ZomatoWebhookPayload struct {
	ResID          string        `json:"res_id" binding:"required"`
	ZomatoOrderID  string        `json:"zomato_order_id" binding:"required"`
	Customer       string        `json:"customer"`
	Phone          string        `json:"phone"`
	Address        string        `json:"address"`
	Dishes         []WebhookItem `json:"dishes" binding:"required,dive"`
	CommissionRate *float64      `json:"commission_rate"`
	PlatformFee    float64       `json:"platform_fee"`
	Note           string        `json:"note"`
}

// --- ThirdPartyService Interface ---
type ThirdPartyService interface {
	IngestSwiggy(payload SwiggyWebhookPayload) (*models.Order, error)
	IngestZomato(payload ZomatoWebhookPayload) (*models.Order, error)
	// CreateManual enters a third-party order by hand from the dashboard.
	CreateManual(restaurantID, platform string, req CreateOrderRequest) (*models.Order, error)
}

type thirdPartyService struct {
	orderService OrderService
}

// NewThirdPartyService creates a new instance of ThirdPartyService.
func NewThirdPartyService(os OrderService) ThirdPartyService {
	return &thirdPartyService{orderService: os}
}

// toOrderRequest reduces a platform payload to the internal create request.
// No signature verification is performed on webhooks.
func toOrderRequest(platform, externalID, customer, phone, address, notes string,
	items []WebhookItem, commissionRate *float64, platformFee float64) CreateOrderRequest {

	rate := platformCommissionRates[platform]
	if commissionRate != nil {
		rate = *commissionRate
	}
	lines := make([]CreateOrderItemRequest, 0, len(items))
	for _, it := range items {
		lines = append(lines, CreateOrderItemRequest{
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}
	return CreateOrderRequest{
		OrderType:       models.OrderTypeDelivery,
		Source:          platform,
		CustomerName:    customer,
		CustomerPhone:   phone,
		DeliveryAddress: address,
		Notes:           notes,
		Items:           lines,
		CommissionRate:  rate,
		PlatformFee:     platformFee,
		ExternalOrderID: externalID,
	}
}

func (s *thirdPartyService) IngestSwiggy(payload SwiggyWebhookPayload) (*models.Order, error) {
	req := toOrderRequest(models.OrderSourceSwiggy, payload.SwiggyOrderID,
		payload.CustomerName, payload.CustomerPhone, payload.DropAddress,
		payload.Instructions, payload.Items, payload.CommissionRate, payload.PlatformFee)
	return s.orderService.CreateOrder(payload.RestaurantID, req)
}

func (s *thirdPartyService) IngestZomato(payload ZomatoWebhookPayload) (*models.Order, error) {
	req := toOrderRequest(models.OrderSourceZomato, payload.ZomatoOrderID,
		payload.Customer, payload.Phone, payload.Address,
		payload.Note, payload.Dishes, payload.CommissionRate, payload.PlatformFee)
	return s.orderService.CreateOrder(payload.ResID, req)
}

func (s *thirdPartyService) CreateManual(restaurantID, platform string, req CreateOrderRequest) (*models.Order, error) {
	if platform != models.OrderSourceSwiggy && platform != models.OrderSourceZomato {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlatform, platform)
	}
	req.Source = platform
	if req.CommissionRate == 0 {
		req.CommissionRate = platformCommissionRates[platform]
	}
	return s.orderService.CreateOrder(restaurantID, req)
}
