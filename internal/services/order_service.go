package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"qr_dine_backend/internal/models"
	"qr_dine_backend/internal/realtime"
	"qr_dine_backend/internal/repositories"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrMenuItemNotFound   = errors.New("menu item not found or not available")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
)

// --- DTOs ---

// CreateOrderItemRequest is one line of a new order. Either MenuItemID is set
// and name/price are snapshotted from the menu, or Name and Price are given
// directly (third-party and manual entries).
type CreateOrderItemRequest struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity" binding:"required,gt=0"`
	Notes      string  `json:"notes"`
}

// CreateOrderRequest creates a new order with its items.
type CreateOrderRequest struct {
	OrderType       string                   `json:"order_type" binding:"required"`
	Source          string                   `json:"source"`
	CustomerName    string                   `json:"customer_name"`
	CustomerPhone   string                   `json:"customer_phone"`
	DeliveryAddress string                   `json:"delivery_address"`
	TableNumber     string                   `json:"table_number"`
	Notes           string                   `json:"notes"`
	IsQROrder       bool                     `json:"is_qr_order"`
	Items           []CreateOrderItemRequest `json:"items" binding:"required,dive"`
	DiscountCode    string                   `json:"discount_code"`
	CommissionRate  float64                  `json:"commission_rate"`
	PlatformFee     float64                  `json:"platform_fee"`
	ExternalOrderID string                   `json:"external_order_id"`
}

// UpdateOrderRequest patches scalar fields and optionally replaces the item set.
type UpdateOrderRequest struct {
	OrderType       *string                  `json:"order_type"`
	CustomerName    *string                  `json:"customer_name"`
	CustomerPhone   *string                  `json:"customer_phone"`
	DeliveryAddress *string                  `json:"delivery_address"`
	TableNumber     *string                  `json:"table_number"`
	Notes           *string                  `json:"notes"`
	Items           []CreateOrderItemRequest `json:"items"`
}

// UpdateOrderStatusRequest is used for updating the status of an order.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- OrderService Interface ---
type OrderService interface {
	CreateOrder(restaurantID string, req CreateOrderRequest) (*models.Order, error)
	GetOrders(restaurantID string, filters models.OrderFilters) ([]models.Order, int, error)
	GetOrderByID(orderID, restaurantID string) (*models.Order, error)
	UpdateOrderStatus(orderID, restaurantID string, req UpdateOrderStatusRequest) (*models.Order, error)
	UpdateOrder(orderID, restaurantID string, req UpdateOrderRequest) (*models.Order, error)
	DeleteOrder(orderID, restaurantID string) error
	DeleteOrders(restaurantID string, orderIDs []string) (int64, error)
	PrintKOT(orderID, restaurantID string) (*models.Order, int64, error)
}

type orderService struct {
	orderRepo    repositories.OrderRepository
	menuRepo     repositories.MenuRepository
	discountRepo repositories.DiscountRepository
	db           *sql.DB
	notifier     Notifier
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	or repositories.OrderRepository,
	mr repositories.MenuRepository,
	dr repositories.DiscountRepository,
	db *sql.DB,
	notifier Notifier,
) OrderService {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	return &orderService{
		orderRepo:    or,
		menuRepo:     mr,
		discountRepo: dr,
		db:           db,
		notifier:     notifier,
	}
}

// resolveItems turns line requests into snapshot rows and returns the order total.
func (s *orderService) resolveItems(reqs []CreateOrderItemRequest) ([]models.OrderItem, float64, error) {
	var total float64
	items := make([]models.OrderItem, 0, len(reqs))
	for _, itemReq := range reqs {
		if itemReq.Quantity <= 0 {
			return nil, 0, fmt.Errorf("%w: item quantity must be positive", ErrValidation)
		}
		item := models.OrderItem{
			Quantity: itemReq.Quantity,
			Notes:    models.NewNullString(itemReq.Notes),
		}
		if itemReq.MenuItemID != "" {
			menuItem, err := s.menuRepo.GetByID(itemReq.MenuItemID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return nil, 0, fmt.Errorf("%w: %s", ErrMenuItemNotFound, itemReq.MenuItemID)
				}
				return nil, 0, err
			}
			if !menuItem.Available {
				return nil, 0, fmt.Errorf("%w: %s", ErrMenuItemNotFound, menuItem.Name)
			}
			item.MenuItemID = models.NewNullString(menuItem.ID)
			item.Name = menuItem.Name
			item.Price = menuItem.Price
		} else {
			if itemReq.Name == "" || itemReq.Price <= 0 {
				return nil, 0, fmt.Errorf("%w: item needs a menu_item_id or a name and positive price", ErrValidation)
			}
			item.Name = itemReq.Name
			item.Price = itemReq.Price
		}
		total += item.Price * float64(item.Quantity)
		items = append(items, item)
	}
	return items, total, nil
}

// CreateOrder inserts the order and all of its items in one transaction; no
// partial order is ever visible. When a discount code is given, validation,
// pricing, and usage recording happen in the same transaction under a row
// lock on the discount.
func (s *orderService) CreateOrder(restaurantID string, req CreateOrderRequest) (*models.Order, error) {
	if restaurantID == "" {
		return nil, fmt.Errorf("%w: restaurant id is required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if !models.IsValidOrderType(req.OrderType) {
		return nil, fmt.Errorf("%w: unknown order type %q", ErrValidation, req.OrderType)
	}
	source := req.Source
	if source == "" {
		source = models.OrderSourceDirect
	}

	items, totalAmount, err := s.resolveItems(req.Items)
	if err != nil {
		return nil, err
	}
	if totalAmount <= 0 {
		return nil, fmt.Errorf("%w: order total must be positive", ErrValidation)
	}

	commission := totalAmount * req.CommissionRate / 100

	order := &models.Order{
		RestaurantID:    restaurantID,
		OrderType:       req.OrderType,
		Status:          models.OrderStatusPending,
		Source:          source,
		CustomerName:    models.NewNullString(req.CustomerName),
		CustomerPhone:   models.NewNullString(req.CustomerPhone),
		DeliveryAddress: models.NewNullString(req.DeliveryAddress),
		TableNumber:     models.NewNullString(req.TableNumber),
		Notes:           models.NewNullString(req.Notes),
		IsQROrder:       req.IsQROrder,
		TotalAmount:     totalAmount,
		FinalAmount:     totalAmount,
		CommissionRate:  req.CommissionRate,
		Commission:      commission,
		PlatformFee:     req.PlatformFee,
		ExternalOrderID: models.NewNullString(req.ExternalOrderID),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	var appliedDiscount *models.Discount
	if req.DiscountCode != "" {
		d, err := s.discountRepo.LockByCode(tx, restaurantID, req.DiscountCode)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrDiscountNotFound
			}
			return nil, err
		}
		if err := ValidateDiscountForOrder(d, totalAmount, req.IsQROrder, time.Now()); err != nil {
			return nil, err
		}
		order.DiscountAmount, order.FinalAmount = PriceDiscount(d, totalAmount)
		appliedDiscount = d
	}
	order.NetAmount = order.FinalAmount - order.Commission - order.PlatformFee

	if _, err := s.orderRepo.CreateOrder(tx, order); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].OrderID = order.ID
		if _, err := s.orderRepo.CreateOrderItem(tx, &items[i]); err != nil {
			return nil, err
		}
	}
	if appliedDiscount != nil {
		usage := &models.DiscountUsage{
			DiscountID: appliedDiscount.ID,
			OrderID:    order.ID,
			Amount:     order.DiscountAmount,
		}
		if _, err := s.discountRepo.RecordUsage(tx, usage); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}

	order.Items = items
	s.notifier.Broadcast(restaurantID, realtime.EventNewOrder, order.PublicView())
	return order, nil
}

func (s *orderService) getOwnedOrder(orderID, restaurantID string) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.RestaurantID != restaurantID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) GetOrders(restaurantID string, filters models.OrderFilters) ([]models.Order, int, error) {
	orders, total, err := s.orderRepo.GetOrders(restaurantID, filters)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		items, err := s.orderRepo.GetOrderItemsByOrderID(orders[i].ID)
		if err != nil {
			return nil, 0, err
		}
		orders[i].Items = items
	}
	return orders, total, nil
}

func (s *orderService) GetOrderByID(orderID, restaurantID string) (*models.Order, error) {
	order, err := s.getOwnedOrder(orderID, restaurantID)
	if err != nil {
		return nil, err
	}
	items, err := s.orderRepo.GetOrderItemsByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

// UpdateOrderStatus is a single-field update. Any known status may follow any
// other; the dashboard offers only the transitions valid for the user's role.
func (s *orderService) UpdateOrderStatus(orderID, restaurantID string, req UpdateOrderStatusRequest) (*models.Order, error) {
	if !models.IsValidOrderStatus(req.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderStatus, req.Status)
	}
	if _, err := s.getOwnedOrder(orderID, restaurantID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateOrderStatus(s.db, orderID, req.Status, time.Now()); err != nil {
		return nil, err
	}
	order, err := s.GetOrderByID(orderID, restaurantID)
	if err != nil {
		return nil, err
	}
	s.notifier.Broadcast(restaurantID, realtime.EventOrderUpdated, order.PublicView())
	return order, nil
}

// UpdateOrder patches scalar fields, and when Items is non-nil replaces the
// whole item set transactionally (delete then reinsert).
func (s *orderService) UpdateOrder(orderID, restaurantID string, req UpdateOrderRequest) (*models.Order, error) {
	order, err := s.getOwnedOrder(orderID, restaurantID)
	if err != nil {
		return nil, err
	}

	if req.OrderType != nil {
		if !models.IsValidOrderType(*req.OrderType) {
			return nil, fmt.Errorf("%w: unknown order type %q", ErrValidation, *req.OrderType)
		}
		order.OrderType = *req.OrderType
	}
	if req.CustomerName != nil {
		order.CustomerName = models.NewNullString(*req.CustomerName)
	}
	if req.CustomerPhone != nil {
		order.CustomerPhone = models.NewNullString(*req.CustomerPhone)
	}
	if req.DeliveryAddress != nil {
		order.DeliveryAddress = models.NewNullString(*req.DeliveryAddress)
	}
	if req.TableNumber != nil {
		order.TableNumber = models.NewNullString(*req.TableNumber)
	}
	if req.Notes != nil {
		order.Notes = models.NewNullString(*req.Notes)
	}

	var newItems []models.OrderItem
	if req.Items != nil {
		if len(req.Items) == 0 {
			return nil, ErrEmptyOrder
		}
		var totalAmount float64
		newItems, totalAmount, err = s.resolveItems(req.Items)
		if err != nil {
			return nil, err
		}
		order.TotalAmount = totalAmount
		// Discounted orders keep their original discount amount.
		order.FinalAmount = totalAmount - order.DiscountAmount
		if order.FinalAmount < 0 {
			order.FinalAmount = 0
		}
		order.Commission = totalAmount * order.CommissionRate / 100
		order.NetAmount = order.FinalAmount - order.Commission - order.PlatformFee
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.orderRepo.UpdateOrderDetails(tx, order); err != nil {
		return nil, err
	}
	if newItems != nil {
		if _, err := s.orderRepo.DeleteOrderItemsByOrderID(tx, orderID); err != nil {
			return nil, err
		}
		for i := range newItems {
			newItems[i].OrderID = orderID
			if _, err := s.orderRepo.CreateOrderItem(tx, &newItems[i]); err != nil {
				return nil, err
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order update: %w", err)
	}

	updated, err := s.GetOrderByID(orderID, restaurantID)
	if err != nil {
		return nil, err
	}
	s.notifier.Broadcast(restaurantID, realtime.EventOrderUpdated, updated.PublicView())
	return updated, nil
}

// DeleteOrder hard-deletes the order and its items. Cleanup path, not part of
// the customer flow.
func (s *orderService) DeleteOrder(orderID, restaurantID string) error {
	if _, err := s.getOwnedOrder(orderID, restaurantID); err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.orderRepo.DeleteOrderItemsByOrderID(tx, orderID); err != nil {
		return err
	}
	affected, err := s.orderRepo.DeleteOrder(tx, orderID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return tx.Commit()
}

func (s *orderService) DeleteOrders(restaurantID string, orderIDs []string) (int64, error) {
	if len(orderIDs) == 0 {
		return 0, fmt.Errorf("%w: no order ids given", ErrValidation)
	}
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	affected, err := s.orderRepo.DeleteOrders(tx, restaurantID, orderIDs)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return affected, nil
}

// PrintKOT marks all unprinted items as sent to the kitchen and returns the
// order for ticket rendering, plus how many items were newly printed.
func (s *orderService) PrintKOT(orderID, restaurantID string) (*models.Order, int64, error) {
	if _, err := s.getOwnedOrder(orderID, restaurantID); err != nil {
		return nil, 0, err
	}
	printed, err := s.orderRepo.MarkItemsPrinted(s.db, orderID)
	if err != nil {
		return nil, 0, err
	}
	order, err := s.GetOrderByID(orderID, restaurantID)
	if err != nil {
		return nil, 0, err
	}
	return order, printed, nil
}
