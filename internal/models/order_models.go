package models

import (
	"database/sql"
	"time"
)

// Order statuses. Any status may follow any other; the server only checks
// membership, transition choices are left to the dashboard per role.
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusRejected  = "rejected"
)

// Order types.
const (
	OrderTypeDineIn   = "dine-in"
	OrderTypeDelivery = "delivery"
	OrderTypeTakeaway = "takeaway"
)

// Order sources.
const (
	OrderSourceDirect = "direct"
	OrderSourceStaff  = "staff"
	OrderSourceSwiggy = "swiggy"
	OrderSourceZomato = "zomato"
)

func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady,
		OrderStatusCompleted, OrderStatusRejected:
		return true
	}
	return false
}

func IsValidOrderType(t string) bool {
	switch t {
	case OrderTypeDineIn, OrderTypeDelivery, OrderTypeTakeaway:
		return true
	}
	return false
}

type Order struct {
	ID              string          `json:"id"`
	RestaurantID    string          `json:"restaurant_id"`
	OrderType       string          `json:"order_type"`
	Status          string          `json:"status"`
	Source          string          `json:"source"`
	CustomerName    sql.NullString  `json:"-"`
	CustomerPhone   sql.NullString  `json:"-"`
	DeliveryAddress sql.NullString  `json:"-"`
	TableNumber     sql.NullString  `json:"-"`
	Notes           sql.NullString  `json:"-"`
	IsQROrder       bool            `json:"is_qr_order"`
	TotalAmount     float64         `json:"total_amount"`
	DiscountAmount  float64         `json:"discount_amount"`
	FinalAmount     float64         `json:"final_amount"`
	CommissionRate  float64         `json:"commission_rate"`
	Commission      float64         `json:"commission"`
	PlatformFee     float64         `json:"platform_fee"`
	NetAmount       float64         `json:"net_amount"`
	ExternalOrderID sql.NullString  `json:"-"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem is a snapshot of the menu item at order time; later menu edits
// never change historical orders.
type OrderItem struct {
	ID               string         `json:"id"`
	OrderID          string         `json:"order_id"`
	MenuItemID       sql.NullString `json:"-"`
	Name             string         `json:"name"`
	Price            float64        `json:"price"`
	Quantity         int            `json:"quantity"`
	Notes            sql.NullString `json:"-"`
	PrintedToKitchen bool           `json:"printed_to_kitchen"`
}

// OrderFilters narrows order listing on the dashboard.
type OrderFilters struct {
	Status    *string `form:"status"`
	OrderType *string `form:"order_type"`
	Source    *string `form:"source"`
	Date      *string `form:"date"` // YYYY-MM-DD
	Page      int     `form:"page"`
	PageSize  int     `form:"page_size"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	RestaurantID    string              `json:"restaurant_id"`
	OrderType       string              `json:"order_type"`
	Status          string              `json:"status"`
	Source          string              `json:"source"`
	CustomerName    *string             `json:"customer_name,omitempty"`
	CustomerPhone   *string             `json:"customer_phone,omitempty"`
	DeliveryAddress *string             `json:"delivery_address,omitempty"`
	TableNumber     *string             `json:"table_number,omitempty"`
	Notes           *string             `json:"notes,omitempty"`
	IsQROrder       bool                `json:"is_qr_order"`
	TotalAmount     float64             `json:"total_amount"`
	DiscountAmount  float64             `json:"discount_amount"`
	FinalAmount     float64             `json:"final_amount"`
	Commission      float64             `json:"commission,omitempty"`
	PlatformFee     float64             `json:"platform_fee,omitempty"`
	NetAmount       float64             `json:"net_amount"`
	ExternalOrderID *string             `json:"external_order_id,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type OrderItemResponse struct {
	ID               string  `json:"id"`
	MenuItemID       *string `json:"menu_item_id,omitempty"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	Quantity         int     `json:"quantity"`
	Notes            *string `json:"notes,omitempty"`
	PrintedToKitchen bool    `json:"printed_to_kitchen"`
}

func (o *Order) PublicView() OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		it := &o.Items[i]
		items = append(items, OrderItemResponse{
			ID:               it.ID,
			MenuItemID:       StrOrNil(it.MenuItemID),
			Name:             it.Name,
			Price:            it.Price,
			Quantity:         it.Quantity,
			Notes:            StrOrNil(it.Notes),
			PrintedToKitchen: it.PrintedToKitchen,
		})
	}
	return OrderResponse{
		ID:              o.ID,
		RestaurantID:    o.RestaurantID,
		OrderType:       o.OrderType,
		Status:          o.Status,
		Source:          o.Source,
		CustomerName:    StrOrNil(o.CustomerName),
		CustomerPhone:   StrOrNil(o.CustomerPhone),
		DeliveryAddress: StrOrNil(o.DeliveryAddress),
		TableNumber:     StrOrNil(o.TableNumber),
		Notes:           StrOrNil(o.Notes),
		IsQROrder:       o.IsQROrder,
		TotalAmount:     o.TotalAmount,
		DiscountAmount:  o.DiscountAmount,
		FinalAmount:     o.FinalAmount,
		Commission:      o.Commission,
		PlatformFee:     o.PlatformFee,
		NetAmount:       o.NetAmount,
		ExternalOrderID: StrOrNil(o.ExternalOrderID),
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
