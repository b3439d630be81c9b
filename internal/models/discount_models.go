package models

import (
	"database/sql"
	"time"
)

// Discount types.
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

func IsValidDiscountType(t string) bool {
	return t == DiscountTypePercentage || t == DiscountTypeFixed
}

type Discount struct {
	ID                string          `json:"id"`
	RestaurantID      string          `json:"restaurant_id"`
	Code              string          `json:"code"`
	Description       sql.NullString  `json:"-"`
	DiscountType      string          `json:"discount_type"`
	Value             float64         `json:"value"`
	MaxDiscountAmount sql.NullFloat64 `json:"-"`
	MinOrderAmount    float64         `json:"min_order_amount"`
	StartDate         sql.NullTime    `json:"-"`
	EndDate           sql.NullTime    `json:"-"`
	UsageLimit        sql.NullInt64   `json:"-"`
	UsageCount        int64           `json:"usage_count"`
	QROnly            bool            `json:"qr_only"`
	Active            bool            `json:"active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// DiscountUsage is an append-only audit row; one per successful application.
type DiscountUsage struct {
	ID         string    `json:"id"`
	DiscountID string    `json:"discount_id"`
	OrderID    string    `json:"order_id"`
	Amount     float64   `json:"amount"`
	UsedAt     time.Time `json:"used_at"`
}

type DiscountResponse struct {
	ID                string     `json:"id"`
	RestaurantID      string     `json:"restaurant_id"`
	Code              string     `json:"code"`
	Description       *string    `json:"description,omitempty"`
	DiscountType      string     `json:"discount_type"`
	Value             float64    `json:"value"`
	MaxDiscountAmount *float64   `json:"max_discount_amount,omitempty"`
	MinOrderAmount    float64    `json:"min_order_amount"`
	StartDate         *time.Time `json:"start_date,omitempty"`
	EndDate           *time.Time `json:"end_date,omitempty"`
	UsageLimit        *int64     `json:"usage_limit,omitempty"`
	UsageCount        int64      `json:"usage_count"`
	QROnly            bool       `json:"qr_only"`
	Active            bool       `json:"active"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (d *Discount) PublicView() DiscountResponse {
	resp := DiscountResponse{
		ID:             d.ID,
		RestaurantID:   d.RestaurantID,
		Code:           d.Code,
		Description:    StrOrNil(d.Description),
		DiscountType:   d.DiscountType,
		Value:          d.Value,
		MinOrderAmount: d.MinOrderAmount,
		UsageCount:     d.UsageCount,
		QROnly:         d.QROnly,
		Active:         d.Active,
		CreatedAt:      d.CreatedAt,
	}
	if d.MaxDiscountAmount.Valid {
		resp.MaxDiscountAmount = &d.MaxDiscountAmount.Float64
	}
	if d.StartDate.Valid {
		resp.StartDate = &d.StartDate.Time
	}
	if d.EndDate.Valid {
		resp.EndDate = &d.EndDate.Time
	}
	if d.UsageLimit.Valid {
		resp.UsageLimit = &d.UsageLimit.Int64
	}
	return resp
}
