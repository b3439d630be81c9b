package models

import (
	"database/sql"
	"time"
)

type MenuItem struct {
	ID           string         `json:"id"`
	RestaurantID string         `json:"restaurant_id"`
	Name         string         `json:"name"`
	Description  sql.NullString `json:"-"`
	Category     string         `json:"category"`
	Price        float64        `json:"price"`
	IsVeg        bool           `json:"is_veg"`
	Available    bool           `json:"available"`
	DisplayOrder int            `json:"display_order"`
	ImageURL     sql.NullString `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type MenuItemResponse struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	Category     string    `json:"category"`
	Price        float64   `json:"price"`
	IsVeg        bool      `json:"is_veg"`
	Available    bool      `json:"available"`
	DisplayOrder int       `json:"display_order"`
	ImageURL     *string   `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (m *MenuItem) PublicView() MenuItemResponse {
	return MenuItemResponse{
		ID:           m.ID,
		RestaurantID: m.RestaurantID,
		Name:         m.Name,
		Description:  StrOrNil(m.Description),
		Category:     m.Category,
		Price:        m.Price,
		IsVeg:        m.IsVeg,
		Available:    m.Available,
		DisplayOrder: m.DisplayOrder,
		ImageURL:     StrOrNil(m.ImageURL),
		CreatedAt:    m.CreatedAt,
	}
}

// MenuFilters narrows menu listing for both the public QR page and the dashboard.
type MenuFilters struct {
	Category      *string `form:"category"`
	Available     *bool   `form:"available"`
	VegOnly       bool    `form:"veg_only"`
	IncludeHidden bool    `form:"-"`
}

// DeleteMode reports how a menu item deletion was resolved.
type DeleteMode string

const (
	DeleteModeHard DeleteMode = "hard"
	DeleteModeSoft DeleteMode = "soft"
)
