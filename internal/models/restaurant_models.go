package models

import (
	"database/sql"
	"time"
)

// FeatureFlags is the per-restaurant feature toggle map, stored as JSONB.
type FeatureFlags map[string]bool

// DefaultFeatureFlags returns the flags enabled for a newly provisioned restaurant.
func DefaultFeatureFlags() FeatureFlags {
	return FeatureFlags{
		"qr_ordering":        true,
		"online_discounts":   true,
		"third_party_orders": false,
		"feedback":           true,
		"analytics":          true,
	}
}

type Restaurant struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	Phone        sql.NullString `json:"-"`
	Address      sql.NullString `json:"-"`
	City         sql.NullString `json:"-"`
	Description  sql.NullString `json:"-"`
	CuisineType  sql.NullString `json:"-"`
	Tables       int            `json:"tables"`
	Features     FeatureFlags   `json:"features"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// PublicView strips credentials and flattens nullable fields for API responses.
func (r *Restaurant) PublicView() RestaurantResponse {
	return RestaurantResponse{
		ID:          r.ID,
		Name:        r.Name,
		Email:       r.Email,
		Phone:       StrOrNil(r.Phone),
		Address:     StrOrNil(r.Address),
		City:        StrOrNil(r.City),
		Description: StrOrNil(r.Description),
		CuisineType: StrOrNil(r.CuisineType),
		Tables:      r.Tables,
		Features:    r.Features,
		CreatedAt:   r.CreatedAt,
	}
}

type RestaurantResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       *string      `json:"phone,omitempty"`
	Address     *string      `json:"address,omitempty"`
	City        *string      `json:"city,omitempty"`
	Description *string      `json:"description,omitempty"`
	CuisineType *string      `json:"cuisine_type,omitempty"`
	Tables      int          `json:"tables"`
	Features    FeatureFlags `json:"features"`
	CreatedAt   time.Time    `json:"created_at"`
}

// RestaurantFilters narrows public restaurant search.
type RestaurantFilters struct {
	Query    *string `form:"q"`
	City     *string `form:"city"`
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}
